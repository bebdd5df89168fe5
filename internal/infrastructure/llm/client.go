// Package llm asks an OpenAI-compatible chat completion endpoint whether a
// text expresses purchase intent.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
	"github.com/shopintent/backend/internal/domain"
	"go.uber.org/zap"
)

const (
	schemaName   = "get_shopping_intent"
	systemPrompt = "Analyze the user's text to determine if it expresses a direct or" +
		" indirect intent to purchase an item. Respond with only a JSON" +
		" object containing a single key 'shopping_intent' which is a" +
		" boolean value (true or false)."
)

var intentSchema = jsonschema.Definition{
	Type: jsonschema.Object,
	Properties: map[string]jsonschema.Definition{
		"shopping_intent": {
			Type:        jsonschema.Boolean,
			Description: "True if the user text expresses shopping intent, false otherwise.",
		},
	},
	Required:             []string{"shopping_intent"},
	AdditionalProperties: false,
}

// Config describes the model endpoint.
type Config struct {
	APIKey    string
	BaseURL   string
	Model     string
	Timeout   time.Duration
	MaxTokens int
}

// Client implements domain.IntentModel on top of go-openai.
type Client struct {
	api       *openai.Client
	model     string
	maxTokens int
	log       *zap.Logger
}

// NewClient creates a client for the configured OpenAI-compatible endpoint.
func NewClient(cfg Config, log *zap.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 50
	}
	if log == nil {
		log = zap.NewNop()
	}

	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	}
	apiCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &Client{
		api:       openai.NewClientWithConfig(apiCfg),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		log:       log,
	}
}

type intentPayload struct {
	ShoppingIntent *bool `json:"shopping_intent"`
}

// DetectShoppingIntent issues one chat completion and decodes the boolean verdict.
// Decoding failures wrap domain.ErrModelResponseDecode; call failures are
// returned as reported by the API client.
func (c *Client) DetectShoppingIntent(ctx context.Context, text string) (bool, error) {
	start := time.Now()

	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   schemaName,
				Schema: &intentSchema,
				Strict: true,
			},
		},
		// A literal 0 is dropped by omitempty; this is the client's way to send zero.
		Temperature: math.SmallestNonzeroFloat32,
		MaxTokens:   c.maxTokens,
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		c.log.Error("chat completion failed",
			zap.String("model", c.model),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		return false, err
	}

	if len(resp.Choices) == 0 {
		return false, domain.ErrEmptyModelResponse
	}

	content := resp.Choices[0].Message.Content
	var payload intentPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		c.log.Warn("undecodable model reply", zap.String("content", content), zap.Error(err))
		return false, fmt.Errorf("%w: %v", domain.ErrModelResponseDecode, err)
	}
	if payload.ShoppingIntent == nil {
		c.log.Warn("model reply missing shopping_intent", zap.String("content", content))
		return false, fmt.Errorf("%w: shopping_intent missing", domain.ErrModelResponseDecode)
	}

	c.log.Debug("intent detected",
		zap.Bool("shopping_intent", *payload.ShoppingIntent),
		zap.Duration("duration", time.Since(start)))

	return *payload.ShoppingIntent, nil
}
