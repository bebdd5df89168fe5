// Package weidian fetches Weidian product details through RapidAPI.
package weidian

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopintent/backend/internal/domain"
	"go.uber.org/zap"
)

const detailPath = "weidian/detail/v5"

// Config holds the RapidAPI credentials and endpoint.
type Config struct {
	APIKey  string
	BaseURL string
	Host    string
	Timeout time.Duration
}

// Client handles communication with the Weidian RapidAPI endpoint
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	host       string
	log        *zap.Logger
}

// NewClient creates a new Weidian API client
func NewClient(cfg Config, log *zap.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		host:       cfg.Host,
		log:        log,
	}
}

// Configured reports whether the RapidAPI key is set.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// FetchProduct retrieves product details for a Weidian item id.
func (c *Client) FetchProduct(ctx context.Context, platform domain.PlatformID, productID, rawURL string) (*domain.ProductRecord, error) {
	if platform != domain.PlatformWeidian {
		return nil, fmt.Errorf("%w: weidian does not serve %s", domain.ErrUnsupportedPlatform, platform)
	}
	if !c.Configured() {
		return nil, domain.ErrProviderNotConfigured
	}

	params := url.Values{}
	params.Set("itemId", productID)
	reqURL := fmt.Sprintf("%s/%s?%s", c.baseURL, detailPath, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("x-rapidapi-key", c.apiKey)
	req.Header.Set("x-rapidapi-host", c.host)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("request failed", zap.String("product_id", productID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderAPIFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrProviderAPIFailure, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn("api error", zap.Int("status", resp.StatusCode), zap.ByteString("body", body))
		return nil, fmt.Errorf("%w: status %d", domain.ErrProviderAPIFailure, resp.StatusCode)
	}

	return MapProduct(productID, rawURL, body)
}
