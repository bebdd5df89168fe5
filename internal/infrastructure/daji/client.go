// Package daji talks to the Daji open API for Taobao and 1688 product details.
package daji

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopintent/backend/internal/domain"
	"go.uber.org/zap"
)

const (
	taobaoItemPath  = "taobao/traffic/item/get"
	alibabaItemPath = "alibaba/product/queryProductDetail"
)

// Config holds the Daji credentials and endpoint.
type Config struct {
	APIKey    string
	APISecret string
	BaseURL   string
	Timeout   time.Duration
}

// Client handles communication with the Daji open API
type Client struct {
	httpClient *http.Client
	apiKey     string
	apiSecret  string
	baseURL    string
	log        *zap.Logger
}

// NewClient creates a new Daji API client
func NewClient(cfg Config, log *zap.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APISecret,
		baseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
		log:       log,
	}
}

// Configured reports whether both the app key and secret are set.
func (c *Client) Configured() bool {
	return c.apiKey != "" && c.apiSecret != ""
}

// FetchProduct retrieves product details for a Taobao or 1688 product id.
func (c *Client) FetchProduct(ctx context.Context, platform domain.PlatformID, productID, rawURL string) (*domain.ProductRecord, error) {
	if !c.Configured() {
		return nil, domain.ErrProviderNotConfigured
	}

	var (
		path   string
		params map[string]any
	)
	switch platform {
	case domain.PlatformTaobao:
		path = taobaoItemPath
		params = map[string]any{"item_id": productID, "language": "en"}
	case domain.Platform1688:
		path = alibabaItemPath
		params = map[string]any{"offerId": productID, "country": "en"}
	default:
		return nil, fmt.Errorf("%w: daji does not serve %s", domain.ErrUnsupportedPlatform, platform)
	}

	query := SignParams(params, c.apiKey, c.apiSecret)
	reqURL := fmt.Sprintf("%s/%s?%s", c.baseURL, path, query.Encode())

	c.log.Debug("fetching product",
		zap.String("platform", platform.String()),
		zap.String("product_id", productID))

	resp, err := c.doRequest(ctx, reqURL)
	if err != nil {
		c.log.Warn("request failed", zap.String("platform", platform.String()), zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrProviderAPIFailure, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn("api error",
			zap.String("platform", platform.String()),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body))
		return nil, fmt.Errorf("%w: status %d", domain.ErrProviderAPIFailure, resp.StatusCode)
	}

	return MapProduct(platform, productID, rawURL, body)
}

// doRequest executes an HTTP GET request with proper headers and error handling
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "ShopIntent/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderAPIFailure, err)
	}

	return resp, nil
}
