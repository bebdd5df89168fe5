package weidian

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopintent/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *Client {
	return NewClient(Config{
		APIKey:  "fake_key",
		BaseURL: baseURL,
		Host:    "weidian-api2.p.rapidapi.com",
		Timeout: 2 * time.Second,
	}, nil)
}

func TestFetchProduct_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/weidian/detail/v5", r.URL.Path)
		assert.Equal(t, "w123", r.URL.Query().Get("itemId"))
		assert.Equal(t, "fake_key", r.Header.Get("x-rapidapi-key"))
		assert.Equal(t, "weidian-api2.p.rapidapi.com", r.Header.Get("x-rapidapi-host"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result":{"itemName":"Real Weidian Item","price":"59.00"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL + "/")
	url := "https://weidian.com/item.html?itemID=w123"

	result, err := client.FetchProduct(context.Background(), domain.PlatformWeidian, "w123", url)

	require.NoError(t, err)
	assert.Equal(t, "Real Weidian Item", result.Title)
	assert.Equal(t, 59.0, result.Price)
	assert.Equal(t, "w123", result.ProductID)
	assert.Equal(t, url, result.URL)
	assert.Equal(t, domain.PlatformWeidian, result.Platform)
}

func TestFetchProduct_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	result, err := client.FetchProduct(context.Background(), domain.PlatformWeidian, "w123", "u")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrProviderAPIFailure)
}

func TestFetchProduct_MalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":{}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.FetchProduct(context.Background(), domain.PlatformWeidian, "w123", "u")

	assert.ErrorIs(t, err, domain.ErrMalformedProduct)
}

func TestFetchProduct_NotConfigured(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://127.0.0.1:1"}, nil)

	assert.False(t, client.Configured())
	_, err := client.FetchProduct(context.Background(), domain.PlatformWeidian, "w123", "u")
	assert.ErrorIs(t, err, domain.ErrProviderNotConfigured)
}

func TestFetchProduct_WrongPlatform(t *testing.T) {
	client := newTestClient("http://127.0.0.1:1")

	_, err := client.FetchProduct(context.Background(), domain.PlatformTaobao, "1", "u")

	assert.ErrorIs(t, err, domain.ErrUnsupportedPlatform)
}
