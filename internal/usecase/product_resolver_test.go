package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopintent/backend/internal/domain"
	"github.com/shopintent/backend/internal/infrastructure/fallback"
	metricspkg "github.com/shopintent/backend/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResolver(platform domain.PlatformID, source domain.ProductSource, metrics domain.MetricsRecorder) *PlatformResolver {
	return NewPlatformResolver(platform, source, fallback.NewCatalog(func(n int) int { return n - 1 }),
		ResolverConfig{SimulatedLatency: 0, CallTimeout: time.Second}, metrics, nil)
}

func TestResolve_LiveSuccess(t *testing.T) {
	source := &mockProductSource{configured: true}
	metrics := &recordingMetrics{}
	r := newTestResolver(domain.PlatformTaobao, source, metrics)

	product := r.Resolve(context.Background(), "https://item.taobao.com/item.htm?id=123456")

	require.NotNil(t, product)
	assert.Equal(t, domain.PlatformTaobao, product.Platform)
	assert.Equal(t, "123456", product.ProductID)
	assert.Equal(t, "live 123456", product.Title)
	assert.Equal(t, []string{"123456"}, source.calls)
	assert.Equal(t, []string{"taobao:live"}, metrics.resolutions)
	assert.Equal(t, []string{"taobao"}, metrics.upstreams)
}

func TestResolve_UnparseableURLUsesRandomFallback(t *testing.T) {
	source := &mockProductSource{configured: true}
	metrics := &recordingMetrics{}
	r := newTestResolver(domain.PlatformTaobao, source, metrics)

	product := r.Resolve(context.Background(), "https://item.taobao.com/item.htm")

	require.NotNil(t, product)
	assert.Equal(t, fallback.WeidianProduct, *product, "picker returns last catalog entry")
	assert.Equal(t, 0, source.callCount(), "no live call without a product id")
	assert.Equal(t, []string{"taobao:fallback_unparseable"}, metrics.resolutions)
}

func TestResolve_UnparseableURLAlwaysFromCatalog(t *testing.T) {
	r := NewPlatformResolver(domain.Platform1688, nil, nil, ResolverConfig{}, nil, nil)
	records := []domain.ProductRecord{fallback.TaobaoProduct, fallback.AlibabaProduct, fallback.WeidianProduct}

	for i := 0; i < 20; i++ {
		product := r.Resolve(context.Background(), "https://detail.1688.com/item.html")
		require.NotNil(t, product)
		assert.Contains(t, records, *product)
	}
}

func TestNewPlatformResolver_DefaultsToNopMetrics(t *testing.T) {
	r := NewPlatformResolver(domain.PlatformTaobao, &mockProductSource{configured: true}, nil, ResolverConfig{}, nil, nil)

	assert.Equal(t, metricspkg.Nop{}, r.metrics)
	assert.Equal(t, "1", r.Resolve(context.Background(), "https://item.taobao.com/item.htm?id=1").ProductID)
}

func TestResolve_NotConfiguredUsesPlatformFallback(t *testing.T) {
	testCases := []struct {
		platform domain.PlatformID
		url      string
		want     domain.ProductRecord
	}{
		{domain.PlatformTaobao, "https://item.taobao.com/item.htm?id=1", fallback.TaobaoProduct},
		{domain.Platform1688, "https://detail.1688.com/offer/2.html", fallback.AlibabaProduct},
		{domain.PlatformWeidian, "https://weidian.com/item.html?itemID=3", fallback.WeidianProduct},
	}

	for _, tc := range testCases {
		t.Run(string(tc.platform), func(t *testing.T) {
			source := &mockProductSource{configured: false}
			metrics := &recordingMetrics{}
			r := newTestResolver(tc.platform, source, metrics)

			product := r.Resolve(context.Background(), tc.url)

			require.NotNil(t, product)
			assert.Equal(t, tc.want, *product)
			assert.Equal(t, 0, source.callCount())
			assert.Equal(t, []string{string(tc.platform) + ":fallback_no_credentials"}, metrics.resolutions)
		})
	}
}

func TestResolve_NotConfiguredWaitsSimulatedLatency(t *testing.T) {
	r := NewPlatformResolver(domain.PlatformTaobao, &mockProductSource{}, nil,
		ResolverConfig{SimulatedLatency: 30 * time.Millisecond}, nil, nil)

	start := time.Now()
	product := r.Resolve(context.Background(), "https://item.taobao.com/item.htm?id=1")

	require.NotNil(t, product)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestResolve_SimulatedLatencyHonoursCancellation(t *testing.T) {
	r := NewPlatformResolver(domain.PlatformTaobao, nil, nil,
		ResolverConfig{SimulatedLatency: 5 * time.Second}, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	product := r.Resolve(ctx, "https://item.taobao.com/item.htm?id=1")

	require.NotNil(t, product)
	assert.Equal(t, fallback.TaobaoProduct, *product)
	assert.Less(t, time.Since(start), time.Second)
}

func TestResolve_LiveFailuresUsePlatformFallback(t *testing.T) {
	testCases := []struct {
		name    string
		product *domain.ProductRecord
		err     error
	}{
		{"api failure", nil, fmt.Errorf("%w: status 500", domain.ErrProviderAPIFailure)},
		{"provider error code", nil, fmt.Errorf("%w: code 401", domain.ErrProviderRejected)},
		{"malformed payload", nil, domain.ErrMalformedProduct},
		{"network error", nil, errors.New("dial tcp: connection refused")},
		{"nil product", nil, nil},
		{"empty title", &domain.ProductRecord{Platform: domain.PlatformWeidian, ProductID: "3"}, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			source := &mockProductSource{
				configured: true,
				fetchFunc: func(ctx context.Context, platform domain.PlatformID, productID, rawURL string) (*domain.ProductRecord, error) {
					return tc.product, tc.err
				},
			}
			metrics := &recordingMetrics{}
			r := newTestResolver(domain.PlatformWeidian, source, metrics)

			product := r.Resolve(context.Background(), "https://weidian.com/item.html?itemID=3")

			require.NotNil(t, product)
			assert.Equal(t, fallback.WeidianProduct, *product)
			assert.Equal(t, 1, source.callCount(), "exactly one attempt")
			assert.Equal(t, []string{"weidian:fallback_error"}, metrics.resolutions)
		})
	}
}

func TestResolve_CallTimeout(t *testing.T) {
	source := &mockProductSource{
		configured: true,
		fetchFunc: func(ctx context.Context, platform domain.PlatformID, productID, rawURL string) (*domain.ProductRecord, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	r := NewPlatformResolver(domain.Platform1688, source, nil,
		ResolverConfig{CallTimeout: 20 * time.Millisecond}, nil, nil)

	product := r.Resolve(context.Background(), "https://detail.1688.com/offer/2.html")

	require.NotNil(t, product)
	assert.Equal(t, fallback.AlibabaProduct, *product)
}

func TestResolve_ConcurrentUse(t *testing.T) {
	source := &mockProductSource{configured: true}
	r := newTestResolver(domain.PlatformTaobao, source, &recordingMetrics{})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("%d", i)
			product := r.Resolve(context.Background(), "https://item.taobao.com/item.htm?id="+id)
			assert.Equal(t, id, product.ProductID)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, source.callCount())
}
