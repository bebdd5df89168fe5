package usecase

import (
	"context"
	"time"

	"github.com/shopintent/backend/internal/domain"
	"github.com/shopintent/backend/internal/infrastructure/fallback"
	metricspkg "github.com/shopintent/backend/internal/metrics"
	"go.uber.org/zap"
)

// Resolution outcomes reported to metrics.
const (
	resolutionLive                  = "live"
	resolutionFallbackUnparseable   = "fallback_unparseable"
	resolutionFallbackNoCredentials = "fallback_no_credentials"
	resolutionFallbackError         = "fallback_error"
)

const (
	defaultSimulatedLatency = 50 * time.Millisecond
	defaultCallTimeout      = 20 * time.Second
)

// ResolverConfig tunes the fallback and live paths of a PlatformResolver.
type ResolverConfig struct {
	SimulatedLatency time.Duration
	CallTimeout      time.Duration
}

// PlatformResolver resolves product links of one platform, falling back to
// the fixed catalog whenever the live source cannot answer.
type PlatformResolver struct {
	platform domain.PlatformID
	source   domain.ProductSource
	catalog  *fallback.Catalog
	cfg      ResolverConfig
	metrics  domain.MetricsRecorder
	log      *zap.Logger
}

// NewPlatformResolver creates a resolver for platform backed by source.
// A nil source behaves like an unconfigured one.
func NewPlatformResolver(
	platform domain.PlatformID,
	source domain.ProductSource,
	catalog *fallback.Catalog,
	cfg ResolverConfig,
	metrics domain.MetricsRecorder,
	log *zap.Logger,
) *PlatformResolver {
	if catalog == nil {
		catalog = fallback.NewCatalog(nil)
	}
	if cfg.SimulatedLatency < 0 {
		cfg.SimulatedLatency = defaultSimulatedLatency
	}
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = defaultCallTimeout
	}
	if metrics == nil {
		metrics = metricspkg.Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &PlatformResolver{
		platform: platform,
		source:   source,
		catalog:  catalog,
		cfg:      cfg,
		metrics:  metrics,
		log:      log.With(zap.String("platform", string(platform))),
	}
}

// Platform returns the platform this resolver serves.
func (r *PlatformResolver) Platform() domain.PlatformID {
	return r.platform
}

// Resolve returns a product record for rawURL. It never returns nil.
func (r *PlatformResolver) Resolve(ctx context.Context, rawURL string) *domain.ProductRecord {
	productID := r.platform.ExtractProductID(rawURL)
	if productID == "" {
		r.log.Warn("could not parse product id, using random fallback", zap.String("url", rawURL))
		r.record(resolutionFallbackUnparseable)
		return r.catalog.Random()
	}

	if r.source == nil || !r.source.Configured() {
		r.log.Debug("provider credentials missing, using fallback", zap.String("product_id", productID))
		sleepContext(ctx, r.cfg.SimulatedLatency)
		r.record(resolutionFallbackNoCredentials)
		return r.catalog.For(r.platform)
	}

	callCtx, cancel := context.WithTimeout(ctx, r.cfg.CallTimeout)
	defer cancel()

	start := time.Now()
	product, err := r.source.FetchProduct(callCtx, r.platform, productID, rawURL)
	r.metrics.ObserveUpstream(string(r.platform), time.Since(start).Seconds())
	if err != nil || product == nil || product.Title == "" {
		r.log.Warn("live product lookup failed, using fallback",
			zap.String("product_id", productID),
			zap.Error(err))
		r.record(resolutionFallbackError)
		return r.catalog.For(r.platform)
	}

	r.record(resolutionLive)
	return product
}

func (r *PlatformResolver) record(outcome string) {
	r.metrics.RecordResolution(r.platform, outcome)
}

// sleepContext waits for d or until ctx is done, whichever comes first.
func sleepContext(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
