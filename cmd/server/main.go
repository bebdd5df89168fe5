package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopintent/backend/config"
	httpDelivery "github.com/shopintent/backend/internal/delivery/http"
	"github.com/shopintent/backend/internal/domain"
	"github.com/shopintent/backend/internal/infrastructure/daji"
	"github.com/shopintent/backend/internal/infrastructure/fallback"
	"github.com/shopintent/backend/internal/infrastructure/llm"
	"github.com/shopintent/backend/internal/infrastructure/weidian"
	"github.com/shopintent/backend/internal/logger"
	"github.com/shopintent/backend/internal/metrics"
	"github.com/shopintent/backend/internal/usecase"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	zl.Info("starting shopping intent backend",
		zap.String("version", version),
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.Bool("parallel_resolve", cfg.Pipeline.ParallelResolve))

	if err := run(cfg, zl); err != nil {
		zl.Fatal("server stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, zl *zap.Logger) error {
	m := metrics.New()

	// Initialize infrastructure dependencies
	llmClient := llm.NewClient(llm.Config{
		APIKey:    cfg.LLM.APIKey,
		BaseURL:   cfg.LLM.BaseURL,
		Model:     cfg.LLM.Model,
		Timeout:   cfg.LLM.Timeout,
		MaxTokens: cfg.LLM.MaxTokens,
	}, zl.Named("llm"))

	dajiClient := daji.NewClient(daji.Config{
		APIKey:    cfg.Daji.APIKey,
		APISecret: cfg.Daji.APISecret,
		BaseURL:   cfg.Daji.BaseURL,
		Timeout:   cfg.Daji.Timeout,
	}, zl.Named("daji"))

	weidianClient := weidian.NewClient(weidian.Config{
		APIKey:  cfg.Weidian.APIKey,
		BaseURL: cfg.Weidian.BaseURL,
		Host:    cfg.Weidian.Host,
		Timeout: cfg.Weidian.Timeout,
	}, zl.Named("weidian"))

	if !dajiClient.Configured() {
		zl.Warn("daji credentials not configured, taobao and 1688 links use fallback records")
	}
	if !weidianClient.Configured() {
		zl.Warn("rapidapi key not configured, weidian links use fallback records")
	}

	sources := map[domain.PlatformID]domain.ProductSource{
		domain.PlatformTaobao:  dajiClient,
		domain.Platform1688:    dajiClient,
		domain.PlatformWeidian: weidianClient,
	}

	// Initialize usecase layer
	catalog := fallback.NewCatalog(nil)
	resolverCfg := usecase.ResolverConfig{SimulatedLatency: cfg.Fallback.SimulatedLatency}
	resolvers := make(map[domain.PlatformID]domain.ProductResolver, len(sources))
	for platform, source := range sources {
		timeout := cfg.Daji.Timeout
		if platform == domain.PlatformWeidian {
			timeout = cfg.Weidian.Timeout
		}
		rc := resolverCfg
		rc.CallTimeout = timeout
		resolvers[platform] = usecase.NewPlatformResolver(platform, source, catalog, rc, m, zl.Named("resolver"))
	}

	pipeline, err := usecase.NewPipeline(
		usecase.NewPreprocessor(zl.Named("extractor")),
		usecase.NewIntentService(llmClient, m, zl.Named("intent")),
		resolvers,
		usecase.PipelineConfig{ParallelResolve: cfg.Pipeline.ParallelResolve},
		m,
		zl.Named("pipeline"),
	)
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(pipeline, zl.Named("http"))
	router := httpDelivery.SetupRouter(cfg, handler, zl.Named("http"), m.Handler())

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zl.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	zl.Info("server stopped")
	return nil
}
