package usecase

import (
	"context"
	"fmt"

	"github.com/shopintent/backend/internal/domain"
	metricspkg "github.com/shopintent/backend/internal/metrics"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Fixed replies for the text branch, selected by the intent verdict.
const (
	AffirmativeMessage = "请点击联系我们进行人工购物帮助！"
	DeclineMessage     = "我们仅支持专业的代购需求，谢谢您的使用！"
)

const (
	branchText = "text"
	branchURL  = "url"
)

// PipelineConfig controls how product links are resolved.
type PipelineConfig struct {
	// ParallelResolve dispatches resolver calls concurrently. Output order is unchanged.
	ParallelResolve bool
}

// Pipeline composes extraction, intent classification and product resolution.
type Pipeline struct {
	preprocessor *Preprocessor
	classifier   domain.IntentClassifier
	resolvers    map[domain.PlatformID]domain.ProductResolver
	cfg          PipelineConfig
	metrics      domain.MetricsRecorder
	log          *zap.Logger
}

// NewPipeline creates a pipeline. Every supported platform must have a resolver.
func NewPipeline(
	preprocessor *Preprocessor,
	classifier domain.IntentClassifier,
	resolvers map[domain.PlatformID]domain.ProductResolver,
	cfg PipelineConfig,
	metrics domain.MetricsRecorder,
	log *zap.Logger,
) (*Pipeline, error) {
	if classifier == nil {
		return nil, fmt.Errorf("pipeline: intent classifier is required")
	}
	for platform := range resolvers {
		if !platform.Valid() {
			return nil, fmt.Errorf("pipeline: resolver registered for unknown platform %q", platform)
		}
	}
	for _, platform := range domain.Platforms() {
		if resolvers[platform] == nil {
			return nil, fmt.Errorf("pipeline: no resolver registered for platform %q", platform)
		}
	}
	if metrics == nil {
		metrics = metricspkg.Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	if preprocessor == nil {
		preprocessor = NewPreprocessor(log)
	}
	return &Pipeline{
		preprocessor: preprocessor,
		classifier:   classifier,
		resolvers:    resolvers,
		cfg:          cfg,
		metrics:      metrics,
		log:          log,
	}, nil
}

// Handle runs one user message through the pipeline. It always returns a result.
func (p *Pipeline) Handle(ctx context.Context, userInput string) *domain.PipelineResult {
	input := p.preprocessor.Extract(userInput)

	if !input.SkipLLM {
		return p.handleText(ctx, input)
	}
	return p.handleURLs(ctx, input)
}

func (p *Pipeline) handleText(ctx context.Context, input *domain.ClassifiedInput) *domain.PipelineResult {
	p.recordBranch(branchText)

	verdict := p.classifier.ClassifyIntent(ctx, input.Content)
	message := DeclineMessage
	if verdict.ShoppingIntent {
		message = AffirmativeMessage
	}
	if verdict.Reason != "" {
		p.log.Info("intent verdict carried a reason", zap.String("reason", verdict.Reason))
	}

	intent := verdict.ShoppingIntent
	return &domain.PipelineResult{
		HasURLs:        false,
		URLs:           []string{},
		Products:       []*domain.ProductRecord{},
		LLMAnalysis:    &message,
		ShoppingIntent: &intent,
	}
}

type resolveJob struct {
	platform domain.PlatformID
	url      string
}

func (p *Pipeline) handleURLs(ctx context.Context, input *domain.ClassifiedInput) *domain.PipelineResult {
	p.recordBranch(branchURL)

	var jobs []resolveJob
	for _, entry := range input.PlatformMap {
		for _, u := range entry.URLs {
			jobs = append(jobs, resolveJob{platform: entry.Platform, url: u})
		}
	}

	slots := make([]*domain.ProductRecord, len(jobs))
	if p.cfg.ParallelResolve && len(jobs) > 1 {
		var g errgroup.Group
		for i, job := range jobs {
			g.Go(func() error {
				slots[i] = p.resolvers[job.platform].Resolve(ctx, job.url)
				return nil
			})
		}
		// Resolvers never fail, so Wait only synchronises.
		_ = g.Wait()
	} else {
		for i, job := range jobs {
			slots[i] = p.resolvers[job.platform].Resolve(ctx, job.url)
		}
	}

	products := make([]*domain.ProductRecord, 0, len(slots))
	for _, product := range slots {
		if product != nil {
			products = append(products, product)
		}
	}

	p.log.Debug("product links resolved",
		zap.Int("links", len(jobs)),
		zap.Int("products", len(products)))

	return &domain.PipelineResult{
		HasURLs:     true,
		URLs:        input.URLs,
		PlatformMap: input.PlatformMap,
		Products:    products,
		LLMAnalysis: nil,
	}
}

func (p *Pipeline) recordBranch(branch string) {
	p.metrics.RecordBranch(branch)
}
