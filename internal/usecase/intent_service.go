package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopintent/backend/internal/domain"
	metricspkg "github.com/shopintent/backend/internal/metrics"
	"go.uber.org/zap"
)

const (
	reasonEmptyInput   = "Input text is empty."
	reasonDecodeFailed = "Failed to decode JSON from model response."
	reasonCallFailed   = "An error occurred while calling LLM: "
)

// Verdict outcomes reported to metrics.
const (
	verdictOutcomeModel       = "model"
	verdictOutcomeEmpty       = "empty"
	verdictOutcomeDecodeError = "decode_error"
	verdictOutcomeCallError   = "call_error"
)

// IntentService adapts an IntentModel into a classifier that never fails.
type IntentService struct {
	model   domain.IntentModel
	metrics domain.MetricsRecorder
	log     *zap.Logger
}

// NewIntentService creates a new intent classifier
func NewIntentService(model domain.IntentModel, metrics domain.MetricsRecorder, log *zap.Logger) *IntentService {
	if metrics == nil {
		metrics = metricspkg.Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &IntentService{
		model:   model,
		metrics: metrics,
		log:     log,
	}
}

// ClassifyIntent asks the model whether text expresses shopping intent.
// Every failure is folded into a negative verdict carrying a reason.
func (s *IntentService) ClassifyIntent(ctx context.Context, text string) domain.IntentVerdict {
	if strings.TrimSpace(text) == "" {
		s.record(false, verdictOutcomeEmpty)
		return domain.IntentVerdict{ShoppingIntent: false, Reason: reasonEmptyInput}
	}

	start := time.Now()
	intent, err := s.model.DetectShoppingIntent(ctx, text)
	s.metrics.ObserveUpstream("llm", time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, domain.ErrModelResponseDecode) {
			s.log.Warn("intent model returned undecodable payload", zap.Error(err))
			s.record(false, verdictOutcomeDecodeError)
			return domain.IntentVerdict{ShoppingIntent: false, Reason: reasonDecodeFailed}
		}
		s.log.Error("intent model call failed", zap.Error(err))
		s.record(false, verdictOutcomeCallError)
		return domain.IntentVerdict{ShoppingIntent: false, Reason: reasonCallFailed + err.Error()}
	}

	s.log.Debug("intent classified", zap.Bool("shopping_intent", intent))
	s.record(intent, verdictOutcomeModel)
	return domain.IntentVerdict{ShoppingIntent: intent}
}

func (s *IntentService) record(intent bool, outcome string) {
	s.metrics.RecordVerdict(intent, outcome)
}
