package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopintent/backend/internal/domain"
	metricspkg "github.com/shopintent/backend/internal/metrics"
	"github.com/stretchr/testify/assert"
)

func TestClassifyIntent_EmptyInput(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t"} {
		model := &mockIntentModel{intent: true}
		metrics := &recordingMetrics{}
		svc := NewIntentService(model, metrics, nil)

		verdict := svc.ClassifyIntent(context.Background(), text)

		assert.False(t, verdict.ShoppingIntent)
		assert.Equal(t, "Input text is empty.", verdict.Reason)
		assert.Equal(t, 0, model.callCount(), "model must not be called for empty input")
		assert.Equal(t, []string{"empty"}, metrics.verdicts)
	}
}

func TestClassifyIntent_ModelVerdict(t *testing.T) {
	testCases := []struct {
		name   string
		intent bool
	}{
		{"shopping", true},
		{"not shopping", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			model := &mockIntentModel{intent: tc.intent}
			metrics := &recordingMetrics{}
			svc := NewIntentService(model, metrics, nil)

			verdict := svc.ClassifyIntent(context.Background(), "我想买一双新鞋子")

			assert.Equal(t, tc.intent, verdict.ShoppingIntent)
			assert.Empty(t, verdict.Reason)
			assert.Equal(t, []string{"我想买一双新鞋子"}, model.calls)
			assert.Equal(t, []string{"model"}, metrics.verdicts)
			assert.Equal(t, []string{"llm"}, metrics.upstreams)
		})
	}
}

func TestClassifyIntent_DecodeError(t *testing.T) {
	model := &mockIntentModel{err: fmt.Errorf("%w: unexpected end of JSON input", domain.ErrModelResponseDecode)}
	metrics := &recordingMetrics{}
	svc := NewIntentService(model, metrics, nil)

	verdict := svc.ClassifyIntent(context.Background(), "hello")

	assert.False(t, verdict.ShoppingIntent)
	assert.Equal(t, "Failed to decode JSON from model response.", verdict.Reason)
	assert.Equal(t, 1, model.callCount())
	assert.Equal(t, []string{"decode_error"}, metrics.verdicts)
}

func TestClassifyIntent_CallError(t *testing.T) {
	model := &mockIntentModel{err: errors.New("connection refused")}
	metrics := &recordingMetrics{}
	svc := NewIntentService(model, metrics, nil)

	verdict := svc.ClassifyIntent(context.Background(), "hello")

	assert.False(t, verdict.ShoppingIntent)
	assert.Equal(t, "An error occurred while calling LLM: connection refused", verdict.Reason)
	assert.Equal(t, 1, model.callCount(), "no retries")
	assert.Equal(t, []string{"call_error"}, metrics.verdicts)
}

func TestNewIntentService_DefaultsToNopMetrics(t *testing.T) {
	svc := NewIntentService(&mockIntentModel{intent: true}, nil, nil)

	assert.Equal(t, metricspkg.Nop{}, svc.metrics)
	assert.True(t, svc.ClassifyIntent(context.Background(), "buy").ShoppingIntent)
}

func TestClassifyIntent_NoChoicesIsCallError(t *testing.T) {
	model := &mockIntentModel{err: domain.ErrEmptyModelResponse}
	svc := NewIntentService(model, nil, nil)

	verdict := svc.ClassifyIntent(context.Background(), "hello")

	assert.False(t, verdict.ShoppingIntent)
	assert.Equal(t, "An error occurred while calling LLM: model returned no choices", verdict.Reason)
}
