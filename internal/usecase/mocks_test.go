package usecase

import (
	"context"
	"sync"

	"github.com/shopintent/backend/internal/domain"
)

// mockIntentModel is a mock implementation of domain.IntentModel
type mockIntentModel struct {
	mu     sync.Mutex
	calls  []string
	intent bool
	err    error
}

func (m *mockIntentModel) DetectShoppingIntent(ctx context.Context, text string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, text)
	return m.intent, m.err
}

func (m *mockIntentModel) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// mockProductSource is a mock implementation of domain.ProductSource
type mockProductSource struct {
	mu         sync.Mutex
	configured bool
	fetchFunc  func(ctx context.Context, platform domain.PlatformID, productID, rawURL string) (*domain.ProductRecord, error)
	calls      []string
}

func (m *mockProductSource) Configured() bool {
	return m.configured
}

func (m *mockProductSource) FetchProduct(ctx context.Context, platform domain.PlatformID, productID, rawURL string) (*domain.ProductRecord, error) {
	m.mu.Lock()
	m.calls = append(m.calls, productID)
	m.mu.Unlock()
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx, platform, productID, rawURL)
	}
	return &domain.ProductRecord{Platform: platform, ProductID: productID, Title: "live " + productID, Price: 1, URL: rawURL}, nil
}

func (m *mockProductSource) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// mockClassifier is a mock implementation of domain.IntentClassifier
type mockClassifier struct {
	mu      sync.Mutex
	verdict domain.IntentVerdict
	calls   []string
}

func (m *mockClassifier) ClassifyIntent(ctx context.Context, text string) domain.IntentVerdict {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, text)
	return m.verdict
}

// mockResolver is a mock implementation of domain.ProductResolver
type mockResolver struct {
	mu       sync.Mutex
	platform domain.PlatformID
	calls    []string
	resolve  func(rawURL string) *domain.ProductRecord
}

func (m *mockResolver) Resolve(ctx context.Context, rawURL string) *domain.ProductRecord {
	m.mu.Lock()
	m.calls = append(m.calls, rawURL)
	m.mu.Unlock()
	if m.resolve != nil {
		return m.resolve(rawURL)
	}
	return &domain.ProductRecord{Platform: m.platform, Title: "resolved", URL: rawURL}
}

// recordingMetrics captures metric events for assertions
type recordingMetrics struct {
	mu          sync.Mutex
	branches    []string
	verdicts    []string
	resolutions []string
	upstreams   []string
}

func (r *recordingMetrics) RecordBranch(branch string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.branches = append(r.branches, branch)
}

func (r *recordingMetrics) RecordVerdict(intent bool, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.verdicts = append(r.verdicts, outcome)
}

func (r *recordingMetrics) RecordResolution(platform domain.PlatformID, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resolutions = append(r.resolutions, string(platform)+":"+outcome)
}

func (r *recordingMetrics) ObserveUpstream(upstream string, seconds float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upstreams = append(r.upstreams, upstream)
}
