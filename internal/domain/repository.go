package domain

import "context"

// IntentModel is the external text-classification capability.
type IntentModel interface {
	DetectShoppingIntent(ctx context.Context, text string) (bool, error)
}

// IntentClassifier turns free text into a verdict. Implementations never fail.
type IntentClassifier interface {
	ClassifyIntent(ctx context.Context, text string) IntentVerdict
}

// ProductSource fetches live product details from a provider API.
type ProductSource interface {
	// Configured reports whether the credentials the provider needs are present.
	Configured() bool
	FetchProduct(ctx context.Context, platform PlatformID, productID, rawURL string) (*ProductRecord, error)
}

// ProductResolver resolves a product link to a record. Implementations never fail.
type ProductResolver interface {
	Resolve(ctx context.Context, rawURL string) *ProductRecord
}

// MetricsRecorder receives pipeline events for observability.
type MetricsRecorder interface {
	RecordBranch(branch string)
	RecordVerdict(intent bool, outcome string)
	RecordResolution(platform PlatformID, outcome string)
	ObserveUpstream(upstream string, seconds float64)
}
