package domain

// ProductRecord is the product detail returned for a single product link.
type ProductRecord struct {
	Platform  PlatformID `json:"platform"`
	ProductID string     `json:"productId"`
	Title     string     `json:"title"`
	Price     float64    `json:"price"`
	URL       string     `json:"url"`
}

// PipelineResult is the response body of the intent parse endpoint.
// The text branch sets LLMAnalysis and ShoppingIntent; the URL branch sets
// PlatformMap and Products and leaves LLMAnalysis null.
type PipelineResult struct {
	HasURLs        bool             `json:"hasUrls"`
	URLs           []string         `json:"urls"`
	PlatformMap    PlatformMap      `json:"platform_map,omitempty"`
	Products       []*ProductRecord `json:"products"`
	LLMAnalysis    *string          `json:"llmAnalysis"`
	ShoppingIntent *bool            `json:"shopping_intent,omitempty"`
}
