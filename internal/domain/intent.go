package domain

// IntentVerdict is the classifier's decision on whether a text expresses purchase intent.
type IntentVerdict struct {
	ShoppingIntent bool   `json:"shopping_intent"`
	Reason         string `json:"reason,omitempty"`
}
