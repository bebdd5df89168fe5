package domain

import "regexp"

// PlatformID identifies a supported e-commerce site.
type PlatformID string

const (
	PlatformTaobao  PlatformID = "taobao"
	Platform1688    PlatformID = "1688"
	PlatformWeidian PlatformID = "weidian"
)

// PlatformRule binds a platform to its hostname and product-id patterns.
type PlatformRule struct {
	ID        PlatformID
	Host      *regexp.Regexp
	ProductID *regexp.Regexp
}

// platformRules is ordered by detection priority: the first matching host wins.
var platformRules = []PlatformRule{
	{
		ID:        PlatformTaobao,
		Host:      regexp.MustCompile(`(?i)(taobao\.com|tb\.cn)`),
		ProductID: regexp.MustCompile(`[?&]id=(\d+)`),
	},
	{
		ID:        Platform1688,
		Host:      regexp.MustCompile(`(?i)(1688\.com)`),
		ProductID: regexp.MustCompile(`offer/(\d+)`),
	},
	{
		ID:        PlatformWeidian,
		Host:      regexp.MustCompile(`(?i)(weidian\.com)`),
		ProductID: regexp.MustCompile(`itemID=([\w\d]+)`),
	},
}

// Platforms returns every supported platform in priority order.
func Platforms() []PlatformID {
	ids := make([]PlatformID, len(platformRules))
	for i, rule := range platformRules {
		ids[i] = rule.ID
	}
	return ids
}

// DetectPlatform returns the first platform whose host pattern matches rawURL.
func DetectPlatform(rawURL string) (PlatformID, bool) {
	for _, rule := range platformRules {
		if rule.Host.MatchString(rawURL) {
			return rule.ID, true
		}
	}
	return "", false
}

// ExtractProductID pulls the platform-specific product identifier out of rawURL.
// Returns "" when the URL carries no identifier or the platform is unknown.
func (p PlatformID) ExtractProductID(rawURL string) string {
	rule, ok := p.rule()
	if !ok {
		return ""
	}
	m := rule.ProductID.FindStringSubmatch(rawURL)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

// Valid reports whether p is one of the supported platforms.
func (p PlatformID) Valid() bool {
	_, ok := p.rule()
	return ok
}

func (p PlatformID) String() string {
	return string(p)
}

func (p PlatformID) rule() (PlatformRule, bool) {
	for _, rule := range platformRules {
		if rule.ID == p {
			return rule, true
		}
	}
	return PlatformRule{}, false
}
