package usecase

import (
	"regexp"
	"strings"

	"github.com/shopintent/backend/internal/domain"
	"go.uber.org/zap"
)

// urlPattern matches http(s) URLs up to the next whitespace, including
// Unicode separators such as the ideographic space.
var urlPattern = regexp.MustCompile(`(?i)https?://[^\s\p{Z}]+`)

// Preprocessor classifies raw user text by the product links it contains
type Preprocessor struct {
	log *zap.Logger
}

// NewPreprocessor creates a new preprocessor. A nil logger disables debug output.
func NewPreprocessor(log *zap.Logger) *Preprocessor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Preprocessor{log: log}
}

// ExtractURLs returns every URL in text in order of appearance, without dedup.
func ExtractURLs(text string) []string {
	if text == "" {
		return []string{}
	}
	urls := urlPattern.FindAllString(text, -1)
	if urls == nil {
		return []string{}
	}
	return urls
}

// Extract scans text for URLs and tags each with the first matching platform.
// It performs no I/O and always returns the same result for the same text.
func (p *Preprocessor) Extract(text string) *domain.ClassifiedInput {
	content := strings.TrimSpace(text)
	urls := ExtractURLs(content)

	platformMap := domain.PlatformMap{}
	for _, u := range urls {
		if platform, ok := domain.DetectPlatform(u); ok {
			platformMap = platformMap.Add(platform, u)
		}
	}

	hasSupportedURLs := len(platformMap) > 0
	kind := domain.InputKindText
	if hasSupportedURLs {
		kind = domain.InputKindURL
	}

	p.log.Debug("input classified",
		zap.String("type", string(kind)),
		zap.Int("urls", len(urls)),
		zap.Int("recognized", platformMap.Count()))

	return &domain.ClassifiedInput{
		Kind:        kind,
		URLs:        urls,
		PlatformMap: platformMap,
		Content:     content,
		SkipLLM:     hasSupportedURLs,
	}
}
