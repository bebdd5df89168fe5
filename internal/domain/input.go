package domain

import (
	"bytes"
	"encoding/json"
)

// InputKind tells whether a message carried recognized product links.
type InputKind string

const (
	InputKindText InputKind = "text"
	InputKindURL  InputKind = "url"
)

// ClassifiedInput is the result of scanning a user message for product links.
type ClassifiedInput struct {
	Kind        InputKind   `json:"type"`
	URLs        []string    `json:"urls"`
	PlatformMap PlatformMap `json:"platform_map"`
	Content     string      `json:"content"`
	SkipLLM     bool        `json:"skip_llm"` // true iff PlatformMap is non-empty
}

// PlatformURLs holds the URLs recognized for one platform, in first-seen order.
type PlatformURLs struct {
	Platform PlatformID
	URLs     []string
}

// PlatformMap maps platforms to their URLs. Platforms keep the order in which
// their first URL appeared, so iteration and JSON output are deterministic.
type PlatformMap []PlatformURLs

// Add appends rawURL under platform, creating the entry on first use.
func (m PlatformMap) Add(platform PlatformID, rawURL string) PlatformMap {
	for i := range m {
		if m[i].Platform == platform {
			m[i].URLs = append(m[i].URLs, rawURL)
			return m
		}
	}
	return append(m, PlatformURLs{Platform: platform, URLs: []string{rawURL}})
}

// Get returns the URLs recorded for platform.
func (m PlatformMap) Get(platform PlatformID) []string {
	for _, entry := range m {
		if entry.Platform == platform {
			return entry.URLs
		}
	}
	return nil
}

// Count returns the total number of URLs across all platforms.
func (m PlatformMap) Count() int {
	n := 0
	for _, entry := range m {
		n += len(entry.URLs)
	}
	return n
}

// MarshalJSON renders the map as a JSON object with keys in insertion order.
func (m PlatformMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(entry.Platform))
		if err != nil {
			return nil, err
		}
		urls := entry.URLs
		if urls == nil {
			urls = []string{}
		}
		val, err := json.Marshal(urls)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
