package http

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed openapi.yml
var openAPISpec []byte

// openAPIDocument converts the embedded YAML document to JSON once.
var openAPIDocument = sync.OnceValues(func() ([]byte, error) {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(openAPISpec, &doc); err != nil {
		return nil, fmt.Errorf("parse openapi.yml: %w", err)
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode openapi document: %w", err)
	}
	return out, nil
})

// OpenAPI serves the API description as JSON
func (h *Handler) OpenAPI(c *gin.Context) {
	doc, err := openAPIDocument()
	if err != nil {
		h.log.Error("openapi document unavailable", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "openapi document unavailable"})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", doc)
}
