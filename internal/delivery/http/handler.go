package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopintent/backend/internal/domain"
	"go.uber.org/zap"
)

// IntentPipeline runs one user message through extraction, classification and resolution.
type IntentPipeline interface {
	Handle(ctx context.Context, userInput string) *domain.PipelineResult
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	pipeline IntentPipeline
	log      *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(pipeline IntentPipeline, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{pipeline: pipeline, log: log}
}

// ParseIntentRequest is the body of POST /api/v1/intent/parse.
// A missing userInput is treated as empty text.
type ParseIntentRequest struct {
	UserInput *string `json:"userInput"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

// ParseIntent handles intent parse requests
func (h *Handler) ParseIntent(c *gin.Context) {
	if h.pipeline == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "intent pipeline not configured",
		})
		return
	}

	var req ParseIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug("invalid parse request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": domain.ErrInvalidRequest.Error() + ": " + err.Error(),
		})
		return
	}

	text := ""
	if req.UserInput != nil {
		text = *req.UserInput
	}

	// A client disconnect must not abort outbound calls; each carries its own timeout.
	ctx := context.WithoutCancel(c.Request.Context())
	result := h.pipeline.Handle(ctx, text)

	c.JSON(http.StatusOK, result)
}
