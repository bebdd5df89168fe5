package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopintent/backend/config"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the Gin router.
// metricsHandler may be nil, in which case /metrics is not registered.
func SetupRouter(cfg *config.Config, handler *Handler, log *zap.Logger, metricsHandler http.Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if log == nil {
		log = zap.NewNop()
	}

	router := gin.New()

	// Global middleware
	router.Use(RequestIDMiddleware())
	router.Use(RecoveryMiddleware(log))
	router.Use(LoggerMiddleware(log))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/healthz", handler.HealthCheck)
	router.GET("/openapi.json", handler.OpenAPI)
	if metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(metricsHandler))
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		intent := v1.Group("/intent")
		{
			intent.POST("/parse", handler.ParseIntent)
		}
	}

	return router
}
