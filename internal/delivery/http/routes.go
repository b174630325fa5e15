package http

import (
	"github.com/gin-gonic/gin"
	"github.com/labstock/inventory/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))
	{
		items := v1.Group("/items")
		{
			items.POST("/extract-specs", handler.ExtractSpecs)
			items.POST("/check-duplicates", handler.CheckDuplicates)
		}

		locations := v1.Group("/locations")
		{
			locations.GET("/suggestions", handler.SuggestLocations)
		}
	}

	return router
}
