package http

import (
	"net/http"
	"time"

	"astrometers/internal/http/handlers"
	"astrometers/internal/logging"
	"astrometers/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(
	router *gin.Engine,
	chartService *service.ChartService,
	meterService *service.MeterService,
	logger *logging.Logger,
) {
	// Add logging middleware
	router.Use(loggingMiddleware(logger))

	// Add CORS middleware
	router.Use(corsMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API versioning group
	v1 := router.Group("/api/v1")
	{
		// Create handlers
		chartHandler := handlers.NewChartHandler(chartService, logger)
		readingsHandler := handlers.NewReadingsHandler(chartService, meterService, logger)
		metersHandler := handlers.NewMetersHandler(meterService, logger)

		// Natal chart display endpoints
		v1.POST("/chart", chartHandler.HandleChart)

		// Scored transit reading endpoints
		v1.POST("/readings", readingsHandler.HandleReadings)

		// Meter registry endpoints
		v1.GET("/meters", metersHandler.HandleList)

		// Utility endpoints
		v1.GET("/house-systems", chartHandler.GetSupportedHouseSystems)
	}
}

// loggingMiddleware adds request logging
func loggingMiddleware(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		// Process request
		c.Next()

		// Log request details
		logger.RequestLogger().
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Str("ip", c.ClientIP()).
			Msg("HTTP Request")
	}
}

// corsMiddleware adds CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
