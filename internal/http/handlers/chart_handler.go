package handlers

import (
	"net/http"

	"astrometers/internal/logging"
	"astrometers/internal/service"

	"github.com/gin-gonic/gin"
)

// ChartHandler handles natal chart display requests
type ChartHandler struct {
	chartService *service.ChartService
	logger       *logging.Logger
}

// NewChartHandler creates a new chart handler
func NewChartHandler(chartService *service.ChartService, logger *logging.Logger) *ChartHandler {
	return &ChartHandler{chartService: chartService, logger: logger}
}

// HandleChart handles POST /api/v1/chart
func (ch *ChartHandler) HandleChart(c *gin.Context) {
	var req service.ChartRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		ch.logger.Error().
			Err(err).
			Str("endpoint", "chart").
			Msg("Invalid request body")

		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	chart, err := ch.chartService.CalculateChart(&req)
	if err != nil {
		ch.logger.Error().
			Err(err).
			Str("endpoint", "chart").
			Str("city", req.City).
			Msg("Failed to calculate natal chart")

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to calculate natal chart",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, chart)
}

// GetSupportedHouseSystems handles GET /api/v1/house-systems
func (ch *ChartHandler) GetSupportedHouseSystems(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"house_systems": ch.chartService.GetSupportedHouseSystems(),
		"default":       "Placidus",
	})
}
