package handlers

import (
	"net/http"
	"time"

	"astrometers/internal/logging"
	"astrometers/internal/service"
	astroerrors "astrometers/pkg/errors"

	"github.com/gin-gonic/gin"
)

// ReadingsHandler handles requests for a scored transit reading: a birth
// chart plus an instant, run through the full meter pipeline.
type ReadingsHandler struct {
	chartService *service.ChartService
	meterService *service.MeterService
	logger       *logging.Logger
}

// NewReadingsHandler wires a ReadingsHandler.
func NewReadingsHandler(chartService *service.ChartService, meterService *service.MeterService, logger *logging.Logger) *ReadingsHandler {
	return &ReadingsHandler{chartService: chartService, meterService: meterService, logger: logger}
}

// ReadingRequest combines birth data with the instant to score transits at.
type ReadingRequest struct {
	Day         int    `json:"day" binding:"required,min=1,max=31"`
	Month       int    `json:"month" binding:"required,min=1,max=12"`
	Year        int    `json:"year" binding:"required"`
	LocalTime   string `json:"local_time" binding:"required"`
	City        string `json:"city" binding:"required"`
	HouseSystem string `json:"house_system,omitempty"`
	Instant     string `json:"instant,omitempty"` // RFC3339; defaults to now
}

// HandleReadings handles POST /api/v1/readings.
func (rh *ReadingsHandler) HandleReadings(c *gin.Context) {
	var req ReadingRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		rh.logger.Error().
			Err(err).
			Str("endpoint", "readings").
			Msg("Invalid request body")

		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	instant := time.Now().UTC()
	if req.Instant != "" {
		parsed, err := time.Parse(time.RFC3339, req.Instant)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid instant",
				"details": err.Error(),
			})
			return
		}
		instant = parsed.UTC()
	}

	chart, err := rh.chartService.BuildEngineChart(&service.ChartRequest{
		Day:         req.Day,
		Month:       req.Month,
		Year:        req.Year,
		LocalTime:   req.LocalTime,
		City:        req.City,
		HouseSystem: req.HouseSystem,
	})
	if err != nil {
		rh.respondError(c, err, "Failed to build natal chart")
		return
	}

	output, err := rh.meterService.Evaluate(c.Request.Context(), chart, instant)
	if err != nil {
		rh.respondError(c, err, "Failed to evaluate meters")
		return
	}

	c.JSON(http.StatusOK, output)
}

func (rh *ReadingsHandler) respondError(c *gin.Context, err error, msg string) {
	status := astroerrors.GetHTTPStatus(err)

	rh.logger.Error().
		Err(err).
		Str("endpoint", "readings").
		Int("status", status).
		Msg(msg)

	c.JSON(status, gin.H{
		"error":   msg,
		"details": err.Error(),
	})
}
