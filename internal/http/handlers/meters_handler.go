package handlers

import (
	"net/http"

	"astrometers/internal/logging"
	"astrometers/internal/service"

	"github.com/gin-gonic/gin"
)

// MetersHandler exposes the static meter registry.
type MetersHandler struct {
	meterService *service.MeterService
	logger       *logging.Logger
}

// NewMetersHandler wires a MetersHandler.
func NewMetersHandler(meterService *service.MeterService, logger *logging.Logger) *MetersHandler {
	return &MetersHandler{meterService: meterService, logger: logger}
}

// meterSummary is the list-endpoint projection of a meter's config: enough
// to let a client discover what meters exist without shipping calibration
// tables over the wire.
type meterSummary struct {
	ID      string  `json:"id"`
	Group   string  `json:"group"`
	Ballast float64 `json:"ballast"`
}

// HandleList handles GET /api/v1/meters.
func (mh *MetersHandler) HandleList(c *gin.Context) {
	meters := mh.meterService.Meters()
	summaries := make([]meterSummary, 0, len(meters))
	for _, m := range meters {
		summaries = append(summaries, meterSummary{
			ID:      m.ID.String(),
			Group:   m.Group.String(),
			Ballast: m.Ballast,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"meters": summaries,
		"count":  len(summaries),
	})
}
