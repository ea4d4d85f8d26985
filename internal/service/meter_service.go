package service

import (
	"context"
	"time"

	"astrometers/internal/domain"
	"astrometers/internal/engine"
	"astrometers/internal/ephemeris"
	"astrometers/internal/logging"
)

// MeterService is the orchestration layer over the scoring engine: given a
// natal chart and an instant, it resolves the transit aspects for that
// instant via the Ephemeris Adapter and runs the full pipeline.
type MeterService struct {
	adapter *ephemeris.SwissEphemerisAdapter
	meters  []*domain.MeterConfig
	logger  *logging.Logger
}

// NewMeterService wires a MeterService from its dependencies.
func NewMeterService(adapter *ephemeris.SwissEphemerisAdapter, meters []*domain.MeterConfig, logger *logging.Logger) *MeterService {
	return &MeterService{adapter: adapter, meters: meters, logger: logger}
}

// Evaluate runs the full scoring pipeline for chart at instant.
func (s *MeterService) Evaluate(ctx context.Context, chart *domain.NatalChart, instant time.Time) (*domain.EngineOutput, error) {
	timeInfo := &domain.TimeInfo{UTCTime: instant}

	aspects, err := s.adapter.TransitAspects(chart, ephemeris.TransitInstant{TimeInfo: timeInfo})
	if err != nil {
		return nil, err
	}

	s.logger.EngineLogger().
		Int("aspects_in_orb", len(aspects)).
		Int("meters", len(s.meters)).
		Time("instant", instant).
		Msg("evaluating meters")

	output, err := engine.Evaluate(ctx, aspects, chart, s.meters, engine.Options{
		DateOrdinal:   instant.Unix() / 86400,
		DitherEnabled: true,
	})
	if err != nil {
		return nil, err
	}

	output.GeneratedAt = instant
	return output, nil
}

// Meters returns the static meter registry, for the GET /api/v1/meters
// listing endpoint.
func (s *MeterService) Meters() []*domain.MeterConfig {
	return s.meters
}
