package engine

import (
	"context"
	"math"

	"astrometers/internal/domain"
	astroerrors "astrometers/pkg/errors"
)

// sanitizeAspects drops aspects that violate a documented invariant
// (negative orb, non-finite speed), per spec.md §7's OutOfRange handling:
// the offending aspect is dropped with a structured warning and the
// request continues.
func sanitizeAspects(aspects []domain.TransitAspect) ([]domain.TransitAspect, []domain.Diagnostic) {
	clean := make([]domain.TransitAspect, 0, len(aspects))
	var warnings []domain.Diagnostic

	for _, a := range aspects {
		if a.OrbDeg < 0 || math.IsNaN(a.OrbDeg) || math.IsInf(a.OrbDeg, 0) {
			warnings = append(warnings, domain.Diagnostic{
				Code:    "OUT_OF_RANGE",
				Message: "aspect orb is negative or non-finite",
				Field:   "orb_deg",
			})
			continue
		}
		if math.IsNaN(a.SpeedDegDay) || math.IsInf(a.SpeedDegDay, 0) {
			warnings = append(warnings, domain.Diagnostic{
				Code:    "OUT_OF_RANGE",
				Message: "transit speed is non-finite",
				Field:   "speed_deg_day",
			})
			continue
		}
		clean = append(clean, a)
	}

	return clean, warnings
}

// evaluateMeter runs one meter through Filter → Aggregator → Normalization
// → Dither → Unified, per spec.md's control flow (§2).
func evaluateMeter(
	aspects []domain.TransitAspect,
	natalChart *domain.NatalChart,
	cfg *domain.MeterConfig,
	chartHash uint64,
	dateOrdinal int64,
	ditherEnabled bool,
) domain.Reading {
	filtered := FilterAspects(aspects, cfg.Filter)
	agg := Aggregate(filtered, natalChart)
	norm := Normalize(agg, cfg)

	dither := 0.0
	if ditherEnabled {
		dither = Dither(chartHash, dateOrdinal, cfg.ID)
	}

	unified := UnifiedScore(norm.Intensity, norm.Harmony, dither)

	return domain.Reading{
		MeterID:   cfg.ID,
		Group:     cfg.Group,
		Intensity: int(math.Round(norm.Intensity)),
		Harmony:   int(math.Round(norm.Harmony)),
		Unified:   unified,
		Label:     domain.LabelForScore(unified, domain.GroupLabels[cfg.Group]),
		Driver:    agg.Driver,
	}
}

// Options controls a single Evaluate call.
type Options struct {
	// DateOrdinal seeds the per-day dither; callers must pass the same
	// ordinal for repeated calls on the same calendar day (spec.md §4.8).
	DateOrdinal int64
	// DitherEnabled toggles the dither stage; tests disable it to assert
	// the pre-dither neutral/bounds invariants from spec.md §8.
	DitherEnabled bool
}

// Evaluate runs the full pipeline for one (chart, instant) over the given
// meter configurations, producing the complete EngineOutput per spec.md
// §6. Meters are independent (spec.md §5: "meters may be evaluated in any
// order"); ctx is checked once per meter so a caller deadline is respected
// without leaving a partial Reading behind.
func Evaluate(
	ctx context.Context,
	aspects []domain.TransitAspect,
	natalChart *domain.NatalChart,
	meters []*domain.MeterConfig,
	opts Options,
) (*domain.EngineOutput, error) {
	clean, warnings := sanitizeAspects(aspects)
	chartHash := natalChart.Hash()

	readings := make([]domain.Reading, 0, len(meters))
	for _, cfg := range meters {
		if err := ctx.Err(); err != nil {
			return nil, astroerrors.ErrCancelled
		}
		readings = append(readings, evaluateMeter(clean, natalChart, cfg, chartHash, opts.DateOrdinal, opts.DitherEnabled))
	}

	groups := GroupScores(readings)
	overall := ClassifyPattern(groups)

	overallUnifiedSum := 0.0
	for _, g := range groups {
		overallUnifiedSum += g.Unified
	}
	overallUnified := roundTo(overallUnifiedSum/float64(len(groups)), 1)

	intensitySum, harmonySum := 0, 0
	for _, r := range readings {
		intensitySum += r.Intensity
		harmonySum += r.Harmony
	}

	overall.Unified = overallUnified
	overall.Intensity = intensitySum / len(readings)
	overall.Harmony = harmonySum / len(readings)
	overall.Label = domain.LabelForScore(overallUnified, domain.OverallLabels)

	return &domain.EngineOutput{
		Overall:  overall,
		Groups:   groups,
		Meters:   readings,
		Warnings: warnings,
	}, nil
}
