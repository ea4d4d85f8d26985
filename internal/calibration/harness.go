package calibration

import (
	"context"
	"fmt"
	"time"

	"astrometers/internal/domain"
	"astrometers/internal/engine"
	"astrometers/internal/ephemeris"
	"astrometers/internal/logging"
	"astrometers/pkg/errors"
)

// DateRange is an inclusive span of calendar days, sampled once per day at
// Start's time of day — close enough for the slow-moving tiers this span exists to
// calibrate (spec.md §4.12 samples "daily", not at any particular hour).
type DateRange struct {
	Start, End time.Time
}

// Days enumerates every calendar day in the range, inclusive.
func (r DateRange) Days() []time.Time {
	var days []time.Time
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Harness runs the offline calibration job: evaluate the pre-normalization
// pipeline stages over a span of (chart, day) pairs, store the raw samples,
// and derive percentile tables + ballast per meter.
type Harness struct {
	store   *Store
	adapter *ephemeris.SwissEphemerisAdapter
	meters  []*domain.MeterConfig
	logger  *logging.Logger
}

// NewHarness wires a Harness from its dependencies.
func NewHarness(store *Store, adapter *ephemeris.SwissEphemerisAdapter, meters []*domain.MeterConfig, logger *logging.Logger) *Harness {
	return &Harness{store: store, adapter: adapter, meters: meters, logger: logger}
}

// BallastResult carries one meter's derived ballast after a Run, for an
// operator to fold back into that meter's JSON config.
type BallastResult struct {
	MeterID domain.MeterID
	Ballast float64
}

// Run evaluates the Aspect Power/Weightage/Quality/Filter/Aggregate stages
// (spec.md §4.1-4.6) once per (chart, day) in span, inserts the raw DTI/HQS
// samples, then rewrites each meter's percentile tables and recomputes its
// ballast as clamp(median(dti_raw)/2, 2, 20), per spec.md §4.12.
func (h *Harness) Run(ctx context.Context, charts []*domain.NatalChart, span DateRange) ([]BallastResult, error) {
	days := span.Days()

	for _, chart := range charts {
		chartHash := chart.Hash()

		for _, day := range days {
			if err := ctx.Err(); err != nil {
				return nil, errors.ErrCancelled
			}

			timeInfo := &domain.TimeInfo{UTCTime: day}
			aspects, err := h.adapter.TransitAspects(chart, ephemeris.TransitInstant{TimeInfo: timeInfo})
			if err != nil {
				return nil, err
			}

			dateStr := day.Format("2006-01-02")
			for _, cfg := range h.meters {
				filtered := engine.FilterAspects(aspects, cfg.Filter)
				agg := engine.Aggregate(filtered, chart)

				if err := h.store.InsertSample(cfg.ID.String(), chartHash, dateStr, agg.DTIRaw, agg.HQSRaw); err != nil {
					return nil, fmt.Errorf("calibration: inserting sample for %s: %w", cfg.ID, err)
				}
			}
		}

		h.logger.Info().
			Uint64("chart_hash", chartHash).
			Int("days", len(days)).
			Msg("calibration: chart span sampled")
	}

	results := make([]BallastResult, 0, len(h.meters))
	for _, cfg := range h.meters {
		dti, hqs, err := h.store.SampleSeries(cfg.ID.String())
		if err != nil {
			return nil, err
		}

		if err := h.store.ReplacePercentiles(cfg.ID.String(), "dti", dti); err != nil {
			return nil, err
		}
		if err := h.store.ReplacePercentiles(cfg.ID.String(), "hqs", hqs); err != nil {
			return nil, err
		}

		sortedDTI, err := h.store.LoadPercentiles(cfg.ID.String(), "dti")
		if err != nil {
			return nil, err
		}
		ballast := Clamp(Median(sortedDTI)/2, 2, 20)
		results = append(results, BallastResult{MeterID: cfg.ID, Ballast: ballast})
	}

	return results, nil
}

// VerifyResult reports the spec.md §8 acceptance properties computed over a
// single meter's stored samples.
type VerifyResult struct {
	MeterID                      domain.MeterID
	WithinGroupCorrelation       float64
	BetweenGroupCorrelation      float64
	MeanAbsCrossMeterCorrelation float64
	DayToDayAutocorrelation      float64
	AverageDailyDelta            float64 // normalized Harmony points, not raw HQS
	Passed                       bool
	Reasons                      []string
}

// Acceptance bounds from spec.md §8 ("Calibration acceptance"): mean
// absolute cross-meter correlation < 0.30; within-group mean |r| strictly
// greater than between-group mean |r|; per-meter day-to-day correlation in
// [0.20, 0.85]; average absolute daily delta in [5, 15] points.
const (
	maxMeanAbsCrossMeterCorrelation = 0.30
	minDayToDayAutocorrelation      = 0.20
	maxDayToDayAutocorrelation      = 0.85
	minAverageDailyDeltaPoints      = 5.0
	maxAverageDailyDeltaPoints      = 15.0
)

// ErrCalibrationRejected is returned by Verify when a meter's freshly
// computed tables fail the acceptance checks. Verify only reports the
// rejection: the percentile rows Run already wrote for that meter stay in
// the store, and nothing in this package removes them.
var ErrCalibrationRejected = errors.NewAstroError("CALIBRATION_REJECTED", "calibration tables failed acceptance checks", 500)

// Verify computes every spec.md §8 acceptance property for meterID: within-
// vs between-group correlation, mean absolute correlation against every
// other meter, day-to-day autocorrelation, and average daily movement
// (in normalized Harmony points) of its own series. A meter fails if any
// one of the four numeric targets is missed.
func (h *Harness) Verify(ctx context.Context, meterID domain.MeterID, allMeters []*domain.MeterConfig) (*VerifyResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.ErrCancelled
	}

	own, err := h.store.PairedHQS(meterID.String())
	if err != nil {
		return nil, err
	}

	var cfg *domain.MeterConfig
	for _, c := range allMeters {
		if c.ID == meterID {
			cfg = c
			break
		}
	}

	result := &VerifyResult{MeterID: meterID}
	result.WithinGroupCorrelation = h.averageCorrelation(meterID, own, allMeters, true)
	result.BetweenGroupCorrelation = h.averageCorrelation(meterID, own, allMeters, false)
	result.MeanAbsCrossMeterCorrelation = h.meanAbsCorrelation(meterID, own, allMeters)
	result.DayToDayAutocorrelation = h.autocorrelation(meterID)
	result.AverageDailyDelta = h.averageDailyDeltaPoints(meterID, cfg)

	result.Passed = true
	if result.WithinGroupCorrelation <= result.BetweenGroupCorrelation {
		result.Passed = false
		result.Reasons = append(result.Reasons, "within-group correlation does not exceed between-group correlation")
	}
	if result.MeanAbsCrossMeterCorrelation >= maxMeanAbsCrossMeterCorrelation {
		result.Passed = false
		result.Reasons = append(result.Reasons, "mean absolute cross-meter correlation is not below 0.30")
	}
	if result.DayToDayAutocorrelation < minDayToDayAutocorrelation || result.DayToDayAutocorrelation > maxDayToDayAutocorrelation {
		result.Passed = false
		result.Reasons = append(result.Reasons, "day-to-day correlation falls outside [0.20, 0.85]")
	}
	if result.AverageDailyDelta < minAverageDailyDeltaPoints || result.AverageDailyDelta > maxAverageDailyDeltaPoints {
		result.Passed = false
		result.Reasons = append(result.Reasons, "average daily delta falls outside [5, 15] points")
	}

	if !result.Passed {
		return result, ErrCalibrationRejected
	}
	return result, nil
}

func (h *Harness) averageCorrelation(meterID domain.MeterID, own map[string]float64, allMeters []*domain.MeterConfig, sameGroup bool) float64 {
	group := meterID.Group()

	var sum float64
	var count int
	for _, cfg := range allMeters {
		if cfg.ID == meterID {
			continue
		}
		if (cfg.Group == group) != sameGroup {
			continue
		}

		other, err := h.store.PairedHQS(cfg.ID.String())
		if err != nil {
			continue
		}

		var xs, ys []float64
		for key, v := range own {
			if ov, ok := other[key]; ok {
				xs = append(xs, v)
				ys = append(ys, ov)
			}
		}
		if len(xs) < 2 {
			continue
		}

		r := PearsonCorrelation(xs, ys)
		if r < 0 {
			r = -r
		}
		sum += r
		count++
	}

	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// meanAbsCorrelation averages |r| between meterID and every other meter,
// regardless of group, per spec.md §8's "mean absolute cross-meter
// correlation" target.
func (h *Harness) meanAbsCorrelation(meterID domain.MeterID, own map[string]float64, allMeters []*domain.MeterConfig) float64 {
	var sum float64
	var count int
	for _, cfg := range allMeters {
		if cfg.ID == meterID {
			continue
		}

		other, err := h.store.PairedHQS(cfg.ID.String())
		if err != nil {
			continue
		}

		var xs, ys []float64
		for key, v := range own {
			if ov, ok := other[key]; ok {
				xs = append(xs, v)
				ys = append(ys, ov)
			}
		}
		if len(xs) < 2 {
			continue
		}

		r := PearsonCorrelation(xs, ys)
		if r < 0 {
			r = -r
		}
		sum += r
		count++
	}

	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

func (h *Harness) autocorrelation(meterID domain.MeterID) float64 {
	_, hqs, err := h.store.SampleSeries(meterID.String())
	if err != nil || len(hqs) < 3 {
		return 0
	}
	return PearsonCorrelation(hqs[:len(hqs)-1], hqs[1:])
}

// averageDailyDeltaPoints computes the average absolute day-to-day movement
// of meterID's Harmony score, on the same normalized 0-100 "points" scale
// spec.md §8 names, using the meter's freshly replaced percentile tables
// rather than its raw HQS scale (which has no fixed range to compare
// against the [5, 15] target). If cfg is nil (meter unknown to the caller),
// returns 0.
func (h *Harness) averageDailyDeltaPoints(meterID domain.MeterID, cfg *domain.MeterConfig) float64 {
	if cfg == nil {
		return 0
	}

	dti, hqs, err := h.store.SampleSeries(meterID.String())
	if err != nil || len(dti) < 2 {
		return 0
	}

	dtiPct, err := h.store.LoadPercentiles(meterID.String(), "dti")
	if err != nil || len(dtiPct) == 0 {
		return 0
	}
	hqsPct, err := h.store.LoadPercentiles(meterID.String(), "hqs")
	if err != nil || len(hqsPct) == 0 {
		return 0
	}

	normCfg := &domain.MeterConfig{Ballast: cfg.Ballast, DTISamples: dtiPct, HQSSamples: hqsPct}
	points := make([]float64, len(dti))
	for i := range dti {
		norm := engine.Normalize(engine.AggregateResult{DTIRaw: dti[i], HQSRaw: hqs[i]}, normCfg)
		points[i] = norm.Harmony
	}

	var sum float64
	for i := 1; i < len(points); i++ {
		d := points[i] - points[i-1]
		if d < 0 {
			d = -d
		}
		sum += d
	}
	return sum / float64(len(points)-1)
}
