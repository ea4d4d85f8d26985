package engine

import (
	"sort"

	"astrometers/internal/domain"
)

// PercentileRank returns the percentile rank of value within a sorted
// ascending sample array, in [0,100], using linear interpolation between
// neighboring samples. Values outside the historical range clamp to 0 or
// 100, per spec.md §4.7.
func PercentileRank(value float64, samples domain.PercentileTable) float64 {
	n := len(samples)
	if n == 0 {
		return 50
	}
	if value <= samples[0] {
		return 0
	}
	if value >= samples[n-1] {
		return 100
	}

	i := sort.SearchFloat64s(samples, value)
	// samples[i-1] <= value < samples[i]
	lo, hi := samples[i-1], samples[i]
	if hi == lo {
		return 100 * float64(i) / float64(n-1)
	}
	frac := (value - lo) / (hi - lo)
	rankLo := float64(i-1) / float64(n-1)
	rankHi := float64(i) / float64(n-1)
	return 100 * (rankLo + frac*(rankHi-rankLo))
}

// NormalizeResult carries the real-valued intensity/harmony before rounding
// for the API surface, per spec.md §4.7.
type NormalizeResult struct {
	Intensity float64
	Harmony   float64
}

// Normalize maps raw DTI/HQS to Intensity/Harmony via percentile lookup and
// applies per-meter ballast, per spec.md §4.7.
func Normalize(agg AggregateResult, cfg *domain.MeterConfig) NormalizeResult {
	intensityPct := PercentileRank(agg.DTIRaw, cfg.DTISamples)
	harmonyPct := PercentileRank(agg.HQSRaw, cfg.HQSSamples)

	effectiveWeight := intensityPct / (intensityPct + cfg.Ballast)
	harmony := 50 + (harmonyPct-50)*effectiveWeight

	return NormalizeResult{Intensity: intensityPct, Harmony: harmony}
}
