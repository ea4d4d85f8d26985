package engine

import (
	"testing"

	"astrometers/internal/domain"
)

func TestPercentileRankBoundaries(t *testing.T) {
	samples := domain.PercentileTable{1, 2, 3, 4, 5}
	if got := PercentileRank(0, samples); got != 0 {
		t.Fatalf("expected 0 below range, got %v", got)
	}
	if got := PercentileRank(10, samples); got != 100 {
		t.Fatalf("expected 100 above range, got %v", got)
	}
	if got := PercentileRank(3, samples); got != 50 {
		t.Fatalf("expected 50 for median sample, got %v", got)
	}
}

func TestPercentileRankEmptyTableIsNeutral(t *testing.T) {
	if got := PercentileRank(42, domain.PercentileTable{}); got != 50 {
		t.Fatalf("expected neutral 50 for an empty percentile table, got %v", got)
	}
}

func TestPercentileRankInterpolates(t *testing.T) {
	samples := domain.PercentileTable{0, 10}
	got := PercentileRank(5, samples)
	if got <= 0 || got >= 100 {
		t.Fatalf("expected interpolated rank strictly between 0 and 100, got %v", got)
	}
}

func TestNormalizeHarmonyStaysCenteredAtZeroHQS(t *testing.T) {
	cfg := &domain.MeterConfig{
		Ballast:    10,
		DTISamples: domain.PercentileTable{0, 5, 10},
		HQSSamples: domain.PercentileTable{-10, 0, 10},
	}
	agg := AggregateResult{DTIRaw: 5, HQSRaw: 0}
	norm := Normalize(agg, cfg)
	if norm.Harmony < 49 || norm.Harmony > 51 {
		t.Fatalf("expected harmony near 50 at the historical median HQS, got %v", norm.Harmony)
	}
}

// TestNormalizeBallastDampensHarmony checks spec.md §8's ballast-effect
// property: a higher ballast pulls Harmony closer to the neutral midpoint
// for the same raw inputs.
func TestNormalizeBallastDampensHarmony(t *testing.T) {
	dtiSamples := domain.PercentileTable{0, 5, 10}
	hqsSamples := domain.PercentileTable{-10, 0, 10}
	agg := AggregateResult{DTIRaw: 10, HQSRaw: 10}

	lowBallast := Normalize(agg, &domain.MeterConfig{Ballast: 1, DTISamples: dtiSamples, HQSSamples: hqsSamples})
	highBallast := Normalize(agg, &domain.MeterConfig{Ballast: 50, DTISamples: dtiSamples, HQSSamples: hqsSamples})

	lowDeviation := lowBallast.Harmony - 50
	highDeviation := highBallast.Harmony - 50
	if highDeviation > lowDeviation {
		t.Fatalf("expected higher ballast to dampen harmony deviation: low=%v high=%v", lowDeviation, highDeviation)
	}
}
