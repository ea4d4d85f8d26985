package engine

import (
	"context"
	"testing"

	"astrometers/internal/domain"
	astroerrors "astrometers/pkg/errors"
)

func sampleMeters() []*domain.MeterConfig {
	return []*domain.MeterConfig{
		{
			ID:         domain.MeterClarity,
			Group:      domain.MeterClarity.Group(),
			Filter:     domain.MeterFilter{},
			Ballast:    10,
			DTISamples: domain.PercentileTable{0, 5, 10, 20, 40},
			HQSSamples: domain.PercentileTable{-10, -5, 0, 5, 10},
		},
		{
			ID:         domain.MeterBattery,
			Group:      domain.MeterBattery.Group(),
			Filter:     domain.MeterFilter{},
			Ballast:    10,
			DTISamples: domain.PercentileTable{0, 5, 10, 20, 40},
			HQSSamples: domain.PercentileTable{-10, -5, 0, 5, 10},
		},
	}
}

func sampleChart() *domain.NatalChart {
	c := domain.NewNatalChart()
	for i, id := range domain.NatalBodyIDs {
		c.Set(id, float64(i)*23.7, i%12+1)
	}
	c.Set(domain.BodyAsc, 15, 1)
	c.Set(domain.BodyIC, 105, 4)
	c.Set(domain.BodyDsc, 195, 7)
	c.Set(domain.BodyMC, 285, 10)
	return c
}

func sampleAspects() []domain.TransitAspect {
	return []domain.TransitAspect{
		{NatalBody: domain.BodySun, TransitBody: domain.BodyJupiter, Kind: domain.AspectTrine, OrbDeg: 1.2, SpeedDegDay: 0.08},
		{NatalBody: domain.BodyMoon, TransitBody: domain.BodySaturn, Kind: domain.AspectSquare, OrbDeg: 0.4, SpeedDegDay: 0.03},
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	chart := sampleChart()
	meters := sampleMeters()
	opts := Options{DateOrdinal: 19000, DitherEnabled: true}

	a, err := Evaluate(context.Background(), sampleAspects(), chart, meters, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Evaluate(context.Background(), sampleAspects(), chart, meters, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if a.Overall.Unified != b.Overall.Unified {
		t.Fatalf("overall unified not deterministic: %v != %v", a.Overall.Unified, b.Overall.Unified)
	}
	for i := range a.Meters {
		if a.Meters[i].Unified != b.Meters[i].Unified {
			t.Fatalf("meter %v not deterministic: %v != %v", a.Meters[i].MeterID, a.Meters[i].Unified, b.Meters[i].Unified)
		}
	}
}

func TestEvaluateBoundsHold(t *testing.T) {
	chart := sampleChart()
	out, err := Evaluate(context.Background(), sampleAspects(), chart, sampleMeters(), Options{DateOrdinal: 1, DitherEnabled: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Overall.Unified < 0 || out.Overall.Unified > 100 {
		t.Fatalf("overall unified out of bounds: %v", out.Overall.Unified)
	}
	for _, r := range out.Meters {
		if r.Unified < 0 || r.Unified > 100 {
			t.Fatalf("meter %v unified out of bounds: %v", r.MeterID, r.Unified)
		}
		if r.Intensity < 0 || r.Intensity > 100 || r.Harmony < 0 || r.Harmony > 100 {
			t.Fatalf("meter %v intensity/harmony out of bounds: %+v", r.MeterID, r)
		}
	}
}

// TestEvaluateEmptyAspectsIsNeutral checks spec.md §8's neutral-empty-set
// property: with no transit aspects at all, every meter reads intensity 0,
// harmony 50 and unified 50, with no driver aspect.
func TestEvaluateEmptyAspectsIsNeutral(t *testing.T) {
	chart := sampleChart()
	out, err := Evaluate(context.Background(), nil, chart, sampleMeters(), Options{DateOrdinal: 1, DitherEnabled: false})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, r := range out.Meters {
		if r.Driver != nil {
			t.Fatalf("expected no driver aspect for meter %v with no aspects, got %+v", r.MeterID, r.Driver)
		}
		if r.Unified != 50 {
			t.Fatalf("expected neutral unified score of 50 for meter %v, got %v", r.MeterID, r.Unified)
		}
	}
}

func TestEvaluateSanitizesOutOfRangeAspects(t *testing.T) {
	chart := sampleChart()
	aspects := []domain.TransitAspect{
		{NatalBody: domain.BodySun, TransitBody: domain.BodyMars, Kind: domain.AspectSquare, OrbDeg: -1, SpeedDegDay: 0.5},
	}
	out, err := Evaluate(context.Background(), aspects, chart, sampleMeters(), Options{DateOrdinal: 1, DitherEnabled: false})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Warnings) != 1 {
		t.Fatalf("expected exactly one warning for the negative-orb aspect, got %d", len(out.Warnings))
	}
	if out.Warnings[0].Code != "OUT_OF_RANGE" {
		t.Fatalf("expected OUT_OF_RANGE warning code, got %s", out.Warnings[0].Code)
	}
}

func TestEvaluateRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Evaluate(ctx, sampleAspects(), sampleChart(), sampleMeters(), Options{DateOrdinal: 1})
	if err != astroerrors.ErrCancelled {
		t.Fatalf("expected astroerrors.ErrCancelled, got %v", err)
	}
}

func TestEvaluateDitherDisabledIsReproducibleAcrossOrdinals(t *testing.T) {
	chart := sampleChart()
	aspects := sampleAspects()
	meters := sampleMeters()

	a, err := Evaluate(context.Background(), aspects, chart, meters, Options{DateOrdinal: 1, DitherEnabled: false})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Evaluate(context.Background(), aspects, chart, meters, Options{DateOrdinal: 2, DitherEnabled: false})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Overall.Unified != b.Overall.Unified {
		t.Fatalf("expected identical output across date ordinals with dither disabled: %v != %v", a.Overall.Unified, b.Overall.Unified)
	}
}
