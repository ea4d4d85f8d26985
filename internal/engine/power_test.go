package engine

import (
	"math"
	"testing"

	"astrometers/internal/domain"
)

func TestPowerExactHitIsMaximal(t *testing.T) {
	exact := domain.TransitAspect{
		TransitBody: domain.BodySaturn,
		NatalBody:   domain.BodySun,
		Kind:        domain.AspectSquare,
		OrbDeg:      0,
		SpeedDegDay: 0.1,
	}
	wide := exact
	wide.OrbDeg = 3

	if p, max := Power(exact), TierWeight[domain.BodySaturn]*AspectModifier[domain.AspectSquare]; math.Abs(p-max) > 1e-9 {
		t.Fatalf("expected exact aspect power %v, got %v", max, p)
	}
	if Power(wide) >= Power(exact) {
		t.Fatalf("wider orb should decay power: wide=%v exact=%v", Power(wide), Power(exact))
	}
}

// TestPowerTighteningIsMonotonic checks spec.md §8's tightening-monotonicity
// property: narrowing the orb never decreases Power.
func TestPowerTighteningIsMonotonic(t *testing.T) {
	base := domain.TransitAspect{
		TransitBody: domain.BodyJupiter,
		NatalBody:   domain.BodyMoon,
		Kind:        domain.AspectTrine,
		SpeedDegDay: 0.05,
	}
	prev := math.Inf(-1)
	for _, orb := range []float64{5, 4, 3, 2, 1, 0.5, 0} {
		a := base
		a.OrbDeg = orb
		p := Power(a)
		if p < prev-1e-12 {
			t.Fatalf("power decreased while tightening orb: orb=%v power=%v prev=%v", orb, p, prev)
		}
		prev = p
	}
}

func TestPowerSpeedFloorPreventsBlowup(t *testing.T) {
	stationary := domain.TransitAspect{
		TransitBody: domain.BodyMercury,
		NatalBody:   domain.BodyVenus,
		Kind:        domain.AspectConjunction,
		OrbDeg:      1,
		SpeedDegDay: 0,
	}
	p := Power(stationary)
	if math.IsNaN(p) || math.IsInf(p, 0) {
		t.Fatalf("expected finite power at zero speed, got %v", p)
	}
}

func TestPowerIsNonNegative(t *testing.T) {
	for _, body := range []domain.BodyID{domain.BodyMoon, domain.BodySun, domain.BodyPluto} {
		for _, kind := range domain.AllAspectKinds() {
			a := domain.TransitAspect{TransitBody: body, NatalBody: domain.BodyMars, Kind: kind, OrbDeg: 2, SpeedDegDay: 0.3}
			if Power(a) < 0 {
				t.Fatalf("power went negative for %v/%v", body, kind)
			}
		}
	}
}
