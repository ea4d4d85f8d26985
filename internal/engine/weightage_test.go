package engine

import (
	"testing"

	"astrometers/internal/domain"
)

func TestDignityBonusDomicile(t *testing.T) {
	if got := DignityBonus(domain.BodySun, "Leo"); got != 2 {
		t.Fatalf("expected +2 domicile bonus for Sun in Leo, got %v", got)
	}
}

func TestDignityBonusExaltation(t *testing.T) {
	if got := DignityBonus(domain.BodySun, "Aries"); got != 2 {
		t.Fatalf("expected +2 exaltation bonus for Sun in Aries, got %v", got)
	}
}

func TestDignityBonusFall(t *testing.T) {
	if got := DignityBonus(domain.BodySun, "Libra"); got != -2 {
		t.Fatalf("expected -2 fall penalty for Sun in Libra, got %v", got)
	}
}

func TestDignityBonusDetriment(t *testing.T) {
	if got := DignityBonus(domain.BodySun, "Aquarius"); got != -2 {
		t.Fatalf("expected -2 detriment penalty for Sun in Aquarius, got %v", got)
	}
}

func TestDignityBonusNeutral(t *testing.T) {
	if got := DignityBonus(domain.BodySun, "Gemini"); got != 0 {
		t.Fatalf("expected 0 for Sun in a neutral sign, got %v", got)
	}
}

func TestHouseMultiplierAngularIsHighest(t *testing.T) {
	if HouseMultiplier(1) <= HouseMultiplier(2) || HouseMultiplier(2) <= HouseMultiplier(3) {
		t.Fatalf("expected angular > succedent > cadent multipliers, got %v/%v/%v",
			HouseMultiplier(1), HouseMultiplier(2), HouseMultiplier(3))
	}
}

func TestWeightageUnplacedBodyIsZero(t *testing.T) {
	chart := domain.NewNatalChart()
	if got := Weightage(domain.BodySun, chart); got != 0 {
		t.Fatalf("expected 0 weightage for unplaced body, got %v", got)
	}
}

func TestWeightageChartRulerBonusApplies(t *testing.T) {
	chart := domain.NewNatalChart()
	chart.Set(domain.BodyAsc, 10, 1) // Aries ascendant, ruled by Mars
	chart.Set(domain.BodyMars, 40, 4)

	withRuler := Weightage(domain.BodyMars, chart)

	otherChart := domain.NewNatalChart()
	otherChart.Set(domain.BodyAsc, 100, 1) // Cancer ascendant, ruled by Moon
	otherChart.Set(domain.BodyMars, 40, 4)
	withoutRuler := Weightage(domain.BodyMars, otherChart)

	if withRuler <= withoutRuler {
		t.Fatalf("expected chart-ruler bonus to raise weightage: with=%v without=%v", withRuler, withoutRuler)
	}
}
