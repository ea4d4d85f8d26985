package engine

import "testing"

func TestClamp(t *testing.T) {
	if Clamp(-5, 0, 100) != 0 {
		t.Fatal("expected clamp to floor at lo")
	}
	if Clamp(150, 0, 100) != 100 {
		t.Fatal("expected clamp to ceiling at hi")
	}
	if Clamp(50, 0, 100) != 50 {
		t.Fatal("expected clamp to pass through in-range values")
	}
}

func TestUnifiedScoreStaysWithinBounds(t *testing.T) {
	for _, intensity := range []float64{0, 25, 50, 75, 100} {
		for _, harmony := range []float64{0, 25, 50, 75, 100} {
			for _, dither := range []float64{-8, 0, 8} {
				score := UnifiedScore(intensity, harmony, dither)
				if score < 0 || score > 100 {
					t.Fatalf("unified score out of [0,100]: intensity=%v harmony=%v dither=%v score=%v",
						intensity, harmony, dither, score)
				}
			}
		}
	}
}

func TestUnifiedScoreNeutralInputsAreNeutralOutput(t *testing.T) {
	score := UnifiedScore(0, 50, 0)
	if score != 50 {
		t.Fatalf("expected zero intensity/neutral harmony/no dither to land at 50, got %v", score)
	}
}

func TestUnifiedScoreHighHarmonyBeatsLowHarmony(t *testing.T) {
	low := UnifiedScore(80, 20, 0)
	high := UnifiedScore(80, 80, 0)
	if high <= low {
		t.Fatalf("expected higher harmony to produce a higher unified score at equal intensity: low=%v high=%v", low, high)
	}
}
