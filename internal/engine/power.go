package engine

import (
	"math"

	"astrometers/internal/domain"
)

// Power computes the Transit Power P of a single aspect, per spec.md §4.2.
func Power(a domain.TransitAspect) float64 {
	speed := math.Abs(a.SpeedDegDay)
	if speed < SpeedFloorDegPerDay {
		speed = SpeedFloorDegPerDay
	}

	tier := TierOf(a.TransitBody)
	windowDays := TierWindowDays[tier]
	sigmaDays := windowDays / SigmaDivisor

	deviationDays := a.OrbDeg / speed
	intensityRaw := math.Exp(-(deviationDays * deviationDays) / (2 * sigmaDays * sigmaDays))

	return intensityRaw * TierWeight[a.TransitBody] * AspectModifier[a.Kind]
}
