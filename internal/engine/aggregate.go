package engine

import (
	"math"

	"astrometers/internal/domain"
)

// AggregateResult holds the raw DTI/HQS sums and the driver aspect for a
// filtered aspect subset, per spec.md §4.6.
type AggregateResult struct {
	DTIRaw float64
	HQSRaw float64
	Driver *domain.DriverAspect
}

// Aggregate computes DTI_raw, HQS_raw, and the driver aspect for one
// meter's filtered aspect subset against a natal chart.
func Aggregate(aspects []domain.TransitAspect, natalChart *domain.NatalChart) AggregateResult {
	var result AggregateResult
	bestAbs := -1.0

	for _, a := range aspects {
		w := Weightage(a.NatalBody, natalChart)
		p := Power(a)
		q := Quality(a)

		result.DTIRaw += w * p
		result.HQSRaw += w * p * q

		contribution := w * p * q
		if abs := math.Abs(contribution); abs > bestAbs {
			bestAbs = abs
			result.Driver = &domain.DriverAspect{
				TransitBody:  a.TransitBody,
				NatalBody:    a.NatalBody,
				Kind:         a.Kind,
				OrbDeg:       a.OrbDeg,
				Contribution: contribution,
			}
		}
	}

	return result
}
