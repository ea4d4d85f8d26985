package engine

import "astrometers/internal/domain"

// FilterAspects returns the subset of aspects that pass a meter's filter,
// per spec.md §4.5.
func FilterAspects(aspects []domain.TransitAspect, filter domain.MeterFilter) []domain.TransitAspect {
	var out []domain.TransitAspect
	for _, a := range aspects {
		if filter.Matches(a) {
			out = append(out, a)
		}
	}
	return out
}
