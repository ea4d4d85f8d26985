package calibration

import "math"

// PearsonCorrelation computes the Pearson product-moment correlation
// coefficient between two equal-length series. No statistics library
// appears anywhere in the example corpus for this kind of offline batch
// job, so it is hand-rolled directly against math, the same way small
// numeric helpers elsewhere in this codebase avoid pulling in a dependency
// for a dozen lines of arithmetic. Returns 0 for degenerate input (fewer
// than 2 points, or either series constant).
func PearsonCorrelation(xs, ys []float64) float64 {
	n := len(xs)
	if n != len(ys) || n < 2 {
		return 0
	}

	var sumX, sumY float64
	for i := 0; i < n; i++ {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var cov, varX, varY float64
	for i := 0; i < n; i++ {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}

	if varX == 0 || varY == 0 {
		return 0
	}

	return cov / math.Sqrt(varX*varY)
}

// Median returns the median of a sorted-ascending slice. Callers must sort
// first; this does not sort in place to avoid surprising a caller holding
// the slice elsewhere.
func Median(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// Clamp bounds x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
