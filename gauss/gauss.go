package gauss

import "math"

// epsilon regularizes every denominator that vanishes as sigma -> 0.
const epsilon = 1e-11

var sqrt2Pi = math.Sqrt(2 * math.Pi)

// Evaluate computes a single Gaussian at every sample position:
//
//	dst[j] = |amp| / (√(2π)·width + ε) · exp(−(x[j]−center)² / (2·width² + ε))
//
// dst and x must have equal length.
func Evaluate(dst, x []float64, amp, center, width float64) {
	for j, xj := range x {
		dst[j] = evalAt(xj, amp, center, width)
	}
}

// PartialI computes ∂y/∂amp at every sample position. The model uses
// |amp|, so the derivative carries sign(amp) rather than the magnitude.
func PartialI(dst, x []float64, amp, center, width float64) {
	for j, xj := range x {
		dst[j] = partialIAt(xj, amp, center, width)
	}
}

// PartialMu computes ∂y/∂center at every sample position.
func PartialMu(dst, x []float64, amp, center, width float64) {
	for j, xj := range x {
		dst[j] = partialMuAt(xj, amp, center, width)
	}
}

// PartialSigma computes ∂y/∂width at every sample position.
func PartialSigma(dst, x []float64, amp, center, width float64) {
	for j, xj := range x {
		dst[j] = partialSigmaAt(xj, amp, center, width)
	}
}

func evalAt(x, amp, center, width float64) float64 {
	d := x - center
	return math.Abs(amp) / (sqrt2Pi*width + epsilon) *
		math.Exp(-d*d/(2*width*width+epsilon))
}

func partialIAt(x, amp, center, width float64) float64 {
	d := x - center
	return sign(amp) / (sqrt2Pi*width + epsilon) *
		math.Exp(-d*d/(2*width*width+epsilon))
}

func partialMuAt(x, amp, center, width float64) float64 {
	d := x - center
	return amp * d / (sqrt2Pi*width*width*width + epsilon) *
		math.Exp(-d*d/(2*width*width+epsilon))
}

func partialSigmaAt(x, amp, center, width float64) float64 {
	d := x - center
	return amp * (d*d/(width*width+epsilon) - 1) / (sqrt2Pi*width*width + epsilon) *
		math.Exp(-d*d/(2*width*width+epsilon))
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}

	return 0
}
