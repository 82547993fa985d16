package fit

import (
	"math"

	"github.com/cwbudde/algo-peakfit/gauss"
)

// curvatureGuard protects the alpha and beta denominators. A curvature
// estimate this close to zero signals a flat or saddle direction; the
// peak is frozen for the iteration ("do not move") instead of failing.
const curvatureGuard = 1e-11

// alphaCoeff computes the line-search coefficient along dir from the
// per-sample reductions of the gradient and Hessian-vector blocks:
//
//	alpha = − Σ_j dir_j·g_j / Σ_j dir_j·Hv_j
//
// The per-sample dot-product vectors are aggregated by summing the
// numerator and denominator before the division (ratio of sums); this
// is the fixed aggregation convention for the whole driver. The
// second return is false when the curvature collapsed or a value went
// non-finite, and the step must be skipped.
func alphaCoeff(g, hv, dir gauss.Block) (float64, bool) {
	n := dir.Len()
	dots := make([]float64, n)

	gauss.Dot(dots, dir, g)
	num := sum(dots)

	gauss.Dot(dots, dir, hv)
	den := sum(dots)

	if !isFinite(num) || !isFinite(den) || math.Abs(den) < curvatureGuard {
		return 0, false
	}

	a := -num / den
	if !isFinite(a) {
		return 0, false
	}

	return a, true
}

// betaCoeff computes the Hestenes–Stiefel-style conjugate coefficient
// from the new gradient and the Hessian-vector product already
// computed for alpha:
//
//	beta = Σ_j g'_j·Hv_j / Σ_j dir_j·Hv_j
//
// Negative or non-finite values restart the direction (beta = 0).
func betaCoeff(gNew, hv, dir gauss.Block) float64 {
	n := dir.Len()
	dots := make([]float64, n)

	gauss.Dot(dots, gNew, hv)
	num := sum(dots)

	gauss.Dot(dots, dir, hv)
	den := sum(dots)

	if !isFinite(num) || !isFinite(den) || math.Abs(den) < curvatureGuard {
		return 0
	}

	b := num / den
	if !isFinite(b) || b < 0 {
		return 0
	}

	return b
}

// nextDirection forms the conjugate direction −g' + beta·dir.
func nextDirection(gNew, dir gauss.Block, beta float64) gauss.Block {
	next := gauss.NewBlock(gNew.Len())

	gauss.Scale(next, dir, beta)
	gauss.Sub(next, next, gNew)

	return next
}

func sum(v []float64) float64 {
	var s float64
	for _, x := range v {
		s += x
	}

	return s
}

func sumSquares(v []float64) float64 {
	var s float64
	for _, x := range v {
		s += x * x
	}

	return s
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
