package fit

import (
	"github.com/cwbudde/algo-peakfit/gauss"
)

// objectiveGradient returns one peak's residual-weighted gradient
// block: row j holds r_j · (∂y_j/∂I, ∂y_j/∂μ, ∂y_j/∂σ), the
// per-sample gradient of half the squared-error objective.
func objectiveGradient(x []float64, p gauss.Peak, resid []float64) gauss.Block {
	g := gauss.Gradient(x, p)
	gauss.RowScale(g, g, resid)

	return g
}

// hessianVector approximates the curvature of one peak's objective
// gradient along dir without forming a Hessian:
//
//	Hv ≈ (g(θ + ε·dir) − g(θ)) / ε
//
// The perturbed gradient offsets the peak's three parameters per
// sample by ε times the matching direction column, and re-weights
// with the residual the perturbed peak would produce. A zero
// direction yields an exactly zero block for any ε > 0.
func hessianVector(x, resid []float64, p gauss.Peak, dir gauss.Block, eps float64) gauss.Block {
	n := len(x)

	scaled := gauss.NewBlock(n)
	gauss.Scale(scaled, dir, eps)

	base := make([]float64, n)
	gauss.Evaluate(base, x, p.Amplitude, p.Center, p.Width)

	pert := make([]float64, n)
	gauss.EvaluatePerturbed(pert, x, p, scaled)

	jac := gauss.Gradient(x, p)
	jacPert := gauss.GradientPerturbed(x, p, scaled)

	hv := gauss.NewBlock(n)
	inv := 1 / eps

	for j := 0; j < n; j++ {
		// Residual under the perturbed peak: the other peaks'
		// contributions are unchanged.
		rp := resid[j] - base[j] + pert[j]

		hv.I[j] = (rp*jacPert.I[j] - resid[j]*jac.I[j]) * inv
		hv.Mu[j] = (rp*jacPert.Mu[j] - resid[j]*jac.Mu[j]) * inv
		hv.Sigma[j] = (rp*jacPert.Sigma[j] - resid[j]*jac.Sigma[j]) * inv
	}

	return hv
}
