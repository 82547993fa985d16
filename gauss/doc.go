// Package gauss provides the Gaussian peak model used for fitting
// measured one-dimensional spectra (infrared absorbance, mineral
// reflectance) as additive mixtures of Gaussian components.
//
// A single peak with amplitude I, center μ and width σ contributes
//
//	y(x) = |I| / (√(2π)·σ + ε) · exp(−(x−μ)² / (2σ² + ε))
//
// at every sample position x. The small constant ε regularizes every
// denominator that vanishes as σ → 0, so evaluation stays finite for
// any parameter vector. This is a numerical-stability policy, not an
// approximation: callers never need to special-case degenerate widths.
//
// Alongside the model the package exposes its three analytic partial
// derivatives (∂y/∂I, ∂y/∂μ, ∂y/∂σ) and the Block type, a per-peak
// (samples × 3) matrix holding one partial per column. Gradient
// blocks, conjugate search directions and Hessian-vector products in
// package fit all share this shape, which is what allows the row-wise
// reductions (Dot) that collapse two blocks into a per-sample scalar.
//
// All evaluation functions are pure and vectorized over the sample
// positions.
package gauss
