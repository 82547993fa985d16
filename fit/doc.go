// Package fit implements a Hessian-free nonlinear conjugate-gradient
// optimizer for multi-Gaussian spectra.
//
// Given observed (x, y) samples and an initial parameter vector of
// (amplitude, center, width) triples, Fit refines the parameters to a
// local minimum of the sum of squared residuals between the
// synthesized multi-peak curve and the data. Second-order information
// is never formed explicitly: curvature along the current search
// direction is approximated by a forward finite difference of the
// analytic gradient (a Hessian-vector product), so the cost per
// iteration stays linear in the number of samples.
//
// Each peak is optimized as an independent three-parameter subproblem
// with its own gradient block, search direction and curvature
// estimate; the additive model couples peaks only through the shared
// residual. Subproblems within one iteration run in parallel and join
// at a barrier before the convergence check. A candidate step is
// accepted only if it does not increase the total residual, which
// keeps the residual monotonically non-increasing across iterations.
//
// Typical use:
//
//	res, err := fit.Fit(ctx, x, y, initial, fit.Config{Peaks: 2})
//	if err != nil {
//	    // configuration error or global numerical failure
//	}
//	fmt.Println(res.Peaks, res.Residual, res.Iterations)
//
// Numerical degeneracy (a flat or saddle direction) freezes the
// affected peak for the iteration instead of failing; the fit only
// fails globally when every peak degenerates at once, and even then
// the result carries the last-good parameter vector.
package fit
