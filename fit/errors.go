package fit

import "errors"

// Configuration errors, detected before any computation starts.
var (
	ErrNoPeaks        = errors.New("fit: peak count must be positive")
	ErrParamCount     = errors.New("fit: parameter vector length must be 3 × peak count")
	ErrBadEpsilon     = errors.New("fit: finite-difference epsilon must be positive")
	ErrBadTolerance   = errors.New("fit: tolerances must be positive")
	ErrSampleMismatch = errors.New("fit: x and y must be non-empty and equally long")
)

// Global numerical failures. Per-peak degeneracy is recovered locally;
// these are returned only when every peak fails in the same iteration.
var (
	ErrStalled   = errors.New("fit: all peaks degenerate, optimizer is stuck")
	ErrNonFinite = errors.New("fit: all peak updates became non-finite")
)
