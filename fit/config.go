package fit

import "runtime"

const (
	defaultFDEpsilon     = 1e-5
	defaultTolerance     = 1e-6
	defaultMaxIterations = 200
)

// Config holds the fit parameters. Zero values receive defaults;
// explicitly negative values are configuration errors.
type Config struct {
	// Peaks is the number of Gaussian components. It determines how
	// the flat parameter vector is partitioned and must be positive.
	Peaks int

	// FDEpsilon is the step size of the finite-difference
	// Hessian-vector product. Too small and floating-point
	// cancellation dominates; too large and truncation bias creeps
	// in. Default 1e-5.
	FDEpsilon float64

	// Tolerance stops the fit once the relative residual decrease of
	// an iteration falls below it. Default 1e-6.
	Tolerance float64

	// AbsTolerance stops the fit once the total squared residual
	// drops to this value. Zero disables the absolute check.
	AbsTolerance float64

	// MaxIterations caps the iteration count. Default 200.
	MaxIterations int

	// Workers bounds the parallel per-peak evaluations within one
	// iteration. Default GOMAXPROCS.
	Workers int
}

func normalizeConfig(cfg Config) Config {
	if cfg.FDEpsilon == 0 {
		cfg.FDEpsilon = defaultFDEpsilon
	}

	if cfg.Tolerance == 0 {
		cfg.Tolerance = defaultTolerance
	}

	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = defaultMaxIterations
	}

	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}

	return cfg
}

// validate reports the first configuration error, before any
// computation is attempted.
func (cfg Config) validate(x, y, initial []float64) error {
	if cfg.Peaks <= 0 {
		return ErrNoPeaks
	}

	if len(initial)%3 != 0 || len(initial) != 3*cfg.Peaks {
		return ErrParamCount
	}

	if cfg.FDEpsilon <= 0 {
		return ErrBadEpsilon
	}

	if cfg.Tolerance <= 0 || cfg.AbsTolerance < 0 {
		return ErrBadTolerance
	}

	if len(x) == 0 || len(x) != len(y) {
		return ErrSampleMismatch
	}

	return nil
}
