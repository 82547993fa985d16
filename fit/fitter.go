package fit

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-peakfit/gauss"
)

const (
	// stallLimit is how many consecutive all-frozen iterations are
	// tolerated before the fit is declared stuck.
	stallLimit = 3

	// maxBacktrack bounds the step halvings when a candidate step
	// increases the residual.
	maxBacktrack = 12

	// maxExpand bounds the step doublings when the quadratic model
	// undershoots.
	maxExpand = 16
)

// Status reports how a fit ended.
type Status int

const (
	StatusConverged Status = iota
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusConverged:
		return "converged"
	case StatusFailed:
		return "failed"
	}

	return "unknown"
}

// Reason identifies the stopping rule that fired.
type Reason int

const (
	ReasonTolerance Reason = iota
	ReasonAbsTolerance
	ReasonMaxIterations
	ReasonStalled
	ReasonNonFinite
	ReasonCanceled
)

func (r Reason) String() string {
	switch r {
	case ReasonTolerance:
		return "relative tolerance reached"
	case ReasonAbsTolerance:
		return "absolute tolerance reached"
	case ReasonMaxIterations:
		return "iteration cap reached"
	case ReasonStalled:
		return "all peaks degenerate"
	case ReasonNonFinite:
		return "non-finite residual"
	case ReasonCanceled:
		return "canceled"
	}

	return "unknown"
}

// Result holds the outcome of a fit. On failure it still carries the
// last-good parameter vector and the iteration count.
type Result struct {
	Params        []float64
	Peaks         []gauss.Peak
	Residual      float64
	Iterations    int
	Status        Status
	Reason        Reason
	PeakConverged []bool
}

// peakState carries one peak's independent conjugate-gradient
// subproblem across iterations.
type peakState struct {
	peak   gauss.Peak
	dir    gauss.Block
	frozen int // consecutive iterations without an accepted step

	// Per-iteration candidate, produced in parallel by prepare and
	// judged sequentially at the acceptance barrier.
	hv        gauss.Block
	alpha     float64
	stepI     float64
	stepMu    float64
	stepSigma float64
	usable    bool
	finite    bool
	accepted  bool
}

// Fitter runs the Hessian-free conjugate-gradient loop.
type Fitter struct {
	cfg Config
}

// New creates a Fitter. Zero-valued Config fields receive defaults:
// FDEpsilon=1e-5, Tolerance=1e-6, MaxIterations=200.
func New(cfg Config) *Fitter {
	return &Fitter{cfg: normalizeConfig(cfg)}
}

// Fit is a one-shot fit with the given configuration.
func Fit(ctx context.Context, x, y, initial []float64, cfg Config) (Result, error) {
	return New(cfg).Fit(ctx, x, y, initial)
}

// Fit refines the initial parameter vector to a local optimum of the
// squared-error objective. The initial vector is never mutated; each
// iteration replaces the working copy. The context is checked between
// iterations only ("stop after the current iteration").
func (f *Fitter) Fit(ctx context.Context, x, y, initial []float64) (Result, error) {
	cfg := f.cfg

	if err := cfg.validate(x, y, initial); err != nil {
		return Result{}, err
	}

	peaks, err := gauss.SplitParams(initial)
	if err != nil {
		return Result{}, ErrParamCount
	}

	n := len(x)
	synth := make([]float64, n)
	resid := make([]float64, n)

	states := make([]*peakState, len(peaks))
	for i, p := range peaks {
		states[i] = &peakState{peak: p}
	}

	gauss.Synthesize(synth, x, currentPeaks(states))
	for j := range resid {
		resid[j] = synth[j] - y[j]
	}

	errVal := sumSquares(resid)

	// Iteration 0 restart rule: direction = −gradient.
	for _, st := range states {
		g := objectiveGradient(x, st.peak, resid)
		st.dir = gauss.NewBlock(n)
		gauss.Scale(st.dir, g, -1)
	}

	var stallRun, nonFiniteRun int

	for iter := 0; iter < cfg.MaxIterations; iter++ {
		if err := ctx.Err(); err != nil {
			return f.result(states, errVal, iter, StatusFailed, ReasonCanceled), err
		}

		prevErr := errVal
		done := iter + 1

		// Per-peak subproblems are independent within one iteration;
		// evaluate them in parallel and join before the shared
		// acceptance and convergence check.
		grp, _ := errgroup.WithContext(ctx)
		grp.SetLimit(cfg.Workers)

		for _, st := range states {
			grp.Go(func() error {
				f.prepare(x, resid, st)
				return nil
			})
		}

		// Subproblems never return errors: failures stay per-peak.
		_ = grp.Wait()

		// Barrier: monotone acceptance, one peak at a time against
		// the shared residual. A rejected or degenerate peak keeps
		// its parameters, so the residual never increases.
		for _, st := range states {
			st.accepted = f.accept(x, y, st, synth, resid, &errVal)
			if st.accepted {
				st.frozen = 0
			} else {
				st.frozen++
			}
		}

		// Next conjugate directions from the updated residual.
		for _, st := range states {
			gNew := objectiveGradient(x, st.peak, resid)
			if !st.accepted || !st.finite {
				gauss.Scale(st.dir, gNew, -1)
				continue
			}

			beta := betaCoeff(gNew, st.hv, st.dir)
			st.dir = nextDirection(gNew, st.dir, beta)
		}

		if !isFinite(errVal) {
			nonFiniteRun++
			if nonFiniteRun >= 2 {
				return f.result(states, errVal, done, StatusFailed, ReasonNonFinite), ErrNonFinite
			}

			continue
		}

		nonFiniteRun = 0

		if cfg.AbsTolerance > 0 && errVal <= cfg.AbsTolerance {
			return f.result(states, errVal, done, StatusConverged, ReasonAbsTolerance), nil
		}

		if allFrozen(states) {
			stallRun++
			if stallRun >= stallLimit {
				if cfg.AbsTolerance > 0 {
					return f.result(states, errVal, done, StatusFailed, ReasonStalled), ErrStalled
				}

				return f.result(states, errVal, done, StatusConverged, ReasonTolerance), nil
			}

			continue
		}

		stallRun = 0

		relDrop := (prevErr - errVal) / math.Max(prevErr, math.SmallestNonzeroFloat64)
		if relDrop < cfg.Tolerance {
			return f.result(states, errVal, done, StatusConverged, ReasonTolerance), nil
		}
	}

	return f.result(states, errVal, cfg.MaxIterations, StatusConverged, ReasonMaxIterations), nil
}

// prepare runs one peak's line-search computation: gradient,
// Hessian-vector product, alpha, and the aggregated candidate step.
func (f *Fitter) prepare(x, resid []float64, st *peakState) {
	g := objectiveGradient(x, st.peak, resid)
	st.hv = hessianVector(x, resid, st.peak, st.dir, f.cfg.FDEpsilon)

	alpha, ok := alphaCoeff(g, st.hv, st.dir)
	st.alpha = alpha
	st.usable = ok

	vI, vMu, vSigma := gauss.ColumnMeans(st.dir)
	st.stepI = alpha * vI
	st.stepMu = alpha * vMu
	st.stepSigma = alpha * vSigma

	st.finite = isFinite(st.stepI) && isFinite(st.stepMu) && isFinite(st.stepSigma)
	if !st.finite {
		st.usable = false
	}
}

// accept judges one peak's candidate step against the shared residual.
// The step is scaled down while it increases the total error and
// extended while it keeps decreasing it; on success the shared synth
// and residual buffers are refreshed. Returns false when the peak must
// stay put for this iteration.
func (f *Fitter) accept(x, y []float64, st *peakState, synth, resid []float64, errVal *float64) bool {
	if !st.usable {
		return false
	}

	n := len(x)

	contrib := make([]float64, n)
	gauss.Evaluate(contrib, x, st.peak.Amplitude, st.peak.Center, st.peak.Width)

	others := make([]float64, n)
	for j := range others {
		others[j] = synth[j] - contrib[j]
	}

	buf := make([]float64, n)

	trialErr := func(p gauss.Peak) float64 {
		gauss.Evaluate(buf, x, p.Amplitude, p.Center, p.Width)

		var s float64
		for j := range buf {
			r := others[j] + buf[j] - y[j]
			s += r * r
		}

		return s
	}

	trial := func(factor float64) gauss.Peak {
		return gauss.Peak{
			Amplitude: st.peak.Amplitude + factor*st.stepI,
			Center:    st.peak.Center + factor*st.stepMu,
			Width:     st.peak.Width + factor*st.stepSigma,
		}
	}

	bestFactor := 0.0
	bestErr := *errVal

	var bestPeak gauss.Peak

	factor := 1.0
	for k := 0; k <= maxBacktrack; k++ {
		p := trial(factor)

		e := trialErr(p)
		if isFinite(e) && e < bestErr {
			bestFactor, bestErr, bestPeak = factor, e, p
			break
		}

		factor /= 2
	}

	if bestFactor == 0 {
		return false
	}

	if bestFactor == 1 {
		for k := 0; k < maxExpand; k++ {
			p := trial(bestFactor * 2)

			e := trialErr(p)
			if !isFinite(e) || e >= bestErr {
				break
			}

			bestFactor, bestErr, bestPeak = bestFactor*2, e, p
		}
	}

	st.peak = bestPeak
	*errVal = bestErr

	gauss.Evaluate(contrib, x, bestPeak.Amplitude, bestPeak.Center, bestPeak.Width)
	for j := range synth {
		synth[j] = others[j] + contrib[j]
		resid[j] = synth[j] - y[j]
	}

	return true
}

func (f *Fitter) result(states []*peakState, errVal float64, iterations int, status Status, reason Reason) Result {
	peaks := make([]gauss.Peak, len(states))
	conv := make([]bool, len(states))

	// A tolerance stop covers every peak; otherwise a peak counts as
	// converged when it was at rest in the final iteration.
	settled := status == StatusConverged &&
		(reason == ReasonTolerance || reason == ReasonAbsTolerance)

	for i, st := range states {
		peaks[i] = st.peak
		conv[i] = settled || st.frozen > 0
	}

	return Result{
		Params:        gauss.JoinParams(peaks),
		Peaks:         peaks,
		Residual:      errVal,
		Iterations:    iterations,
		Status:        status,
		Reason:        reason,
		PeakConverged: conv,
	}
}

func currentPeaks(states []*peakState) []gauss.Peak {
	peaks := make([]gauss.Peak, len(states))
	for i, st := range states {
		peaks[i] = st.peak
	}

	return peaks
}

func allFrozen(states []*peakState) bool {
	for _, st := range states {
		if st.usable {
			return false
		}
	}

	return true
}
