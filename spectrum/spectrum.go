package spectrum

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

const (
	defaultCutoff         = 0.1
	defaultBaselineCutoff = 0.01
)

// Errors returned by spectrum conditioning functions.
var (
	ErrEmptySignal = errors.New("spectrum: signal is empty")
	ErrBadCutoff   = errors.New("spectrum: cutoff must be in (0, 1]")
)

// Config holds conditioning parameters. Zero values receive defaults.
type Config struct {
	// Cutoff of the smoothing low-pass as a fraction of Nyquist.
	// Default 0.1.
	Cutoff float64

	// BaselineCutoff of the baseline low-pass as a fraction of
	// Nyquist. Much lower than Cutoff so only the slowly varying
	// background survives. Default 0.01.
	BaselineCutoff float64
}

func normalizeConfig(cfg Config) Config {
	if cfg.Cutoff == 0 {
		cfg.Cutoff = defaultCutoff
	}

	if cfg.BaselineCutoff == 0 {
		cfg.BaselineCutoff = defaultBaselineCutoff
	}

	return cfg
}

// Smooth applies a zero-phase Gaussian low-pass to the sampled
// spectrum and returns the smoothed copy. The signal is mirror-padded
// to a power of two before the FFT to suppress wrap-around ringing.
func Smooth(signal []float64, cfg Config) ([]float64, error) {
	cfg = normalizeConfig(cfg)
	return lowpass(signal, cfg.Cutoff)
}

// Baseline estimates the slowly varying background of a spectrum with
// a heavy low-pass.
func Baseline(signal []float64, cfg Config) ([]float64, error) {
	cfg = normalizeConfig(cfg)
	return lowpass(signal, cfg.BaselineCutoff)
}

// RemoveBaseline subtracts the estimated baseline from the spectrum.
func RemoveBaseline(signal []float64, cfg Config) ([]float64, error) {
	base, err := Baseline(signal, cfg)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(signal))
	vecmath.ScaleBlock(out, base, -1)
	vecmath.AddBlockInPlace(out, signal)

	return out, nil
}

// NoiseRMS estimates the broadband noise level as the RMS of the
// signal minus its smoothed version. The square of this value times
// the sample count is a reasonable absolute tolerance for a
// squared-error peak fit.
func NoiseRMS(signal []float64, cfg Config) (float64, error) {
	smooth, err := Smooth(signal, cfg)
	if err != nil {
		return 0, err
	}

	var s float64

	for j := range signal {
		d := signal[j] - smooth[j]
		s += d * d
	}

	return math.Sqrt(s / float64(len(signal))), nil
}

// lowpass runs the FFT round trip with a Gaussian transfer function.
func lowpass(signal []float64, cutoff float64) ([]float64, error) {
	n := len(signal)
	if n == 0 {
		return nil, ErrEmptySignal
	}

	if cutoff <= 0 || cutoff > 1 {
		return nil, ErrBadCutoff
	}

	fftSize := nextPowerOf2(2 * n)

	in := make([]complex128, fftSize)
	for j := 0; j < fftSize; j++ {
		in[j] = complex(mirrorSample(signal, j), 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("NewPlan64: %w", err)
	}

	freq := make([]complex128, fftSize)

	err = plan.Forward(freq, in)
	if err != nil {
		return nil, fmt.Errorf("spectrum: forward FFT failed: %w", err)
	}

	// Gaussian transfer, symmetric over positive and negative bins.
	half := fftSize / 2
	for k := range freq {
		bin := k
		if bin > half {
			bin = fftSize - bin
		}

		fn := float64(bin) / float64(half)
		g := math.Exp(-0.5 * (fn / cutoff) * (fn / cutoff))
		freq[k] *= complex(g, 0)
	}

	err = plan.Inverse(in, freq)
	if err != nil {
		return nil, fmt.Errorf("spectrum: inverse FFT failed: %w", err)
	}

	out := make([]float64, n)
	for j := range out {
		out[j] = real(in[j])
	}

	return out, nil
}

// mirrorSample extends the signal beyond its end by reflection, which
// keeps the padded continuation continuous at the boundary.
func mirrorSample(signal []float64, j int) float64 {
	n := len(signal)
	if j < n {
		return signal[j]
	}

	m := 2*n - 2 - j
	if m < 0 {
		m = 0
	}

	return signal[m]
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
