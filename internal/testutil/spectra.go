// Package testutil provides deterministic synthetic spectra and
// tolerance assertions shared by package tests.
package testutil

import (
	"math"
	"math/rand"
)

// LinSpace returns n evenly spaced positions from lo to hi inclusive.
func LinSpace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}

	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + step*float64(i)
	}

	return out
}

// AddGaussian accumulates one normalized Gaussian peak onto dst. It
// is implemented independently of package gauss so tests have an
// oracle that shares no code with the model under test.
func AddGaussian(dst, x []float64, amp, center, width float64) {
	for j, xj := range x {
		d := xj - center
		dst[j] += amp / (math.Sqrt(2*math.Pi) * width) * math.Exp(-d*d/(2*width*width))
	}
}

// Spectrum synthesizes a multi-peak spectrum at positions x from flat
// (amplitude, center, width) triples.
func Spectrum(x []float64, params ...float64) []float64 {
	out := make([]float64, len(x))
	for i := 0; i+2 < len(params); i += 3 {
		AddGaussian(out, x, params[i], params[i+1], params[i+2])
	}

	return out
}

// DeterministicNoise generates white noise with a fixed seed for
// reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))

	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}

	return out
}
