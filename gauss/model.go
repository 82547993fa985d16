package gauss

import (
	"github.com/cwbudde/algo-vecmath"
)

// Synthesize sums every peak's contribution at the sample positions x.
// dst and x must have equal length; dst is overwritten.
func Synthesize(dst, x []float64, peaks []Peak) {
	for j := range dst {
		dst[j] = 0
	}

	buf := make([]float64, len(x))

	for _, p := range peaks {
		Evaluate(buf, x, p.Amplitude, p.Center, p.Width)
		vecmath.AddBlockInPlace(dst, buf)
	}
}

// SynthesizeParams synthesizes the multi-peak curve from a flat
// parameter vector. It fails before any computation if the vector
// length is not a positive multiple of 3.
func SynthesizeParams(x, params []float64) ([]float64, error) {
	peaks, err := SplitParams(params)
	if err != nil {
		return nil, err
	}

	dst := make([]float64, len(x))
	Synthesize(dst, x, peaks)

	return dst, nil
}

// Gradient stacks the three analytic partials of one peak at every
// sample position into a block, one parameter per column.
func Gradient(x []float64, p Peak) Block {
	b := NewBlock(len(x))

	PartialI(b.I, x, p.Amplitude, p.Center, p.Width)
	PartialMu(b.Mu, x, p.Amplitude, p.Center, p.Width)
	PartialSigma(b.Sigma, x, p.Amplitude, p.Center, p.Width)

	return b
}

// GradientPerturbed evaluates the partials with each parameter offset
// per sample by the matching column of dir. This is the second calling
// convention of the gradient: package fit uses it to perturb the
// gradient for the finite-difference Hessian-vector product.
func GradientPerturbed(x []float64, p Peak, dir Block) Block {
	b := NewBlock(len(x))

	for j, xj := range x {
		amp := p.Amplitude + dir.I[j]
		center := p.Center + dir.Mu[j]
		width := p.Width + dir.Sigma[j]

		b.I[j] = partialIAt(xj, amp, center, width)
		b.Mu[j] = partialMuAt(xj, amp, center, width)
		b.Sigma[j] = partialSigmaAt(xj, amp, center, width)
	}

	return b
}

// EvaluatePerturbed computes one peak's contribution with each
// parameter offset per sample by the matching column of dir.
func EvaluatePerturbed(dst, x []float64, p Peak, dir Block) {
	for j, xj := range x {
		dst[j] = evalAt(xj, p.Amplitude+dir.I[j], p.Center+dir.Mu[j], p.Width+dir.Sigma[j])
	}
}
