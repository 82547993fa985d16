package gauss

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-peakfit/internal/testutil"
)

func TestSynthesizeSumsPeaks(t *testing.T) {
	x := testutil.LinSpace(0, 2000, 256)
	peaks := []Peak{
		{Amplitude: 300, Center: 500, Width: 50},
		{Amplitude: 450, Center: 1500, Width: 50},
	}

	got := make([]float64, len(x))
	Synthesize(got, x, peaks)

	want := testutil.Spectrum(x, 300, 500, 50, 450, 1500, 50)
	testutil.RequireSliceNear(t, got, want, 1e-9)
}

func TestSynthesizeParamsRejectsBadLength(t *testing.T) {
	x := testutil.LinSpace(0, 10, 16)

	// 10 elements is not a multiple of 3.
	_, err := SynthesizeParams(x, make([]float64, 10))
	if !errors.Is(err, ErrParamCount) {
		t.Fatalf("err = %v, want ErrParamCount", err)
	}

	_, err = SynthesizeParams(x, nil)
	if !errors.Is(err, ErrParamCount) {
		t.Fatalf("empty vector: err = %v, want ErrParamCount", err)
	}
}

func TestSplitJoinRoundTrip(t *testing.T) {
	params := []float64{300, 500, 50, 450, 1500, 50}

	peaks, err := SplitParams(params)
	if err != nil {
		t.Fatalf("SplitParams: %v", err)
	}

	if len(peaks) != 2 {
		t.Fatalf("peak count = %d, want 2", len(peaks))
	}

	if peaks[1] != (Peak{Amplitude: 450, Center: 1500, Width: 50}) {
		t.Fatalf("peaks[1] = %+v", peaks[1])
	}

	testutil.RequireSliceNear(t, JoinParams(peaks), params, 0)
}

func TestGradientStacksPartials(t *testing.T) {
	x := testutil.LinSpace(1000, 2200, 64)
	p := Peak{Amplitude: 500, Center: 1600, Width: 200}

	b := Gradient(x, p)

	wantI := make([]float64, len(x))
	wantMu := make([]float64, len(x))
	wantSigma := make([]float64, len(x))
	PartialI(wantI, x, p.Amplitude, p.Center, p.Width)
	PartialMu(wantMu, x, p.Amplitude, p.Center, p.Width)
	PartialSigma(wantSigma, x, p.Amplitude, p.Center, p.Width)

	testutil.RequireSliceNear(t, b.I, wantI, 0)
	testutil.RequireSliceNear(t, b.Mu, wantMu, 0)
	testutil.RequireSliceNear(t, b.Sigma, wantSigma, 0)
}

func TestGradientPerturbedZeroDirection(t *testing.T) {
	x := testutil.LinSpace(1000, 2200, 64)
	p := Peak{Amplitude: 500, Center: 1600, Width: 200}

	plain := Gradient(x, p)
	perturbed := GradientPerturbed(x, p, NewBlock(len(x)))

	testutil.RequireSliceNear(t, perturbed.I, plain.I, 0)
	testutil.RequireSliceNear(t, perturbed.Mu, plain.Mu, 0)
	testutil.RequireSliceNear(t, perturbed.Sigma, plain.Sigma, 0)
}

func TestEvaluatePerturbedOffsetsPerSample(t *testing.T) {
	x := testutil.LinSpace(0, 10, 11)
	p := Peak{Amplitude: 10, Center: 5, Width: 2}

	dir := NewBlock(len(x))
	for j := range x {
		dir.Mu[j] = float64(j) / 10
	}

	got := make([]float64, len(x))
	EvaluatePerturbed(got, x, p, dir)

	one := make([]float64, 1)
	for j := range x {
		Evaluate(one, x[j:j+1], p.Amplitude, p.Center+dir.Mu[j], p.Width)
		if got[j] != one[0] {
			t.Fatalf("index %d: got %v, want %v", j, got[j], one[0])
		}
	}
}
