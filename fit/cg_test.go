package fit

import (
	"testing"

	"github.com/cwbudde/algo-peakfit/gauss"
)

func uniformBlock(n int, i, mu, sigma float64) gauss.Block {
	b := gauss.NewBlock(n)
	for j := 0; j < n; j++ {
		b.I[j] = i
		b.Mu[j] = mu
		b.Sigma[j] = sigma
	}

	return b
}

func TestAlphaCoeffQuadraticModel(t *testing.T) {
	const n = 8

	g := uniformBlock(n, 1, 0, 0)
	dir := uniformBlock(n, -1, 0, 0)

	// Curvature twice the gradient along dir: the quadratic model
	// puts the minimum at half a unit step.
	hv := uniformBlock(n, -2, 0, 0)

	a, ok := alphaCoeff(g, hv, dir)
	if !ok {
		t.Fatal("alphaCoeff reported degenerate curvature")
	}

	if a != 0.5 {
		t.Fatalf("alpha = %v, want 0.5", a)
	}
}

func TestAlphaCoeffFlatCurvature(t *testing.T) {
	const n = 8

	g := uniformBlock(n, 1, 0, 0)
	dir := uniformBlock(n, -1, 0, 0)
	hv := gauss.NewBlock(n)

	a, ok := alphaCoeff(g, hv, dir)
	if ok {
		t.Fatal("expected flat curvature to be flagged")
	}

	if a != 0 {
		t.Fatalf("alpha = %v, want 0 for a frozen step", a)
	}
}

func TestBetaCoeffClampsNegative(t *testing.T) {
	const n = 8

	dir := uniformBlock(n, 1, 0, 0)
	hv := uniformBlock(n, 1, 0, 0)
	gNew := uniformBlock(n, -1, 0, 0)

	if b := betaCoeff(gNew, hv, dir); b != 0 {
		t.Fatalf("beta = %v, want 0 (restart on negative)", b)
	}

	gNew = uniformBlock(n, 0.5, 0, 0)

	if b := betaCoeff(gNew, hv, dir); b != 0.5 {
		t.Fatalf("beta = %v, want 0.5", b)
	}
}

func TestNextDirectionRestart(t *testing.T) {
	const n = 4

	gNew := uniformBlock(n, 2, -1, 0.5)
	dir := uniformBlock(n, 100, 100, 100)

	next := nextDirection(gNew, dir, 0)

	for j := 0; j < n; j++ {
		if next.I[j] != -2 || next.Mu[j] != 1 || next.Sigma[j] != -0.5 {
			t.Fatalf("row %d: restart direction is not −g", j)
		}
	}
}
