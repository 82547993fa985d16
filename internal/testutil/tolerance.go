package testutil

import (
	"math"
	"testing"
)

// RequireNear fails t if got and want differ by more than eps.
func RequireNear(t *testing.T, got, want, eps float64) {
	t.Helper()

	if math.Abs(got-want) > eps {
		t.Fatalf("got %v, want %v (diff %v > eps %v)", got, want, math.Abs(got-want), eps)
	}
}

// RequireWithin fails t if got deviates from want by more than the
// given relative fraction.
func RequireWithin(t *testing.T, got, want, rel float64) {
	t.Helper()

	scale := math.Abs(want)
	if scale == 0 {
		scale = 1
	}

	if math.Abs(got-want)/scale > rel {
		t.Fatalf("got %v, want %v (relative deviation %v > %v)", got, want, math.Abs(got-want)/scale, rel)
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()

	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// RequireSliceNear fails t if got and want differ in length or any
// element pair differs by more than eps.
func RequireSliceNear(t *testing.T, got, want []float64, eps float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}

	for i := range got {
		if math.Abs(got[i]-want[i]) > eps {
			t.Fatalf("index %d: got %v, want %v (eps %v)", i, got[i], want[i], eps)
		}
	}
}
