package fit_test

import (
	"context"
	"fmt"

	"github.com/cwbudde/algo-peakfit/fit"
	"github.com/cwbudde/algo-peakfit/gauss"
)

func ExampleFit() {
	// Synthetic absorbance band: one Gaussian at 1600 cm⁻¹.
	x := make([]float64, 100)
	for i := range x {
		x[i] = 1000 + 12*float64(i)
	}

	y := make([]float64, len(x))
	gauss.Evaluate(y, x, 500, 1600, 200)

	res, err := fit.Fit(context.Background(), x, y, []float64{400, 1550, 180}, fit.Config{
		Peaks:        1,
		AbsTolerance: 1e-6,
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println("status:", res.Status)
	fmt.Println("residual below target:", res.Residual < 1e-3)
	// Output:
	// status: converged
	// residual below target: true
}
