// Command peakfit fits a sum of Gaussian peaks to a sampled spectrum.
//
// Usage:
//
//	peakfit [flags] -init I,mu,sigma[,I,mu,sigma...] [file.csv]
//
// The input is two-column CSV (position, value), read from the named
// file or from standard input. Each triple in -init seeds one peak.
//
// Examples:
//
//	peakfit -init 400,1550,180 spectrum.csv
//	peakfit -init 300,500,50,450,1500,50 -iters 500 < spectrum.csv
//	peakfit -init 400,1550,180 -smooth -baseline spectrum.csv
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-peakfit/fit"
	"github.com/cwbudde/algo-peakfit/spectrum"
)

func main() {
	initFlag := flag.String("init", "", "comma-separated initial I,mu,sigma triples (required)")
	eps := flag.Float64("eps", 0, "finite-difference step (0 uses the default)")
	tol := flag.Float64("tol", 0, "relative convergence tolerance (0 uses the default)")
	absTol := flag.Float64("abstol", 0, "absolute residual target (0 disables)")
	iters := flag.Int("iters", 0, "iteration cap (0 uses the default)")
	smooth := flag.Bool("smooth", false, "low-pass the spectrum before fitting")
	baseline := flag.Bool("baseline", false, "remove the slowly varying background before fitting")
	cutoff := flag.Float64("cutoff", 0, "smoothing cutoff as a fraction of Nyquist (0 uses the default)")
	workers := flag.Int("workers", 0, "parallel peak workers (0 uses GOMAXPROCS)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: peakfit [flags] -init I,mu,sigma[,...] [file.csv]\n\n")
		fmt.Fprintf(os.Stderr, "Fits a sum of Gaussian peaks to a two-column CSV spectrum.\n")
		fmt.Fprintf(os.Stderr, "Reads from the named file, or standard input when omitted.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  peakfit -init 400,1550,180 spectrum.csv\n")
		fmt.Fprintf(os.Stderr, "  peakfit -init 300,500,50,450,1500,50 -iters 500 < spectrum.csv\n")
	}
	flag.Parse()

	initial, err := parseTriples(*initFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	x, y, err := readSpectrum(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	scfg := spectrum.Config{Cutoff: *cutoff}

	if *baseline {
		y, err = spectrum.RemoveBaseline(y, scfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	if *smooth {
		y, err = spectrum.Smooth(y, scfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	res, err := fit.Fit(context.Background(), x, y, initial, fit.Config{
		Peaks:         len(initial) / 3,
		FDEpsilon:     *eps,
		Tolerance:     *tol,
		AbsTolerance:  *absTol,
		MaxIterations: *iters,
		Workers:       *workers,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if res.Iterations == 0 {
			os.Exit(1)
		}
		// A failed fit still carries the last good state.
		printResult(res)
		os.Exit(1)
	}

	printResult(res)
}

// parseTriples splits the -init flag into flat parameters and checks
// the triple structure.
func parseTriples(s string) ([]float64, error) {
	if s == "" {
		return nil, fmt.Errorf("missing -init (use -init I,mu,sigma per peak)")
	}

	parts := strings.Split(s, ",")
	if len(parts)%3 != 0 {
		return nil, fmt.Errorf("-init needs I,mu,sigma triples, got %d values", len(parts))
	}

	out := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("-init value %q: %w", p, err)
		}
		out[i] = v
	}

	return out, nil
}

// readSpectrum reads two-column CSV (position, value) from path, or
// from standard input when path is empty.
func readSpectrum(path string) (x, y []float64, err error) {
	var src io.Reader = os.Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, err
		}
		defer f.Close()
		src = f
	}

	r := csv.NewReader(src)
	r.FieldsPerRecord = 2
	r.TrimLeadingSpace = true

	line := 0
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		line++

		xv, errX := strconv.ParseFloat(rec[0], 64)
		yv, errY := strconv.ParseFloat(rec[1], 64)
		if errX != nil || errY != nil {
			// Tolerate a single header row.
			if line == 1 {
				continue
			}
			return nil, nil, fmt.Errorf("line %d: non-numeric record %v", line, rec)
		}

		x = append(x, xv)
		y = append(y, yv)
	}

	if len(x) == 0 {
		return nil, nil, fmt.Errorf("no samples read")
	}
	return x, y, nil
}

func printResult(res fit.Result) {
	fmt.Printf("status: %s (%s), %d iterations, residual %.6g\n",
		res.Status, res.Reason, res.Iterations, res.Residual)

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Peak\tAmplitude\tCenter\tWidth\tConverged\n")
	fmt.Fprintf(tw, "----\t---------\t------\t-----\t---------\n")

	for i, p := range res.Peaks {
		fmt.Fprintf(tw, "%d\t%.6g\t%.6g\t%.6g\t%v\n",
			i, p.Amplitude, p.Center, p.Width, res.PeakConverged[i])
	}

	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}
