package gauss

import "errors"

// ErrParamCount is returned when a flat parameter vector cannot be
// partitioned into (amplitude, center, width) triples.
var ErrParamCount = errors.New("gauss: parameter count is not a positive multiple of 3")

// Peak is one Gaussian component of a multi-peak model.
type Peak struct {
	Amplitude float64
	Center    float64
	Width     float64
}

// SplitParams partitions a flat parameter vector into consecutive
// (amplitude, center, width) triples. The vector length must be a
// positive multiple of 3; this is checked before any computation.
func SplitParams(params []float64) ([]Peak, error) {
	if len(params) == 0 || len(params)%3 != 0 {
		return nil, ErrParamCount
	}

	peaks := make([]Peak, len(params)/3)
	for i := range peaks {
		peaks[i] = Peak{
			Amplitude: params[3*i],
			Center:    params[3*i+1],
			Width:     params[3*i+2],
		}
	}

	return peaks, nil
}

// JoinParams flattens peaks back into a parameter vector.
func JoinParams(peaks []Peak) []float64 {
	params := make([]float64, 3*len(peaks))
	for i, p := range peaks {
		params[3*i] = p.Amplitude
		params[3*i+1] = p.Center
		params[3*i+2] = p.Width
	}

	return params
}
