package gauss

import (
	"github.com/cwbudde/algo-vecmath"
)

// Block is a per-peak (samples × 3) matrix stored as three columns,
// one per Gaussian parameter. Gradient blocks, conjugate search
// directions and Hessian-vector products all share this shape.
type Block struct {
	I     []float64
	Mu    []float64
	Sigma []float64
}

// NewBlock allocates a zeroed block for n sample positions.
func NewBlock(n int) Block {
	return Block{
		I:     make([]float64, n),
		Mu:    make([]float64, n),
		Sigma: make([]float64, n),
	}
}

// Len returns the number of sample rows.
func (b Block) Len() int {
	return len(b.I)
}

// Dot reduces two blocks to a per-sample vector of row-wise 3-vector
// dot products: dst[j] = a[j]·b[j]. All lengths must match.
func Dot(dst []float64, a, b Block) {
	temp := make([]float64, len(dst))

	vecmath.MulBlock(dst, a.I, b.I)
	vecmath.MulBlock(temp, a.Mu, b.Mu)
	vecmath.AddBlockInPlace(dst, temp)
	vecmath.MulBlock(temp, a.Sigma, b.Sigma)
	vecmath.AddBlockInPlace(dst, temp)
}

// Scale writes s·src into dst column-wise. dst and src may alias.
func Scale(dst, src Block, s float64) {
	vecmath.ScaleBlock(dst.I, src.I, s)
	vecmath.ScaleBlock(dst.Mu, src.Mu, s)
	vecmath.ScaleBlock(dst.Sigma, src.Sigma, s)
}

// RowScale multiplies every row of src by the per-sample weights w.
func RowScale(dst, src Block, w []float64) {
	vecmath.MulBlock(dst.I, src.I, w)
	vecmath.MulBlock(dst.Mu, src.Mu, w)
	vecmath.MulBlock(dst.Sigma, src.Sigma, w)
}

// Sub writes a − b into dst column-wise.
func Sub(dst, a, b Block) {
	for j := range dst.I {
		dst.I[j] = a.I[j] - b.I[j]
	}

	for j := range dst.Mu {
		dst.Mu[j] = a.Mu[j] - b.Mu[j]
	}

	for j := range dst.Sigma {
		dst.Sigma[j] = a.Sigma[j] - b.Sigma[j]
	}
}

// ColumnMeans reduces each column to its arithmetic mean over samples.
// This is the documented aggregation that turns a per-sample direction
// block into a single 3-vector parameter step.
func ColumnMeans(b Block) (i, mu, sigma float64) {
	n := b.Len()
	if n == 0 {
		return 0, 0, 0
	}

	var sI, sMu, sSigma float64
	for j := 0; j < n; j++ {
		sI += b.I[j]
		sMu += b.Mu[j]
		sSigma += b.Sigma[j]
	}

	inv := 1 / float64(n)

	return sI * inv, sMu * inv, sSigma * inv
}
