package mel

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// DCT is an orthonormal DCT-II basis truncated to its first coefficients.
type DCT struct {
	basis *mat.Dense
}

// NewDCT builds the first keep rows of the size-point orthonormal DCT-II.
func NewDCT(size, keep int) (*DCT, error) {
	if size <= 0 || keep <= 0 || keep > size {
		return nil, fmt.Errorf("mel dct: invalid size=%d keep=%d", size, keep)
	}

	basis := mat.NewDense(keep, size, nil)
	n := float64(size)
	for k := range keep {
		scale := math.Sqrt(2 / n)
		if k == 0 {
			scale = math.Sqrt(1 / n)
		}
		for i := range size {
			basis.Set(k, i, scale*math.Cos(math.Pi*float64(k)*(2*float64(i)+1)/(2*n)))
		}
	}
	return &DCT{basis: basis}, nil
}

// Coefficients returns the number of DCT rows kept.
func (d *DCT) Coefficients() int {
	r, _ := d.basis.Dims()
	return r
}

// Apply transforms each column of a [band][frame] matrix.
func (d *DCT) Apply(m [][]float64) ([][]float64, error) {
	_, size := d.basis.Dims()
	if len(m) != size {
		return nil, fmt.Errorf("%w: %d rows, dct expects %d", ErrShape, len(m), size)
	}
	in, err := toDense(m)
	if err != nil {
		return nil, err
	}

	var out mat.Dense
	out.Mul(d.basis, in)
	return fromDense(&out), nil
}
