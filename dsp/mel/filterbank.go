package mel

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrShape is returned when a matrix does not match the filterbank or DCT
// dimensions.
var ErrShape = errors.New("mel: matrix shape mismatch")

// Filterbank holds triangular mel filters with Slaney area normalization.
type Filterbank struct {
	weights *mat.Dense
	centers []float64
}

// NewFilterbank designs numMels filters over the one-sided spectrum of an
// fftSize-point transform at sampleRate, covering [fmin, fmax]. A zero fmax
// selects the Nyquist frequency.
func NewFilterbank(sampleRate, fftSize, numMels int, fmin, fmax float64) (*Filterbank, error) {
	if sampleRate <= 0 || fftSize < 2 || numMels <= 0 {
		return nil, fmt.Errorf("mel filterbank: invalid sr=%d nfft=%d mels=%d", sampleRate, fftSize, numMels)
	}
	nyquist := float64(sampleRate) / 2
	if fmax <= 0 {
		fmax = nyquist
	}
	if fmin < 0 || fmin >= fmax {
		return nil, fmt.Errorf("mel filterbank: invalid frequency range [%.1f, %.1f]", fmin, fmax)
	}

	bins := fftSize/2 + 1
	fftFreqs := make([]float64, bins)
	for k := range fftFreqs {
		fftFreqs[k] = float64(k) * nyquist / float64(bins-1)
	}

	edges := Frequencies(numMels+2, fmin, fmax)
	weights := mat.NewDense(numMels, bins, nil)
	for m := range numMels {
		lo, mid, hi := edges[m], edges[m+1], edges[m+2]
		norm := 2 / (hi - lo)
		for k, f := range fftFreqs {
			lower := (f - lo) / (mid - lo)
			upper := (hi - f) / (hi - mid)
			w := math.Max(0, math.Min(lower, upper))
			if w > 0 {
				weights.Set(m, k, w*norm)
			}
		}
	}

	return &Filterbank{weights: weights, centers: edges[1 : numMels+1]}, nil
}

// Bands returns the number of mel bands.
func (f *Filterbank) Bands() int {
	r, _ := f.weights.Dims()
	return r
}

// Bins returns the number of STFT bins each filter spans.
func (f *Filterbank) Bins() int {
	_, c := f.weights.Dims()
	return c
}

// Weights returns the [band][bin] filter matrix.
func (f *Filterbank) Weights() mat.Matrix { return f.weights }

// Centers returns the center frequency of each band in Hz.
func (f *Filterbank) Centers() []float64 {
	return append([]float64(nil), f.centers...)
}

// Apply projects a [bin][frame] power matrix onto the mel bands.
func (f *Filterbank) Apply(power [][]float64) ([][]float64, error) {
	if len(power) != f.Bins() {
		return nil, fmt.Errorf("%w: %d bins, filterbank expects %d", ErrShape, len(power), f.Bins())
	}
	in, err := toDense(power)
	if err != nil {
		return nil, err
	}

	var out mat.Dense
	out.Mul(f.weights, in)
	return fromDense(&out), nil
}

func toDense(m [][]float64) (*mat.Dense, error) {
	if len(m) == 0 || len(m[0]) == 0 {
		return nil, fmt.Errorf("%w: empty matrix", ErrShape)
	}
	cols := len(m[0])
	data := make([]float64, 0, len(m)*cols)
	for i, row := range m {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrShape, i, len(row), cols)
		}
		data = append(data, row...)
	}
	return mat.NewDense(len(m), cols, data), nil
}

func fromDense(m mat.Matrix) [][]float64 {
	r, c := m.Dims()
	out := make([][]float64, r)
	for i := range out {
		out[i] = make([]float64, c)
		mat.Row(out[i], i, m)
	}
	return out
}
