package feature

import (
	"math"
	"time"

	"github.com/cwbudde/algo-featureviz/dsp/core"
)

// Array is an extracted feature. Wave arrays carry samples in Wave; all
// other modes fill Data.
type Array struct {
	Mode       Mode
	Data       [][]float64
	Wave       []float64
	SampleRate int
	HopLength  int
	FFTSize    int
	// FMin and FMax bound the mel filterbank of Mel and MFCC arrays.
	FMin, FMax float64
}

// Rows returns the number of bins, bands or coefficients.
func (a *Array) Rows() int { return len(a.Data) }

// Frames returns the number of STFT frames.
func (a *Array) Frames() int {
	if len(a.Data) == 0 {
		return 0
	}
	return len(a.Data[0])
}

// Range returns the smallest and largest value of Data, or of Wave for
// wave arrays.
func (a *Array) Range() (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	if a.Mode == ModeWave {
		for _, v := range a.Wave {
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
	} else {
		hi = core.MatrixMax(a.Data)
		for _, row := range a.Data {
			for _, v := range row {
				lo = math.Min(lo, v)
			}
		}
	}
	if math.IsInf(lo, 1) {
		return 0, 0
	}
	return lo, hi
}

// Duration returns the time span covered by the array.
func (a *Array) Duration() time.Duration {
	if a.SampleRate <= 0 {
		return 0
	}
	n := len(a.Wave)
	if a.Mode != ModeWave {
		n = a.Frames() * a.HopLength
	}
	return time.Duration(float64(n) / float64(a.SampleRate) * float64(time.Second))
}
