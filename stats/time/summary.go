package time

import (
	"math"
	gotime "time"

	"github.com/cwbudde/algo-featureviz/dsp/core"
)

// Summary holds the level statistics shown alongside a waveform.
//
//nolint:revive
type Summary struct {
	Length        int
	Duration      gotime.Duration
	DC            float64
	RMS           float64
	RMS_dB        float64
	Max           float64
	Min           float64
	Peak          float64 // max(|max|, |min|)
	Peak_dB       float64
	ZeroCrossings int
}

// Summarize computes a Summary in a single pass. A non-positive sampleRate
// leaves Duration at zero.
func Summarize(signal []float64, sampleRate int) Summary {
	n := len(signal)
	if n == 0 {
		return Summary{RMS_dB: math.Inf(-1), Peak_dB: math.Inf(-1)}
	}

	var (
		sum, sumSq    float64
		maxVal        = signal[0]
		minVal        = signal[0]
		zeroCrossings int
	)
	for i, x := range signal {
		sum += x
		sumSq += x * x
		maxVal = math.Max(maxVal, x)
		minVal = math.Min(minVal, x)
		if i > 0 && signal[i-1]*x < 0 {
			zeroCrossings++
		}
	}

	nf := float64(n)
	rms := math.Sqrt(sumSq / nf)
	peak := math.Max(math.Abs(maxVal), math.Abs(minVal))

	s := Summary{
		Length:        n,
		DC:            sum / nf,
		RMS:           rms,
		RMS_dB:        core.LinearToDB(rms),
		Max:           maxVal,
		Min:           minVal,
		Peak:          peak,
		Peak_dB:       core.LinearToDB(peak),
		ZeroCrossings: zeroCrossings,
	}
	if sampleRate > 0 {
		s.Duration = gotime.Duration(nf / float64(sampleRate) * float64(gotime.Second))
	}
	return s
}

// RMS returns the root-mean-square of the signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	var sumSq float64
	for _, x := range signal {
		sumSq += x * x
	}

	return math.Sqrt(sumSq / float64(len(signal)))
}
