package mel

import "math"

const (
	linearStep = 200.0 / 3
	logMinHz   = 1000.0
	logMinMel  = logMinHz / linearStep
)

var logStep = math.Log(6.4) / 27

// HzToMel converts a frequency to the Slaney mel scale: linear below 1 kHz
// and logarithmic above.
func HzToMel(hz float64) float64 {
	if hz < logMinHz {
		return hz / linearStep
	}
	return logMinMel + math.Log(hz/logMinHz)/logStep
}

// MelToHz inverts HzToMel.
func MelToHz(m float64) float64 {
	if m < logMinMel {
		return m * linearStep
	}
	return logMinHz * math.Exp(logStep*(m-logMinMel))
}

// Frequencies returns n frequencies in Hz spaced uniformly on the mel scale
// between fmin and fmax inclusive.
func Frequencies(n int, fmin, fmax float64) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = fmin
		return out
	}

	lo, hi := HzToMel(fmin), HzToMel(fmax)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = MelToHz(lo + float64(i)*step)
	}
	return out
}
