package time

import "math"

// Span is the sample range covered by one envelope column.
type Span struct {
	Min, Max float64
}

// Envelope reduces signal to at most columns min/max spans. Signals shorter
// than columns produce one span per sample.
func Envelope(signal []float64, columns int) []Span {
	if len(signal) == 0 || columns <= 0 {
		return nil
	}
	if columns > len(signal) {
		columns = len(signal)
	}

	out := make([]Span, columns)
	n := len(signal)
	for c := range out {
		lo := c * n / columns
		hi := (c + 1) * n / columns
		span := Span{Min: math.Inf(1), Max: math.Inf(-1)}
		for _, x := range signal[lo:hi] {
			span.Min = math.Min(span.Min, x)
			span.Max = math.Max(span.Max, x)
		}
		out[c] = span
	}
	return out
}
