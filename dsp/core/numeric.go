package core

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

const defaultEpsilon = 1e-12

const (
	// AmplitudeFloor is the smallest magnitude considered by AmplitudeToDB.
	AmplitudeFloor = 1e-5
	// PowerFloor is the smallest power considered by PowerToDB.
	PowerFloor = 1e-10
)

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// LinearPowerToDB converts linear power to dB (10*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearPowerToDB(power float64) float64 {
	if power < 0 {
		return math.NaN()
	}

	if power == 0 {
		return math.Inf(-1)
	}

	return 10 * math.Log10(power)
}

// Ref selects the 0 dB reference of a matrix conversion.
type Ref struct {
	value float64
	max   bool
}

// RefMax references each matrix to its own largest value, so the converted
// matrix peaks at exactly 0 dB.
var RefMax = Ref{max: true}

// RefValue references a matrix to a fixed linear value.
func RefValue(v float64) Ref {
	return Ref{value: v}
}

func (r Ref) resolve(m [][]float64) float64 {
	if !r.max {
		return math.Abs(r.value)
	}
	return MatrixMax(m)
}

// MatrixMax returns the largest element of m, or 0 for an empty matrix.
func MatrixMax(m [][]float64) float64 {
	best := math.Inf(-1)
	for _, row := range m {
		if len(row) == 0 {
			continue
		}
		best = math.Max(best, floats.Max(row))
	}
	if math.IsInf(best, -1) {
		return 0
	}
	return best
}

// PowerToDB converts a power matrix to decibels:
//
//	10*log10(max(amin, S)) - 10*log10(max(amin, ref))
//
// When topDB > 0 the result is floored at (peak - topDB). The input is not
// modified.
func PowerToDB(s [][]float64, ref Ref, amin, topDB float64) [][]float64 {
	if amin <= 0 {
		amin = PowerFloor
	}

	refDB := 10 * math.Log10(math.Max(amin, ref.resolve(s)))

	out := make([][]float64, len(s))
	peak := math.Inf(-1)
	for i, row := range s {
		out[i] = make([]float64, len(row))
		for j, v := range row {
			db := 10*math.Log10(math.Max(amin, v)) - refDB
			out[i][j] = db
			if db > peak {
				peak = db
			}
		}
	}

	if topDB > 0 && !math.IsInf(peak, -1) {
		floor := peak - topDB
		for _, row := range out {
			for j, v := range row {
				if v < floor {
					row[j] = floor
				}
			}
		}
	}

	return out
}

// AmplitudeToDB converts a magnitude matrix to decibels (20*log10
// convention). It squares the magnitudes and defers to PowerToDB with the
// squared reference and floor.
func AmplitudeToDB(s [][]float64, ref Ref, amin, topDB float64) [][]float64 {
	if amin <= 0 {
		amin = AmplitudeFloor
	}

	refValue := ref.resolve(s)

	power := make([][]float64, len(s))
	for i, row := range s {
		power[i] = make([]float64, len(row))
		for j, v := range row {
			power[i][j] = v * v
		}
	}

	return PowerToDB(power, RefValue(refValue*refValue), amin*amin, topDB)
}
