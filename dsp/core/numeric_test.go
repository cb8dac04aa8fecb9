package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min      float64
		max      float64
		expected float64
	}{
		{name: "inside", value: 0.5, min: 0, max: 1, expected: 0.5},
		{name: "below", value: -1, min: 0, max: 1, expected: 0},
		{name: "above", value: 2, min: 0, max: 1, expected: 1},
		{name: "swapped", value: 2, min: 1, max: 0, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.min, tt.max)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}
	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}
}

func TestScalarDBConversions(t *testing.T) {
	if !NearlyEqual(LinearToDB(0.5), -6.0206, 1e-4) {
		t.Fatalf("LinearToDB(0.5) = %v, want ~-6.02", LinearToDB(0.5))
	}
	if !math.IsInf(LinearToDB(0), -1) {
		t.Fatal("expected -Inf for zero")
	}
	if !math.IsNaN(LinearToDB(-1)) {
		t.Fatal("expected NaN for negative amplitude")
	}
	if !NearlyEqual(LinearPowerToDB(100), 20, 1e-12) {
		t.Fatalf("LinearPowerToDB(100) = %v, want 20", LinearPowerToDB(100))
	}
	if !math.IsInf(LinearPowerToDB(0), -1) {
		t.Fatal("expected -Inf for zero power")
	}
}

func TestPowerToDBRefMaxPeaksAtZero(t *testing.T) {
	s := [][]float64{
		{1e-3, 4, 0.5},
		{2, 1e-12, 3},
	}

	db := PowerToDB(s, RefMax, PowerFloor, 0)
	if got := MatrixMax(db); got != 0 {
		t.Fatalf("peak = %v, want exactly 0", got)
	}
	if !NearlyEqual(db[0][2], 10*math.Log10(0.5/4), 1e-12) {
		t.Fatalf("db[0][2] = %v", db[0][2])
	}
	if s[0][1] != 4 {
		t.Fatal("input was modified")
	}
}

func TestPowerToDBTopDB(t *testing.T) {
	s := [][]float64{{1, 1e-9, 1e-2}}

	db := PowerToDB(s, RefMax, PowerFloor, 30)
	if db[0][1] != -30 {
		t.Fatalf("floored value = %v, want -30", db[0][1])
	}
	if !NearlyEqual(db[0][2], -20, 1e-12) {
		t.Fatalf("db[0][2] = %v, want -20", db[0][2])
	}
}

func TestPowerToDBFixedRef(t *testing.T) {
	db := PowerToDB([][]float64{{10, 100}}, RefValue(1), PowerFloor, 0)
	if !NearlyEqual(db[0][0], 10, 1e-12) || !NearlyEqual(db[0][1], 20, 1e-12) {
		t.Fatalf("db = %v, want [10 20]", db[0])
	}
}

func TestAmplitudeToDB(t *testing.T) {
	s := [][]float64{{0.5, 2}, {1, 0}}

	db := AmplitudeToDB(s, RefMax, AmplitudeFloor, 80)
	if got := MatrixMax(db); got != 0 {
		t.Fatalf("peak = %v, want exactly 0", got)
	}
	if !NearlyEqual(db[0][0], 20*math.Log10(0.25), 1e-12) {
		t.Fatalf("db[0][0] = %v", db[0][0])
	}
	if db[1][1] != -80 {
		t.Fatalf("zero magnitude = %v, want top_db floor -80", db[1][1])
	}
}

func TestSilenceConvertsToZeroDB(t *testing.T) {
	s := [][]float64{{0, 0}, {0, 0}}
	for _, row := range AmplitudeToDB(s, RefMax, AmplitudeFloor, 80) {
		for _, v := range row {
			if v != 0 {
				t.Fatalf("silence db = %v, want 0", v)
			}
		}
	}
}

func TestMatrixMaxEmpty(t *testing.T) {
	if got := MatrixMax(nil); got != 0 {
		t.Fatalf("MatrixMax(nil) = %v, want 0", got)
	}
	if got := MatrixMax([][]float64{{}, {-3, -1}}); got != -1 {
		t.Fatalf("MatrixMax() = %v, want -1", got)
	}
}
