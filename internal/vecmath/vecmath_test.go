package vecmath

import (
	"math"
	"testing"
)

func TestAddBlockInPlace(t *testing.T) {
	dst := []float64{1, 2, 3, 4}
	AddBlockInPlace(dst, []float64{10, 20})

	expected := []float64{11, 22, 3, 4}
	for i := range dst {
		if dst[i] != expected[i] {
			t.Errorf("dst[%d] = %v, expected %v", i, dst[i], expected[i])
		}
	}
}

func TestScaleBlockInPlace(t *testing.T) {
	dst := []float64{1, -2, 0.5}
	ScaleBlockInPlace(dst, 2)

	expected := []float64{2, -4, 1}
	for i := range dst {
		if dst[i] != expected[i] {
			t.Errorf("dst[%d] = %v, expected %v", i, dst[i], expected[i])
		}
	}
}

func TestMaxAbs(t *testing.T) {
	tests := []struct {
		name     string
		x        []float64
		expected float64
	}{
		{"empty", nil, 0},
		{"positive peak", []float64{0.1, 0.9, 0.3}, 0.9},
		{"negative peak", []float64{0.1, -1.5, 0.3}, 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaxAbs(tt.x); got != tt.expected {
				t.Errorf("MaxAbs = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestSumMean(t *testing.T) {
	x := []float64{1, 2, 3, 4}

	if got := Sum(x); got != 10 {
		t.Errorf("Sum = %v", got)
	}

	if got := Mean(x); math.Abs(got-2.5) > 1e-12 {
		t.Errorf("Mean = %v", got)
	}

	if got := Mean(nil); got != 0 {
		t.Errorf("Mean(nil) = %v", got)
	}
}
