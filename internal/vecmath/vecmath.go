// Package vecmath provides block operations over float64 sample buffers.
package vecmath

import "math"

// AddBlockInPlace computes dst[i] += src[i] over the overlapping prefix.
func AddBlockInPlace(dst, src []float64) {
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}

	for i := 0; i < n; i++ {
		dst[i] += src[i]
	}
}

// ScaleBlockInPlace computes dst[i] *= scale.
func ScaleBlockInPlace(dst []float64, scale float64) {
	for i := range dst {
		dst[i] *= scale
	}
}

// MaxAbs returns the largest absolute value in x, 0 for an empty slice.
func MaxAbs(x []float64) float64 {
	var peak float64
	for _, v := range x {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}

	return peak
}

// Sum returns the sum of all values in x.
func Sum(x []float64) float64 {
	var s float64
	for _, v := range x {
		s += v
	}

	return s
}

// Mean returns the arithmetic mean of x, 0 for an empty slice.
func Mean(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}

	return Sum(x) / float64(len(x))
}
