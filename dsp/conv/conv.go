// Package conv provides linear convolution for rendering audio through
// impulse responses.
//
// Two strategies are offered: direct O(N*M) time-domain convolution for very
// short kernels, and one-shot FFT convolution for the long room impulse
// responses this library produces. Convolve selects between them
// automatically by kernel length.
package conv

import "errors"

// Errors returned by convolution functions.
var (
	ErrEmptyInput  = errors.New("conv: empty input")
	ErrEmptyKernel = errors.New("conv: empty kernel")
)

// directThreshold is the kernel length below which direct convolution
// beats the FFT path.
const directThreshold = 32

// Convolve performs full linear convolution of signal and kernel, returning
// a new slice of length len(signal) + len(kernel) - 1. Short kernels use the
// direct algorithm, longer ones the FFT path.
func Convolve(signal, kernel []float64) ([]float64, error) {
	if len(kernel) < directThreshold {
		return Direct(signal, kernel)
	}

	return FFT(signal, kernel)
}

// Direct performs direct time-domain linear convolution of a and b.
// Returns a new slice of length len(a) + len(b) - 1.
//
// This is an O(N*M) algorithm suitable for short kernels.
func Direct(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}
	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	result := make([]float64, len(a)+len(b)-1)
	for i := range a {
		for j := range b {
			result[i+j] += a[i] * b[j]
		}
	}

	return result, nil
}
