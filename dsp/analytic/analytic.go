package analytic

import (
	"errors"
	"fmt"
	"math/cmplx"

	"github.com/cwbudde/algo-modscope/internal/fft"
)

// ErrEmptyInput is returned for zero-length input.
var ErrEmptyInput = errors.New("analytic: input must not be empty")

// Signal returns the analytic signal x + j*H{x} with the same length as x.
func Signal(x []float64) ([]complex128, error) {
	n := len(x)
	if n == 0 {
		return nil, ErrEmptyInput
	}

	tr, err := fft.New(n)
	if err != nil {
		return nil, fmt.Errorf("analytic: %w", err)
	}

	in := make([]complex128, n)
	for i, v := range x {
		in[i] = complex(v, 0)
	}
	spec := make([]complex128, n)
	out := make([]complex128, n)

	if err := tr.Forward(spec, in); err != nil {
		return nil, fmt.Errorf("analytic: forward transform: %w", err)
	}
	applyOneSided(spec)
	if err := tr.Inverse(out, spec); err != nil {
		return nil, fmt.Errorf("analytic: inverse transform: %w", err)
	}
	return out, nil
}

// Quadrature returns the Hilbert transform of x, the imaginary part of its
// analytic signal.
func Quadrature(x []float64) ([]float64, error) {
	z, err := Signal(x)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(z))
	for i, v := range z {
		out[i] = imag(v)
	}
	return out, nil
}

// Envelope returns |x + j*H{x}|, the instantaneous amplitude of x.
func Envelope(x []float64) ([]float64, error) {
	z, err := Signal(x)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(z))
	for i, v := range z {
		out[i] = cmplx.Abs(v)
	}
	return out, nil
}

// applyOneSided multiplies spec by the one-sided weighting h:
// h[0] = 1, h[k] = 2 for positive bins, h[n/2] = 1 for even n, 0 otherwise.
func applyOneSided(spec []complex128) {
	n := len(spec)
	half := (n + 1) / 2
	for k := 1; k < half; k++ {
		spec[k] *= 2
	}
	start := half
	if n%2 == 0 {
		start = n/2 + 1
	}
	for k := start; k < n; k++ {
		spec[k] = 0
	}
}
