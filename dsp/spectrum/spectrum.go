package spectrum

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-modscope/internal/fft"
	"github.com/cwbudde/algo-vecmath"
)

// ErrEmptyInput is returned for a zero-length block.
var ErrEmptyInput = errors.New("spectrum: empty input")

// Amplitude returns the one-sided amplitude spectrum of x: len(x)/2+1 bins
// spaced BinWidth apart, scaled so that a sinusoid of peak amplitude A on a
// bin reads A. DC and, for even lengths, Nyquist are not doubled.
func Amplitude(x []float64) ([]float64, error) {
	n := len(x)
	if n == 0 {
		return nil, ErrEmptyInput
	}

	bins := n/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	if err := transform(x, re, im); err != nil {
		return nil, err
	}

	out := make([]float64, bins)
	vecmath.Magnitude(out, re, im)

	scale := 2 / float64(n)
	vecmath.ScaleBlock(out, out, scale)
	out[0] /= 2
	if n%2 == 0 && bins > 1 {
		out[bins-1] /= 2
	}
	return out, nil
}

// BinWidth returns the bin spacing in Hz of an n-point spectrum.
func BinWidth(n int, sampleRate float64) float64 {
	if n <= 0 {
		return 0
	}
	return sampleRate / float64(n)
}

// transform writes the first len(re) DFT bins of x.
func transform(x, re, im []float64) error {
	n := len(x)
	tr, err := fft.New(n)
	if err != nil {
		return fmt.Errorf("spectrum: %w", err)
	}

	in := make([]complex128, n)
	for i, v := range x {
		in[i] = complex(v, 0)
	}
	spec := make([]complex128, n)
	if err := tr.Forward(spec, in); err != nil {
		return fmt.Errorf("spectrum: forward transform: %w", err)
	}
	for k := range re {
		re[k], im[k] = real(spec[k]), imag(spec[k])
	}
	return nil
}
