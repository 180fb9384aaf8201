// Package fft computes discrete Fourier transforms of any length.
//
// Power-of-two lengths use an algo-fft plan once that plan has reproduced a
// reference transform at its size; otherwise an in-tree radix-2 kernel runs.
// Every other length goes through Bluestein's chirp-z algorithm on top of
// the power-of-two path.
package fft

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"math/cmplx"
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"
)

var (
	// ErrSize is returned for a non-positive transform length.
	ErrSize = errors.New("fft: length must be > 0")
	// ErrLength is returned when a buffer does not match the transform length.
	ErrLength = errors.New("fft: buffer length mismatch")
)

// planTolerance bounds the per-bin error accepted from a plan self-check,
// relative to the input norm.
const planTolerance = 1e-9

// verdicts caches the self-check outcome per power-of-two length.
var verdicts sync.Map // int -> bool

// Transform computes n-point DFTs. A Transform is not safe for concurrent
// use; its Bluestein path keeps scratch buffers.
type Transform struct {
	n    int
	plan *algofft.Plan[complex128]
	blue *bluestein
}

type bluestein struct {
	chirp  []complex128 // exp(-i*pi*k^2/n), k < n
	kernel []complex128 // forward transform of the conjugate chirp sequence
	sub    *Transform
	a, b   []complex128
}

// New prepares an n-point transform.
func New(n int) (*Transform, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrSize, n)
	}
	t := &Transform{n: n}
	if isPow2(n) {
		t.plan = trustedPlan(n)
		return t, nil
	}

	m := 1 << bits.Len(uint(2*n-2))
	sub, err := New(m)
	if err != nil {
		return nil, err
	}

	chirp := make([]complex128, n)
	mod := uint64(2 * n)
	for k := range chirp {
		kk := (uint64(k) * uint64(k)) % mod
		chirp[k] = cmplx.Rect(1, -math.Pi*float64(kk)/float64(n))
	}

	seq := make([]complex128, m)
	seq[0] = cmplx.Conj(chirp[0])
	for k := 1; k < n; k++ {
		c := cmplx.Conj(chirp[k])
		seq[k] = c
		seq[m-k] = c
	}
	kernel := make([]complex128, m)
	if err := sub.Forward(kernel, seq); err != nil {
		return nil, err
	}

	t.blue = &bluestein{
		chirp:  chirp,
		kernel: kernel,
		sub:    sub,
		a:      make([]complex128, m),
		b:      make([]complex128, m),
	}
	return t, nil
}

// Len returns the transform length.
func (t *Transform) Len() int { return t.n }

// Forward writes the DFT of src to dst. dst and src must not overlap.
func (t *Transform) Forward(dst, src []complex128) error {
	if len(dst) != t.n || len(src) != t.n {
		return fmt.Errorf("%w: want %d, got dst %d src %d", ErrLength, t.n, len(dst), len(src))
	}
	switch {
	case t.blue != nil:
		return t.blue.forward(dst, src)
	case t.plan != nil:
		if err := t.plan.Forward(dst, src); err != nil {
			return fmt.Errorf("fft: forward: %w", err)
		}
		return nil
	default:
		radix2(dst, src)
		return nil
	}
}

// Inverse writes the inverse DFT of src, scaled by 1/n, to dst.
func (t *Transform) Inverse(dst, src []complex128) error {
	if len(dst) != t.n || len(src) != t.n {
		return fmt.Errorf("%w: want %d, got dst %d src %d", ErrLength, t.n, len(dst), len(src))
	}
	conj := make([]complex128, t.n)
	for i, v := range src {
		conj[i] = cmplx.Conj(v)
	}
	if err := t.Forward(dst, conj); err != nil {
		return err
	}
	scale := 1 / float64(t.n)
	for i, v := range dst {
		dst[i] = complex(real(v)*scale, -imag(v)*scale)
	}
	return nil
}

func (b *bluestein) forward(dst, src []complex128) error {
	n := len(b.chirp)
	clear(b.a)
	for k := 0; k < n; k++ {
		b.a[k] = src[k] * b.chirp[k]
	}
	if err := b.sub.Forward(b.b, b.a); err != nil {
		return err
	}
	for i := range b.b {
		b.b[i] *= b.kernel[i]
	}
	if err := b.sub.Inverse(b.a, b.b); err != nil {
		return err
	}
	for k := 0; k < n; k++ {
		dst[k] = b.a[k] * b.chirp[k]
	}
	return nil
}

// trustedPlan returns an algo-fft plan for the power-of-two length n, or nil
// when none can be created or it disagrees with radix2.
func trustedPlan(n int) *algofft.Plan[complex128] {
	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil
	}
	if ok, seen := verdicts.Load(n); seen {
		if ok.(bool) {
			return plan
		}
		return nil
	}
	ok := checkPlan(plan, n)
	verdicts.Store(n, ok)
	if !ok {
		return nil
	}
	return plan
}

func checkPlan(plan *algofft.Plan[complex128], n int) bool {
	src := make([]complex128, n)
	var norm float64
	for i := range src {
		src[i] = complex(float64(i%7)-3, float64(i%5)-2)
		norm += real(src[i])*real(src[i]) + imag(src[i])*imag(src[i])
	}
	tol := planTolerance * math.Max(1, math.Sqrt(norm))

	got := make([]complex128, n)
	if err := plan.Forward(got, src); err != nil {
		return false
	}
	want := make([]complex128, n)
	radix2(want, src)
	for k := range want {
		if cmplx.Abs(got[k]-want[k]) > tol {
			return false
		}
	}
	return true
}

// radix2 is an iterative decimation-in-time FFT for power-of-two lengths.
func radix2(dst, src []complex128) {
	n := len(src)
	shift := bits.UintSize - bits.TrailingZeros(uint(n))
	for i, v := range src {
		dst[bits.Reverse(uint(i))>>shift] = v
	}
	for size := 2; size <= n; size <<= 1 {
		half := size / 2
		step := -2 * math.Pi / float64(size)
		for j := 0; j < half; j++ {
			w := cmplx.Rect(1, step*float64(j))
			for start := 0; start < n; start += size {
				u := dst[start+j]
				v := dst[start+j+half] * w
				dst[start+j] = u + v
				dst[start+j+half] = u - v
			}
		}
	}
}

// Direct evaluates the DFT by its definition in O(n^2). The inverse is
// scaled by 1/n.
func Direct(dst, src []complex128, inverse bool) {
	n := len(src)
	sign := -1.0
	if inverse {
		sign = 1.0
	}
	for k := 0; k < n; k++ {
		var acc complex128
		for m := 0; m < n; m++ {
			// k*m mod n keeps the angle small.
			acc += src[m] * cmplx.Rect(1, sign*2*math.Pi*float64((k*m)%n)/float64(n))
		}
		if inverse {
			acc /= complex(float64(n), 0)
		}
		dst[k] = acc
	}
}

func isPow2(n int) bool {
	return n > 0 && n&(n-1) == 0
}
