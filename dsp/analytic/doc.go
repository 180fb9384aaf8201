// Package analytic computes the analytic signal of a finite real sequence
// using the frequency-domain method: the spectrum is one-sided by zeroing the
// negative-frequency bins, doubling the positive ones, and keeping DC (and
// Nyquist for even lengths) unchanged.
//
// The imaginary part of the analytic signal is the Hilbert transform of the
// input, i.e. its 90-degree phase-shifted counterpart. [Quadrature] returns
// exactly that component and is what single- and vestigial-sideband
// modulators need.
//
// The whole sequence is treated as one period, so inputs that do not hold an
// integer number of cycles show edge ripple. This matches the usual
// FFT-based definition.
package analytic
