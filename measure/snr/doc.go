// Package snr sweeps additive white Gaussian noise over a waveform and reports
// the resulting signal-to-noise ratio per noise scale.
//
// For every scale factor gamma a fresh noise vector n = gamma*N(0,1) is drawn
// with the length of the waveform x, and
//
//	SNR(gamma) = 10*log10(mean(x^2) / (mean(n^2) + 1e-7))
//
// The 1e-7 floor keeps the noiseless point finite. Noise is redrawn for each
// gamma and each sweep, so unseeded sweeps of the same waveform differ.
//
// # Usage
//
//	sw := snr.NewSweeper()
//	curve, err := sw.Sweep(waveform)
//	// curve.Gamma[i], curve.SNR[i]
//
// Use [WithSeed] for reproducible curves.
package snr
