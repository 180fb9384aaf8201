// Package spectrum measures the frequency content of real waveforms: the
// one-sided amplitude spectrum of a whole block and single-tone levels via
// the Goertzel recurrence.
package spectrum
