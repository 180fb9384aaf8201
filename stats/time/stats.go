// Package time computes time-domain statistics of sampled waveforms.
package time

import "math"

// Stats summarizes one waveform.
//
//nolint:revive
type Stats struct {
	Length         int
	DC             float64 // mean
	RMS            float64
	RMS_dB         float64
	Peak           float64 // max |x|
	Peak_dB        float64
	CrestFactor    float64 // peak / RMS (linear)
	CrestFactor_dB float64
	Energy         float64 // sum of squares
	Power          float64 // energy / length
	ZeroCrossings  int
}

// ampTodB converts an amplitude value to decibels: 20 * log10(|value|).
// Returns -Inf for zero values.
func ampTodB(value float64) float64 {
	a := math.Abs(value)
	if a == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(a)
}

// Calculate computes all statistics in a single pass.
func Calculate(signal []float64) Stats {
	n := len(signal)
	if n == 0 {
		return Stats{
			RMS_dB:         math.Inf(-1),
			Peak_dB:        math.Inf(-1),
			CrestFactor_dB: math.Inf(-1),
		}
	}

	var (
		sum           float64
		sumSq         float64
		peak          float64
		zeroCrossings int
	)

	for i, x := range signal {
		sum += x
		sumSq += x * x

		if a := math.Abs(x); a > peak {
			peak = a
		}

		if i > 0 && signal[i-1]*x < 0 {
			zeroCrossings++
		}
	}

	nf := float64(n)
	rms := math.Sqrt(sumSq / nf)

	var crest, crestdB float64
	if rms != 0 {
		crest = peak / rms
		crestdB = ampTodB(crest)
	}

	return Stats{
		Length:         n,
		DC:             sum / nf,
		RMS:            rms,
		RMS_dB:         ampTodB(rms),
		Peak:           peak,
		Peak_dB:        ampTodB(peak),
		CrestFactor:    crest,
		CrestFactor_dB: crestdB,
		Energy:         sumSq,
		Power:          sumSq / nf,
		ZeroCrossings:  zeroCrossings,
	}
}

// Power returns the mean-square value of the signal, 0 for empty input.
func Power(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	var sumSq float64
	for _, x := range signal {
		sumSq += x * x
	}

	return sumSq / float64(len(signal))
}

// RMS returns the root-mean-square of the signal.
func RMS(signal []float64) float64 {
	return math.Sqrt(Power(signal))
}

// Peak returns the peak absolute amplitude of the signal.
func Peak(signal []float64) float64 {
	var peak float64
	for _, x := range signal {
		if a := math.Abs(x); a > peak {
			peak = a
		}
	}

	return peak
}

// CrestFactor returns the crest factor (peak / RMS) of the signal.
// Returns 0 if RMS is zero.
func CrestFactor(signal []float64) float64 {
	r := RMS(signal)
	if r == 0 {
		return 0
	}

	return Peak(signal) / r
}

// ZeroCrossings returns the number of zero crossings in the signal.
// A crossing is counted when consecutive samples have opposite signs.
func ZeroCrossings(signal []float64) int {
	var count int

	for i := 1; i < len(signal); i++ {
		if signal[i-1]*signal[i] < 0 {
			count++
		}
	}

	return count
}
