// Package frequency summarizes one-sided magnitude spectra.
package frequency

import "math"

// Stats describes a one-sided magnitude spectrum.
type Stats struct {
	BinCount int
	Peak     float64 // largest magnitude
	PeakBin  int
	PeakFreq float64 // Hz
	Centroid float64 // magnitude-weighted mean frequency, Hz
	Spread   float64 // magnitude-weighted standard deviation around Centroid, Hz
	Rolloff  float64 // frequency below which 99% of the energy lies, Hz
}

// RolloffFraction is the energy fraction used for Stats.Rolloff.
const RolloffFraction = 0.99

// Calculate computes Stats for magnitude, whose bin i sits at i*binWidth Hz.
// An all-zero spectrum reports zero for every frequency.
func Calculate(magnitude []float64, binWidth float64) Stats {
	s := Stats{BinCount: len(magnitude)}
	if len(magnitude) == 0 {
		return s
	}

	var sum, energy float64
	for i, v := range magnitude {
		sum += v
		energy += v * v
		if v > s.Peak {
			s.Peak = v
			s.PeakBin = i
		}
	}
	if sum == 0 {
		return s
	}

	s.PeakFreq = float64(s.PeakBin) * binWidth
	s.Centroid = Centroid(magnitude, binWidth)
	s.Spread = spread(magnitude, binWidth, s.Centroid, sum)
	s.Rolloff = rolloff(magnitude, binWidth, RolloffFraction, energy)
	return s
}

// Centroid returns sum(f_i*|X_i|) / sum(|X_i|), or 0 for an empty or
// all-zero spectrum.
func Centroid(magnitude []float64, binWidth float64) float64 {
	var weighted, sum float64
	for i, v := range magnitude {
		weighted += float64(i) * binWidth * v
		sum += v
	}
	if sum == 0 {
		return 0
	}
	return weighted / sum
}

func spread(magnitude []float64, binWidth, centroid, sum float64) float64 {
	var acc float64
	for i, v := range magnitude {
		d := float64(i)*binWidth - centroid
		acc += d * d * v
	}
	return math.Sqrt(acc / sum)
}

// Rolloff returns the lowest bin frequency at which the cumulative energy
// reaches fraction of the total.
func Rolloff(magnitude []float64, binWidth, fraction float64) float64 {
	var energy float64
	for _, v := range magnitude {
		energy += v * v
	}
	return rolloff(magnitude, binWidth, fraction, energy)
}

func rolloff(magnitude []float64, binWidth, fraction, energy float64) float64 {
	if len(magnitude) == 0 || energy == 0 {
		return 0
	}
	threshold := fraction * energy
	var cum float64
	for i, v := range magnitude {
		cum += v * v
		if cum >= threshold {
			return float64(i) * binWidth
		}
	}
	return float64(len(magnitude)-1) * binWidth
}
