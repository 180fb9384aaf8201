package modulation

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-modscope/dsp/core"
)

var (
	// ErrSampleRate is returned for a non-positive or non-finite sampling frequency.
	ErrSampleRate = errors.New("modulation: sampling frequency must be finite and > 0")
	// ErrNonFinite is returned when a parameter is NaN or infinite.
	ErrNonFinite = errors.New("modulation: parameter must be finite")
	// ErrLengthMismatch is returned when per-sample inputs differ in length.
	ErrLengthMismatch = errors.New("modulation: input lengths differ")
	// ErrUnknownScheme is returned for a scheme name outside the supported set.
	ErrUnknownScheme = errors.New("modulation: unknown scheme")
)

// Params is one complete parameter set for a synthesis run.
type Params struct {
	SampleRate       float64 // Fs, Hz
	CarrierFreq      float64 // Fc, Hz
	CarrierAmplitude float64 // Ac
	MessageFreq      float64 // Fm, Hz
	MessageAmplitude float64 // Am
	FMDeviation      float64 // Kf
	PMDeviation      float64 // Kp
	AMIndex          float64 // Mu
}

// DefaultParams returns the start-up parameter set of the scope.
func DefaultParams() Params {
	return Params{
		SampleRate:       core.DefaultProcessorConfig().SampleRate,
		CarrierFreq:      10,
		CarrierAmplitude: 1,
		MessageFreq:      5,
		MessageAmplitude: 1,
		FMDeviation:      10,
		PMDeviation:      1,
		AMIndex:          0.5,
	}
}

// Validate checks that every parameter is finite and that the sampling
// frequency is positive. Zero or negative frequencies other than Fs are
// accepted and simply produce degenerate waveforms.
func (p Params) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"sampling frequency", p.SampleRate},
		{"carrier frequency", p.CarrierFreq},
		{"carrier amplitude", p.CarrierAmplitude},
		{"message frequency", p.MessageFreq},
		{"message amplitude", p.MessageAmplitude},
		{"FM deviation", p.FMDeviation},
		{"PM deviation", p.PMDeviation},
		{"AM index", p.AMIndex},
	}
	for _, f := range fields {
		if !core.IsFinite(f.value) {
			return fmt.Errorf("%w: %s = %v", ErrNonFinite, f.name, f.value)
		}
	}
	if p.SampleRate <= 0 {
		return fmt.Errorf("%w: %v", ErrSampleRate, p.SampleRate)
	}
	return nil
}

// Samples returns the time base length for p, ceil(Fs).
func (p Params) Samples() int {
	return timeBaseLen(p.SampleRate)
}
