package spectrum

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-modscope/dsp/core"
)

var (
	// ErrSampleRate is returned for a non-positive or non-finite sample rate.
	ErrSampleRate = errors.New("spectrum: sample rate must be finite and > 0")
	// ErrFrequency is returned for a target outside 0..sampleRate/2.
	ErrFrequency = errors.New("spectrum: frequency must be between 0 and sampleRate/2")
)

// Goertzel evaluates one DFT term of a block without a full transform.
//
// Power and Amplitude describe all samples processed since the last Reset.
// The target frequency need not fall on a bin; off-bin targets leak like an
// unwindowed DFT would.
type Goertzel struct {
	frequency  float64
	sampleRate float64
	coeff      float64
	s0, s1     float64
	n          int
}

// NewGoertzel returns an analyzer for frequency at sampleRate.
func NewGoertzel(frequency, sampleRate float64) (*Goertzel, error) {
	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrSampleRate, sampleRate)
	}
	if !core.IsFinite(frequency) || frequency < 0 || frequency > sampleRate/2 {
		return nil, fmt.Errorf("%w: %v", ErrFrequency, frequency)
	}
	return &Goertzel{
		frequency:  frequency,
		sampleRate: sampleRate,
		coeff:      2 * math.Cos(2*math.Pi*frequency/sampleRate),
	}, nil
}

// Reset clears the accumulated state.
func (g *Goertzel) Reset() {
	g.s0, g.s1, g.n = 0, 0, 0
}

// ProcessBlock feeds input through the recurrence.
func (g *Goertzel) ProcessBlock(input []float64) {
	s0, s1 := g.s0, g.s1
	coeff := g.coeff
	for _, x := range input {
		s0, s1 = x+coeff*s0-s1, s0
	}
	g.s0, g.s1 = s0, s1
	g.n += len(input)
}

// Power returns |X|^2, the squared DFT magnitude at the target frequency.
func (g *Goertzel) Power() float64 {
	p := g.s0*g.s0 + g.s1*g.s1 - g.coeff*g.s0*g.s1
	if p < 0 {
		return 0
	}
	return p
}

// Amplitude returns the peak amplitude of a sinusoid at the target
// frequency, 2|X|/N, or |X|/N at DC and Nyquist.
func (g *Goertzel) Amplitude() float64 {
	if g.n == 0 {
		return 0
	}
	scale := 2.0
	if g.frequency == 0 || g.frequency == g.sampleRate/2 {
		scale = 1
	}
	return scale * math.Sqrt(g.Power()) / float64(g.n)
}

// Frequency returns the target frequency.
func (g *Goertzel) Frequency() float64 { return g.frequency }

// ToneAmplitude is a one-shot Goertzel amplitude of frequency in input.
func ToneAmplitude(input []float64, frequency, sampleRate float64) (float64, error) {
	g, err := NewGoertzel(frequency, sampleRate)
	if err != nil {
		return 0, err
	}
	g.ProcessBlock(input)
	return g.Amplitude(), nil
}
