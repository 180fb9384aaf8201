package snr

import (
	"errors"
	"math/rand/v2"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-modscope/dsp/core"
	"github.com/cwbudde/algo-modscope/dsp/signal"
	timestats "github.com/cwbudde/algo-modscope/stats/time"
)

const (
	// NoiseFloor is added to the noise power before the ratio is taken.
	NoiseFloor = 1e-7

	// GammaSteps is the number of points in the default sweep.
	GammaSteps = 101
	// GammaStep is the spacing of the default sweep.
	GammaStep = 0.1
)

// ErrEmptySignal is returned when sweeping a zero-length waveform.
var ErrEmptySignal = errors.New("snr: signal must not be empty")

// Curve is one SNR sweep. Gamma and SNR have equal length.
type Curve struct {
	Gamma []float64
	SNR   []float64 // dB
	// SignalPower is the mean-square value of the swept waveform.
	SignalPower float64
}

// Len returns the number of points.
func (c Curve) Len() int {
	return len(c.Gamma)
}

// Gammas returns the default sweep 0.0, 0.1, ..., 10.0. Each value is
// computed from its integer index so the end point is exactly 10.
func Gammas() []float64 {
	out := make([]float64, GammaSteps)
	for i := range out {
		out[i] = float64(i) / 10
	}
	return out
}

// SNRdB returns 10*log10(signalPower / (noisePower + NoiseFloor)).
func SNRdB(signalPower, noisePower float64) float64 {
	return core.LinearPowerToDB(signalPower / (noisePower + NoiseFloor))
}

// Sweeper draws noise and evaluates SNR curves. A Sweeper is not safe for
// concurrent use.
type Sweeper struct {
	rng    *rand.Rand
	gammas []float64

	unit  []float64
	noise []float64
}

// Option configures a Sweeper.
type Option func(*Sweeper)

// WithSeed makes the noise sequence deterministic.
func WithSeed(seed uint64) Option {
	return func(s *Sweeper) {
		s.rng = rand.New(rand.NewPCG(seed, seed^0xda942042e4dd58b5))
	}
}

// WithGammas replaces the default noise scales. Empty input is ignored.
func WithGammas(gammas []float64) Option {
	return func(s *Sweeper) {
		if len(gammas) > 0 {
			s.gammas = append([]float64(nil), gammas...)
		}
	}
}

// NewSweeper returns a sweeper over [Gammas] with a randomly seeded source.
func NewSweeper(opts ...Option) *Sweeper {
	s := &Sweeper{gammas: Gammas()}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return s
}

// Gammas returns a copy of the configured noise scales.
func (s *Sweeper) Gammas() []float64 {
	return append([]float64(nil), s.gammas...)
}

// Sweep evaluates the SNR of x against freshly drawn noise for every gamma.
func (s *Sweeper) Sweep(x []float64) (Curve, error) {
	if len(x) == 0 {
		return Curve{}, ErrEmptySignal
	}

	s.unit = core.EnsureLen(s.unit, len(x))
	s.noise = core.EnsureLen(s.noise, len(x))

	sigPow := timestats.Power(x)
	curve := Curve{
		Gamma:       s.Gammas(),
		SNR:         make([]float64, len(s.gammas)),
		SignalPower: sigPow,
	}

	for i, gamma := range s.gammas {
		signal.FillNormal(s.rng, s.unit, 1)
		vecmath.ScaleBlock(s.noise, s.unit, gamma)
		curve.SNR[i] = SNRdB(sigPow, timestats.Power(s.noise))
	}

	return curve, nil
}
