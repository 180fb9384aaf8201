// Package compute turns one parameter set into every waveform and the SNR
// curve for the selected scheme. It has no UI dependency.
package compute

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-modscope/dsp/modulation"
	"github.com/cwbudde/algo-modscope/measure/snr"
)

// DefaultMaxSamples bounds the time base length of one run.
const DefaultMaxSamples = 1 << 22

// ErrTooManySamples is returned when ceil(Fs) exceeds the configured limit.
var ErrTooManySamples = errors.New("compute: sampling frequency exceeds sample limit")

// Result is the complete output of one update.
type Result struct {
	Params  modulation.Params
	Scheme  modulation.Scheme
	Signals *modulation.Signals
	// Selected aliases the Signals waveform for Scheme.
	Selected []float64
	Curve    snr.Curve
}

// Pipeline evaluates parameter sets. A Pipeline is not safe for concurrent
// use because its sweeper owns a random source.
type Pipeline struct {
	sweeper    *snr.Sweeper
	maxSamples int
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithSweeper sets the SNR sweeper, e.g. a seeded one for reproducible output.
func WithSweeper(sw *snr.Sweeper) Option {
	return func(p *Pipeline) {
		if sw != nil {
			p.sweeper = sw
		}
	}
}

// WithMaxSamples sets the time base length limit. Non-positive values keep
// the default.
func WithMaxSamples(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.maxSamples = n
		}
	}
}

// New returns a pipeline with a randomly seeded sweeper.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{maxSamples: DefaultMaxSamples}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	if p.sweeper == nil {
		p.sweeper = snr.NewSweeper()
	}
	return p
}

// MaxSamples returns the configured time base length limit.
func (p *Pipeline) MaxSamples() int {
	return p.maxSamples
}

// Synthesize validates params, enforces the sample limit and evaluates
// every waveform.
func (p *Pipeline) Synthesize(params modulation.Params) (*modulation.Signals, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("compute: %w", err)
	}
	if n := params.Samples(); n > p.maxSamples {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManySamples, n, p.maxSamples)
	}

	sigs, err := modulation.Synthesize(params)
	if err != nil {
		return nil, fmt.Errorf("compute: %w", err)
	}
	return sigs, nil
}

// Run synthesizes all waveforms for params, selects the one for scheme and
// sweeps its SNR.
func (p *Pipeline) Run(params modulation.Params, scheme modulation.Scheme) (*Result, error) {
	if !scheme.Valid() {
		return nil, fmt.Errorf("compute: %w: %d", modulation.ErrUnknownScheme, int(scheme))
	}
	sigs, err := p.Synthesize(params)
	if err != nil {
		return nil, err
	}

	selected, err := sigs.Select(scheme)
	if err != nil {
		return nil, fmt.Errorf("compute: %w", err)
	}

	curve, err := p.sweeper.Sweep(selected)
	if err != nil {
		return nil, fmt.Errorf("compute: sweeping %s: %w", scheme, err)
	}

	return &Result{
		Params:   params,
		Scheme:   scheme,
		Signals:  sigs,
		Selected: selected,
		Curve:    curve,
	}, nil
}

// Compute is a one-shot Run using sw, or a randomly seeded sweeper if sw is
// nil.
func Compute(params modulation.Params, scheme modulation.Scheme, sw *snr.Sweeper) (*Result, error) {
	return New(WithSweeper(sw)).Run(params, scheme)
}
