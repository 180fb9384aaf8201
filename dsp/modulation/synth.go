package modulation

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-modscope/dsp/analytic"
	"github.com/cwbudde/algo-modscope/dsp/core"
	"github.com/cwbudde/algo-modscope/dsp/signal"
)

// Signals holds every waveform of one synthesis run. All slices share the
// length of Time.
type Signals struct {
	Time []float64

	Message     []float64
	Carrier     []float64
	QuadMessage []float64
	QuadCarrier []float64

	AM   []float64
	FM   []float64
	PM   []float64
	DSB  []float64
	VSB  []float64
	SSB  []float64
	LSSB []float64
	USSB []float64
}

// Len returns the number of samples per waveform.
func (s *Signals) Len() int {
	return len(s.Time)
}

// Select returns the waveform for scheme.
func (s *Signals) Select(scheme Scheme) ([]float64, error) {
	switch scheme {
	case SchemeDSB:
		return s.DSB, nil
	case SchemeVSB:
		return s.VSB, nil
	case SchemeSSB:
		return s.SSB, nil
	case SchemeLSSB:
		return s.LSSB, nil
	case SchemeUSSB:
		return s.USSB, nil
	case SchemeAM:
		return s.AM, nil
	case SchemeFM:
		return s.FM, nil
	case SchemePM:
		return s.PM, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownScheme, int(scheme))
	}
}

// Synthesize evaluates the time base, message, carrier, their quadrature
// components and all eight modulated waveforms for p.
func Synthesize(p Params) (*Signals, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	t, err := TimeBase(p.SampleRate)
	if err != nil {
		return nil, err
	}

	s := &Signals{
		Time:    t,
		Message: Message(t, p.MessageAmplitude, p.MessageFreq),
		Carrier: Carrier(t, p.CarrierAmplitude, p.CarrierFreq),
	}

	if s.QuadMessage, err = analytic.Quadrature(s.Message); err != nil {
		return nil, fmt.Errorf("modulation: message quadrature: %w", err)
	}
	if s.QuadCarrier, err = analytic.Quadrature(s.Carrier); err != nil {
		return nil, fmt.Errorf("modulation: carrier quadrature: %w", err)
	}

	steps := []struct {
		name string
		fn   func() ([]float64, error)
		dst  *[]float64
	}{
		{"AM", func() ([]float64, error) { return AM(t, s.Message, p.CarrierAmplitude, p.CarrierFreq, p.AMIndex) }, &s.AM},
		{"FM", func() ([]float64, error) { return FM(t, s.Message, p.CarrierFreq, p.FMDeviation, p.SampleRate) }, &s.FM},
		{"PM", func() ([]float64, error) { return PM(t, s.Message, p.CarrierFreq, p.PMDeviation) }, &s.PM},
		{"DSB", func() ([]float64, error) { return DSB(s.Message, s.Carrier) }, &s.DSB},
		{"VSB", func() ([]float64, error) { return VSB(s.Message, s.Carrier, s.QuadMessage, s.QuadCarrier) }, &s.VSB},
		{"SSB", func() ([]float64, error) { return SSB(t, s.Message, s.QuadMessage, p.CarrierFreq) }, &s.SSB},
		{"LSSB", func() ([]float64, error) { return LowerSSB(t, s.SSB, p.CarrierFreq) }, &s.LSSB},
		{"USSB", func() ([]float64, error) { return UpperSSB(t, s.SSB, p.CarrierFreq) }, &s.USSB},
	}
	for _, st := range steps {
		out, err := st.fn()
		if err != nil {
			return nil, fmt.Errorf("modulation: %s: %w", st.name, err)
		}
		*st.dst = out
	}

	return s, nil
}

// TimeBase returns ceil(fs) sample instants i/fs covering [0, 1).
func TimeBase(fs float64) ([]float64, error) {
	if !core.IsFinite(fs) || fs <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrSampleRate, fs)
	}
	return signal.NewGenerator(core.WithSampleRate(fs), core.WithDuration(1)).TimeBase(), nil
}

func timeBaseLen(fs float64) int {
	if !core.IsFinite(fs) || fs <= 0 {
		return 0
	}
	return int(math.Ceil(fs))
}

// Message returns am*sin(2*pi*fm*t).
func Message(t []float64, am, fm float64) []float64 {
	return signal.SineAt(t, fm, am)
}

// Carrier returns ac*sin(2*pi*fc*t).
func Carrier(t []float64, ac, fc float64) []float64 {
	return signal.SineAt(t, fc, ac)
}

// AM returns ac*(1 + mu*msg)*cos(2*pi*fc*t).
func AM(t, msg []float64, ac, fc, mu float64) ([]float64, error) {
	if err := sameLen(len(t), msg); err != nil {
		return nil, err
	}
	out := make([]float64, len(t))
	w := 2 * math.Pi * fc
	for i, ti := range t {
		out[i] = ac * (1 + mu*msg[i]) * math.Cos(w*ti)
	}
	return out, nil
}

// DSB returns the pointwise product msg*carrier.
func DSB(msg, carrier []float64) ([]float64, error) {
	if err := sameLen(len(msg), carrier); err != nil {
		return nil, err
	}
	out := make([]float64, len(msg))
	vecmath.MulBlock(out, msg, carrier)
	return out, nil
}

// FM returns sin(2*pi*fc*t + 2*pi*kf*cumsum(msg)/fs). The cumulative sum
// divided by fs is the rectangle-rule integral of the message.
func FM(t, msg []float64, fc, kf, fs float64) ([]float64, error) {
	if err := sameLen(len(t), msg); err != nil {
		return nil, err
	}
	integral := signal.CumulativeSum(msg)
	out := make([]float64, len(t))
	w := 2 * math.Pi * fc
	k := 2 * math.Pi * kf / fs
	for i, ti := range t {
		out[i] = math.Sin(w*ti + k*integral[i])
	}
	return out, nil
}

// PM returns sin(2*pi*fc*t + kp*msg).
func PM(t, msg []float64, fc, kp float64) ([]float64, error) {
	if err := sameLen(len(t), msg); err != nil {
		return nil, err
	}
	out := make([]float64, len(t))
	w := 2 * math.Pi * fc
	for i, ti := range t {
		out[i] = math.Sin(w*ti + kp*msg[i])
	}
	return out, nil
}

// VSB returns msg*carrier + quadMsg*quadCarrier.
func VSB(msg, carrier, quadMsg, quadCarrier []float64) ([]float64, error) {
	if err := sameLen(len(msg), carrier, quadMsg, quadCarrier); err != nil {
		return nil, err
	}
	out := make([]float64, len(msg))
	quad := make([]float64, len(msg))
	vecmath.MulBlock(out, msg, carrier)
	vecmath.MulBlock(quad, quadMsg, quadCarrier)
	vecmath.AddBlockInPlace(out, quad)
	return out, nil
}

// SSB returns msg*cos(2*pi*fc*t) - quadMsg*sin(2*pi*fc*t).
func SSB(t, msg, quadMsg []float64, fc float64) ([]float64, error) {
	if err := sameLen(len(t), msg, quadMsg); err != nil {
		return nil, err
	}
	out := make([]float64, len(t))
	quad := make([]float64, len(t))
	vecmath.MulBlock(out, msg, signal.CosineAt(t, fc, 1))
	vecmath.MulBlock(quad, quadMsg, signal.SineAt(t, fc, 1))
	vecmath.ScaleBlock(quad, quad, -1)
	vecmath.AddBlockInPlace(out, quad)
	return out, nil
}

// LowerSSB keeps ssb where 2*pi*fc*t - pi/2 > 0 and zeroes it elsewhere.
func LowerSSB(t, ssb []float64, fc float64) ([]float64, error) {
	return gate(t, ssb, func(ti float64) float64 {
		return Step(2*math.Pi*fc*ti - math.Pi/2)
	})
}

// UpperSSB keeps ssb where pi/2 - 2*pi*fc*t > 0 and zeroes it elsewhere.
func UpperSSB(t, ssb []float64, fc float64) ([]float64, error) {
	return gate(t, ssb, func(ti float64) float64 {
		return Step(math.Pi/2 - 2*math.Pi*fc*ti)
	})
}

// Step is the unit step with value 0 at the threshold: 1 for x > 0, else 0.
func Step(x float64) float64 {
	if x > 0 {
		return 1
	}
	return 0
}

func gate(t, x []float64, weight func(float64) float64) ([]float64, error) {
	if err := sameLen(len(t), x); err != nil {
		return nil, err
	}
	g := make([]float64, len(t))
	for i, ti := range t {
		g[i] = weight(ti)
	}
	out := make([]float64, len(t))
	vecmath.MulBlock(out, x, g)
	return out, nil
}

func sameLen(n int, bufs ...[]float64) error {
	if !core.SameLen(n, bufs...) {
		lens := make([]int, len(bufs))
		for i, b := range bufs {
			lens[i] = len(b)
		}
		return fmt.Errorf("%w: want %d, got %v", ErrLengthMismatch, n, lens)
	}
	return nil
}
