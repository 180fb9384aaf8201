package signal

import (
	"math"
	"math/rand/v2"

	"github.com/cwbudde/algo-modscope/dsp/core"
)

// Generator lays out sample instants from a shared configuration.
type Generator struct {
	cfg core.ProcessorConfig
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return &Generator{cfg: core.ApplyProcessorOptions(opts...)}
}

// Samples returns the number of samples covering the configured window,
// ceil(SampleRate*Duration).
func (g *Generator) Samples() int {
	return int(math.Ceil(g.cfg.SampleRate * g.cfg.Duration))
}

// TimeBase returns the sample instants i/SampleRate for every sample of the
// window. The first instant is 0 and all instants are below Duration.
func (g *Generator) TimeBase() []float64 {
	n := g.Samples()
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i) / g.cfg.SampleRate
	}
	return out
}

// FillNormal overwrites dst with standard-normal draws from rng scaled by
// stddev and returns dst.
func FillNormal(rng *rand.Rand, dst []float64, stddev float64) []float64 {
	for i := range dst {
		dst[i] = stddev * rng.NormFloat64()
	}
	return dst
}

// SineAt evaluates amplitude*sin(2*pi*freqHz*t) at every instant of t.
func SineAt(t []float64, freqHz, amplitude float64) []float64 {
	out := make([]float64, len(t))
	w := 2 * math.Pi * freqHz
	for i, ti := range t {
		out[i] = amplitude * math.Sin(w*ti)
	}
	return out
}

// CosineAt evaluates amplitude*cos(2*pi*freqHz*t) at every instant of t.
func CosineAt(t []float64, freqHz, amplitude float64) []float64 {
	out := make([]float64, len(t))
	w := 2 * math.Pi * freqHz
	for i, ti := range t {
		out[i] = amplitude * math.Cos(w*ti)
	}
	return out
}

// CumulativeSum returns the running sum of x.
func CumulativeSum(x []float64) []float64 {
	out := make([]float64, len(x))
	acc := 0.0
	for i, v := range x {
		acc += v
		out[i] = acc
	}
	return out
}
