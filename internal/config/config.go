// Package config loads the scope's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-modscope/dsp/modulation"
	"github.com/cwbudde/algo-modscope/internal/compute"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the full configuration. Missing keys keep their defaults.
type Config struct {
	LogLevel   string   `yaml:"log_level"`
	Listen     string   `yaml:"listen"`
	MaxSamples int      `yaml:"max_samples"`
	Canvas     Canvas   `yaml:"canvas"`
	Defaults   Defaults `yaml:"defaults"`
}

// Canvas sizes the rendered chart.
type Canvas struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	DPI    float64 `yaml:"dpi"`
}

// Defaults holds the initial form contents.
type Defaults struct {
	SamplingFreq     float64 `yaml:"sampling_freq"`
	CarrierFreq      float64 `yaml:"carrier_freq"`
	CarrierAmplitude float64 `yaml:"carrier_amplitude"`
	MessageFreq      float64 `yaml:"message_freq"`
	MessageAmplitude float64 `yaml:"message_amplitude"`
	FMKf             float64 `yaml:"fm_kf"`
	PMKp             float64 `yaml:"pm_kp"`
	AMMu             float64 `yaml:"am_mu"`
	Scheme           string  `yaml:"scheme"`
}

// Default returns the built-in configuration.
func Default() Config {
	p := modulation.DefaultParams()
	return Config{
		LogLevel:   "info",
		Listen:     "127.0.0.1:8080",
		MaxSamples: compute.DefaultMaxSamples,
		Canvas:     Canvas{Width: 800, Height: 800, DPI: 100},
		Defaults: Defaults{
			SamplingFreq:     p.SampleRate,
			CarrierFreq:      p.CarrierFreq,
			CarrierAmplitude: p.CarrierAmplitude,
			MessageFreq:      p.MessageFreq,
			MessageAmplitude: p.MessageAmplitude,
			FMKf:             p.FMDeviation,
			PMKp:             p.PMDeviation,
			AMMu:             p.AMIndex,
			Scheme:           modulation.SchemeDSB.String(),
		},
	}
}

// Load reads and validates the file at path. An empty path returns Default.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML from r over the defaults and validates the result.
// Unknown keys are rejected.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: decoding: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges and enumerations.
func (c Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel)
	}
	if c.Listen == "" {
		return fmt.Errorf("%w: listen must not be empty", ErrInvalid)
	}
	if c.MaxSamples <= 0 {
		return fmt.Errorf("%w: max_samples must be > 0: %d", ErrInvalid, c.MaxSamples)
	}
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 || c.Canvas.DPI <= 0 {
		return fmt.Errorf("%w: canvas %dx%d at %v dpi", ErrInvalid, c.Canvas.Width, c.Canvas.Height, c.Canvas.DPI)
	}
	if _, err := modulation.ParseScheme(c.Defaults.Scheme); err != nil {
		return fmt.Errorf("%w: defaults.scheme: %w", ErrInvalid, err)
	}
	return nil
}

// Params returns the default parameter set.
func (d Defaults) Params() modulation.Params {
	return modulation.Params{
		SampleRate:       d.SamplingFreq,
		CarrierFreq:      d.CarrierFreq,
		CarrierAmplitude: d.CarrierAmplitude,
		MessageFreq:      d.MessageFreq,
		MessageAmplitude: d.MessageAmplitude,
		FMDeviation:      d.FMKf,
		PMDeviation:      d.PMKp,
		AMIndex:          d.AMMu,
	}
}

// SchemeValue returns the default scheme, DSB if the name does not parse.
func (d Defaults) SchemeValue() modulation.Scheme {
	s, err := modulation.ParseScheme(d.Scheme)
	if err != nil {
		return modulation.SchemeDSB
	}
	return s
}
