package core

// ProcessorConfig defines common sampling settings.
type ProcessorConfig struct {
	SampleRate float64
	// Duration is the observation window in seconds.
	Duration float64
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns the one-second window at 250 Hz used by the
// scope when nothing else is specified.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: 250,
		Duration:   1,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithDuration sets the observation window length in seconds.
func WithDuration(seconds float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if seconds > 0 {
			cfg.Duration = seconds
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
