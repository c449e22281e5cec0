package core

// ProcessorConfig defines common DSP processing settings.
//
// The Max* durations size the look-ahead buffers allocated at prepare time;
// per-sample time controls are clamped to them.
type ProcessorConfig struct {
	SampleRate     float64
	BlockSize      int
	MaxAttackMs    float64
	MaxHoldMs      float64
	MaxLookaheadMs float64
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns sensible defaults for offline and streaming use.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate:     48000,
		BlockSize:      1024,
		MaxAttackMs:    20,
		MaxHoldMs:      100,
		MaxLookaheadMs: 100,
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

// WithBlockSize sets the processing block size.
func WithBlockSize(blockSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if blockSize > 0 {
			cfg.BlockSize = blockSize
		}
	}
}

// WithMaxAttack sets the longest attack time the buffers can hold.
func WithMaxAttack(ms float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if ms > 0 {
			cfg.MaxAttackMs = ms
		}
	}
}

// WithMaxHold sets the longest hold time the buffers can hold.
func WithMaxHold(ms float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if ms >= 0 {
			cfg.MaxHoldMs = ms
		}
	}
}

// WithMaxLookahead sets the longest look-ahead of the feedback strategy.
func WithMaxLookahead(ms float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if ms >= 0 {
			cfg.MaxLookaheadMs = ms
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
