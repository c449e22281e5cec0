package protect

import (
	"github.com/cwbudde/algo-xmax/dsp/core"
	"github.com/cwbudde/algo-xmax/dsp/speaker"
)

// DefaultShelfQ is the quality factor of the adaptive low shelf.
const DefaultShelfQ = 0.707

// Config collects the construction-time settings shared by all strategies.
type Config struct {
	Processor core.ProcessorConfig

	// StabilityMargin is the zero-reflection margin of the limiter's
	// excursion estimator, in (0, 1).
	StabilityMargin float64

	// ShelfFrequency is the low-shelf corner in Hz. Zero selects the
	// resonance frequency of the active model.
	ShelfFrequency float64

	LimiterMode LimiterMode
	ShelfMode   ShelfMode

	Catalog *speaker.Catalog
}

// DefaultConfig returns the default configuration with the built-in
// catalog.
func DefaultConfig() Config {
	return Config{
		Processor:       core.DefaultProcessorConfig(),
		StabilityMargin: speaker.DefaultStabilityMargin,
		LimiterMode:     DisplacementMode,
		ShelfMode:       ShelfFilterMode,
		Catalog:         speaker.DefaultCatalog(),
	}
}

// Option mutates a Config.
type Option func(*Config)

// WithStabilityMargin sets the zero-reflection margin. Values outside
// (0, 1) are ignored.
func WithStabilityMargin(alpha float64) Option {
	return func(cfg *Config) {
		if alpha > 0 && alpha < 1 {
			cfg.StabilityMargin = alpha
		}
	}
}

// WithShelfFrequency fixes the low-shelf corner frequency. Non-positive
// values select the model resonance.
func WithShelfFrequency(hz float64) Option {
	return func(cfg *Config) {
		if hz > 0 {
			cfg.ShelfFrequency = hz
		} else {
			cfg.ShelfFrequency = 0
		}
	}
}

// WithLimiterMode selects the initial limiter mode.
func WithLimiterMode(mode LimiterMode) Option {
	return func(cfg *Config) {
		cfg.LimiterMode = mode
	}
}

// WithShelfMode selects the initial low-shelf mode.
func WithShelfMode(mode ShelfMode) Option {
	return func(cfg *Config) {
		cfg.ShelfMode = mode
	}
}

// WithCatalog replaces the built-in loudspeaker catalog.
func WithCatalog(c *speaker.Catalog) Option {
	return func(cfg *Config) {
		if c != nil {
			cfg.Catalog = c
		}
	}
}

// WithProcessorOptions applies core processor options such as the
// look-ahead capacities.
func WithProcessorOptions(opts ...core.ProcessorOption) Option {
	return func(cfg *Config) {
		for _, opt := range opts {
			if opt != nil {
				opt(&cfg.Processor)
			}
		}
	}
}

// ApplyOptions returns DefaultConfig with opts applied in order.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
