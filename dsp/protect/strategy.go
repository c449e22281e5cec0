package protect

import (
	"fmt"

	"github.com/cwbudde/algo-xmax/dsp/speaker"
)

// Variant selects the protection strategy of a Processor.
type Variant int

const (
	// FeedbackVariant resynthesizes a compliance-compensation filter.
	FeedbackVariant Variant = iota
	// LimiterVariant applies look-ahead gain limiting.
	LimiterVariant
	// LowShelfVariant applies an adaptive low-shelf cut.
	LowShelfVariant
)

// String implements fmt.Stringer.
func (v Variant) String() string {
	switch v {
	case FeedbackVariant:
		return "feedback"
	case LimiterVariant:
		return "limiter"
	case LowShelfVariant:
		return "lowshelf"
	default:
		return "unknown"
	}
}

// ParseVariant maps a name produced by Variant.String back to a Variant.
func ParseVariant(name string) (Variant, error) {
	for _, v := range []Variant{FeedbackVariant, LimiterVariant, LowShelfVariant} {
		if v.String() == name {
			return v, nil
		}
	}

	return 0, fmt.Errorf("protect: unknown variant %q", name)
}

// LimiterMode selects what the limiter measures and limits.
type LimiterMode int

const (
	// LevelMode limits the input voltage against the tension threshold.
	LevelMode LimiterMode = iota
	// DisplacementMode limits the estimated displacement against the
	// displacement threshold and converts the result back to a voltage.
	DisplacementMode
)

// String implements fmt.Stringer.
func (m LimiterMode) String() string {
	switch m {
	case LevelMode:
		return "level"
	case DisplacementMode:
		return "displacement"
	default:
		return "unknown"
	}
}

// ShelfMode selects how the low-shelf strategy applies its gain.
type ShelfMode int

const (
	// ShelfFilterMode cuts the low end with a low-shelf filter.
	ShelfFilterMode ShelfMode = iota
	// ShelfGainMode applies the gain to the whole band.
	ShelfGainMode
)

// String implements fmt.Stringer.
func (m ShelfMode) String() string {
	switch m {
	case ShelfFilterMode:
		return "shelf"
	case ShelfGainMode:
		return "gain"
	default:
		return "unknown"
	}
}

// Strategy processes one channel. Implementations own all of their state
// and are not safe for concurrent use.
type Strategy interface {
	// SetModel recomputes every model-dependent filter. Filter states are
	// kept so the switch does not click.
	SetModel(m speaker.Model) error

	// Process consumes one dry sample and returns the protected sample
	// and the estimated cone displacement in millimetres.
	Process(dry float64, c *Controls) (wet, displacementMm float64)

	// FlushDenormals zeroes denormal filter state.
	FlushDenormals()

	// Reset clears all state.
	Reset()
}

// NewStrategy builds the per-channel strategy for variant.
func NewStrategy(variant Variant, m speaker.Model, sampleRate float64, cfg Config) (Strategy, error) {
	var (
		s   Strategy
		err error
	)

	switch variant {
	case FeedbackVariant:
		s, err = NewFeedback(m, sampleRate, cfg)
	case LimiterVariant:
		s, err = NewLimiter(m, sampleRate, cfg)
	case LowShelfVariant:
		s, err = NewLowShelf(m, sampleRate, cfg)
	default:
		return nil, fmt.Errorf("protect: unknown variant %d", variant)
	}

	if err != nil {
		return nil, err
	}

	return s, nil
}
