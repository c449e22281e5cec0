package protect

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-xmax/dsp/delay"
	"github.com/cwbudde/algo-xmax/dsp/effects/dynamics"
	"github.com/cwbudde/algo-xmax/dsp/filter/biquad"
	"github.com/cwbudde/algo-xmax/dsp/filter/design"
	"github.com/cwbudde/algo-xmax/dsp/speaker"
)

// LowShelf protects one channel with an adaptive low-shelf cut.
//
// The look-ahead gain is computed from the estimated displacement as in
// the limiter. In ShelfFilterMode it sets the gain of a low shelf at the
// corner frequency; the shelf is only redesigned when the gain changes.
// In ShelfGainMode the gain multiplies the delayed signal directly.
type LowShelf struct {
	sampleRate float64
	fixedFreq  float64
	freq       float64
	mode       ShelfMode

	env   *dynamics.Envelope
	delay *delay.Line

	estimator *biquad.DF1
	meter     *biquad.DF1
	shelf     *biquad.Section
	gainDB    float64
}

// NewLowShelf creates a low-shelf strategy for m at sampleRate.
func NewLowShelf(m speaker.Model, sampleRate float64, cfg Config) (*LowShelf, error) {
	env, err := dynamics.NewEnvelope(sampleRate, cfg.Processor.MaxAttackMs, cfg.Processor.MaxHoldMs)
	if err != nil {
		return nil, fmt.Errorf("protect: low shelf: %w", err)
	}

	line, err := delay.New(env.MaxAttackSamples())
	if err != nil {
		return nil, fmt.Errorf("protect: low shelf look-ahead: %w", err)
	}

	s := &LowShelf{
		sampleRate: sampleRate,
		fixedFreq:  cfg.ShelfFrequency,
		mode:       cfg.ShelfMode,
		env:        env,
		delay:      line,
		estimator:  biquad.NewDF1(biquad.Identity()),
		meter:      biquad.NewDF1(biquad.Identity()),
		shelf:      biquad.NewSection(biquad.Identity()),
	}

	if err := s.SetModel(m); err != nil {
		return nil, err
	}

	return s, nil
}

// SetModel implements Strategy.
func (s *LowShelf) SetModel(m speaker.Model) error {
	xu, err := speaker.ExcursionFilter(m, s.sampleRate)
	if err != nil {
		return fmt.Errorf("protect: low shelf: %w", err)
	}

	freq := s.fixedFreq
	if freq <= 0 {
		freq = m.Fs
	}

	if !(freq < s.sampleRate/2) {
		return fmt.Errorf("protect: low shelf corner %g Hz must be below Nyquist (%g Hz)", freq, s.sampleRate/2)
	}

	s.estimator.SetCoefficients(xu)
	s.meter.SetCoefficients(xu)
	s.freq = freq
	s.shelf.SetCoefficients(s.design(s.gainDB))

	return nil
}

// Frequency returns the active shelf corner frequency.
func (s *LowShelf) Frequency() float64 {
	return s.freq
}

// GainDB returns the current shelf gain in dB.
func (s *LowShelf) GainDB() float64 {
	return s.gainDB
}

// Mode returns the active shelf mode.
func (s *LowShelf) Mode() ShelfMode {
	return s.mode
}

// SetMode switches between shelf and flat gain.
func (s *LowShelf) SetMode(mode ShelfMode) {
	if mode == s.mode {
		return
	}

	s.mode = mode
	s.shelf.Reset()
}

// Process implements Strategy.
func (s *LowShelf) Process(dry float64, c *Controls) (wet, displacementMm float64) {
	in := dry * c.InputGain
	s.delay.Write(in)

	x := s.estimator.ProcessSample(in)

	s.env.SetTimes(c.AttackMs, c.HoldMs, c.ReleaseMs)
	g := s.env.Process(dynamics.ComputeGain(math.Abs(x)*c.SpeakerGain, c.ThresholdMm*1e-3, c.Knee))
	delayed := s.delay.Read(s.env.AttackSamples())

	if s.mode == ShelfFilterMode {
		if db := dynamics.GainToDB(g); db != s.gainDB {
			s.gainDB = db
			s.shelf.SetCoefficients(s.design(db))
		}

		wet = s.shelf.ProcessSample(delayed)
	} else {
		wet = g * delayed
	}

	return wet, math.Abs(s.meter.ProcessSample(wet) * 1e3 * c.SpeakerGain)
}

func (s *LowShelf) design(gainDB float64) biquad.Coefficients {
	if gainDB == 0 {
		return biquad.Identity()
	}

	return design.LowShelf(s.freq, gainDB, DefaultShelfQ, s.sampleRate)
}

// FlushDenormals implements Strategy.
func (s *LowShelf) FlushDenormals() {
	biquad.FlushAll(s.estimator, s.meter, s.shelf)
}

// Reset implements Strategy.
func (s *LowShelf) Reset() {
	s.env.Reset()
	s.delay.Reset()
	biquad.ResetAll(s.estimator, s.meter, s.shelf)
	s.gainDB = 0
	s.shelf.SetCoefficients(biquad.Identity())
}
