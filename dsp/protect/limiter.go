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

// Limiter protects one channel with look-ahead gain limiting.
//
// In DisplacementMode the input voltage is mapped to displacement by the
// stabilized excursion estimator, limited against the displacement
// threshold and mapped back to a voltage by the exact inverse filter. In
// LevelMode the voltage itself is limited against the tension threshold.
type Limiter struct {
	sampleRate float64
	alpha      float64
	mode       LimiterMode

	env   *dynamics.Envelope
	delay *delay.Line

	toDisplacement *biquad.DF1
	toVoltage      *biquad.DF1
	meter          *biquad.DF1
}

// NewLimiter creates a limiter for m at sampleRate. Attack and hold
// capacities come from cfg.Processor.
func NewLimiter(m speaker.Model, sampleRate float64, cfg Config) (*Limiter, error) {
	env, err := dynamics.NewEnvelope(sampleRate, cfg.Processor.MaxAttackMs, cfg.Processor.MaxHoldMs)
	if err != nil {
		return nil, fmt.Errorf("protect: limiter: %w", err)
	}

	line, err := delay.New(env.MaxAttackSamples())
	if err != nil {
		return nil, fmt.Errorf("protect: limiter look-ahead: %w", err)
	}

	l := &Limiter{
		sampleRate:     sampleRate,
		alpha:          cfg.StabilityMargin,
		mode:           cfg.LimiterMode,
		env:            env,
		delay:          line,
		toDisplacement: biquad.NewDF1(biquad.Identity()),
		toVoltage:      biquad.NewDF1(biquad.Identity()),
		meter:          biquad.NewDF1(biquad.Identity()),
	}

	if err := l.SetModel(m); err != nil {
		return nil, err
	}

	return l, nil
}

// SetModel implements Strategy.
func (l *Limiter) SetModel(m speaker.Model) error {
	xu, err := speaker.StabilizedExcursionFilter(m, l.sampleRate, l.alpha)
	if err != nil {
		return fmt.Errorf("protect: limiter: %w", err)
	}

	ux, err := design.Invert(xu)
	if err != nil {
		return fmt.Errorf("protect: limiter: %w", err)
	}

	l.toDisplacement.SetCoefficients(xu)
	l.toVoltage.SetCoefficients(ux)
	l.meter.SetCoefficients(xu)

	return nil
}

// Mode returns the active limiter mode.
func (l *Limiter) Mode() LimiterMode {
	return l.mode
}

// SetMode switches the limiter mode. The look-ahead buffer holds values
// of the old mode's unit, so a change clears the state.
func (l *Limiter) SetMode(mode LimiterMode) {
	if mode == l.mode {
		return
	}

	l.mode = mode
	l.Reset()
}

// Process implements Strategy.
func (l *Limiter) Process(dry float64, c *Controls) (wet, displacementMm float64) {
	in := dry * c.InputGain

	var (
		v, threshold float64
		scale        = 1.0
	)

	if l.mode == DisplacementMode {
		v = l.toDisplacement.ProcessSample(in)
		threshold = c.ThresholdMm * 1e-3
		scale = c.SpeakerGain
	} else {
		v = in
		threshold = c.ThresholdV
	}

	l.delay.Write(v)

	l.env.SetTimes(c.AttackMs, c.HoldMs, c.ReleaseMs)
	g := l.env.Process(dynamics.ComputeGain(math.Abs(v)*scale, threshold, c.Knee))
	limited := g * l.delay.Read(l.env.AttackSamples())

	if l.mode == DisplacementMode {
		return l.toVoltage.ProcessSample(limited), math.Abs(limited * c.SpeakerGain * 1e3)
	}

	return limited, math.Abs(l.meter.ProcessSample(limited) * c.SpeakerGain * 1e3)
}

// FlushDenormals implements Strategy.
func (l *Limiter) FlushDenormals() {
	biquad.FlushAll(l.toDisplacement, l.toVoltage, l.meter)
}

// Reset implements Strategy.
func (l *Limiter) Reset() {
	l.env.Reset()
	l.delay.Reset()
	biquad.ResetAll(l.toDisplacement, l.toVoltage, l.meter)
}
