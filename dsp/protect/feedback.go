package protect

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-xmax/dsp/core"
	"github.com/cwbudde/algo-xmax/dsp/delay"
	"github.com/cwbudde/algo-xmax/dsp/effects/dynamics"
	"github.com/cwbudde/algo-xmax/dsp/filter/biquad"
	"github.com/cwbudde/algo-xmax/dsp/speaker"
)

// complianceMargin scales the minimum compliance below the value that
// would just reach the threshold with a DC input.
const complianceMargin = 0.9

// Feedback protects one channel by lowering the modelled compliance.
//
// The excursion of the previous output sample is estimated with the
// driver model. While it exceeds the threshold the target compliance is
// the minimum compliance, otherwise the nominal one; the compliance glides
// toward the target with separate attack and release times. Every sample
// the compensation filter is resynthesized from the current compliance
// and applied both to the input (closing the loop) and to the look-ahead
// delayed input (the output).
type Feedback struct {
	sampleRate float64
	model      speaker.Model
	comp       *speaker.Compensator

	// estimator maps the previous output to displacement, meter does the
	// same for the delayed output.
	estimator *biquad.DF1
	meter     *biquad.DF1

	// loop compensates the undelayed path, output the delayed one.
	loop   *biquad.Section
	output *biquad.Section
	delay  *delay.Line

	cmsComp float64
	lastOut float64

	attackMs    float64
	releaseMs   float64
	attackCoef  float64
	releaseCoef float64
}

// NewFeedback creates a feedback strategy for m at sampleRate. The
// look-ahead capacity is cfg.Processor.MaxLookaheadMs.
func NewFeedback(m speaker.Model, sampleRate float64, cfg Config) (*Feedback, error) {
	line, err := delay.New(core.MsToSamples(cfg.Processor.MaxLookaheadMs, sampleRate))
	if err != nil {
		return nil, fmt.Errorf("protect: feedback look-ahead: %w", err)
	}

	f := &Feedback{
		sampleRate: sampleRate,
		estimator:  biquad.NewDF1(biquad.Identity()),
		meter:      biquad.NewDF1(biquad.Identity()),
		loop:       biquad.NewSection(biquad.Identity()),
		output:     biquad.NewSection(biquad.Identity()),
		delay:      line,
		attackMs:   -1,
		releaseMs:  -1,
	}

	if err := f.SetModel(m); err != nil {
		return nil, err
	}

	f.cmsComp = m.Cms

	return f, nil
}

// SetModel implements Strategy.
func (f *Feedback) SetModel(m speaker.Model) error {
	xu, err := speaker.ExcursionFilter(m, f.sampleRate)
	if err != nil {
		return fmt.Errorf("protect: feedback: %w", err)
	}

	if f.comp == nil {
		f.comp, err = speaker.NewCompensator(m, f.sampleRate)
		if err != nil {
			return fmt.Errorf("protect: feedback: %w", err)
		}
	} else {
		f.comp.SetModel(m)
	}

	f.model = m
	f.estimator.SetCoefficients(xu)
	f.meter.SetCoefficients(xu)

	// The glide continues from the current compliance, capped by the new
	// nominal value.
	if f.cmsComp > 0 {
		f.cmsComp = math.Min(f.cmsComp, m.Cms)
	}

	return nil
}

// Compliance returns the current compensated compliance (m/N).
func (f *Feedback) Compliance() float64 {
	return f.cmsComp
}

// MinCompliance returns the compliance targeted while the threshold is
// exceeded, clamped to (0, Cms].
func (f *Feedback) MinCompliance(c *Controls) float64 {
	xmax := c.ThresholdMm * 1e-3
	cmsMin := complianceMargin * xmax * f.model.Rec / (c.SpeakerGain * c.InputGain * f.model.Bl)

	if !(cmsMin > 0) || cmsMin > f.model.Cms {
		return f.model.Cms
	}

	return cmsMin
}

// Process implements Strategy.
func (f *Feedback) Process(dry float64, c *Controls) (wet, displacementMm float64) {
	f.updateTimes(c.AttackMs, c.ReleaseMs)

	in := dry * c.InputGain
	f.delay.Write(in)

	x := f.estimator.ProcessSample(f.lastOut) * c.SpeakerGain

	target := f.model.Cms
	if math.Abs(x) > c.ThresholdMm*1e-3 {
		target = f.MinCompliance(c)
	}

	f.cmsComp = dynamics.Smooth(target, f.cmsComp, f.attackCoef, f.releaseCoef)

	coeffs := f.comp.Coefficients(f.cmsComp)
	f.loop.SetCoefficients(coeffs)
	f.output.SetCoefficients(coeffs)

	f.lastOut = f.loop.ProcessSample(in)
	wet = f.output.ProcessSample(f.delay.Read(core.MsToSamples(c.LookaheadMs, f.sampleRate)))

	displacementMm = math.Abs(f.meter.ProcessSample(wet) * 1e3 * c.SpeakerGain)

	return wet, displacementMm
}

func (f *Feedback) updateTimes(attackMs, releaseMs float64) {
	if attackMs != f.attackMs {
		f.attackMs = attackMs
		f.attackCoef = dynamics.TimeCoefficient(attackMs, f.sampleRate)
	}

	if releaseMs != f.releaseMs {
		f.releaseMs = releaseMs
		f.releaseCoef = dynamics.TimeCoefficient(releaseMs, f.sampleRate)
	}
}

// FlushDenormals implements Strategy.
func (f *Feedback) FlushDenormals() {
	biquad.FlushAll(f.estimator, f.meter, f.loop, f.output)
	f.lastOut = core.FlushDenormals(f.lastOut)
}

// Reset implements Strategy.
func (f *Feedback) Reset() {
	biquad.ResetAll(f.estimator, f.meter, f.loop, f.output)
	f.delay.Reset()
	f.cmsComp = f.model.Cms
	f.lastOut = 0
}
