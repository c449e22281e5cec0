package protect

import "github.com/cwbudde/algo-xmax/dsp/core"

// Control ranges. Times are in milliseconds, thresholds in millimetres
// (displacement) or volts (tension). Gain ranges are in dB; Controls
// carry the linear equivalents.
const (
	MinAttackMs    = 0.04
	MaxAttackMs    = 20.0
	MinHoldMs      = 0.0
	MaxHoldMs      = 100.0
	MinReleaseMs   = 0.0
	MaxReleaseMs   = 4000.0
	MinLookaheadMs = 0.0
	MaxLookaheadMs = 100.0

	MinDisplacementThresholdMm = 0.11
	MaxDisplacementThresholdMm = 30.0
	MinTensionThresholdV       = 0.01
	MaxTensionThresholdV       = 2.0

	MinInputGainDB   = -12.0
	MaxInputGainDB   = 12.0
	MinSpeakerGainDB = 0.0
	MaxSpeakerGainDB = 60.0
	MinOutputGainDB  = -12.0
	MaxOutputGainDB  = 12.0
)

var (
	minInputGain   = core.DBToLinear(MinInputGainDB)
	maxInputGain   = core.DBToLinear(MaxInputGainDB)
	minSpeakerGain = core.DBToLinear(MinSpeakerGainDB)
	maxSpeakerGain = core.DBToLinear(MaxSpeakerGainDB)
	minOutputGain  = core.DBToLinear(MinOutputGainDB)
	maxOutputGain  = core.DBToLinear(MaxOutputGainDB)
)

// Controls are the already smoothed control values for one sample.
type Controls struct {
	InputGain   float64 // applied before analysis
	SpeakerGain float64 // amplifier gain between output and driver
	OutputGain  float64 // applied after the dry/wet mix

	AttackMs    float64
	HoldMs      float64
	ReleaseMs   float64
	LookaheadMs float64 // feedback strategy only

	ThresholdMm float64 // displacement threshold
	ThresholdV  float64 // tension threshold, limiter level mode only
	Knee        float64 // fraction of the threshold, 0..1
	Mix         float64 // 0 dry .. 1 wet

	Model int // catalog index
}

// DefaultControls returns neutral settings: unity gains, 1 mm threshold,
// hard knee, fully wet.
func DefaultControls() Controls {
	return Controls{
		InputGain:   1,
		SpeakerGain: 1,
		OutputGain:  1,
		AttackMs:    MinAttackMs,
		HoldMs:      0,
		ReleaseMs:   0,
		LookaheadMs: 0,
		ThresholdMm: 1,
		ThresholdV:  1,
		Knee:        0,
		Mix:         1,
	}
}

// Clamped returns c with every value inside its range. NaN maps to the
// lower bound.
func (c Controls) Clamped() Controls {
	c.InputGain = core.Clamp(c.InputGain, minInputGain, maxInputGain)
	c.SpeakerGain = core.Clamp(c.SpeakerGain, minSpeakerGain, maxSpeakerGain)
	c.OutputGain = core.Clamp(c.OutputGain, minOutputGain, maxOutputGain)

	c.AttackMs = core.Clamp(c.AttackMs, MinAttackMs, MaxAttackMs)
	c.HoldMs = core.Clamp(c.HoldMs, MinHoldMs, MaxHoldMs)
	c.ReleaseMs = core.Clamp(c.ReleaseMs, MinReleaseMs, MaxReleaseMs)
	c.LookaheadMs = core.Clamp(c.LookaheadMs, MinLookaheadMs, MaxLookaheadMs)

	c.ThresholdMm = core.Clamp(c.ThresholdMm, MinDisplacementThresholdMm, MaxDisplacementThresholdMm)
	c.ThresholdV = core.Clamp(c.ThresholdV, MinTensionThresholdV, MaxTensionThresholdV)
	c.Knee = core.Clamp(c.Knee, 0, 1)
	c.Mix = core.Clamp(c.Mix, 0, 1)

	return c
}

// ControlSource supplies the controls for sample i of the current block.
type ControlSource interface {
	At(i int) Controls
}

// Static is a ControlSource that returns the same controls for every
// sample.
type Static Controls

// At implements ControlSource.
func (s Static) At(int) Controls {
	return Controls(s)
}

// Ramp is a ControlSource backed by one Controls value per sample. Indices
// past the end repeat the last value.
type Ramp []Controls

// At implements ControlSource.
func (r Ramp) At(i int) Controls {
	if len(r) == 0 {
		return DefaultControls()
	}

	if i >= len(r) {
		i = len(r) - 1
	} else if i < 0 {
		i = 0
	}

	return r[i]
}
