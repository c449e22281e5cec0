package dynamics

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-xmax/dsp/core"
	"github.com/cwbudde/algo-xmax/dsp/sliding"
)

// SnapThreshold is the level above which the released gain is set to
// exactly 1, so the box average can settle on unity.
const SnapThreshold = 0.999

// Envelope turns a stream of static gains into a smooth look-ahead gain.
//
// Per sample it takes the minimum over the last attack+hold samples,
// applies a one-pole release that may never exceed that minimum, snaps
// values above SnapThreshold to 1 and averages the result over the last
// attack samples. The program path must be delayed by AttackSamples() for
// the gain to be in place when the peak arrives.
type Envelope struct {
	sampleRate float64

	min *sliding.Minimum
	box *sliding.Box

	attackMs  float64
	holdMs    float64
	releaseMs float64

	releaseCoeff float64
	current      float64
}

// NewEnvelope creates an envelope whose attack and hold can grow up to the
// given maxima. Times start at the maxima with no release smoothing.
func NewEnvelope(sampleRate, maxAttackMs, maxHoldMs float64) (*Envelope, error) {
	if err := validateSampleRate(sampleRate); err != nil {
		return nil, fmt.Errorf("dynamics: envelope %w", err)
	}

	if maxAttackMs <= 0 || !isFinite(maxAttackMs) {
		return nil, fmt.Errorf("dynamics: max attack must be > 0: %f", maxAttackMs)
	}

	if maxHoldMs < 0 || !isFinite(maxHoldMs) {
		return nil, fmt.Errorf("dynamics: max hold must be >= 0: %f", maxHoldMs)
	}

	minimum, err := sliding.NewMinimum(max(1, core.MsToSamples(maxAttackMs+maxHoldMs, sampleRate)))
	if err != nil {
		return nil, fmt.Errorf("dynamics: envelope minimum: %w", err)
	}

	box, err := sliding.NewBox(max(1, core.MsToSamples(maxAttackMs, sampleRate)))
	if err != nil {
		return nil, fmt.Errorf("dynamics: envelope average: %w", err)
	}

	e := &Envelope{
		sampleRate:   sampleRate,
		min:          minimum,
		box:          box,
		attackMs:     maxAttackMs,
		holdMs:       maxHoldMs,
		releaseCoeff: 1,
	}
	e.Reset()

	return e, nil
}

// SetTimes updates attack, hold and release in milliseconds. It is cheap
// when nothing changed and safe to call every sample. Windows are clamped
// to the capacity chosen at construction.
func (e *Envelope) SetTimes(attackMs, holdMs, releaseMs float64) {
	if releaseMs != e.releaseMs {
		e.releaseMs = releaseMs
		e.releaseCoeff = TimeCoefficient(releaseMs, e.sampleRate)
	}

	if attackMs == e.attackMs && holdMs == e.holdMs {
		return
	}

	e.attackMs = attackMs
	e.holdMs = holdMs

	e.min.SetSize(core.MsToSamples(attackMs+holdMs, e.sampleRate))
	e.box.SetLength(core.MsToSamples(attackMs, e.sampleRate))
}

// AttackSamples returns the look-ahead the program path must be delayed by.
func (e *Envelope) AttackSamples() int {
	return e.box.Length()
}

// MaxAttackSamples returns the largest look-ahead SetTimes can select.
func (e *Envelope) MaxAttackSamples() int {
	return e.box.MaxLength()
}

// Process consumes one static gain and returns the smoothed gain.
func (e *Envelope) Process(gain float64) float64 {
	m := e.min.Process(gain)

	e.current = math.Min(m, (1-e.releaseCoeff)*e.current+e.releaseCoeff*m)
	if e.current > SnapThreshold {
		e.current = 1
	}

	return e.box.Process(e.current)
}

// Reset returns the envelope to unity gain.
func (e *Envelope) Reset() {
	e.min.Reset()
	e.box.Reset(1)
	e.current = 1
}

func validateSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || !isFinite(sampleRate) {
		return fmt.Errorf("sample rate must be positive and finite: %f", sampleRate)
	}

	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
