package speaker

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-xmax/dsp/filter/biquad"
	"github.com/cwbudde/algo-xmax/dsp/filter/design"
)

// DefaultStabilityMargin is the zero-reflection margin used for the
// excursion estimator that feeds an inverse filter.
const DefaultStabilityMargin = 0.95

// ExcursionAnalog returns the voltage-to-displacement transfer function
//
//	X/U(s) = (Bl/Rec) / (Mms·s² + (Rms + Bl²/Rec)·s + 1/Cms)
//
// in metres per volt.
func ExcursionAnalog(m Model) design.Analog {
	return design.Analog{
		B: [3]float64{0, 0, m.Bl / m.Rec},
		A: [3]float64{m.Mms, m.rms + m.ElectricalDamping(), 1 / m.Cms},
	}
}

// ExcursionFilter returns the bilinear transform of [ExcursionAnalog]. Its
// double zero at Nyquist makes it unsuitable for inversion.
func ExcursionFilter(m Model, sampleRate float64) (biquad.Coefficients, error) {
	c, err := design.Bilinear(ExcursionAnalog(m), sampleRate)
	if err != nil {
		return biquad.Coefficients{}, fmt.Errorf("speaker: excursion filter for %s: %w", m.Name, err)
	}

	return c, nil
}

// StabilizedExcursionFilter returns the excursion estimator with its zeros
// reflected inside the unit circle by alpha and its DC gain restored.
func StabilizedExcursionFilter(m Model, sampleRate, alpha float64) (biquad.Coefficients, error) {
	c, err := design.StabilizeZeros(ExcursionAnalog(m), sampleRate, alpha)
	if err != nil {
		return biquad.Coefficients{}, fmt.Errorf("speaker: stabilized excursion filter for %s: %w", m.Name, err)
	}

	return c, nil
}

// VoltageFilter returns the displacement-to-voltage filter, the exact
// inverse of [StabilizedExcursionFilter].
func VoltageFilter(m Model, sampleRate, alpha float64) (biquad.Coefficients, error) {
	xu, err := StabilizedExcursionFilter(m, sampleRate, alpha)
	if err != nil {
		return biquad.Coefficients{}, err
	}

	ux, err := design.Invert(xu)
	if err != nil {
		return biquad.Coefficients{}, fmt.Errorf("speaker: voltage filter for %s: %w", m.Name, err)
	}

	return ux, nil
}

// Reference values selecting and shaping the compensated damping.
const (
	// ReferenceQ is the quality factor separating resonant drivers.
	ReferenceQ = 0.707
	// ComplianceThreshold is the compliance ratio at which a resonant
	// driver reaches ReferenceQ.
	ComplianceThreshold = 0.5
)

// Resonance selects the damping formula used under compensation.
type Resonance int

const (
	// NonResonant drivers (Qs ≤ ReferenceQ) keep at least their own Rms
	// and are damped to ReferenceQ as the compliance drops.
	NonResonant Resonance = iota
	// Resonant drivers glide their quality factor from Qs down to
	// ReferenceQ as the compliance ratio drops to ComplianceThreshold.
	Resonant
)

// String implements fmt.Stringer.
func (r Resonance) String() string {
	switch r {
	case NonResonant:
		return "non-resonant"
	case Resonant:
		return "resonant"
	default:
		return "unknown"
	}
}

// Resonance classifies m by its Qs.
func (m Model) Resonance() Resonance {
	if m.qs > ReferenceQ {
		return Resonant
	}

	return NonResonant
}

// CompensatedRms returns the mechanical resistance that keeps the system
// damped when the compliance is lowered to cmsComp. At cmsComp = Cms it
// equals Rms.
func (m Model) CompensatedRms(cmsComp float64) float64 {
	electrical := m.ElectricalDamping()
	stiffness := math.Sqrt(m.Mms / cmsComp)

	if m.Resonance() == NonResonant {
		return math.Max(m.rms, stiffness/ReferenceQ-electrical)
	}

	gamma := (m.qs - ReferenceQ) / (1 - ComplianceThreshold)
	qsComp := math.Max(ReferenceQ, gamma*(cmsComp/m.Cms-ComplianceThreshold)+ReferenceQ)

	return stiffness/qsComp - electrical
}

// CompensationAnalog returns the ratio of the nominal mechanical
// impedance to the one with compliance cmsComp and the matching
// compensated resistance.
func CompensationAnalog(m Model, cmsComp float64) design.Analog {
	electrical := m.ElectricalDamping()

	return design.Analog{
		B: [3]float64{m.Mms, m.rms + electrical, 1 / m.Cms},
		A: [3]float64{m.Mms, m.CompensatedRms(cmsComp) + electrical, 1 / cmsComp},
	}
}

// Compensator synthesizes compliance-compensation filters for one model at
// one sample rate. Coefficients is allocation free and meant to be called
// every sample.
type Compensator struct {
	model      Model
	sampleRate float64
}

// NewCompensator returns a compensator for m at sampleRate.
func NewCompensator(m Model, sampleRate float64) (*Compensator, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("speaker: sample rate must be positive and finite: %f", sampleRate)
	}

	return &Compensator{model: m, sampleRate: sampleRate}, nil
}

// SetModel switches the compensated model.
func (c *Compensator) SetModel(m Model) {
	c.model = m
}

// Model returns the compensated model.
func (c *Compensator) Model() Model {
	return c.model
}

// Coefficients returns the compensation filter for cmsComp. Values outside
// (0, Cms] are clamped to Cms, which yields the identity filter.
func (c *Compensator) Coefficients(cmsComp float64) biquad.Coefficients {
	if !(cmsComp > 0) || cmsComp > c.model.Cms {
		cmsComp = c.model.Cms
	}

	coeffs, err := design.Bilinear(CompensationAnalog(c.model, cmsComp), c.sampleRate)
	if err != nil {
		return biquad.Identity()
	}

	return coeffs
}

// CompensationFilter returns the compensation filter for m at the given
// compliance.
func CompensationFilter(m Model, cmsComp, sampleRate float64) (biquad.Coefficients, error) {
	c, err := NewCompensator(m, sampleRate)
	if err != nil {
		return biquad.Coefficients{}, err
	}

	return c.Coefficients(cmsComp), nil
}
