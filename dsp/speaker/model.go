package speaker

import (
	"fmt"
	"math"
)

// Parameters are the Thiele/Small parameters of a driver in SI units.
type Parameters struct {
	Fs  float64 // resonance frequency (Hz)
	Rec float64 // voice-coil DC resistance (Ω)
	Lec float64 // voice-coil inductance (H)
	Qms float64 // mechanical Q
	Qes float64 // electrical Q
	Qts float64 // total Q
	Mms float64 // moving mass (kg)
	Cms float64 // suspension compliance (m/N)
	Bl  float64 // force factor (T·m)
	Vas float64 // equivalent air volume (m³)
	Sd  float64 // radiating area (m²)
}

// Model is an immutable driver description with its derived quantities.
type Model struct {
	Name string
	Parameters

	rms float64
	qs  float64
}

// NewModel validates p and derives the mechanical resistance and the
// stability quality factor.
func NewModel(name string, p Parameters) (Model, error) {
	positive := []struct {
		label string
		v     float64
	}{
		{"resonance frequency", p.Fs},
		{"Rec", p.Rec},
		{"Qms", p.Qms},
		{"Mms", p.Mms},
		{"Cms", p.Cms},
		{"Bl", p.Bl},
	}

	for _, f := range positive {
		if f.v <= 0 || math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return Model{}, fmt.Errorf("speaker: %s must be positive and finite: %f", f.label, f.v)
		}
	}

	m := Model{Name: name, Parameters: p}
	m.rms = 1 / (2 * math.Pi * p.Fs * p.Cms * p.Qms)
	m.qs = math.Sqrt(p.Mms/p.Cms) / (m.rms + m.ElectricalDamping())

	return m, nil
}

// Rms returns the mechanical resistance (kg/s).
func (m Model) Rms() float64 { return m.rms }

// Qs returns the quality factor of the driven system, including the
// electrical damping of a voltage source.
func (m Model) Qs() float64 { return m.qs }

// ElectricalDamping returns Bl²/Rec, the damping the amplifier adds.
func (m Model) ElectricalDamping() float64 {
	return m.Bl * m.Bl / m.Rec
}

// ExcursionDC returns the static displacement per volt (m/V).
func (m Model) ExcursionDC() float64 {
	return m.Bl / m.Rec * m.Cms
}

// String implements fmt.Stringer.
func (m Model) String() string {
	return fmt.Sprintf("%s (fs=%.1f Hz, Qs=%.3f)", m.Name, m.Fs, m.qs)
}
