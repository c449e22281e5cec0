package biquad

import "github.com/cwbudde/algo-xmax/dsp/core"

// Coefficients describes one second-order section with a0 normalized to 1:
//
//	H(z) = (B0 + B1*z^-1 + B2*z^-2) / (1 + A1*z^-1 + A2*z^-2)
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// Identity returns the pass-through section.
func Identity() Coefficients {
	return Coefficients{B0: 1}
}

// Scaled returns c with its numerator multiplied by g.
func (c Coefficients) Scaled(g float64) Coefficients {
	c.B0 *= g
	c.B1 *= g
	c.B2 *= g

	return c
}

// Filter is a running second-order filter. Both realizations in this
// package satisfy it.
type Filter interface {
	SetCoefficients(c Coefficients)
	ProcessSample(x float64) float64
	FlushDenormals()
	Reset()
}

// FlushAll flushes the denormal state of every filter.
func FlushAll(filters ...Filter) {
	for _, f := range filters {
		f.FlushDenormals()
	}
}

// ResetAll clears the state of every filter.
func ResetAll(filters ...Filter) {
	for _, f := range filters {
		f.Reset()
	}
}

// Section runs Coefficients in Direct Form II Transposed:
//
//	y  = B0*x + s1
//	s1 = B1*x - A1*y + s2
//	s2 = B2*x - A2*y
//
// Its two accumulators carry no coefficient history, so SetCoefficients may
// be called between any two samples.
type Section struct {
	Coefficients

	s1, s2 float64
}

// NewSection returns a Section at rest.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// SetCoefficients swaps the coefficients in place.
func (s *Section) SetCoefficients(c Coefficients) {
	s.Coefficients = c
}

// ProcessSample advances the section by one sample.
func (s *Section) ProcessSample(x float64) float64 {
	y := s.B0*x + s.s1
	s.s1 = s.B1*x - s.A1*y + s.s2
	s.s2 = s.B2*x - s.A2*y

	return y
}

// Reset zeroes both accumulators.
func (s *Section) Reset() {
	s.s1, s.s2 = 0, 0
}

// FlushDenormals zeroes accumulators in the subnormal range.
func (s *Section) FlushDenormals() {
	s.s1 = core.FlushDenormals(s.s1)
	s.s2 = core.FlushDenormals(s.s2)
}
