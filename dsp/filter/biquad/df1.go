package biquad

import "github.com/cwbudde/algo-xmax/dsp/core"

// DF1 runs Coefficients in Direct Form I on the last two inputs and outputs:
//
//	y = B0*x + B1*x[-1] + B2*x[-2] - A1*y[-1] - A2*y[-2]
type DF1 struct {
	Coefficients

	in, out [2]float64
}

// NewDF1 returns a DF1 at rest.
func NewDF1(c Coefficients) *DF1 {
	return &DF1{Coefficients: c}
}

// SetCoefficients swaps the coefficients. The history is kept.
func (f *DF1) SetCoefficients(c Coefficients) {
	f.Coefficients = c
}

// ProcessSample advances the filter by one sample.
func (f *DF1) ProcessSample(x float64) float64 {
	y := f.B0*x + f.B1*f.in[0] + f.B2*f.in[1] - f.A1*f.out[0] - f.A2*f.out[1]

	f.in = [2]float64{x, f.in[0]}
	f.out = [2]float64{y, f.out[0]}

	return y
}

// Reset clears the history.
func (f *DF1) Reset() {
	f.in = [2]float64{}
	f.out = [2]float64{}
}

// FlushDenormals zeroes history values in the subnormal range.
func (f *DF1) FlushDenormals() {
	for i := range 2 {
		f.in[i] = core.FlushDenormals(f.in[i])
		f.out[i] = core.FlushDenormals(f.out[i])
	}
}
