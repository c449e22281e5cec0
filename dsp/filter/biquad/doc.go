// Package biquad provides second-order IIR filter runtime primitives.
//
// Two realizations share the same [Coefficients]:
//
//   - [Section] is Direct Form II Transposed. Its state is an accumulator, so
//     coefficients may be replaced between any two samples. The adaptive
//     compensation and shelving filters use it.
//   - [DF1] is Direct Form I. It keeps the last two inputs and outputs and is
//     used for the fixed voltage/displacement estimators.
//
// Coefficient design lives in dsp/filter/design.
package biquad
