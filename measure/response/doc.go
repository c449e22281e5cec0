// Package response measures magnitude responses of sample processors.
//
// An impulse is fed through the processor, the impulse response is zero
// padded to the FFT size and transformed. The magnitudes of the bins from
// DC to Nyquist form the measured response:
//
//	a := response.NewAnalyzer(48000, 16384)
//	r, err := a.MeasureProcessor(biquad.NewDF1(coeffs))
//	fmt.Printf("|H(100 Hz)| = %.3f\n", r.At(100))
package response
