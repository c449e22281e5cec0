package design

import (
	"fmt"

	"github.com/cwbudde/algo-xmax/dsp/filter/biquad"
)

// StabilizeZeros transforms h with [Bilinear], reflects zeros on or outside
// the unit circle with [ReflectZeros] and rescales the gain so the digital
// DC gain equals the analog one. The returned filter is minimum phase and
// can be inverted into a stable filter.
func StabilizeZeros(h Analog, sampleRate, alpha float64) (biquad.Coefficients, error) {
	if alpha <= 0 || alpha >= 1 || !isFinite(alpha) {
		return biquad.Coefficients{}, fmt.Errorf("design: stability margin must be in (0, 1): %f", alpha)
	}

	c, err := Bilinear(h, sampleRate)
	if err != nil {
		return biquad.Coefficients{}, err
	}

	zpk, err := TFToZPK(c)
	if err != nil {
		return biquad.Coefficients{}, err
	}

	zpk = ReflectZeros(zpk, alpha)
	reflected := ZPKToTF(zpk)

	analogDC := h.DCGain()
	digitalDC := reflected.DCGain()

	if digitalDC == 0 || !isFinite(digitalDC) || !isFinite(analogDC) {
		return biquad.Coefficients{}, fmt.Errorf("%w: DC gain analog=%g digital=%g", ErrDegenerate, analogDC, digitalDC)
	}

	zpk.Gain *= analogDC / digitalDC

	return ZPKToTF(zpk), nil
}

// Invert returns the reciprocal filter 1/H(z), normalized by its new a0
// (the old B0). The inverse is stable only if every zero of c lies inside
// the unit circle.
func Invert(c biquad.Coefficients) (biquad.Coefficients, error) {
	if c.B0 == 0 || !isFinite(c.B0) {
		return biquad.Coefficients{}, fmt.Errorf("%w: cannot invert with B0=%g", ErrDegenerate, c.B0)
	}

	return normalizeBiquad(1, c.A1, c.A2, c.B0, c.B1, c.B2), nil
}
