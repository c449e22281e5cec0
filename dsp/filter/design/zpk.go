package design

import (
	"fmt"
	"math/cmplx"

	"github.com/cwbudde/algo-xmax/dsp/filter/biquad"
	"github.com/cwbudde/algo-xmax/internal/polyroot"
)

// ZPK is the zero/pole/gain form of a biquad:
//
//	H(z) = Gain * (1 - z0/z)(1 - z1/z) / ((1 - p0/z)(1 - p1/z))
type ZPK struct {
	Zeros [2]complex128
	Poles [2]complex128
	Gain  float64
}

// TFToZPK factors c into two zeros, two poles and a gain. The gain is the
// leading numerator coefficient, so c.B0 must be non-zero.
func TFToZPK(c biquad.Coefficients) (ZPK, error) {
	k := c.B0
	if k == 0 || !isFinite(k) {
		return ZPK{}, fmt.Errorf("%w: leading numerator coefficient %g", ErrDegenerate, k)
	}

	zeros, _, err := polyroot.Quadratic(1, c.B1/k, c.B2/k)
	if err != nil {
		return ZPK{}, fmt.Errorf("design: zeros: %w", err)
	}

	poles, _, err := polyroot.Quadratic(1, c.A1, c.A2)
	if err != nil {
		return ZPK{}, fmt.Errorf("design: poles: %w", err)
	}

	return ZPK{Zeros: zeros, Poles: poles, Gain: k}, nil
}

// ZPKToTF rebuilds biquad coefficients from zero/pole/gain form. Only the
// real parts of the expanded products are kept, which is exact for real or
// conjugate pairs.
func ZPKToTF(zpk ZPK) biquad.Coefficients {
	b1, b2 := polyroot.Expand(zpk.Zeros)
	a1, a2 := polyroot.Expand(zpk.Poles)

	return biquad.Coefficients{
		B0: zpk.Gain,
		B1: zpk.Gain * b1,
		B2: zpk.Gain * b2,
		A1: a1,
		A2: a2,
	}
}

// ReflectZeros moves every zero with |z| >= 1 to (1-alpha)/conj(z). The
// result has magnitude at most 1-alpha, strictly inside the unit circle for
// alpha in (0, 1). Zeros already inside are kept.
func ReflectZeros(zpk ZPK, alpha float64) ZPK {
	for i, z := range zpk.Zeros {
		if cmplx.Abs(z) >= 1 {
			zpk.Zeros[i] = complex(1-alpha, 0) / cmplx.Conj(z)
		}
	}

	return zpk
}
