package biquad

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-xmax/dsp/core"
	"github.com/cwbudde/algo-xmax/internal/polyroot"
)

// Response evaluates H(z) on the unit circle at freqHz.
func (c *Coefficients) Response(freqHz, sampleRate float64) complex128 {
	zInv := cmplx.Rect(1, -2*math.Pi*freqHz/sampleRate)

	num := polyroot.PolyEval([]complex128{complex(c.B2, 0), complex(c.B1, 0), complex(c.B0, 0)}, zInv)
	den := polyroot.PolyEval([]complex128{complex(c.A2, 0), complex(c.A1, 0), 1}, zInv)

	return num / den
}

// DCGain is H(1).
func (c *Coefficients) DCGain() float64 {
	return (c.B0 + c.B1 + c.B2) / (1 + c.A1 + c.A2)
}

// MagnitudeSquared returns |H|^2 at freqHz.
func (c *Coefficients) MagnitudeSquared(freqHz, sampleRate float64) float64 {
	h := c.Response(freqHz, sampleRate)

	return real(h)*real(h) + imag(h)*imag(h)
}

// MagnitudeDB returns the gain at freqHz in dB.
func (c *Coefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return core.PowerToDB(c.MagnitudeSquared(freqHz, sampleRate))
}
