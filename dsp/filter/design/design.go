package design

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-xmax/dsp/filter/biquad"
)

const defaultQ = 1 / math.Sqrt2

// ErrDegenerate is returned when a transfer function cannot be transformed,
// factored or inverted (zero leading or normalizing coefficient, non-finite
// values).
var ErrDegenerate = errors.New("design: degenerate transfer function")

// Analog is a second-order analog transfer function
//
//	H(s) = (B[0]*s^2 + B[1]*s + B[2]) / (A[0]*s^2 + A[1]*s + A[2])
type Analog struct {
	B [3]float64
	A [3]float64
}

// DCGain returns H(0) = B[2]/A[2].
func (h Analog) DCGain() float64 {
	return h.B[2] / h.A[2]
}

// Response evaluates H(j*2*pi*freqHz).
func (h Analog) Response(freqHz float64) complex128 {
	s := complex(0, 2*math.Pi*freqHz)
	num := (complex(h.B[0], 0)*s+complex(h.B[1], 0))*s + complex(h.B[2], 0)
	den := (complex(h.A[0], 0)*s+complex(h.A[1], 0))*s + complex(h.A[2], 0)

	return num / den
}

// MagnitudeAt returns |H(j*2*pi*freqHz)|.
func (h Analog) MagnitudeAt(freqHz float64) float64 {
	return cmplx.Abs(h.Response(freqHz))
}

// Bilinear converts h to a digital biquad with the substitution
// s = 2*fs*(z-1)/(z+1). The result is normalized so that a0 = 1.
func Bilinear(h Analog, sampleRate float64) (biquad.Coefficients, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return biquad.Coefficients{}, fmt.Errorf("design: sample rate must be > 0 and finite: %f", sampleRate)
	}

	b0, b1, b2 := bilinearPoly(h.B, sampleRate)
	a0, a1, a2 := bilinearPoly(h.A, sampleRate)

	if a0 == 0 || !isFinite(a0) {
		return biquad.Coefficients{}, ErrDegenerate
	}

	return normalizeBiquad(b0, b1, b2, a0, a1, a2), nil
}

// bilinearPoly maps c0*s^2 + c1*s + c2 to d0 + d1*z^-1 + d2*z^-2 without
// normalization.
func bilinearPoly(c [3]float64, sampleRate float64) (d0, d1, d2 float64) {
	k := 2 * sampleRate
	kk := k * k

	d0 = c[0]*kk + c[1]*k + c[2]
	d1 = -2*c[0]*kk + 2*c[2]
	d2 = c[0]*kk - c[1]*k + c[2]

	return d0, d1, d2
}

// LowShelf designs a low-shelf biquad with gain in dB.
func LowShelf(freq, gainDB, q, sampleRate float64) biquad.Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	q = normalizedQ(q)
	cw := math.Cos(w0)
	sw := math.Sin(w0)
	alpha := sw / (2 * q)
	a := math.Pow(10, gainDB/40)
	beta := 2 * math.Sqrt(a) * alpha

	b0 := a * ((a + 1) - (a-1)*cw + beta)
	b1 := 2 * a * ((a - 1) - (a+1)*cw)
	b2 := a * ((a + 1) - (a-1)*cw - beta)
	a0 := (a + 1) + (a-1)*cw + beta
	a1 := -2 * ((a - 1) + (a+1)*cw)
	a2 := (a + 1) + (a-1)*cw - beta

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

func normalizedW0(freq, sampleRate float64) (float64, bool) {
	if sampleRate <= 0 || !isFinite(sampleRate) {
		return 0, false
	}

	nyquist := sampleRate / 2
	if freq <= 0 || freq >= nyquist || !isFinite(freq) {
		return 0, false
	}

	return 2 * math.Pi * freq / sampleRate, true
}

func normalizedQ(q float64) float64 {
	if q <= 0 || !isFinite(q) {
		return defaultQ
	}

	return q
}

func normalizeBiquad(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	if a0 == 0 || !isFinite(a0) {
		return biquad.Coefficients{}
	}

	return biquad.Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
