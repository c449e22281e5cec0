package design

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-xmax/dsp/filter/biquad"
)

const tol = 1e-9

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func relEqual(a, b, eps float64) bool {
	scale := math.Max(math.Abs(a), math.Abs(b))
	if scale == 0 {
		return true
	}

	return math.Abs(a-b)/scale <= eps
}

// excursionLike is a voltage to displacement model of a small woofer:
// Bl/Rec over Mms*s^2 + (Rms + Bl^2/Rec)*s + 1/Cms.
func excursionLike() Analog {
	const (
		mms = 8.88e-3
		cms = 560e-6
		rms = 1.898
		bl  = 5.74
		rec = 6.4
	)

	return Analog{
		B: [3]float64{0, 0, bl / rec},
		A: [3]float64{mms, rms + bl*bl/rec, 1 / cms},
	}
}

func analogCases() map[string]Analog {
	return map[string]Analog{
		"excursion": excursionLike(),
		"lowpass":   {B: [3]float64{0, 0, 1}, A: [3]float64{1 / (2 * math.Pi * 500 * 2 * math.Pi * 500), 1.414 / (2 * math.Pi * 500), 1}},
		"compensation": {
			B: [3]float64{8.88e-3, 7.05, 1785.7},
			A: [3]float64{8.88e-3, 12.3, 3600},
		},
		"bandpass-like": {B: [3]float64{0, 3, 2}, A: [3]float64{0.001, 1, 50}},
	}
}

func TestBilinear_NormalizesA0AndKeepsDC(t *testing.T) {
	for name, h := range analogCases() {
		for _, sr := range []float64{22050, 44100, 48000, 96000, 192000} {
			c, err := Bilinear(h, sr)
			if err != nil {
				t.Fatalf("%s @ %g: Bilinear() error = %v", name, sr, err)
			}

			assertFiniteCoefficients(t, c)

			if !relEqual(c.DCGain(), h.DCGain(), tol) {
				t.Fatalf("%s @ %g: digital DC=%g analog DC=%g", name, sr, c.DCGain(), h.DCGain())
			}
		}
	}
}

func TestBilinear_ClosedForm(t *testing.T) {
	// H(s) = 1/(s+1) at fs = 0.5 gives k = 1:
	// b = (0 + 0 + 1, 2, 1), a = (1 + 1, 2, -1 + 1) -> normalized by 2.
	h := Analog{B: [3]float64{0, 0, 1}, A: [3]float64{0, 1, 1}}

	c, err := Bilinear(h, 0.5)
	if err != nil {
		t.Fatal(err)
	}

	want := biquad.Coefficients{B0: 0.5, B1: 1, B2: 0.5, A1: 1, A2: 0}
	if c != want {
		t.Fatalf("got %#v, want %#v", c, want)
	}
}

func TestBilinear_Invalid(t *testing.T) {
	if _, err := Bilinear(excursionLike(), 0); err == nil {
		t.Fatal("expected error for zero sample rate")
	}

	if _, err := Bilinear(excursionLike(), math.NaN()); err == nil {
		t.Fatal("expected error for NaN sample rate")
	}

	if _, err := Bilinear(Analog{B: [3]float64{1, 1, 1}}, 48000); !errors.Is(err, ErrDegenerate) {
		t.Fatalf("expected ErrDegenerate for zero denominator, got %v", err)
	}
}

func TestAnalog_ResponseAtZeroIsDCGain(t *testing.T) {
	h := excursionLike()
	if !almostEqual(real(h.Response(0)), h.DCGain(), 1e-15) {
		t.Fatalf("H(0)=%v DCGain=%v", h.Response(0), h.DCGain())
	}

	// Mass controlled region falls at 12 dB/octave.
	ratio := h.MagnitudeAt(2000) / h.MagnitudeAt(4000)
	if !almostEqual(ratio, 4, 0.1) {
		t.Fatalf("high-frequency slope ratio=%g, want about 4", ratio)
	}
}

func TestLowShelf_Behavior(t *testing.T) {
	sr := 48000.0

	ls := LowShelf(500, 6, defaultQ, sr)
	if !(mag(ls, 100, sr) > mag(ls, 10000, sr)) {
		t.Fatal("low shelf tilt check failed")
	}

	cut := LowShelf(72, -9, defaultQ, sr)
	if !almostEqual(cut.DCGain(), math.Pow(10, -9.0/20), 1e-9) {
		t.Fatalf("DC gain=%g, want %g", cut.DCGain(), math.Pow(10, -9.0/20))
	}

	if !almostEqual(mag(cut, 20000, sr), 1, 1e-3) {
		t.Fatalf("high-frequency gain=%g, want about 1", mag(cut, 20000, sr))
	}

	for _, sr := range []float64{44100, 48000, 96000, 192000} {
		for _, gain := range []float64{-24, -6, 0, 6} {
			c := LowShelf(45, gain, defaultQ, sr)
			assertFiniteCoefficients(t, c)
			assertStableSection(t, c)
		}
	}
}

func TestLowShelf_ZeroGainIsIdentity(t *testing.T) {
	c := LowShelf(172.11, 0, 0.707, 48000)

	if !almostEqual(c.B0, 1, 1e-15) || !almostEqual(c.B1, c.A1, 1e-15) || !almostEqual(c.B2, c.A2, 1e-15) {
		t.Fatalf("0 dB shelf is not identity: %#v", c)
	}
}

func TestLowShelf_InvalidInputs(t *testing.T) {
	if got := LowShelf(100, 3, 0.7, 0); got != (biquad.Coefficients{}) {
		t.Fatalf("expected zero coefficients for invalid sample rate, got %#v", got)
	}

	if got := LowShelf(30000, 3, 0.7, 48000); got != (biquad.Coefficients{}) {
		t.Fatalf("expected zero coefficients above Nyquist, got %#v", got)
	}

	// q <= 0 falls back to the Butterworth Q.
	if LowShelf(100, 3, 0, 48000) != LowShelf(100, 3, defaultQ, 48000) {
		t.Fatal("q<=0 should use the default Q")
	}
}

func mag(c biquad.Coefficients, freq, sr float64) float64 {
	h := c.Response(freq, sr)
	return cmplx.Abs(h)
}

func assertFiniteCoefficients(t *testing.T, c biquad.Coefficients) {
	t.Helper()

	vals := []float64{c.B0, c.B1, c.B2, c.A1, c.A2}
	for i, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("coefficient %d is not finite: %v", i, v)
		}
	}
}

func assertStableSection(t *testing.T, c biquad.Coefficients) {
	t.Helper()

	if !c.IsStable() {
		t.Fatalf("unstable poles: %v", c.Poles())
	}
}
