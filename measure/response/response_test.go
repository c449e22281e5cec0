package response

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-xmax/dsp/filter/biquad"
	"github.com/cwbudde/algo-xmax/dsp/speaker"
	"github.com/cwbudde/algo-xmax/internal/testutil"
)

func TestMeasure_MatchesAnalyticBiquad(t *testing.T) {
	const (
		sampleRate = 48000.0
		fftSize    = 16384
	)

	m := speaker.DefaultCatalog().At(0)

	c, err := speaker.ExcursionFilter(m, sampleRate)
	if err != nil {
		t.Fatal(err)
	}

	r, err := NewAnalyzer(sampleRate, fftSize).MeasureProcessor(biquad.NewDF1(c))
	if err != nil {
		t.Fatalf("MeasureProcessor() error = %v", err)
	}

	if len(r.Magnitude) != fftSize/2+1 {
		t.Fatalf("len(Magnitude) = %d, want %d", len(r.Magnitude), fftSize/2+1)
	}

	for k := 0; r.BinFrequency(k) <= 2000; k++ {
		want := math.Sqrt(c.MagnitudeSquared(r.BinFrequency(k), sampleRate))
		if got := r.Magnitude[k]; math.Abs(got-want) > 1e-9*want {
			t.Fatalf("bin %d (%.1f Hz): got %g, want %g", k, r.BinFrequency(k), got, want)
		}
	}

	if got, want := r.At(0), m.ExcursionDC(); math.Abs(got-want) > 1e-7*want {
		t.Fatalf("DC magnitude %g, want %g", got, want)
	}
}

func TestMeasure_ImpulseIsFlat(t *testing.T) {
	r, err := NewAnalyzer(44100, 256).Measure(testutil.Impulse(64, 0))
	if err != nil {
		t.Fatal(err)
	}

	for k, v := range r.Magnitude {
		if math.Abs(v-1) > 1e-12 {
			t.Fatalf("bin %d: magnitude %v, want 1", k, v)
		}
	}

	for k, db := range r.MagnitudeDB() {
		if math.Abs(db) > 1e-10 {
			t.Fatalf("bin %d: %v dB, want 0", k, db)
		}
	}
}

func TestMeasure_Validation(t *testing.T) {
	if _, err := NewAnalyzer(48000, 1024).Measure(nil); !errors.Is(err, ErrEmptyImpulse) {
		t.Errorf("empty impulse: %v", err)
	}

	if _, err := NewAnalyzer(0, 1024).Measure([]float64{1}); !errors.Is(err, ErrInvalidSampleRate) {
		t.Errorf("zero sample rate: %v", err)
	}

	for _, n := range []int{0, 1, 1000} {
		if _, err := NewAnalyzer(48000, n).Measure([]float64{1}); !errors.Is(err, ErrInvalidFFTSize) {
			t.Errorf("FFT size %d: %v", n, err)
		}
	}
}

func TestResponse_At(t *testing.T) {
	r := Response{SampleRate: 8, FFTSize: 8, Magnitude: []float64{1, 2, 4, 8, 16}}

	tests := []struct {
		freq, want float64
	}{
		{-1, 1},
		{0, 1},
		{0.5, 1.5},
		{2.25, 6},
		{4, 16},
		{100, 16},
	}

	for _, tc := range tests {
		if got := r.At(tc.freq); got != tc.want {
			t.Errorf("At(%v) = %v, want %v", tc.freq, got, tc.want)
		}
	}

	if got := (Response{}).At(10); got != 0 {
		t.Errorf("empty At() = %v, want 0", got)
	}
}

func TestImpulseResponse(t *testing.T) {
	ir := ImpulseResponse(biquad.NewSection(biquad.Identity()), 4)
	testutil.RequireSliceNearlyEqual(t, ir, []float64{1, 0, 0, 0}, 0)

	if ImpulseResponse(biquad.NewSection(biquad.Identity()), 0) != nil {
		t.Fatal("zero length should return nil")
	}
}

func BenchmarkMeasure(b *testing.B) {
	ir := testutil.DeterministicNoise(3, 1, 4096)
	a := NewAnalyzer(48000, 4096)

	for b.Loop() {
		if _, err := a.Measure(ir); err != nil {
			b.Fatal(err)
		}
	}
}
