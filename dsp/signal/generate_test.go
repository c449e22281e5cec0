package signal

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-xmax/dsp/core"
	"github.com/cwbudde/algo-xmax/internal/testutil"
)

func TestSineMatchesReference(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(48000))

	s, err := g.Sine(1000, 0.5, 256)
	if err != nil {
		t.Fatalf("Sine() error = %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, s, testutil.DeterministicSine(1000, 48000, 0.5, 256), 1e-12)
}

func TestSineValidation(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(48000))

	if _, err := g.Sine(1000, 1, 0); err == nil {
		t.Error("zero length should fail")
	}

	if _, err := g.Sine(30000, 1, 16); err == nil {
		t.Error("frequency above Nyquist should fail")
	}

	if _, err := g.Sine(math.NaN(), 1, 16); err == nil {
		t.Error("NaN frequency should fail")
	}
}

func TestToneBurstLayout(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(48000))
	b := Burst{FrequencyHz: 50, Amplitude: 0.8, Cycles: 4, Lead: 100, Tail: 200}

	x, err := g.ToneBurst(b)
	if err != nil {
		t.Fatalf("ToneBurst() error = %v", err)
	}

	n := g.BurstSamples(b)
	if n != 3840 {
		t.Fatalf("BurstSamples() = %d, want 3840", n)
	}

	if len(x) != b.Lead+n+b.Tail {
		t.Fatalf("len = %d, want %d", len(x), b.Lead+n+b.Tail)
	}

	for i := range b.Lead {
		if x[i] != 0 {
			t.Fatalf("lead sample %d = %v, want 0", i, x[i])
		}
	}

	for i := b.Lead + n; i < len(x); i++ {
		if x[i] != 0 {
			t.Fatalf("tail sample %d = %v, want 0", i, x[i])
		}
	}

	want := testutil.SineBurst(50, 48000, 0.8, b.Lead, n, b.Tail)
	testutil.RequireSliceNearlyEqual(t, x, want, 1e-12)
}

func TestToneBurstHannTaper(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(48000))
	b := Burst{FrequencyHz: 100, Amplitude: 1, Cycles: 8, Taper: TaperHann}

	x, err := g.ToneBurst(b)
	if err != nil {
		t.Fatalf("ToneBurst() error = %v", err)
	}

	plain := b
	plain.Taper = TaperNone

	y, err := g.ToneBurst(plain)
	if err != nil {
		t.Fatalf("ToneBurst() error = %v", err)
	}

	n := len(x)
	for i := range x {
		w := 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n))
		if math.Abs(x[i]-w*y[i]) > 1e-12 {
			t.Fatalf("sample %d: got %v, want %v", i, x[i], w*y[i])
		}
	}

	if math.Abs(x[0]) > 1e-12 || math.Abs(x[1]) > 0.01 {
		t.Fatalf("tapered burst starts at %v, %v", x[0], x[1])
	}

	if peak := testutil.PeakAbs(x); peak > 1 || peak < 0.95 {
		t.Fatalf("tapered peak = %v", peak)
	}
}

func TestToneBurstValidation(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(48000))

	tests := []struct {
		name string
		b    Burst
	}{
		{"zero cycles", Burst{FrequencyHz: 50, Cycles: 0}},
		{"negative lead", Burst{FrequencyHz: 50, Cycles: 1, Lead: -1}},
		{"negative frequency", Burst{FrequencyHz: -1, Cycles: 1}},
		{"unknown taper", Burst{FrequencyHz: 50, Cycles: 1, Taper: Taper(5)}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := g.ToneBurst(tc.b); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestTaperString(t *testing.T) {
	for taper, want := range map[Taper]string{TaperNone: "none", TaperHann: "hann", Taper(3): "unknown"} {
		if got := taper.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}

func BenchmarkToneBurst(b *testing.B) {
	g := NewGenerator(core.WithSampleRate(48000))
	burst := Burst{FrequencyHz: 50, Amplitude: 1, Cycles: 10, Taper: TaperHann}

	for b.Loop() {
		if _, err := g.ToneBurst(burst); err != nil {
			b.Fatal(err)
		}
	}
}
