package protect

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-xmax/dsp/core"
	"github.com/cwbudde/algo-xmax/dsp/speaker"
)

func TestControls_Clamped(t *testing.T) {
	c := Controls{
		InputGain:   100,
		SpeakerGain: 0.5,
		OutputGain:  math.NaN(),
		AttackMs:    0,
		HoldMs:      500,
		ReleaseMs:   -3,
		LookaheadMs: math.Inf(1),
		ThresholdMm: 0.01,
		ThresholdV:  5,
		Knee:        2,
		Mix:         -1,
		Model:       42,
	}.Clamped()

	tests := []struct {
		name      string
		got, want float64
	}{
		{"InputGain", c.InputGain, core.DBToLinear(MaxInputGainDB)},
		{"SpeakerGain", c.SpeakerGain, 1},
		{"OutputGain", c.OutputGain, core.DBToLinear(MinOutputGainDB)},
		{"AttackMs", c.AttackMs, MinAttackMs},
		{"HoldMs", c.HoldMs, MaxHoldMs},
		{"ReleaseMs", c.ReleaseMs, MinReleaseMs},
		{"LookaheadMs", c.LookaheadMs, MaxLookaheadMs},
		{"ThresholdMm", c.ThresholdMm, MinDisplacementThresholdMm},
		{"ThresholdV", c.ThresholdV, MaxTensionThresholdV},
		{"Knee", c.Knee, 1},
		{"Mix", c.Mix, 0},
	}

	for _, tc := range tests {
		if tc.got != tc.want {
			t.Errorf("%s = %v, want %v", tc.name, tc.got, tc.want)
		}
	}

	// The model index is resolved against the catalog, not here.
	if c.Model != 42 {
		t.Errorf("Model = %d, want 42", c.Model)
	}
}

func TestControls_DefaultsAreInRange(t *testing.T) {
	c := DefaultControls()
	if c.Clamped() != c {
		t.Fatalf("DefaultControls() changed by Clamped(): %+v", c.Clamped())
	}
}

func TestControlSources(t *testing.T) {
	base := DefaultControls()

	s := Static(base)
	if s.At(0) != base || s.At(1000) != base {
		t.Fatal("Static must return the same controls for every index")
	}

	r := make(Ramp, 3)
	for i := range r {
		r[i] = base
		r[i].Mix = float64(i) / 2
	}

	for _, tc := range []struct {
		i    int
		want float64
	}{{-1, 0}, {0, 0}, {1, 0.5}, {2, 1}, {10, 1}} {
		if got := r.At(tc.i).Mix; got != tc.want {
			t.Errorf("Ramp.At(%d).Mix = %v, want %v", tc.i, got, tc.want)
		}
	}

	if got := Ramp(nil).At(3); got != base {
		t.Errorf("empty Ramp.At() = %+v, want defaults", got)
	}
}

func TestParseVariant(t *testing.T) {
	for _, v := range []Variant{FeedbackVariant, LimiterVariant, LowShelfVariant} {
		got, err := ParseVariant(v.String())
		if err != nil || got != v {
			t.Errorf("ParseVariant(%q) = %v, %v", v.String(), got, err)
		}
	}

	if _, err := ParseVariant("compressor"); err == nil {
		t.Error("ParseVariant(compressor) should fail")
	}
}

func TestModeStrings(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{LevelMode.String(), "level"},
		{DisplacementMode.String(), "displacement"},
		{ShelfFilterMode.String(), "shelf"},
		{ShelfGainMode.String(), "gain"},
		{Variant(9).String(), "unknown"},
	}

	for _, tc := range tests {
		if tc.got != tc.want {
			t.Errorf("String() = %q, want %q", tc.got, tc.want)
		}
	}
}

func TestOptions(t *testing.T) {
	single, err := speaker.NewCatalog(speaker.DefaultCatalog().At(3))
	if err != nil {
		t.Fatal(err)
	}

	cfg := ApplyOptions(
		WithStabilityMargin(1.5),
		WithShelfFrequency(-10),
		WithLimiterMode(LevelMode),
		WithShelfMode(ShelfGainMode),
		WithCatalog(single),
		WithProcessorOptions(core.WithMaxLookahead(10)),
		nil,
	)

	if cfg.StabilityMargin != speaker.DefaultStabilityMargin {
		t.Errorf("StabilityMargin = %v, out-of-range value must be ignored", cfg.StabilityMargin)
	}

	if cfg.ShelfFrequency != 0 {
		t.Errorf("ShelfFrequency = %v, want 0", cfg.ShelfFrequency)
	}

	if cfg.LimiterMode != LevelMode || cfg.ShelfMode != ShelfGainMode {
		t.Errorf("modes = %v/%v", cfg.LimiterMode, cfg.ShelfMode)
	}

	if cfg.Catalog.Len() != 1 {
		t.Errorf("Catalog.Len() = %d, want 1", cfg.Catalog.Len())
	}

	if cfg.Processor.MaxLookaheadMs != 10 {
		t.Errorf("MaxLookaheadMs = %v, want 10", cfg.Processor.MaxLookaheadMs)
	}
}

func TestLowShelf_FixedFrequency(t *testing.T) {
	p := newPrepared(t, LowShelfVariant, WithShelfFrequency(120))

	ls, ok := p.strategies[1].(*LowShelf)
	if !ok {
		t.Fatalf("strategy is %T", p.strategies[1])
	}

	if ls.Frequency() != 120 {
		t.Fatalf("Frequency() = %v, want 120", ls.Frequency())
	}
}

func TestFeedback_MinCompliance(t *testing.T) {
	m := speaker.DefaultCatalog().At(0)

	f, err := NewFeedback(m, testRate, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	c := loudControls()
	want := complianceMargin * 1e-3 * m.Rec / (10 * m.Bl)

	if got := f.MinCompliance(&c); math.Abs(got-want) > 1e-15 {
		t.Fatalf("MinCompliance() = %v, want %v", got, want)
	}

	// A threshold the driver never reaches yields the nominal compliance.
	c.SpeakerGain = 1
	c.ThresholdMm = 30

	if got := f.MinCompliance(&c); got != m.Cms {
		t.Fatalf("MinCompliance() = %v, want nominal %v", got, m.Cms)
	}
}
