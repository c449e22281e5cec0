package main

import (
	"fmt"

	"github.com/cwbudde/algo-xmax/dsp/core"
	"github.com/cwbudde/algo-xmax/dsp/signal"
)

// thresholdTolerance is the relative overshoot still reported as within
// the threshold; the envelope snaps gains above 0.999 to unity.
const thresholdTolerance = 1.002

// BurstCmd drives a protector with a tone burst and reports whether the
// displacement stayed below the threshold.
type BurstCmd struct {
	ProtectFlags

	SampleRate float64 `help:"Sample rate in Hz" default:"48000"`
	Frequency  float64 `help:"Burst frequency in Hz" default:"50"`
	Amplitude  float64 `help:"Burst amplitude" default:"1"`
	Cycles     float64 `help:"Sine periods in the burst" default:"20"`
	Hann       bool    `help:"Shape the burst with a Hann window"`
}

func (cmd *BurstCmd) Run(g *Globals) error {
	gen := signal.NewGenerator(core.WithSampleRate(cmd.SampleRate))

	b := signal.Burst{
		FrequencyHz: cmd.Frequency,
		Amplitude:   cmd.Amplitude,
		Cycles:      cmd.Cycles,
		Lead:        core.MsToSamples(10, cmd.SampleRate),
		Tail:        core.MsToSamples(200, cmd.SampleRate),
	}
	if cmd.Hann {
		b.Taper = signal.TaperHann
	}

	x, err := gen.ToneBurst(b)
	if err != nil {
		return err
	}

	p, c, err := cmd.processor(cmd.SampleRate)
	if err != nil {
		return err
	}

	levels, disp, err := run(p, c, x, nil)
	if err != nil {
		return err
	}

	printTitle(g.Out, fmt.Sprintf("Tone burst through %v", p.Variant()))
	printValue(g.Out, "Model", "%s", p.Model().Name)
	printValue(g.Out, "Burst", "%g Hz, %g periods, amplitude %g (%v)", b.FrequencyHz, b.Cycles, b.Amplitude, b.Taper)
	printValue(g.Out, "Peak level", "%.4f", levels[0])
	printValue(g.Out, "Peak displacement", "%.3f mm (threshold %.3f mm)", disp[0], c.ThresholdMm)

	printVerdict(g.Out, disp[0] <= c.ThresholdMm*thresholdTolerance,
		"Displacement stayed below the threshold",
		"Displacement exceeded the threshold")

	return nil
}
