package main

import (
	"fmt"
	"strconv"

	"github.com/cwbudde/algo-xmax/dsp/core"
	"github.com/cwbudde/algo-xmax/dsp/protect"
	"github.com/cwbudde/algo-xmax/dsp/speaker"
)

// ModelFlag selects a catalog entry by name or index.
type ModelFlag struct {
	Model string `short:"m" help:"Loudspeaker model name or catalog index" default:"0"`
}

func (f ModelFlag) resolve(c *speaker.Catalog) (int, error) {
	if i, err := c.Index(f.Model); err == nil {
		return i, nil
	}

	i, err := strconv.Atoi(f.Model)
	if err != nil || i < 0 || i >= c.Len() {
		return 0, fmt.Errorf("%w: %q", speaker.ErrUnknownModel, f.Model)
	}

	return i, nil
}

// ProtectFlags carry the processor settings shared by process and burst.
type ProtectFlags struct {
	ModelFlag

	Variant     string  `help:"Protection strategy" enum:"feedback,limiter,lowshelf" default:"limiter"`
	LimiterMode string  `help:"Limiter mode" enum:"displacement,level" default:"displacement"`
	ShelfMode   string  `help:"Low-shelf mode" enum:"shelf,gain" default:"shelf"`
	ShelfFreq   float64 `help:"Low-shelf corner in Hz, 0 for the model resonance" default:"0"`
	BlockSize   int     `help:"Processing block size, 0 for the library default" default:"0"`

	InputGain   float64 `help:"Input gain in dB" default:"0"`
	SpeakerGain float64 `help:"Amplifier gain in dB" default:"20"`
	OutputGain  float64 `help:"Output gain in dB" default:"0"`

	Attack    float64 `help:"Attack in ms" default:"1"`
	Hold      float64 `help:"Hold in ms" default:"2"`
	Release   float64 `help:"Release in ms" default:"50"`
	Lookahead float64 `help:"Feedback look-ahead in ms" default:"2"`

	Threshold float64 `help:"Displacement threshold in mm" default:"1"`
	Tension   float64 `help:"Tension threshold in V (limiter level mode)" default:"1"`
	Knee      float64 `help:"Soft knee as a fraction of the threshold" default:"0"`
	Mix       float64 `help:"Dry/wet mix, 1 is fully wet" default:"1"`
}

func (f ProtectFlags) controls(c *speaker.Catalog) (protect.Controls, error) {
	model, err := f.resolve(c)
	if err != nil {
		return protect.Controls{}, err
	}

	return protect.Controls{
		InputGain:   core.DBToLinear(f.InputGain),
		SpeakerGain: core.DBToLinear(f.SpeakerGain),
		OutputGain:  core.DBToLinear(f.OutputGain),
		AttackMs:    f.Attack,
		HoldMs:      f.Hold,
		ReleaseMs:   f.Release,
		LookaheadMs: f.Lookahead,
		ThresholdMm: f.Threshold,
		ThresholdV:  f.Tension,
		Knee:        f.Knee,
		Mix:         f.Mix,
		Model:       model,
	}.Clamped(), nil
}

func (f ProtectFlags) processor(sampleRate float64) (*protect.Processor, protect.Controls, error) {
	variant, err := protect.ParseVariant(f.Variant)
	if err != nil {
		return nil, protect.Controls{}, err
	}

	limiterMode := protect.DisplacementMode
	if f.LimiterMode == "level" {
		limiterMode = protect.LevelMode
	}

	shelfMode := protect.ShelfFilterMode
	if f.ShelfMode == "gain" {
		shelfMode = protect.ShelfGainMode
	}

	if f.BlockSize < 0 {
		return nil, protect.Controls{}, fmt.Errorf("block size must be >= 0: %d", f.BlockSize)
	}

	p, err := protect.New(variant,
		protect.WithLimiterMode(limiterMode),
		protect.WithShelfMode(shelfMode),
		protect.WithShelfFrequency(f.ShelfFreq),
		protect.WithProcessorOptions(core.WithBlockSize(f.BlockSize)),
	)
	if err != nil {
		return nil, protect.Controls{}, err
	}

	c, err := f.controls(p.Config().Catalog)
	if err != nil {
		return nil, protect.Controls{}, err
	}

	if err := p.Prepare(sampleRate); err != nil {
		return nil, protect.Controls{}, err
	}

	return p, c, nil
}

// run feeds left and right through p in blocks of the configured size
// and returns the peak meters per channel.
func run(p *protect.Processor, c protect.Controls, left, right []float64) (levels, displacements [2]float64, err error) {
	src := protect.Static(c)
	blockSize := p.Config().Processor.BlockSize

	for start := 0; start < len(left); start += blockSize {
		end := min(start+blockSize, len(left))

		var r []float64
		if right != nil {
			r = right[start:end]
		}

		if err := p.ProcessBlock(p.SampleRate(), left[start:end], r, src); err != nil {
			return levels, displacements, err
		}
	}

	levels[0], levels[1] = p.Levels().ReadAndReset()
	displacements[0], displacements[1] = p.Displacements().ReadAndReset()

	return levels, displacements, nil
}
