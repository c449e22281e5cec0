package main

import (
	"fmt"

	"github.com/cwbudde/algo-xmax/internal/audiofile"
)

// ProcessCmd runs an audio file through a protector.
type ProcessCmd struct {
	ProtectFlags

	BitDepth int `help:"Output bit depth (16, 24 or 32)" default:"24"`

	Input  string `arg:"" help:"Input audio file (wav, aiff, mp3, ogg)" type:"existingfile"`
	Output string `arg:"" help:"Output WAV file" type:"path"`
}

func (cmd *ProcessCmd) Run(g *Globals) error {
	buf, err := audiofile.ReadFile(cmd.Input)
	if err != nil {
		return err
	}

	if n := buf.NumChannels(); n < 1 || n > 2 {
		return fmt.Errorf("only mono and stereo files are supported: %d channels", n)
	}

	p, c, err := cmd.processor(float64(buf.SampleRate))
	if err != nil {
		return err
	}

	left := buf.Channels[0]

	var right []float64
	if buf.NumChannels() == 2 {
		right = buf.Channels[1]
	}

	levels, disp, err := run(p, c, left, right)
	if err != nil {
		return err
	}

	if err := audiofile.WriteFile(cmd.Output, buf, cmd.BitDepth); err != nil {
		return err
	}

	printTitle(g.Out, fmt.Sprintf("Processed %s", cmd.Input))
	printValue(g.Out, "Strategy", "%v", p.Variant())
	printValue(g.Out, "Model", "%s", p.Model().Name)
	printValue(g.Out, "Sample rate", "%d Hz, %d frames", buf.SampleRate, buf.Frames())

	for ch := range buf.NumChannels() {
		printValue(g.Out, fmt.Sprintf("Channel %d", ch+1), "peak %.4f, displacement %.3f mm", levels[ch], disp[ch])
	}

	printValue(g.Out, "Output", "%s (%d-bit)", cmd.Output, cmd.BitDepth)

	return nil
}
