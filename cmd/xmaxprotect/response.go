package main

import (
	"fmt"

	"github.com/cwbudde/algo-xmax/dsp/core"
	"github.com/cwbudde/algo-xmax/dsp/filter/biquad"
	"github.com/cwbudde/algo-xmax/dsp/speaker"
	"github.com/cwbudde/algo-xmax/measure/response"
)

// ResponseCmd prints the excursion per volt of a driver, from the analog
// model and measured on the digital filter.
type ResponseCmd struct {
	ModelFlag

	SampleRate  float64   `help:"Sample rate in Hz" default:"48000"`
	FFTSize     int       `name:"fft-size" help:"FFT size (power of two)" default:"16384"`
	Frequencies []float64 `help:"Frequencies to report in Hz" default:"10,20,50,100,200,500,1000,5000"`
}

func (cmd *ResponseCmd) Run(g *Globals) error {
	c := speaker.DefaultCatalog()

	idx, err := cmd.resolve(c)
	if err != nil {
		return err
	}

	m := c.At(idx)

	coeffs, err := speaker.ExcursionFilter(m, cmd.SampleRate)
	if err != nil {
		return err
	}

	r, err := response.NewAnalyzer(cmd.SampleRate, cmd.FFTSize).MeasureProcessor(biquad.NewDF1(coeffs))
	if err != nil {
		return err
	}

	analog := speaker.ExcursionAnalog(m)

	rows := make([][]string, 0, len(cmd.Frequencies))
	for _, f := range cmd.Frequencies {
		want := analog.MagnitudeAt(f)
		got := r.At(f)

		rows = append(rows, []string{
			fmt.Sprintf("%g", f),
			fmt.Sprintf("%.4f", want*1e3),
			fmt.Sprintf("%.4f", got*1e3),
			fmt.Sprintf("%+.2f", core.LinearToDB(got/want)),
		})
	}

	printTitle(g.Out, "Excursion response: "+m.Name)
	printValue(g.Out, "Sample rate", "%g Hz", cmd.SampleRate)
	printValue(g.Out, "Resonance", "%.1f Hz, Qs %.3f", m.Fs, m.Qs())
	fmt.Fprintln(g.Out, table([]string{"Hz", "analog mm/V", "digital mm/V", "error dB"}, rows))

	return nil
}
