package main

import (
	"fmt"

	"github.com/cwbudde/algo-xmax/dsp/speaker"
)

// ModelsCmd lists the loudspeaker catalog.
type ModelsCmd struct{}

func (cmd *ModelsCmd) Run(g *Globals) error {
	c := speaker.DefaultCatalog()

	rows := make([][]string, 0, c.Len())
	for i := range c.Len() {
		m := c.At(i)
		rows = append(rows, []string{
			fmt.Sprintf("%d  %s", i, m.Name),
			fmt.Sprintf("%.1f", m.Fs),
			fmt.Sprintf("%.3f", m.Rms()),
			fmt.Sprintf("%.3f", m.Qs()),
			m.Resonance().String(),
			fmt.Sprintf("%.3f", m.ExcursionDC()*1e3),
		})
	}

	printTitle(g.Out, "Loudspeaker catalog")
	fmt.Fprintln(g.Out, table([]string{"Model", "Fs Hz", "Rms kg/s", "Qs", "Compensation", "mm/V DC"}, rows))

	return nil
}
