package speaker_test

import (
	"fmt"

	"github.com/cwbudde/algo-xmax/dsp/speaker"
)

func ExampleCatalog_Lookup() {
	m, err := speaker.DefaultCatalog().Lookup("Peerless HDSP830860")
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("Rms: %.3f kg/s\n", m.Rms())
	fmt.Printf("Qs: %.3f (%v)\n", m.Qs(), m.Resonance())
	fmt.Printf("DC excursion: %.3f mm/V\n", m.ExcursionDC()*1e3)
	// Output:
	// Rms: 1.898 kg/s
	// Qs: 0.565 (non-resonant)
	// DC excursion: 0.502 mm/V
}
