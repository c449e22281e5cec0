package response_test

import (
	"fmt"

	"github.com/cwbudde/algo-xmax/dsp/filter/biquad"
	"github.com/cwbudde/algo-xmax/measure/response"
)

func ExampleAnalyzer_MeasureProcessor() {
	// Two-tap average: a zero at Nyquist.
	avg := biquad.NewSection(biquad.Coefficients{B0: 0.5, B1: 0.5})

	r, err := response.NewAnalyzer(48000, 1024).MeasureProcessor(avg)
	if err != nil {
		panic(err)
	}

	fmt.Printf("DC: %.3f\n", r.At(0))
	fmt.Printf("12 kHz: %.3f\n", r.At(12000))
	fmt.Printf("Nyquist: %.3f\n", r.At(24000))
	// Output:
	// DC: 1.000
	// 12 kHz: 0.707
	// Nyquist: 0.000
}
