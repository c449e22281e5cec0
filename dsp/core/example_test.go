package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-xmax/dsp/core"
)

func ExampleApplyProcessorOptions() {
	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(44100),
		core.WithBlockSize(256),
	)

	fmt.Printf("sampleRate=%.0f blockSize=%d\n", cfg.SampleRate, cfg.BlockSize)

	// Output:
	// sampleRate=44100 blockSize=256
}

func ExampleZeroed() {
	scratch := []float64{7, 7}
	scratch = core.Zeroed(scratch, 4)

	fmt.Println(len(scratch), scratch)

	// Output:
	// 4 [0 0 0 0]
}
