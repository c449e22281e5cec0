// Package signal generates deterministic excitation signals for exercising
// the protection processors: steady sines and windowed tone bursts.
package signal

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-xmax/dsp/core"
)

// Taper selects the envelope applied to a tone burst.
type Taper int

const (
	// TaperNone switches the burst on and off abruptly.
	TaperNone Taper = iota
	// TaperHann shapes the whole burst with a Hann window.
	TaperHann
)

// String implements fmt.Stringer.
func (t Taper) String() string {
	switch t {
	case TaperNone:
		return "none"
	case TaperHann:
		return "hann"
	default:
		return "unknown"
	}
}

// Burst describes a tone burst: Cycles periods of a sine at FrequencyHz,
// preceded by Lead and followed by Tail samples of silence.
type Burst struct {
	FrequencyHz float64
	Amplitude   float64
	Cycles      float64
	Lead        int
	Tail        int
	Taper       Taper
}

// Generator creates deterministic signals at the configured sample rate.
type Generator struct {
	cfg core.ProcessorConfig
}

// NewGenerator creates a generator. Only the sample rate of the processor
// configuration is used.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return &Generator{cfg: core.ApplyProcessorOptions(opts...)}
}

// Config returns the generator configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// Sine generates samples of a sine starting at phase zero.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("signal: sine samples must be > 0: %d", samples)
	}

	if err := g.validateFrequency(freqHz); err != nil {
		return nil, err
	}

	out := make([]float64, samples)
	fillSine(out, 2*math.Pi*freqHz/g.cfg.SampleRate, amplitude)

	return out, nil
}

// BurstSamples returns the number of samples in the sine part of b,
// rounded up to whole samples.
func (g *Generator) BurstSamples(b Burst) int {
	if !(b.FrequencyHz > 0) || !(b.Cycles > 0) {
		return 0
	}

	return int(math.Ceil(b.Cycles * g.cfg.SampleRate / b.FrequencyHz))
}

// ToneBurst generates b. The returned slice has Lead + BurstSamples(b) +
// Tail samples.
func (g *Generator) ToneBurst(b Burst) ([]float64, error) {
	if err := g.validateFrequency(b.FrequencyHz); err != nil {
		return nil, err
	}

	if !(b.Cycles > 0) {
		return nil, fmt.Errorf("signal: burst cycles must be > 0: %f", b.Cycles)
	}

	if b.Lead < 0 || b.Tail < 0 {
		return nil, fmt.Errorf("signal: burst lead and tail must be >= 0: %d, %d", b.Lead, b.Tail)
	}

	n := g.BurstSamples(b)
	out := make([]float64, b.Lead+n+b.Tail)
	burst := out[b.Lead : b.Lead+n]

	fillSine(burst, 2*math.Pi*b.FrequencyHz/g.cfg.SampleRate, b.Amplitude)

	switch b.Taper {
	case TaperNone:
	case TaperHann:
		vecmath.MulBlockInPlace(burst, hann(n))
	default:
		return nil, fmt.Errorf("signal: unknown burst taper %d", b.Taper)
	}

	return out, nil
}

func (g *Generator) validateFrequency(freqHz float64) error {
	if !(g.cfg.SampleRate > 0) {
		return fmt.Errorf("signal: sample rate must be > 0: %f", g.cfg.SampleRate)
	}

	if !(freqHz >= 0) || freqHz > g.cfg.SampleRate/2 {
		return fmt.Errorf("signal: frequency must be in [0, %g]: %f", g.cfg.SampleRate/2, freqHz)
	}

	return nil
}

func fillSine(dst []float64, step, amplitude float64) {
	for i := range dst {
		dst[i] = amplitude * math.Sin(step*float64(i))
	}
}

// hann returns a periodic Hann window of length n, so the window of a
// burst spanning whole periods starts at zero and ends one sample early.
func hann(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n))
	}

	return w
}
