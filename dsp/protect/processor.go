package protect

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-xmax/dsp/core"
	"github.com/cwbudde/algo-xmax/dsp/speaker"
	"github.com/cwbudde/algo-xmax/measure/peak"
)

// ErrNotPrepared is returned by ProcessBlock before Prepare succeeded.
var ErrNotPrepared = errors.New("protect: processor not prepared")

// ErrModeUnsupported is returned when a mode setter does not apply to the
// processor's variant.
var ErrModeUnsupported = errors.New("protect: mode not supported by variant")

const channels = 2

// Processor runs one strategy per channel on stereo blocks and keeps peak
// meters for the output level and the displacement.
//
// ProcessBlock, Prepare, Reset and the mode setters must be called from a
// single goroutine. The meters returned by Levels and Displacements can be
// read concurrently.
type Processor struct {
	variant    Variant
	cfg        Config
	sampleRate float64
	model      int
	prepared   bool

	strategies [channels]Strategy

	levels        peak.Stereo
	displacements peak.Stereo
}

// New creates a processor for variant. Prepare must be called before the
// first block.
func New(variant Variant, opts ...Option) (*Processor, error) {
	if variant < FeedbackVariant || variant > LowShelfVariant {
		return nil, fmt.Errorf("protect: unknown variant %d", variant)
	}

	cfg := ApplyOptions(opts...)
	if cfg.Catalog == nil || cfg.Catalog.Len() == 0 {
		return nil, errors.New("protect: empty loudspeaker catalog")
	}

	return &Processor{variant: variant, cfg: cfg}, nil
}

// Variant returns the strategy the processor runs.
func (p *Processor) Variant() Variant {
	return p.variant
}

// Config returns the construction settings.
func (p *Processor) Config() Config {
	return p.cfg
}

// SampleRate returns the prepared sample rate, or 0 before Prepare.
func (p *Processor) SampleRate() float64 {
	return p.sampleRate
}

// Model returns the active loudspeaker model.
func (p *Processor) Model() speaker.Model {
	return p.cfg.Catalog.At(p.model)
}

// Levels returns the output peak meters.
func (p *Processor) Levels() *peak.Stereo {
	return &p.levels
}

// Displacements returns the displacement peak meters in millimetres.
func (p *Processor) Displacements() *peak.Stereo {
	return &p.displacements
}

// Prepare allocates all buffers and synthesizes all filters for
// sampleRate, then clears the meters. The active model is kept.
func (p *Processor) Prepare(sampleRate float64) error {
	if err := p.rebuild(sampleRate); err != nil {
		return err
	}

	p.levels.Reset()
	p.displacements.Reset()

	return nil
}

// rebuild replaces both strategies for sampleRate. The meters are left
// alone so peaks not yet read survive a rate change mid-stream.
func (p *Processor) rebuild(sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("protect: sample rate must be positive and finite: %f", sampleRate)
	}

	m := p.Model()

	var strategies [channels]Strategy
	for ch := range strategies {
		s, err := NewStrategy(p.variant, m, sampleRate, p.cfg)
		if err != nil {
			return err
		}

		strategies[ch] = s
	}

	p.strategies = strategies
	p.sampleRate = sampleRate
	p.prepared = true

	return nil
}

// Reset clears the state of both channels and the meters.
func (p *Processor) Reset() {
	for _, s := range p.strategies {
		if s != nil {
			s.Reset()
		}
	}

	p.levels.Reset()
	p.displacements.Reset()
}

// SetLimiterMode switches the limiter mode of both channels.
func (p *Processor) SetLimiterMode(mode LimiterMode) error {
	if p.variant != LimiterVariant {
		return fmt.Errorf("%w: limiter mode on %v", ErrModeUnsupported, p.variant)
	}

	if mode != LevelMode && mode != DisplacementMode {
		return fmt.Errorf("protect: unknown limiter mode %d", mode)
	}

	p.cfg.LimiterMode = mode

	for _, s := range p.strategies {
		if l, ok := s.(*Limiter); ok {
			l.SetMode(mode)
		}
	}

	return nil
}

// SetShelfMode switches the low-shelf mode of both channels.
func (p *Processor) SetShelfMode(mode ShelfMode) error {
	if p.variant != LowShelfVariant {
		return fmt.Errorf("%w: shelf mode on %v", ErrModeUnsupported, p.variant)
	}

	if mode != ShelfFilterMode && mode != ShelfGainMode {
		return fmt.Errorf("protect: unknown shelf mode %d", mode)
	}

	p.cfg.ShelfMode = mode

	for _, s := range p.strategies {
		if ls, ok := s.(*LowShelf); ok {
			ls.SetMode(mode)
		}
	}

	return nil
}

// ProcessBlock processes left and right in place. right may be nil for a
// mono stream; otherwise both slices must have the same length. A change
// of sampleRate re-prepares the processor before the first sample.
func (p *Processor) ProcessBlock(sampleRate float64, left, right []float64, src ControlSource) error {
	if !p.prepared {
		return ErrNotPrepared
	}

	if src == nil {
		return errors.New("protect: nil control source")
	}

	if right != nil && len(right) != len(left) {
		return fmt.Errorf("protect: channel length mismatch: %d != %d", len(left), len(right))
	}

	if sampleRate != p.sampleRate {
		if err := p.rebuild(sampleRate); err != nil {
			return err
		}
	}

	buffers := [channels][]float64{left, right}

	var maxLevel, maxDisp [channels]float64

	for i := range left {
		c := src.At(i).Clamped()

		if idx := p.cfg.Catalog.Clamp(c.Model); idx != p.model {
			p.setModel(idx)
		}

		for ch, buf := range buffers {
			if buf == nil {
				continue
			}

			dry := core.Finite(buf[i])
			wet, disp := p.strategies[ch].Process(dry, &c)

			out := (c.Mix*wet + (1-c.Mix)*dry) * c.OutputGain
			buf[i] = out

			maxLevel[ch] = max(maxLevel[ch], math.Abs(out))
			maxDisp[ch] = max(maxDisp[ch], disp)
		}
	}

	for ch := range channels {
		if buffers[ch] == nil {
			continue
		}

		p.strategies[ch].FlushDenormals()
		p.levels[ch].UpdateIfGreater(maxLevel[ch])
		p.displacements[ch].UpdateIfGreater(maxDisp[ch])
	}

	return nil
}

// setModel switches both channels to the model at idx. A model whose
// filters cannot be synthesized leaves the previous model active on both
// channels, and Model keeps reporting it.
func (p *Processor) setModel(idx int) {
	m := p.cfg.Catalog.At(idx)

	for ch, s := range p.strategies {
		if err := s.SetModel(m); err != nil {
			prev := p.cfg.Catalog.At(p.model)
			for _, done := range p.strategies[:ch] {
				_ = done.SetModel(prev)
			}

			return
		}
	}

	p.model = idx
}
