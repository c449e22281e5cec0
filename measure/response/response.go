package response

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-xmax/dsp/core"
)

// Errors returned by the analyzer.
var (
	ErrEmptyImpulse      = errors.New("response: impulse response is empty")
	ErrInvalidSampleRate = errors.New("response: sample rate must be positive")
	ErrInvalidFFTSize    = errors.New("response: FFT size must be a power of two greater than 1")
)

// SampleProcessor is anything that maps one input sample to one output
// sample, such as biquad.Section and biquad.DF1.
type SampleProcessor interface {
	ProcessSample(x float64) float64
}

// Response is a measured magnitude response.
type Response struct {
	SampleRate float64
	FFTSize    int
	Magnitude  []float64 // bins 0..FFTSize/2
}

// BinFrequency returns the centre frequency of bin k in Hz.
func (r Response) BinFrequency(k int) float64 {
	return float64(k) * r.SampleRate / float64(r.FFTSize)
}

// At returns the magnitude at freqHz, linearly interpolated between bins
// and clamped to the DC and Nyquist bins.
func (r Response) At(freqHz float64) float64 {
	if len(r.Magnitude) == 0 {
		return 0
	}

	pos := freqHz * float64(r.FFTSize) / r.SampleRate
	if !(pos > 0) {
		return r.Magnitude[0]
	}

	last := len(r.Magnitude) - 1
	if pos >= float64(last) {
		return r.Magnitude[last]
	}

	k := int(pos)
	frac := pos - float64(k)

	return r.Magnitude[k] + frac*(r.Magnitude[k+1]-r.Magnitude[k])
}

// MagnitudeDB returns the response in dB.
func (r Response) MagnitudeDB() []float64 {
	out := make([]float64, len(r.Magnitude))
	for i, m := range r.Magnitude {
		out[i] = core.LinearToDB(m)
	}

	return out
}

// Analyzer measures responses at a fixed sample rate and FFT size. The
// FFT plan and scratch buffers are reused across calls, so an Analyzer
// must not be shared between goroutines.
type Analyzer struct {
	SampleRate float64
	FFTSize    int

	plan            *algofft.Plan[complex128]
	planSize        int
	frame, spectrum []complex128
	re, im          []float64
}

// NewAnalyzer creates an analyzer.
func NewAnalyzer(sampleRate float64, fftSize int) *Analyzer {
	return &Analyzer{SampleRate: sampleRate, FFTSize: fftSize}
}

// ImpulseResponse feeds a unit impulse followed by n-1 zeros through p.
func ImpulseResponse(p SampleProcessor, n int) []float64 {
	if n <= 0 {
		return nil
	}

	ir := make([]float64, n)
	ir[0] = p.ProcessSample(1)

	for i := 1; i < n; i++ {
		ir[i] = p.ProcessSample(0)
	}

	return ir
}

// MeasureProcessor measures p from an impulse response of FFTSize
// samples. p should be in its reset state.
func (a *Analyzer) MeasureProcessor(p SampleProcessor) (Response, error) {
	if err := a.validate(); err != nil {
		return Response{}, err
	}

	return a.Measure(ImpulseResponse(p, a.FFTSize))
}

// Measure transforms ir. Responses longer than FFTSize are truncated,
// shorter ones zero padded.
func (a *Analyzer) Measure(ir []float64) (Response, error) {
	if len(ir) == 0 {
		return Response{}, ErrEmptyImpulse
	}

	if err := a.validate(); err != nil {
		return Response{}, err
	}

	n := a.FFTSize

	a.frame = core.Zeroed(a.frame, n)
	for i := range min(len(ir), n) {
		a.frame[i] = complex(ir[i], 0)
	}

	if a.plan == nil || a.planSize != n {
		plan, err := algofft.NewPlan64(n)
		if err != nil {
			return Response{}, fmt.Errorf("response: FFT plan: %w", err)
		}

		a.plan, a.planSize = plan, n
	}

	a.spectrum = core.Resize(a.spectrum, n)
	if err := a.plan.Forward(a.spectrum, a.frame); err != nil {
		return Response{}, fmt.Errorf("response: FFT: %w", err)
	}

	bins := n/2 + 1
	a.re = core.Resize(a.re, bins)
	a.im = core.Resize(a.im, bins)

	for k, v := range a.spectrum[:bins] {
		a.re[k] = real(v)
		a.im[k] = imag(v)
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, a.re, a.im)

	return Response{SampleRate: a.SampleRate, FFTSize: n, Magnitude: mag}, nil
}

func (a *Analyzer) validate() error {
	if !(a.SampleRate > 0) || math.IsInf(a.SampleRate, 0) {
		return ErrInvalidSampleRate
	}

	if a.FFTSize < 2 || a.FFTSize&(a.FFTSize-1) != 0 {
		return fmt.Errorf("%w: %d", ErrInvalidFFTSize, a.FFTSize)
	}

	return nil
}
