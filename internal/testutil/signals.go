package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine returns length samples of amplitude*sin(2*pi*f*n/sr).
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	return SineBurst(freqHz, sampleRate, amplitude, 0, length, 0)
}

// SineBurst returns lead zeros, burst samples of a sine starting at phase
// zero, then tail zeros.
func SineBurst(freqHz, sampleRate, amplitude float64, lead, burst, tail int) []float64 {
	out := make([]float64, lead+burst+tail)

	w := 2 * math.Pi * freqHz / sampleRate
	for n := range burst {
		out[lead+n] = amplitude * math.Sin(w*float64(n))
	}

	return out
}

// DeterministicNoise returns uniform noise in [-amplitude, amplitude) drawn
// from a generator seeded with seed.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	rng := rand.New(rand.NewSource(seed))

	out := make([]float64, length)
	for n := range out {
		out[n] = amplitude * (2*rng.Float64() - 1)
	}

	return out
}

// Impulse returns a unit impulse at pos. An out-of-range pos gives silence.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}

	return out
}
