package dynamics

import "math"

// timeConstantScale sets the 10%-90% rise of the one-pole to the given time.
const timeConstantScale = 2.2

// TimeCoefficient returns the one-pole coefficient for a time constant in
// milliseconds. Non-positive times give 1 (no smoothing).
func TimeCoefficient(ms, sampleRate float64) float64 {
	if ms <= 0 || sampleRate <= 0 {
		return 1
	}

	return 1 - mathExp(-timeConstantScale/(ms*1e-3*sampleRate))
}

// Smooth moves current one step toward target. The attack coefficient
// applies while the target is below the current value, the release
// coefficient otherwise.
func Smooth(target, current, attack, release float64) float64 {
	if target < current {
		return current + attack*(target-current)
	}

	return current + release*(target-current)
}

// GainToDB converts a linear gain to decibels. A gain of exactly 1 maps
// to exactly 0 dB; non-positive gains map to -Inf.
func GainToDB(g float64) float64 {
	switch {
	case g == 1:
		return 0
	case g <= 0:
		return math.Inf(-1)
	default:
		return 20 * mathLog10(g)
	}
}
