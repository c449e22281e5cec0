package core

import "math"

// denormalFloor is the magnitude below which filter state is flushed.
const denormalFloor = 1e-30

// Clamp bounds v to [lo, hi]. Reversed bounds are swapped. NaN maps to lo.
func Clamp(v, lo, hi float64) float64 {
	if hi < lo {
		lo, hi = hi, lo
	}

	if !(v >= lo) {
		return lo
	}

	return math.Min(v, hi)
}

// FlushDenormals returns 0 for values within denormalFloor of zero.
func FlushDenormals(x float64) float64 {
	if math.Abs(x) < denormalFloor {
		return 0
	}

	return x
}

// Finite replaces NaN and ±Inf with 0.
func Finite(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}

	return x
}

// DBToLinear converts an amplitude ratio in dB to a linear factor.
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts an amplitude ratio to dB. Zero gives -Inf, negative
// ratios give NaN.
func LinearToDB(ratio float64) float64 {
	return 2 * PowerToDB(ratio)
}

// PowerToDB converts a power ratio to dB.
func PowerToDB(power float64) float64 {
	switch {
	case power < 0:
		return math.NaN()
	case power == 0:
		return math.Inf(-1)
	}

	return 10 * math.Log10(power)
}

// MsToSamples converts milliseconds to samples, rounding up. Non-positive
// inputs give 0.
func MsToSamples(ms, sampleRate float64) int {
	if !(ms > 0) || !(sampleRate > 0) {
		return 0
	}

	return int(math.Ceil(ms * sampleRate / 1000))
}
