package dynamics

// ComputeGain returns the static gain that keeps x at or below threshold.
//
// Below the knee the gain is 1 and above it the gain is threshold/x. The
// knee spans threshold·(1±knee/2) and joins both regions with matching
// value and slope. knee is clamped to [0, 1]; a non-positive threshold
// disables gain reduction.
func ComputeGain(x, threshold, knee float64) float64 {
	if threshold <= 0 || x <= 0 {
		return 1
	}

	if knee < 0 {
		knee = 0
	} else if knee > 1 {
		knee = 1
	}

	lower := threshold * (1 - knee/2)
	upper := threshold * (1 + knee/2)

	switch {
	case x <= lower:
		return 1
	case x > upper:
		return threshold / x
	default:
		d := x - lower
		return 1 - d*d/(2*knee*threshold*x)
	}
}
