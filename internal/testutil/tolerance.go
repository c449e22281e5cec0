package testutil

import (
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t at the first element where got and want
// differ by more than eps, or when their lengths differ.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}

	if i, d := firstMismatch(got, want, eps); i >= 0 {
		t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], d, eps)
	}
}

// RequireDelayed fails t unless got[n] matches in[n-delay] within eps for
// every n >= delay. The first delay samples are not inspected.
func RequireDelayed(t *testing.T, got, in []float64, delay int, eps float64) {
	t.Helper()

	if delay < 0 || delay > len(got) || len(got) > len(in) {
		t.Fatalf("cannot compare %d samples against %d inputs delayed by %d", len(got), len(in), delay)
	}

	if i, d := firstMismatch(got[delay:], in[:len(got)-delay], eps); i >= 0 {
		t.Fatalf("sample %d: got %v, want delayed input %v (diff %v)", i+delay, got[i+delay], in[i], d)
	}
}

// RequireFinite fails t on the first NaN or Inf in data.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()

	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// PeakAbs returns max |data[i]|, or 0 for an empty slice.
func PeakAbs(data []float64) float64 {
	var peak float64
	for _, v := range data {
		peak = math.Max(peak, math.Abs(v))
	}

	return peak
}

// firstMismatch returns the first index where a and b differ by more than
// eps together with the difference, or -1.
func firstMismatch(a, b []float64, eps float64) (int, float64) {
	for i := range a {
		if d := math.Abs(a[i] - b[i]); !(d <= eps) {
			return i, d
		}
	}

	return -1, 0
}
