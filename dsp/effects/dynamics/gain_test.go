package dynamics

import (
	"math"
	"testing"
)

func TestComputeGain_Regions(t *testing.T) {
	tests := []struct {
		name      string
		x, thr, k float64
		want      float64
	}{
		{name: "silence", x: 0, thr: 1, k: 0.5, want: 1},
		{name: "below knee", x: 0.7, thr: 1, k: 0.5, want: 1},
		{name: "knee lower edge", x: 0.75, thr: 1, k: 0.5, want: 1},
		{name: "above knee", x: 4, thr: 1, k: 0.5, want: 0.25},
		{name: "hard knee at threshold", x: 2e-3, thr: 2e-3, k: 0, want: 1},
		{name: "hard knee above", x: 4e-3, thr: 2e-3, k: 0, want: 0.5},
		// d = 1 - 0.75 = 0.25; 1 - 0.0625/(2*0.5*1*1)
		{name: "knee at threshold", x: 1, thr: 1, k: 0.5, want: 0.9375},
		{name: "disabled threshold", x: 3, thr: 0, k: 0.5, want: 1},
		{name: "knee clamped", x: 4, thr: 1, k: 3, want: 0.25},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeGain(tc.x, tc.thr, tc.k)
			if math.Abs(got-tc.want) > 1e-12 {
				t.Fatalf("ComputeGain(%g, %g, %g) = %.15f, want %.15f", tc.x, tc.thr, tc.k, got, tc.want)
			}
		})
	}
}

func TestComputeGain_KneeIsContinuous(t *testing.T) {
	const h = 1e-7

	for _, thr := range []float64{0.01, 0.5, 2, 1e-3} {
		for _, k := range []float64{0.1, 0.5, 1} {
			for _, edge := range []float64{thr * (1 - k/2), thr * (1 + k/2)} {
				left := ComputeGain(edge-h*thr, thr, k)
				mid := ComputeGain(edge, thr, k)
				right := ComputeGain(edge+h*thr, thr, k)

				if math.Abs(left-mid) > 1e-5 || math.Abs(right-mid) > 1e-5 {
					t.Fatalf("thr=%g k=%g edge=%g: value jump %g %g %g", thr, k, edge, left, mid, right)
				}

				// Slopes in units of 1/threshold.
				slopeLeft := (mid - left) / h
				slopeRight := (right - mid) / h

				if math.Abs(slopeLeft-slopeRight) > 1e-4 {
					t.Fatalf("thr=%g k=%g edge=%g: slope jump %g vs %g", thr, k, edge, slopeLeft, slopeRight)
				}
			}
		}
	}
}

func TestComputeGain_OutputNeverAboveInput(t *testing.T) {
	for i := 1; i <= 4000; i++ {
		x := float64(i) * 1e-3
		g := ComputeGain(x, 1, 0.8)

		if g <= 0 || g > 1 {
			t.Fatalf("x=%g: gain %g outside (0, 1]", x, g)
		}

		if x > 1.4 && g*x > 1+1e-12 {
			t.Fatalf("x=%g: limited value %g exceeds threshold", x, g*x)
		}
	}
}

func BenchmarkComputeGain(b *testing.B) {
	x := 0.0
	for b.Loop() {
		x += 1e-4
		if x > 3 {
			x = 0
		}

		_ = ComputeGain(x, 1, 0.5)
	}
}
