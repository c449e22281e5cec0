//go:build fastmath

package dynamics

import "github.com/meko-christian/algo-approx"

// invLn10 converts natural logarithms to base 10.
const invLn10 = 0.434294481903251827651128918916605082

// mathExp computes e^x using fast approximation.
func mathExp(x float64) float64 {
	return approx.FastExp(x)
}

// mathLog10 computes log10(x) using fast approximation.
func mathLog10(x float64) float64 {
	return approx.FastLog(x) * invLn10
}
