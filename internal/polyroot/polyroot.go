// Package polyroot provides the closed-form quadratic root solver and the
// matching root-to-polynomial expansion used by second-order filter design.
package polyroot

import (
	"errors"
	"math"
)

// ErrDegeneratePolynomial is returned when a polynomial has degenerate
// coefficients (leading coefficient zero or non-finite values).
var ErrDegeneratePolynomial = errors.New("polyroot: degenerate polynomial")

// Kind classifies the roots of a real quadratic by the sign of its
// discriminant.
type Kind int

const (
	// Distinct means two different real roots (discriminant > 0).
	Distinct Kind = iota
	// Repeated means one real root of multiplicity two (discriminant == 0).
	Repeated
	// Conjugate means a complex-conjugate pair (discriminant < 0).
	Conjugate
)

// String returns a short name for the root kind.
func (k Kind) String() string {
	switch k {
	case Distinct:
		return "distinct"
	case Repeated:
		return "repeated"
	case Conjugate:
		return "conjugate"
	default:
		return "unknown"
	}
}

// Quadratic solves a*x^2 + b*x + c = 0 over the complex numbers.
//
// The returned kind reports which discriminant branch produced the roots.
// For a conjugate pair the root with positive imaginary part comes first.
func Quadratic(a, b, c float64) ([2]complex128, Kind, error) {
	if a == 0 || !isFinite(a) || !isFinite(b) || !isFinite(c) {
		return [2]complex128{}, Distinct, ErrDegeneratePolynomial
	}

	delta := b*b - 4*a*c

	switch {
	case delta > 0:
		sq := math.Sqrt(delta)

		return [2]complex128{
			complex((-b+sq)/(2*a), 0),
			complex((-b-sq)/(2*a), 0),
		}, Distinct, nil
	case delta == 0:
		r := complex(-b/(2*a), 0)

		return [2]complex128{r, r}, Repeated, nil
	default:
		re := -b / (2 * a)
		im := math.Sqrt(-delta) / (2 * math.Abs(a))

		return [2]complex128{
			complex(re, im),
			complex(re, -im),
		}, Conjugate, nil
	}
}

// Expand multiplies out (x - r0)(x - r1) and returns the real parts of the
// monic coefficients (1, c1, c2). Imaginary residue from a not exactly
// conjugate pair is discarded.
func Expand(roots [2]complex128) (c1, c2 float64) {
	return -real(roots[0] + roots[1]), real(roots[0] * roots[1])
}

// PolyEval evaluates a polynomial with complex coefficients in descending
// power order at z using Horner's method.
func PolyEval(coeff []complex128, z complex128) complex128 {
	var y complex128
	for _, c := range coeff {
		y = y*z + c
	}

	return y
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
