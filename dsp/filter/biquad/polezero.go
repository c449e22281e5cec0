package biquad

import "github.com/cwbudde/algo-xmax/internal/polyroot"

// Poles returns the roots of z^2 + A1*z + A2.
func (c *Coefficients) Poles() [2]complex128 {
	roots, _, _ := polyroot.Quadratic(1, c.A1, c.A2)
	return roots
}

// Zeros returns the roots of B0*z^2 + B1*z + B2. A vanishing leading
// coefficient drops the order; the missing zeros are reported as 0.
func (c *Coefficients) Zeros() [2]complex128 {
	switch {
	case c.B0 != 0:
		roots, _, _ := polyroot.Quadratic(c.B0, c.B1, c.B2)
		return roots
	case c.B1 != 0:
		return [2]complex128{complex(-c.B2/c.B1, 0), 0}
	default:
		return [2]complex128{}
	}
}

// IsStable reports whether both poles lie strictly inside the unit circle,
// using the Jury conditions for a monic quadratic.
func (c *Coefficients) IsStable() bool {
	return c.A2 > -1 && c.A2 < 1 && c.A1 < 1+c.A2 && -c.A1 < 1+c.A2
}
