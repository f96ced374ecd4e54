//go:build !fastmath

// Package fastmath provides the scalar hyperbolic helpers used in the
// scattering hot loops. The default build uses the standard library; building
// with the fastmath tag swaps in approximations from algo-approx.
package fastmath

import "math"

// Cosh computes cosh(x).
func Cosh(x float64) float64 {
	return math.Cosh(x)
}

// Sinh computes sinh(x).
func Sinh(x float64) float64 {
	return math.Sinh(x)
}

// Sinch computes sinh(x)/x, with Sinch(0) = 1.
func Sinch(x float64) float64 {
	if math.Abs(x) < 1e-4 {
		x2 := x * x
		return 1 + x2/6*(1+x2/20)
	}

	return math.Sinh(x) / x
}
