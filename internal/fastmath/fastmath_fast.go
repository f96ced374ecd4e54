//go:build fastmath

package fastmath

import (
	"math"

	"github.com/meko-christian/algo-approx"
)

// Cosh computes cosh(x) from fast exponentials: (e^x + e^-x)/2.
func Cosh(x float64) float64 {
	e := approx.FastExp(x)
	return 0.5 * (e + 1/e)
}

// Sinh computes sinh(x) from fast exponentials: (e^x - e^-x)/2.
func Sinh(x float64) float64 {
	e := approx.FastExp(x)
	return 0.5 * (e - 1/e)
}

// Sinch computes sinh(x)/x, with Sinch(0) = 1.
func Sinch(x float64) float64 {
	if math.Abs(x) < 1e-4 {
		x2 := x * x
		return 1 + x2/6*(1+x2/20)
	}

	return Sinh(x) / x
}
