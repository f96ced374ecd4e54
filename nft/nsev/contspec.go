package nsev

import (
	"math/cmplx"

	"github.com/marbre/FNFT/nft/poly"
	"github.com/marbre/FNFT/nft/scatter"
)

// continuousSpectrum evaluates the scattering coefficients a and b on the
// spectral grid and packs them in the requested layout. The polynomial
// yields a(xi) directly; b(xi) carries the boundary phase that moves the
// matching point from the last sample to the edge of the time window.
func continuousSpectrum(mat *poly.Matrix2, d scatter.Discretization, flavor ContinuousType, eps float64, T, xi [2]float64, m int) []complex128 {
	var step float64
	if m > 1 {
		step = (xi[1] - xi[0]) / float64(m-1)
	}
	bShift := complex(T[1]+d.BoundaryCoeff()*eps, 0)

	a := make([]complex128, m)
	b := make([]complex128, m)
	for i := 0; i < m; i++ {
		lam := complex(xi[0]+float64(i)*step, 0)
		z := d.Z(lam, eps)
		a[i] = poly.ScaleComplex(poly.Eval(mat.E11, z), mat.W)
		b[i] = poly.ScaleComplex(poly.Eval(mat.E21, z), mat.W) * cmplx.Exp(-2i*lam*bShift)
	}

	switch flavor {
	case ContinuousAB:
		return append(a, b...)
	case ContinuousBoth:
		out := make([]complex128, 0, 3*m)
		for i := range a {
			out = append(out, b[i]/a[i])
		}
		return append(append(out, a...), b...)
	default:
		for i := range a {
			b[i] /= a[i]
		}
		return b
	}
}
