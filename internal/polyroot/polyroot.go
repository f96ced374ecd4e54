// Package polyroot provides the polynomial root kernel used for bound-state
// localization. It finds all roots of a complex-coefficient polynomial by
// Durand-Kerner (Weierstrass) simultaneous iteration and signals convergence
// failure instead of returning unreliable roots.
package polyroot

import (
	"errors"
	"math"
	"math/cmplx"
)

var (
	// ErrDegeneratePolynomial is returned when the polynomial has no
	// well-defined roots (fewer than two significant coefficients).
	ErrDegeneratePolynomial = errors.New("polyroot: degenerate polynomial")

	// ErrNoConvergence is returned when the simultaneous iteration fails to
	// localize all roots to an acceptable residual.
	ErrNoConvergence = errors.New("polyroot: root iteration did not converge")
)

const (
	maxSweeps   = 1000
	stepTol     = 1e-13
	residualTol = 1e-8

	// leadTol bounds the leading-coefficient trim. A leading coefficient
	// below leadTol times the largest one forces roots of modulus at
	// least (1/leadTol)^(1/k) for some k; normalizing by such a
	// coefficient makes the start radius overflow the Horner evaluation,
	// so those near-infinite roots are trimmed away instead of searched.
	leadTol = 1e-9
)

// Roots finds all roots of the polynomial
//
//	c[0] + c[1]*z + ... + c[n]*z^n
//
// with coefficients in ascending power order. Leading coefficients that are
// negligible relative to the largest coefficient are trimmed first (their
// roots lie at infinity); trailing zero coefficients contribute exact roots
// at the origin. A polynomial without significant coefficients yields
// ErrDegeneratePolynomial; failure of the iteration yields ErrNoConvergence.
func Roots(coeff []complex128) ([]complex128, error) {
	scale := maxMod(coeff)
	if scale == 0 {
		return nil, ErrDegeneratePolynomial
	}

	hi := len(coeff) - 1
	for hi > 0 && cmplx.Abs(coeff[hi]) <= leadTol*scale {
		hi--
	}

	lo := 0
	for lo < hi && coeff[lo] == 0 {
		lo++
	}

	if hi == lo {
		// Constant (after trimming): only the origin roots remain.
		return make([]complex128, lo), nil
	}

	inner, err := durandKerner(coeff[lo : hi+1])
	if err != nil {
		return nil, err
	}

	roots := make([]complex128, 0, lo+len(inner))
	for i := 0; i < lo; i++ {
		roots = append(roots, 0)
	}
	return append(roots, inner...), nil
}

// durandKerner runs the simultaneous iteration on a polynomial with
// non-negligible leading and non-zero constant coefficients.
func durandKerner(coeff []complex128) ([]complex128, error) {
	n := len(coeff) - 1
	lead := coeff[n]

	norm := make([]complex128, len(coeff))
	for i := range coeff {
		norm[i] = coeff[i] / lead
	}

	// Fujiwara bound on the root moduli: 2 * max_k |a_(n-k)|^(1/k) for the
	// normalized polynomial. Unlike the plain coefficient maximum it stays
	// moderate when a single low-order coefficient dominates.
	radius := 0.0
	for i := 0; i < n; i++ {
		if a := cmplx.Abs(norm[i]); a > 0 {
			if r := math.Pow(a, 1/float64(n-i)); r > radius {
				radius = r
			}
		}
	}
	radius *= 2
	if radius < 1 {
		radius = 1
	}
	// Keep radius^n representable so the Horner evaluation at the start
	// points cannot overflow.
	if limit := math.Pow(1e250, 1/float64(n)); radius > limit {
		radius = limit
	}

	roots := make([]complex128, n)
	for i := range roots {
		angle := 2*math.Pi*float64(i)/float64(n) + 0.3
		r := radius * (1 + 0.1*float64(i)/float64(n))
		roots[i] = complex(r*math.Cos(angle), r*math.Sin(angle))
	}

	for sweep := 0; sweep < maxSweeps; sweep++ {
		maxStep := 0.0

		for i := range roots {
			den := complex(1, 0)
			for j := range roots {
				if i == j {
					continue
				}
				den *= roots[i] - roots[j]
			}

			if den == 0 {
				roots[i] += complex(1e-10, 1e-10)
				maxStep = math.Inf(1)
				continue
			}

			delta := evalAscending(norm, roots[i]) / den
			next := roots[i] - delta
			if !isFinite(delta) || !isFinite(next) {
				// A blown-up evaluation must never count as converged.
				// Restart the root near the unit circle, where the
				// interesting roots of scattering polynomials cluster.
				angle := 2*math.Pi*float64(i)/float64(n) + 0.7*float64(sweep%8)
				roots[i] = complex(math.Cos(angle), math.Sin(angle))
				maxStep = math.Inf(1)
				continue
			}
			roots[i] = next

			if d := cmplx.Abs(delta) / (1 + cmplx.Abs(next)); d > maxStep {
				maxStep = d
			}
		}

		if maxStep < stepTol {
			return roots, nil
		}
	}

	// The sweep limit was hit; accept the roots only if every residual is
	// small relative to the coefficient magnitudes at that point.
	for _, r := range roots {
		if !residualOK(norm, r) {
			return nil, ErrNoConvergence
		}
	}
	return roots, nil
}

// residualOK compares |p(z)| against the magnitude sum of its evaluated
// terms, a scale-free backward-error criterion.
func residualOK(coeff []complex128, z complex128) bool {
	val := evalAscending(coeff, z)
	if cmplx.IsNaN(val) || cmplx.IsInf(val) {
		return false
	}

	mag := 0.0
	zp := complex(1, 0)
	for _, c := range coeff {
		mag += cmplx.Abs(c) * cmplx.Abs(zp)
		zp *= z
	}
	if mag == 0 {
		return false
	}
	return cmplx.Abs(val) <= residualTol*mag
}

// evalAscending evaluates the polynomial by Horner's method, coefficients in
// ascending power order.
func evalAscending(coeff []complex128, z complex128) complex128 {
	v := coeff[len(coeff)-1]
	for i := len(coeff) - 2; i >= 0; i-- {
		v = v*z + coeff[i]
	}
	return v
}

func isFinite(z complex128) bool {
	return !math.IsNaN(real(z)) && !math.IsNaN(imag(z)) &&
		!math.IsInf(real(z), 0) && !math.IsInf(imag(z), 0)
}

func maxMod(coeff []complex128) float64 {
	worst := 0.0
	for _, c := range coeff {
		if m := cmplx.Abs(c); m > worst {
			worst = m
		}
	}
	return worst
}
