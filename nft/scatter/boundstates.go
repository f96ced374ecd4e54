package scatter

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/marbre/FNFT/internal/cvec"
)

// mat2 is a dense 2x2 complex matrix used by the slow scattering recursion.
type mat2 struct {
	a11, a12, a21, a22 complex128
}

var identity = mat2{a11: 1, a22: 1}

func (m mat2) mul(n mat2) mat2 {
	return mat2{
		a11: m.a11*n.a11 + m.a12*n.a21,
		a12: m.a11*n.a12 + m.a12*n.a22,
		a21: m.a21*n.a11 + m.a22*n.a21,
		a22: m.a21*n.a12 + m.a22*n.a22,
	}
}

func (m mat2) add(n mat2) mat2 {
	return mat2{m.a11 + n.a11, m.a12 + n.a12, m.a21 + n.a21, m.a22 + n.a22}
}

// sampleStep evaluates the exact constant-coefficient propagator over one
// step together with its derivative in lambda. With
// k^2 = q*r - lambda^2 and u = step*k the propagator is
//
//	M = cosh(u)*I + step*sinch(u)*[[-i*lambda, q], [r, i*lambda]]
//
// and the derivatives follow from dC/dlam = -lam*step^2*S and
// dS/dlam = -lam*step^2*(C-S)/u^2.
func sampleStep(q, r, lam complex128, step float64) (m, dm mat2) {
	h := complex(step, 0)
	u := h * cmplx.Sqrt(q*r-lam*lam)

	c := cmplx.Cosh(u)
	s := cvec.Sinch(u)
	ratio := coshSinchRatio(c, s, u)

	dc := -lam * h * h * s
	ds := -lam * h * h * ratio

	ilh := 1i * lam * h

	m = mat2{
		a11: c - ilh*s,
		a12: q * h * s,
		a21: r * h * s,
		a22: c + ilh*s,
	}
	dm = mat2{
		a11: dc - 1i*h*s - ilh*ds,
		a12: q * h * ds,
		a21: r * h * ds,
		a22: dc + 1i*h*s + ilh*ds,
	}
	return m, dm
}

// coshSinchRatio returns (cosh(u) - sinch(u)) / u^2, switching to the Taylor
// expansion near the removable singularity at u = 0.
func coshSinchRatio(c, s, u complex128) complex128 {
	if cmplx.Abs(u) < 1e-4 {
		u2 := u * u
		return complex(1.0/3.0, 0) + u2/30
	}
	return (c - s) / (u * u)
}

// halfProducts runs the recursion over both halves of the signal and returns
// the half products L, R and their lambda derivatives. Splitting the product
// keeps the Jost-solution matching in the middle of the domain, far from the
// exponential growth at either end.
func halfProducts(q, r []complex128, lam complex128, step float64) (l, dl, rr, drr mat2) {
	half := len(q) / 2

	l, dl = identity, mat2{}
	for i := 0; i < half; i++ {
		m, dm := sampleStep(q[i], r[i], lam, step)
		dl = dm.mul(l).add(m.mul(dl))
		l = m.mul(l)
	}

	rr, drr = identity, mat2{}
	for i := half; i < len(q); i++ {
		m, dm := sampleStep(q[i], r[i], lam, step)
		drr = dm.mul(rr).add(m.mul(drr))
		rr = m.mul(rr)
	}
	return l, dl, rr, drr
}

// ScatterBoundStates evaluates a(lambda), da/dlambda and b(lambda) at each of
// the given spectral points using the exponential one-step recursion on the
// full-resolution signal. T holds the first and last sample times.
func ScatterBoundStates(q, r []complex128, T [2]float64, lams []complex128) (a, aPrime, b []complex128, err error) {
	if len(q) != len(r) {
		return nil, nil, nil, fmt.Errorf("%w: %d q samples vs %d r samples", ErrLengthMismatch, len(q), len(r))
	}
	if len(q) < 2 {
		return nil, nil, nil, fmt.Errorf("%w: need at least 2, got %d", ErrSampleCount, len(q))
	}
	step := (T[1] - T[0]) / float64(len(q)-1)
	if !(step > 0) {
		return nil, nil, nil, fmt.Errorf("%w: %v", ErrStepSize, step)
	}

	a = make([]complex128, len(lams))
	aPrime = make([]complex128, len(lams))
	b = make([]complex128, len(lams))

	dEps := complex(float64(len(q))*step, 0)
	for i, lam := range lams {
		l, dl, rm, drm := halfProducts(q, r, lam, step)

		u := rm.mul(l)
		du := drm.mul(l).add(rm.mul(dl))

		phase := cmplx.Exp(1i * lam * dEps)
		a[i] = u.a11 * phase
		aPrime[i] = (du.a11 + 1i*dEps*u.a11) * phase

		// phi carries the left Jost solution to the midpoint, psi the
		// right one back; b is their proportionality factor there.
		phi1, phi2 := l.a11, l.a21
		psi1, psi2 := -rm.a12, rm.a11
		var ratio complex128
		if cmplx.Abs(psi1) >= cmplx.Abs(psi2) {
			ratio = phi1 / psi1
		} else {
			ratio = phi2 / psi2
		}
		b[i] = ratio * cmplx.Exp(-1i*lam*complex(T[0]+T[1], 0))
	}
	return a, aPrime, b, nil
}

// newtonAcceptTol scales the permitted size of the final Newton correction.
const newtonAcceptTol = 1e-6

// NewtonRefine polishes bound-state guesses by Newton iteration on
// a(lambda) = 0 evaluated through the one-step recursion. The returned mask
// marks guesses that stayed finite and whose final correction was small
// relative to the refined value; callers drop the rest.
func NewtonRefine(q, r []complex128, T [2]float64, guesses []complex128, niter int) (refined []complex128, ok []bool, err error) {
	if len(q) != len(r) {
		return nil, nil, fmt.Errorf("%w: %d q samples vs %d r samples", ErrLengthMismatch, len(q), len(r))
	}
	if len(q) < 2 {
		return nil, nil, fmt.Errorf("%w: need at least 2, got %d", ErrSampleCount, len(q))
	}
	step := (T[1] - T[0]) / float64(len(q)-1)
	if !(step > 0) {
		return nil, nil, fmt.Errorf("%w: %v", ErrStepSize, step)
	}

	refined = make([]complex128, len(guesses))
	ok = make([]bool, len(guesses))
	dEps := complex(float64(len(q))*step, 0)

	for i, lam := range guesses {
		good := true
		var last float64
		for it := 0; it < niter; it++ {
			l, dl, rm, drm := halfProducts(q, r, lam, step)
			u := rm.mul(l)
			du := drm.mul(l).add(rm.mul(dl))

			// The common phase exp(i*lam*D*eps) cancels in the ratio,
			// so the update stays finite deep in the upper half plane.
			denom := du.a11 + 1i*dEps*u.a11
			delta := u.a11 / denom
			lam -= delta

			last = cmplx.Abs(delta)
			if !isFinite(lam) {
				good = false
				break
			}
			if last <= 100*machEps*(1+cmplx.Abs(lam)) {
				break
			}
		}
		if good && last > newtonAcceptTol*(1+cmplx.Abs(lam)) {
			good = false
		}
		refined[i] = lam
		ok[i] = good
	}
	return refined, ok, nil
}

const machEps = 2.220446049250313e-16

func isFinite(z complex128) bool {
	return !math.IsNaN(real(z)) && !math.IsNaN(imag(z)) &&
		!math.IsInf(real(z), 0) && !math.IsInf(imag(z), 0)
}
