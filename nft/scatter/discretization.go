package scatter

import (
	"errors"
	"math/cmplx"
)

// Errors returned by the scattering routines.
var (
	ErrUnknownDiscretization = errors.New("scatter: unknown discretization")
	ErrSampleCount           = errors.New("scatter: sample count must be a power of two, at least 2")
	ErrStepSize              = errors.New("scatter: step size must be positive")
	ErrLengthMismatch        = errors.New("scatter: q and r must have equal length")
)

// Discretization selects the exponential-splitting scheme used to
// approximate the per-sample propagator.
type Discretization int

const (
	// Split2A is the symmetric (Strang) second-order splitting with one
	// polynomial degree per sample.
	Split2A Discretization = iota

	// Split4A is the fourth-order extrapolated Strang splitting,
	// (4/3)S(h/2)^2 - (1/3)S(h), with four degrees per sample.
	Split4A

	// Split4B is the fourth-order splitting with the roles of the free and
	// potential propagators swapped, with two degrees per sample.
	Split4B
)

// DegreePerSample returns the polynomial degree contributed by one sample,
// or zero for an unknown discretization.
func (d Discretization) DegreePerSample() int {
	switch d {
	case Split2A:
		return 1
	case Split4A:
		return 4
	case Split4B:
		return 2
	default:
		return 0
	}
}

// Order returns the convergence order of the splitting.
func (d Discretization) Order() int {
	switch d {
	case Split2A:
		return 2
	case Split4A, Split4B:
		return 4
	default:
		return 0
	}
}

// BoundaryCoeff returns the coefficient c such that the norming function
// b carries the boundary phase exp(-2i*lambda*(T1 + c*step)).
func (d Discretization) BoundaryCoeff() float64 {
	switch d {
	case Split2A:
		return 0
	default:
		return 0.5
	}
}

func (d Discretization) String() string {
	switch d {
	case Split2A:
		return "2split2A"
	case Split4A:
		return "2split4A"
	case Split4B:
		return "2split4B"
	default:
		return "unknown"
	}
}

func (d Discretization) valid() bool {
	return d.DegreePerSample() > 0
}

// Z maps a spectral parameter to the transform variable
// z = exp(2i*lambda*step/d).
func (d Discretization) Z(lam complex128, step float64) complex128 {
	return cmplx.Exp(2i * lam * complex(step/float64(d.DegreePerSample()), 0))
}

// Lambda maps a root of the scattering polynomial back to the spectral
// plane via the principal logarithm: lambda = -i*(d/(2*step))*Log(z).
// The upper half-plane corresponds to |z| < 1.
func (d Discretization) Lambda(z complex128, step float64) complex128 {
	return -1i * complex(float64(d.DegreePerSample())/(2*step), 0) * cmplx.Log(z)
}

// Degree returns the degree of the combined scattering polynomial for
// samples samples, or zero for an unknown discretization.
func Degree(samples int, d Discretization) int {
	return samples * d.DegreePerSample()
}

// CoefficientCount returns the total number of complex coefficients the
// builder produces for samples samples (four entries of degree+1 each), or
// zero for an unknown discretization. It agrees exactly with the
// coefficient count of the Matrix2 returned by BuildScattering.
func CoefficientCount(samples int, d Discretization) int {
	if !d.valid() {
		return 0
	}
	return 4 * (Degree(samples, d) + 1)
}
