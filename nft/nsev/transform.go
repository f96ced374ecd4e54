// Package nsev computes the nonlinear Fourier transform of a signal
// governed by the nonlinear Schroedinger equation with vanishing boundary
// conditions. The continuous spectrum comes from a fast polynomial
// approximation of the scattering matrix; the discrete spectrum is located
// by polynomial rooting and polished by Newton iteration on an exact
// one-step scattering recursion.
package nsev

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/marbre/FNFT/nft/poly"
	"github.com/marbre/FNFT/nft/scatter"
)

// Spectrum is the transform result. Contspec holds the continuous spectrum
// in the layout selected by ContinuousType; BoundStates the discrete
// eigenvalues; NormconstsOrResidues the per-eigenvalue data selected by
// DiscreteType. Truncated reports that more bound states were found than
// the configured capacity.
type Spectrum struct {
	Contspec             []complex128
	BoundStates          []complex128
	NormconstsOrResidues []complex128
	Truncated            bool
}

// MaxBoundStates returns the largest number of bound states the transform
// can report for d samples under the given scheme, the root count of the
// scattering polynomial.
func MaxBoundStates(d int, discr scatter.Discretization) int {
	return scatter.Degree(d, discr)
}

// Transform computes the nonlinear Fourier transform of q sampled uniformly
// over T. The continuous spectrum is evaluated on m points spread evenly
// over xi; m = 0 skips it. kappa selects the focusing (+1) or defocusing
// (-1) regime.
func Transform(q []complex128, T [2]float64, xi [2]float64, m int, kappa int, opts ...Option) (*Spectrum, error) {
	cfg := ApplyOptions(opts...)
	if err := validate(q, T, xi, m, kappa, &cfg); err != nil {
		return nil, err
	}

	eps := (T[1] - T[0]) / float64(len(q)-1)
	r := make([]complex128, len(q))
	for i, v := range q {
		r[i] = -complex(float64(kappa), 0) * cmplx.Conj(v)
	}

	spec := &Spectrum{}

	if m > 0 {
		mat, err := scatter.BuildScattering(q, r, eps, cfg.Discretization, cfg.Normalize)
		if err != nil {
			return nil, err
		}
		spec.Contspec = continuousSpectrum(mat, cfg.Discretization, cfg.ContinuousType, eps, T, xi, m)
	}

	if !cfg.SkipDiscrete {
		if err := discreteSpectrum(spec, q, r, T, eps, &cfg); err != nil {
			return nil, err
		}
	}

	return spec, nil
}

func validate(q []complex128, T [2]float64, xi [2]float64, m, kappa int, cfg *Config) error {
	if len(q) < 2 || !poly.IsPowerOf2(len(q)) {
		return fmt.Errorf("nsev: %w: signal length must be a power of two of at least 2, got %d", ErrInvalidInput, len(q))
	}
	if !(T[0] < T[1]) || math.IsInf(T[0], 0) || math.IsInf(T[1], 0) {
		return fmt.Errorf("nsev: %w: time interval [%v, %v]", ErrInvalidInput, T[0], T[1])
	}
	if m < 0 {
		return fmt.Errorf("nsev: %w: negative grid size %d", ErrInvalidInput, m)
	}
	if m >= 1 && !(xi[0] < xi[1]) {
		return fmt.Errorf("nsev: %w: spectral interval [%v, %v]", ErrInvalidInput, xi[0], xi[1])
	}
	if kappa != 1 && kappa != -1 {
		return fmt.Errorf("nsev: %w: kappa must be +1 or -1, got %d", ErrInvalidInput, kappa)
	}
	if cfg.Discretization.DegreePerSample() == 0 {
		return fmt.Errorf("nsev: %w: unknown discretization %d", ErrInvalidInput, int(cfg.Discretization))
	}
	if cfg.Niter < 1 {
		return fmt.Errorf("nsev: %w: niter must be positive, got %d", ErrInvalidInput, cfg.Niter)
	}
	if !cfg.SkipDiscrete && cfg.Localization == LocalizeNewton && len(cfg.Guesses) == 0 {
		return fmt.Errorf("nsev: %w: the Newton strategy needs initial guesses", ErrInvalidInput)
	}
	return nil
}
