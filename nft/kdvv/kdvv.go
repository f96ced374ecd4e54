// Package kdvv computes the continuous nonlinear Fourier spectrum of a
// signal governed by the Korteweg-de Vries equation with vanishing
// boundary conditions. The potential enters the same scattering system as
// the Schroedinger case but with the second component pinned to -1, so the
// fast polynomial machinery carries over unchanged. The reported
// coefficients are those of that scattering pair.
package kdvv

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/marbre/FNFT/nft/poly"
	"github.com/marbre/FNFT/nft/scatter"
)

// ErrInvalidInput wraps every argument-validation failure.
var ErrInvalidInput = errors.New("invalid input")

// Config collects the transform knobs.
type Config struct {
	Discretization scatter.Discretization
	Normalize      bool
	AB             bool // report a then b instead of the ratio b/a
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the defaults: the fourth-order Split4A scheme,
// renormalized products, and the reflection-style ratio output.
func DefaultConfig() Config {
	return Config{
		Discretization: scatter.Split4A,
		Normalize:      true,
	}
}

// WithDiscretization selects the splitting scheme.
func WithDiscretization(d scatter.Discretization) Option {
	return func(cfg *Config) { cfg.Discretization = d }
}

// WithNormalization toggles renormalization of intermediate polynomial
// products.
func WithNormalization(on bool) Option {
	return func(cfg *Config) { cfg.Normalize = on }
}

// WithAB reports the coefficients a and b themselves (2M values, a first)
// instead of their ratio.
func WithAB() Option {
	return func(cfg *Config) { cfg.AB = true }
}

// Transform evaluates the continuous spectrum of q on m points spread
// evenly over xi. The signal is sampled uniformly over T and its length
// must be a power of two.
func Transform(q []complex128, T [2]float64, xi [2]float64, m int, opts ...Option) ([]complex128, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if len(q) < 2 || !poly.IsPowerOf2(len(q)) {
		return nil, fmt.Errorf("kdvv: %w: signal length must be a power of two of at least 2, got %d", ErrInvalidInput, len(q))
	}
	if !(T[0] < T[1]) || math.IsInf(T[0], 0) || math.IsInf(T[1], 0) {
		return nil, fmt.Errorf("kdvv: %w: time interval [%v, %v]", ErrInvalidInput, T[0], T[1])
	}
	if m < 1 {
		return nil, fmt.Errorf("kdvv: %w: grid size must be positive, got %d", ErrInvalidInput, m)
	}
	if m >= 1 && !(xi[0] < xi[1]) {
		return nil, fmt.Errorf("kdvv: %w: spectral interval [%v, %v]", ErrInvalidInput, xi[0], xi[1])
	}
	if cfg.Discretization.DegreePerSample() == 0 {
		return nil, fmt.Errorf("kdvv: %w: unknown discretization %d", ErrInvalidInput, int(cfg.Discretization))
	}

	eps := (T[1] - T[0]) / float64(len(q)-1)
	r := make([]complex128, len(q))
	for i := range r {
		r[i] = -1
	}

	mat, err := scatter.BuildScattering(q, r, eps, cfg.Discretization, cfg.Normalize)
	if err != nil {
		return nil, err
	}

	var step float64
	if m > 1 {
		step = (xi[1] - xi[0]) / float64(m-1)
	}
	bShift := complex(T[1]+cfg.Discretization.BoundaryCoeff()*eps, 0)

	a := make([]complex128, m)
	b := make([]complex128, m)
	for i := 0; i < m; i++ {
		lam := complex(xi[0]+float64(i)*step, 0)
		z := cfg.Discretization.Z(lam, eps)
		a[i] = poly.ScaleComplex(poly.Eval(mat.E11, z), mat.W)
		b[i] = poly.ScaleComplex(poly.Eval(mat.E21, z), mat.W) * cmplx.Exp(-2i*lam*bShift)
	}

	if cfg.AB {
		return append(a, b...), nil
	}
	for i := range b {
		b[i] /= a[i]
	}
	return b, nil
}
