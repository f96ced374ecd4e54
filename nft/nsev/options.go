package nsev

import "github.com/marbre/FNFT/nft/scatter"

// Filtering selects how raw bound-state candidates are pruned.
type Filtering int

const (
	// FilterFull keeps candidates in the upper half plane that also lie
	// inside the spectral region the sample grid can resolve, then merges
	// near-duplicates.
	FilterFull Filtering = iota
	// FilterBasic keeps upper-half-plane candidates and merges
	// near-duplicates.
	FilterBasic
	// FilterNone returns the raw candidates.
	FilterNone
)

// Localization selects the bound-state search strategy.
type Localization int

const (
	// LocalizeSubsampleAndRefine finds coarse candidates on a subsampled
	// copy of the signal and polishes them by Newton iteration on the
	// full signal. The usual choice.
	LocalizeSubsampleAndRefine Localization = iota
	// LocalizeFastEigenvalue roots the full scattering polynomial. Most
	// accurate candidates, but cubic in the signal length.
	LocalizeFastEigenvalue
	// LocalizeNewton refines caller-provided initial guesses only.
	LocalizeNewton
)

// DiscreteType selects what is reported alongside each bound state.
type DiscreteType int

const (
	// DiscreteNormingConstants reports b(lambda_k).
	DiscreteNormingConstants DiscreteType = iota
	// DiscreteResidues reports b(lambda_k)/a'(lambda_k).
	DiscreteResidues
	// DiscreteBoth reports norming constants followed by residues.
	DiscreteBoth
)

// ContinuousType selects the continuous-spectrum output layout.
type ContinuousType int

const (
	// ContinuousReflection reports b(xi)/a(xi) on the grid (M values).
	ContinuousReflection ContinuousType = iota
	// ContinuousAB reports a(xi) then b(xi) (2M values).
	ContinuousAB
	// ContinuousBoth reports the reflection coefficient, then a, then b
	// (3M values).
	ContinuousBoth
)

// Config collects the transform knobs.
type Config struct {
	Filtering      Filtering
	Localization   Localization
	Niter          int
	DiscreteType   DiscreteType
	ContinuousType ContinuousType
	Discretization scatter.Discretization
	Normalize      bool
	MaxBoundStates int     // 0 means the polynomial root capacity D*d
	MergeTolerance float64 // 0 means sqrt of machine epsilon
	Guesses        []complex128
	SkipDiscrete   bool
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the defaults: full filtering, subsample-and-refine
// localization with ten Newton iterations, norming constants, reflection
// coefficient, the fourth-order Split4B scheme, and renormalized products.
func DefaultConfig() Config {
	return Config{
		Filtering:      FilterFull,
		Localization:   LocalizeSubsampleAndRefine,
		Niter:          10,
		DiscreteType:   DiscreteNormingConstants,
		ContinuousType: ContinuousReflection,
		Discretization: scatter.Split4B,
		Normalize:      true,
	}
}

// WithFiltering selects the bound-state filtering level.
func WithFiltering(f Filtering) Option {
	return func(cfg *Config) { cfg.Filtering = f }
}

// WithLocalization selects the bound-state search strategy.
func WithLocalization(l Localization) Option {
	return func(cfg *Config) { cfg.Localization = l }
}

// WithNiter sets the Newton iteration count.
func WithNiter(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.Niter = n
		}
	}
}

// WithDiscreteType selects the discrete-spectrum flavor.
func WithDiscreteType(dt DiscreteType) Option {
	return func(cfg *Config) { cfg.DiscreteType = dt }
}

// WithContinuousType selects the continuous-spectrum layout.
func WithContinuousType(ct ContinuousType) Option {
	return func(cfg *Config) { cfg.ContinuousType = ct }
}

// WithDiscretization selects the splitting scheme.
func WithDiscretization(d scatter.Discretization) Option {
	return func(cfg *Config) { cfg.Discretization = d }
}

// WithNormalization toggles renormalization of intermediate polynomial
// products. Disabling it is faster but risks overflow for long signals.
func WithNormalization(on bool) Option {
	return func(cfg *Config) { cfg.Normalize = on }
}

// WithMaxBoundStates caps how many bound states are returned. Excess
// candidates are dropped and the result is marked truncated.
func WithMaxBoundStates(k int) Option {
	return func(cfg *Config) {
		if k > 0 {
			cfg.MaxBoundStates = k
		}
	}
}

// WithMergeTolerance overrides the distance below which two bound-state
// candidates collapse into one.
func WithMergeTolerance(tol float64) Option {
	return func(cfg *Config) {
		if tol >= 0 {
			cfg.MergeTolerance = tol
		}
	}
}

// WithGuesses provides initial bound-state guesses for the Newton strategy.
func WithGuesses(guesses []complex128) Option {
	return func(cfg *Config) { cfg.Guesses = guesses }
}

// WithoutDiscreteSpectrum skips bound-state localization entirely.
func WithoutDiscreteSpectrum() Option {
	return func(cfg *Config) { cfg.SkipDiscrete = true }
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
