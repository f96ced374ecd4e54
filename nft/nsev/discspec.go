package nsev

import (
	"fmt"
	"math"

	"github.com/marbre/FNFT/internal/cvec"
	"github.com/marbre/FNFT/internal/polyroot"
	"github.com/marbre/FNFT/nft/diag"
	"github.com/marbre/FNFT/nft/scatter"
)

const defaultMergeTol = 1.4901161193847656e-08 // sqrt of machine epsilon

// candidateProducer yields raw bound-state candidates for the shared
// filter, merge and norming pipeline. Each localization strategy is one
// producer; the pipeline does not care which.
type candidateProducer func() ([]complex128, error)

func producerFor(q, r []complex128, T [2]float64, eps float64, cfg *Config) candidateProducer {
	switch cfg.Localization {
	case LocalizeFastEigenvalue:
		return func() ([]complex128, error) { return fastEigenvalues(q, r, eps, cfg) }
	case LocalizeNewton:
		return func() ([]complex128, error) { return refineGuesses(q, r, T, cfg.Guesses, cfg.Niter, true) }
	default:
		return func() ([]complex128, error) { return subsampleAndRefine(q, r, T, eps, cfg) }
	}
}

// discreteSpectrum locates the bound states, filters them, and fills in the
// per-eigenvalue scattering data.
func discreteSpectrum(spec *Spectrum, q, r []complex128, T [2]float64, eps float64, cfg *Config) error {
	produce := producerFor(q, r, T, eps, cfg)
	cands, err := produce()
	if err != nil {
		return err
	}

	cands = filterCandidates(cands, q, eps, cfg)

	maxK := cfg.MaxBoundStates
	if maxK == 0 {
		maxK = MaxBoundStates(len(q), cfg.Discretization)
	}
	if len(cands) > maxK {
		diag.Warnf("keeping %d of %d bound states, raise the capacity to see all of them", maxK, len(cands))
		cands = cands[:maxK]
		spec.Truncated = true
	}
	spec.BoundStates = cands
	if len(cands) == 0 {
		spec.NormconstsOrResidues = []complex128{}
		return nil
	}

	_, aPrime, b, err := scatter.ScatterBoundStates(q, r, T, cands)
	if err != nil {
		return err
	}

	switch cfg.DiscreteType {
	case DiscreteResidues:
		out := make([]complex128, len(cands))
		for i := range out {
			out[i] = b[i] / aPrime[i]
		}
		spec.NormconstsOrResidues = out
	case DiscreteBoth:
		out := make([]complex128, 0, 2*len(cands))
		out = append(out, b...)
		for i := range cands {
			out = append(out, b[i]/aPrime[i])
		}
		spec.NormconstsOrResidues = out
	default:
		spec.NormconstsOrResidues = b
	}
	return nil
}

// fastEigenvalues roots the upper-left entry of the full scattering
// polynomial and maps each root back to the spectral plane.
func fastEigenvalues(q, r []complex128, eps float64, cfg *Config) ([]complex128, error) {
	mat, err := scatter.BuildScattering(q, r, eps, cfg.Discretization, cfg.Normalize)
	if err != nil {
		return nil, err
	}
	return rootsToLambda(mat.E11, cfg.Discretization, eps)
}

func rootsToLambda(coeff []complex128, d scatter.Discretization, eps float64) ([]complex128, error) {
	roots, err := polyroot.Roots(coeff)
	if err != nil {
		return nil, fmt.Errorf("nsev: locating bound states: %w", err)
	}

	lams := make([]complex128, 0, len(roots))
	for _, z := range roots {
		// Roots at the origin map to infinity; they are artifacts of the
		// polynomial degree, not eigenvalues.
		if z == 0 {
			continue
		}
		lam := d.Lambda(z, eps)
		if isFinite(lam) {
			lams = append(lams, lam)
		}
	}
	return lams, nil
}

// refineGuesses polishes candidates on the full-resolution signal and drops
// the divergent ones. With strict set an all-divergent outcome is fatal,
// which is the contract for caller-provided guesses.
func refineGuesses(q, r []complex128, T [2]float64, guesses []complex128, niter int, strict bool) ([]complex128, error) {
	refined, ok, err := scatter.NewtonRefine(q, r, T, guesses, niter)
	if err != nil {
		return nil, err
	}

	kept := refined[:0]
	for i, lam := range refined {
		if ok[i] {
			kept = append(kept, lam)
		}
	}
	if dropped := len(guesses) - len(kept); dropped > 0 {
		diag.Warnf("dropped %d of %d bound-state candidates after newton refinement", dropped, len(guesses))
	}
	if strict && len(guesses) > 0 && len(kept) == 0 {
		return nil, fmt.Errorf("nsev: %w", ErrNewtonDivergence)
	}
	return kept, nil
}

// subsampleAndRefine searches for coarse candidates on a decimated copy of
// the signal, using the cheap degree-1 scheme, and polishes them on the
// full signal. The subsampled length grows like sqrt(D*log D), which keeps
// the rooting cost near-linear overall.
func subsampleAndRefine(q, r []complex128, T [2]float64, eps float64, cfg *Config) ([]complex128, error) {
	d := len(q)
	target := int(math.Ceil(math.Sqrt(float64(d) * math.Log2(float64(d)))))
	dsub := 2
	for dsub < target {
		dsub *= 2
	}
	if dsub > d {
		dsub = d
	}
	stride := d / dsub

	qs := cvec.Decimate(q, stride)
	rs := cvec.Decimate(r, stride)
	subStep := float64(stride) * eps

	mat, err := scatter.BuildScattering(qs, rs, subStep, scatter.Split2A, cfg.Normalize)
	if err != nil {
		return nil, err
	}
	coarse, err := rootsToLambda(mat.E11, scatter.Split2A, subStep)
	if err != nil {
		return nil, err
	}

	// Prefilter against the region the coarse grid can resolve so Newton
	// only runs on plausible candidates.
	box := resolvableRegion(q, subStep, mergeTol(cfg))
	coarse, _ = cvec.FilterBox(coarse, nil, box)
	if len(coarse) == 0 {
		return nil, nil
	}

	return refineGuesses(q, r, T, coarse, cfg.Niter, false)
}

func filterCandidates(cands []complex128, q []complex128, eps float64, cfg *Config) []complex128 {
	if cfg.Filtering == FilterNone {
		return cands
	}

	box := cvec.UpperHalfPlane()
	if cfg.Filtering == FilterFull {
		box = resolvableRegion(q, eps, mergeTol(cfg))
	}
	cands, _ = cvec.FilterBox(cands, nil, box)
	return cvec.Merge(cands, mergeTol(cfg))
}

// resolvableRegion bounds where genuine bound states can live: the upper
// half plane, real parts inside the Nyquist band of the sample grid, and
// imaginary parts below the signal's sup norm.
func resolvableRegion(q []complex128, step, margin float64) cvec.Box {
	nyquist := math.Pi / (2 * step)
	return cvec.Box{
		MinRe: -nyquist,
		MaxRe: nyquist,
		MinIm: math.SmallestNonzeroFloat64,
		MaxIm: cvec.MaxAbs(q) + margin,
	}
}

func mergeTol(cfg *Config) float64 {
	if cfg.MergeTolerance > 0 {
		return cfg.MergeTolerance
	}
	return defaultMergeTol
}

func isFinite(z complex128) bool {
	return !math.IsNaN(real(z)) && !math.IsNaN(imag(z)) &&
		!math.IsInf(real(z), 0) && !math.IsInf(imag(z), 0)
}
