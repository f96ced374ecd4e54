package scatter

import (
	"fmt"

	"github.com/marbre/FNFT/nft/poly"
)

// BuildScattering assembles the degree-D*d polynomial approximation of the
// transfer matrix for the sample pair (q, r) and step size step. The samples
// are applied in time order, so the returned product is
// element(q[D-1]) * ... * element(q[0]).
//
// The number of samples must be a power of two of at least two so the
// pairwise reduction tree is balanced. When normalize is set each
// intermediate product is rescaled into binary range and the accumulated
// exponent is reported in the result's W field.
func BuildScattering(q, r []complex128, step float64, d Discretization, normalize bool) (*poly.Matrix2, error) {
	if len(q) != len(r) {
		return nil, fmt.Errorf("%w: %d q samples vs %d r samples", ErrLengthMismatch, len(q), len(r))
	}
	if len(q) < 2 || !poly.IsPowerOf2(len(q)) {
		return nil, fmt.Errorf("%w: got %d", ErrSampleCount, len(q))
	}
	if !(step > 0) {
		return nil, fmt.Errorf("%w: %v", ErrStepSize, step)
	}
	if !d.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDiscretization, int(d))
	}

	factors := make([]*poly.Matrix2, len(q))
	for i := range q {
		factors[i] = element(q[i], r[i], step, d)
	}
	return poly.Reduce(factors, normalize)
}
