package poly

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// mulScratch holds the frequency-domain buffers shared by all products of one
// reduction stage (every pair at a stage uses the same FFT size).
type mulScratch struct {
	plan *algofft.Plan[complex128]
	n    int

	hi  [4][]complex128
	lo  [4][]complex128
	acc []complex128
	tmp []complex128
}

func newMulScratch(fftSize int) (*mulScratch, error) {
	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("poly: failed to create FFT plan: %w", err)
	}

	s := &mulScratch{plan: plan, n: fftSize}
	for i := range s.hi {
		s.hi[i] = make([]complex128, fftSize)
		s.lo[i] = make([]complex128, fftSize)
	}
	s.acc = make([]complex128, fftSize)
	s.tmp = make([]complex128, fftSize)
	return s, nil
}

// load zero-pads the coefficients into dst and transforms them in place.
func (s *mulScratch) load(dst, coeff []complex128) error {
	copy(dst, coeff)
	for i := len(coeff); i < s.n; i++ {
		dst[i] = 0
	}
	return s.plan.Forward(dst, dst)
}

// mulPair computes the matrix product hi*lo (lo applied first) as a matrix
// polynomial of degree hi.Deg+lo.Deg via pointwise frequency-domain products.
func (s *mulScratch) mulPair(hi, lo *Matrix2) (*Matrix2, error) {
	for i, e := range hi.entries() {
		if err := s.load(s.hi[i], e); err != nil {
			return nil, fmt.Errorf("poly: forward FFT failed: %w", err)
		}
	}
	for i, e := range lo.entries() {
		if err := s.load(s.lo[i], e); err != nil {
			return nil, fmt.Errorf("poly: forward FFT failed: %w", err)
		}
	}

	out := NewMatrix2(hi.Deg + lo.Deg)
	out.W = hi.W + lo.W

	// Entry index pairs of the 2x2 product: out[r,c] = hi[r,0]*lo[0,c] +
	// hi[r,1]*lo[1,c], with entries ordered 11, 12, 21, 22.
	combos := [4][4]int{
		{0, 0, 1, 2}, // 11 = 11*11 + 12*21
		{0, 1, 1, 3}, // 12 = 11*12 + 12*22
		{2, 0, 3, 2}, // 21 = 21*11 + 22*21
		{2, 1, 3, 3}, // 22 = 21*12 + 22*22
	}

	dsts := out.entries()
	for k, c := range combos {
		for i := 0; i < s.n; i++ {
			s.acc[i] = s.hi[c[0]][i]*s.lo[c[1]][i] + s.hi[c[2]][i]*s.lo[c[3]][i]
		}
		if err := s.plan.Inverse(s.tmp, s.acc); err != nil {
			return nil, fmt.Errorf("poly: inverse FFT failed: %w", err)
		}
		copy(dsts[k], s.tmp[:out.Deg+1])
	}
	return out, nil
}

// Reduce multiplies the factors into their ordered product
//
//	factors[len-1] * ... * factors[1] * factors[0]
//
// (factors[0] applied first) by pairwise binary-tree combination, so D
// factors of shared degree d cost O(D d log(D d)) instead of the quadratic
// cost of left-to-right accumulation. The factor count must be a power of
// two and all factors must share one degree. When normalize is set, every
// intermediate product is rescaled by a power of two and the exponent is
// accumulated into the result's W.
func Reduce(factors []*Matrix2, normalize bool) (*Matrix2, error) {
	if len(factors) == 0 {
		return nil, ErrNoFactors
	}
	if !IsPowerOf2(len(factors)) {
		return nil, ErrFactorCount
	}
	for _, f := range factors {
		if f.Deg != factors[0].Deg {
			return nil, ErrDegreeMismatch
		}
	}
	if len(factors) == 1 {
		return factors[0], nil
	}

	cur := factors
	for len(cur) > 1 {
		deg := cur[0].Deg
		scratch, err := newMulScratch(nextPowerOf2(2*deg + 1))
		if err != nil {
			return nil, err
		}

		next := make([]*Matrix2, len(cur)/2)
		for i := 0; i < len(cur); i += 2 {
			prod, err := scratch.mulPair(cur[i+1], cur[i])
			if err != nil {
				return nil, err
			}
			if normalize {
				prod.Normalize()
			}
			next[i/2] = prod
		}
		cur = next
	}
	return cur[0], nil
}

// Multiply computes the one-off product hi*lo (lo applied first). It is a
// convenience wrapper around the staged machinery used by Reduce.
func Multiply(hi, lo *Matrix2) (*Matrix2, error) {
	scratch, err := newMulScratch(nextPowerOf2(hi.Deg + lo.Deg + 1))
	if err != nil {
		return nil, err
	}
	return scratch.mulPair(hi, lo)
}
