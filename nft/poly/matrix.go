package poly

import (
	"errors"
	"math"
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by matrix-polynomial operations.
var (
	ErrNoFactors      = errors.New("poly: no factors to multiply")
	ErrFactorCount    = errors.New("poly: factor count must be a power of two")
	ErrDegreeMismatch = errors.New("poly: factors must share one degree")
)

// Matrix2 is a 2x2 matrix-valued polynomial of degree Deg. Each entry slice
// holds Deg+1 coefficients in ascending power order. W is the accumulated
// power-of-two scaling exponent: the represented matrix is 2^W times the
// stored one.
type Matrix2 struct {
	Deg int
	W   int

	E11, E12, E21, E22 []complex128
}

// NewMatrix2 allocates a zero matrix polynomial of the given degree.
func NewMatrix2(deg int) *Matrix2 {
	return &Matrix2{
		Deg: deg,
		E11: make([]complex128, deg+1),
		E12: make([]complex128, deg+1),
		E21: make([]complex128, deg+1),
		E22: make([]complex128, deg+1),
	}
}

// CoefficientCount returns the total number of stored coefficients.
func (m *Matrix2) CoefficientCount() int {
	return len(m.E11) + len(m.E12) + len(m.E21) + len(m.E22)
}

func (m *Matrix2) entries() [4][]complex128 {
	return [4][]complex128{m.E11, m.E12, m.E21, m.E22}
}

// scratchBuf pools the real/imaginary unpacking buffers used by the
// normalization magnitude scan.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im, mag []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 3 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n : 2*n], buf.data[2*n : need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

// maxAbs returns the largest coefficient modulus across all four entries.
func (m *Matrix2) maxAbs() float64 {
	worst := 0.0
	re, im, mag, buf := getScratch(m.Deg + 1)
	defer putScratch(buf)

	for _, e := range m.entries() {
		for i, c := range e {
			re[i] = real(c)
			im[i] = imag(c)
		}
		vecmath.Magnitude(mag, re, im)
		for _, v := range mag {
			if v > worst {
				worst = v
			}
		}
	}
	return worst
}

// Normalize jointly rescales all coefficients by the power of two that brings
// the maximum modulus into [1, 2) and accumulates the exponent into W. A zero
// or non-finite matrix is left untouched.
func (m *Matrix2) Normalize() {
	worst := m.maxAbs()
	if worst == 0 || math.IsInf(worst, 0) || math.IsNaN(worst) {
		return
	}

	e := math.Ilogb(worst)
	if e == 0 {
		return
	}

	s := math.Ldexp(1, -e)
	for _, entry := range m.entries() {
		for i, c := range entry {
			entry[i] = complex(real(c)*s, imag(c)*s)
		}
	}
	m.W += e
}

// ScaleComplex multiplies v by 2^w without forming the scale factor as an
// intermediate, so very large exponents stay representable.
func ScaleComplex(v complex128, w int) complex128 {
	return complex(math.Ldexp(real(v), w), math.Ldexp(imag(v), w))
}

// Eval evaluates the coefficient slice (ascending powers) at z by Horner's
// method.
func Eval(coeff []complex128, z complex128) complex128 {
	if len(coeff) == 0 {
		return 0
	}
	v := coeff[len(coeff)-1]
	for i := len(coeff) - 2; i >= 0; i-- {
		v = v*z + coeff[i]
	}
	return v
}

// EvalDeriv evaluates the polynomial and its derivative at z in a single
// Horner pass.
func EvalDeriv(coeff []complex128, z complex128) (p, dp complex128) {
	if len(coeff) == 0 {
		return 0, 0
	}
	p = coeff[len(coeff)-1]
	for i := len(coeff) - 2; i >= 0; i-- {
		dp = dp*z + p
		p = p*z + coeff[i]
	}
	return p, dp
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}

// IsPowerOf2 reports whether n is a positive power of 2.
func IsPowerOf2(n int) bool {
	return n > 0 && (n&(n-1)) == 0
}
