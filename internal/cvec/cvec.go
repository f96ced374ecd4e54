// Package cvec provides complex-vector utilities shared by the transform
// pipeline: bounding-box filtering, near-duplicate merging, decimation and
// error norms, plus the complex special functions used by the scattering
// recursions.
package cvec

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-vecmath"
)

// ErrBadInterval is returned when an interval is empty or reversed.
var ErrBadInterval = errors.New("cvec: interval must satisfy a < b")

// Box is a rectangular region of the complex plane used for filtering.
type Box struct {
	MinRe, MaxRe float64
	MinIm, MaxIm float64
}

// UpperHalfPlane returns the box keeping values with Im strictly above zero.
func UpperHalfPlane() Box {
	return Box{
		MinRe: math.Inf(-1),
		MaxRe: math.Inf(1),
		MinIm: math.SmallestNonzeroFloat64,
		MaxIm: math.Inf(1),
	}
}

// Contains reports whether v lies inside the box (bounds inclusive).
func (b Box) Contains(v complex128) bool {
	return real(v) >= b.MinRe && real(v) <= b.MaxRe &&
		imag(v) >= b.MinIm && imag(v) <= b.MaxIm
}

// FilterBox compacts vals in place, keeping only values inside box. If along
// is non-nil it must have the same length and is compacted with the same
// pattern. Both shortened slices are returned.
func FilterBox(vals, along []complex128, box Box) ([]complex128, []complex128) {
	n := 0
	for i, v := range vals {
		if !box.Contains(v) {
			continue
		}
		vals[n] = v
		if along != nil {
			along[n] = along[i]
		}
		n++
	}

	if along != nil {
		along = along[:n]
	}
	return vals[:n], along
}

// Merge collapses values whose pairwise distance is below tol into their
// mean, repeating until all survivors are separated by at least tol. The
// input slice is reused; the shortened slice is returned. Applying Merge to
// its own output is a no-op.
func Merge(vals []complex128, tol float64) []complex128 {
	if tol <= 0 {
		return vals
	}

	for {
		merged := false
		for i := 0; i < len(vals) && !merged; i++ {
			for j := i + 1; j < len(vals); j++ {
				if cmplx.Abs(vals[i]-vals[j]) >= tol {
					continue
				}
				vals[i] = (vals[i] + vals[j]) / 2
				vals[j] = vals[len(vals)-1]
				vals = vals[:len(vals)-1]
				merged = true
				break
			}
		}
		if !merged {
			return vals
		}
	}
}

// Decimate returns every stride-th sample of q starting at q[0].
// stride must be >= 1.
func Decimate(q []complex128, stride int) []complex128 {
	if stride <= 1 {
		out := make([]complex128, len(q))
		copy(out, q)
		return out
	}

	out := make([]complex128, 0, (len(q)+stride-1)/stride)
	for i := 0; i < len(q); i += stride {
		out = append(out, q[i])
	}
	return out
}

// RelErr computes the relative l1 error sum|numer-exact| / sum|exact|.
// Slices must have equal length.
func RelErr(numer, exact []complex128) float64 {
	if len(numer) != len(exact) || len(exact) == 0 {
		return math.NaN()
	}

	n := len(exact)
	re := make([]float64, 2*n)
	im := make([]float64, 2*n)
	for i := range exact {
		d := numer[i] - exact[i]
		re[i], im[i] = real(d), imag(d)
		re[n+i], im[n+i] = real(exact[i]), imag(exact[i])
	}

	mags := make([]float64, 2*n)
	vecmath.Magnitude(mags, re, im)

	var num, den float64
	for i := 0; i < n; i++ {
		num += mags[i]
		den += mags[n+i]
	}
	return num / den
}

// HausdorffDist computes the Hausdorff distance between the point sets a
// and b.
func HausdorffDist(a, b []complex128) float64 {
	if len(a) == 0 || len(b) == 0 {
		return math.NaN()
	}
	return math.Max(directedDist(a, b), directedDist(b, a))
}

func directedDist(a, b []complex128) float64 {
	worst := 0.0
	for _, va := range a {
		best := math.Inf(1)
		for _, vb := range b {
			if d := cmplx.Abs(va - vb); d < best {
				best = d
			}
		}
		if best > worst {
			worst = best
		}
	}
	return worst
}

// L2Norm2 computes the squared L2 norm of the sampled function z over [a,b]
// with trapezoid end weights.
func L2Norm2(z []complex128, a, b float64) (float64, error) {
	if len(z) < 2 {
		return 0, errors.New("cvec: norm requires at least 2 samples")
	}
	if a >= b {
		return 0, ErrBadInterval
	}

	n := len(z)
	h := (b - a) / float64(n)
	sum := 0.5 * (sqAbs(z[0]) + sqAbs(z[n-1]))
	for i := 1; i < n-1; i++ {
		sum += sqAbs(z[i])
	}
	return h * sum, nil
}

func sqAbs(v complex128) float64 {
	return real(v)*real(v) + imag(v)*imag(v)
}

// MaxAbs returns the largest modulus over vals, zero for an empty slice.
func MaxAbs(vals []complex128) float64 {
	worst := 0.0
	for _, v := range vals {
		if m := cmplx.Abs(v); m > worst {
			worst = m
		}
	}
	return worst
}

// Sech computes the complex hyperbolic secant 1/cosh(z).
func Sech(z complex128) complex128 {
	return 1 / cmplx.Cosh(z)
}

// Sinch computes sinh(z)/z with the removable singularity filled in:
// Sinch(0) = 1.
func Sinch(z complex128) complex128 {
	if cmplx.Abs(z) < 1e-4 {
		z2 := z * z
		return 1 + z2/6*(1+z2/20)
	}
	return cmplx.Sinh(z) / z
}
