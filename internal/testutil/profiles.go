package testutil

import "math"

// TimeGrid returns n sample times spread evenly over [t0, t1], endpoints
// included.
func TimeGrid(t0, t1 float64, n int) []float64 {
	out := make([]float64, n)
	step := (t1 - t0) / float64(n-1)
	for i := range out {
		out[i] = t0 + float64(i)*step
	}
	return out
}

// SechProfile samples q(t) = amplitude * sech(t) on n points over [t0, t1].
// For integer amplitudes this is the classic reflectionless test potential
// with known closed-form scattering data.
func SechProfile(amplitude, t0, t1 float64, n int) []complex128 {
	out := make([]complex128, n)
	step := (t1 - t0) / float64(n-1)
	for i := range out {
		t := t0 + float64(i)*step
		out[i] = complex(amplitude/math.Cosh(t), 0)
	}
	return out
}

// SatsumaYajimaBoundStates returns the exact focusing bound states of
// q(t) = A*sech(t): eigenvalues i*(A - 1/2), i*(A - 3/2), ... while the
// imaginary part stays positive.
func SatsumaYajimaBoundStates(amplitude float64) []complex128 {
	var out []complex128
	for im := amplitude - 0.5; im > 0; im-- {
		out = append(out, complex(0, im))
	}
	return out
}

// SatsumaYajimaA evaluates the exact scattering coefficient a(lam) of
// q(t) = A*sech(t) for integer A, a finite Blaschke product over the bound
// states.
func SatsumaYajimaA(amplitude float64, lam complex128) complex128 {
	a := complex(1, 0)
	for _, bs := range SatsumaYajimaBoundStates(amplitude) {
		a *= (lam - bs) / (lam + bs)
	}
	return a
}

// XiGrid returns m evenly spaced spectral points over [xi0, xi1] as real
// parts of complex values, endpoints included. A single point sits at xi0.
func XiGrid(xi0, xi1 float64, m int) []complex128 {
	out := make([]complex128, m)
	if m == 1 {
		out[0] = complex(xi0, 0)
		return out
	}
	step := (xi1 - xi0) / float64(m-1)
	for i := range out {
		out[i] = complex(xi0+float64(i)*step, 0)
	}
	return out
}
