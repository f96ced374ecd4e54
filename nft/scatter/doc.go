// Package scatter builds polynomial approximations of the combined
// scattering matrix of the Zakharov-Shabat (AKNS) problem from signal
// samples, and provides the slow per-eigenvalue scattering recursion used
// for Newton refinement and norming-constant computation.
//
// The fast path approximates the per-sample propagator by an exponential
// splitting whose factors are exact polynomials in the transform variable
// z = exp(2i*lambda*step/d), where d is the scheme's polynomial degree per
// sample. The ordered product over all samples is combined by fast
// polynomial multiplication in nft/poly.
package scatter
