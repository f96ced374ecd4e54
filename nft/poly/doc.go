// Package poly implements the 2x2 matrix-valued polynomials that carry the
// discretized scattering data, together with the fast (FFT-based) ordered
// multiplication used to combine per-sample transfer matrices and the Horner
// evaluation routines used downstream.
//
// Coefficients are stored in ascending power order. A Matrix2 additionally
// carries a power-of-two exponent W accumulated by renormalization during
// multiplication; consumers either rescale evaluated values by 2^W or take
// ratios in which the factor cancels.
package poly
