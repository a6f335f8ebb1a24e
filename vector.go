// SPDX-License-Identifier: MIT

package phasepack

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/cmplxs"
)

// Sign returns z/|z|, the unit-modulus phase of z.
// Sign(0) is defined as 1 so that zero-magnitude entries keep a definite phase.
func Sign(z complex128) complex128 {
	var a = cmplx.Abs(z)
	if a == 0 {
		return 1
	}

	return complex(real(z)/a, imag(z)/a)
}

// SignTo writes Sign(s[i]) into dst and returns dst. dst is allocated when nil.
// Panics if dst is non-nil and its length differs from s.
func SignTo(dst, s []complex128) []complex128 {
	if dst == nil {
		dst = make([]complex128, len(s))
	}
	if len(dst) != len(s) {
		panic("phasepack: SignTo: length mismatch")
	}
	for i, v := range s {
		dst[i] = Sign(v)
	}

	return dst
}

// AlignPhase returns α·x where α = Sign(xᴴ·ref) is the unit phase that
// best aligns x with ref. Phase retrieval recovers x only up to such a factor.
// x and ref must have equal length.
func AlignPhase(x, ref []complex128) []complex128 {
	var (
		alpha = Sign(cmplxs.Dot(x, ref))
		out   = make([]complex128, len(x))
	)
	cmplxs.ScaleTo(out, alpha, x)

	return out
}

// ReconError returns the phase-invariant relative reconstruction error
// ‖xt − α·x‖ / ‖xt‖ with α = Sign(xᴴ·xt).
// When ‖xt‖ = 0 the absolute error ‖α·x‖ is returned.
func ReconError(x, xt []complex128) (float64, error) {
	if err := CheckLen("phasepack.ReconError", len(xt), len(x)); err != nil {
		return 0, err
	}

	var (
		aligned = AlignPhase(x, xt)
		diff    = make([]complex128, len(x))
		den     = cmplxs.Norm(xt, 2)
	)
	cmplxs.SubTo(diff, xt, aligned)
	if den == 0 {
		return cmplxs.Norm(diff, 2), nil
	}

	return cmplxs.Norm(diff, 2) / den, nil
}

// MeasurementError returns ‖|Ax| − b0‖ / ‖b0‖ given the operator output ax.
// When ‖b0‖ = 0 the absolute misfit is returned.
func MeasurementError(ax []complex128, b0 []float64) (float64, error) {
	if err := CheckLen("phasepack.MeasurementError", len(b0), len(ax)); err != nil {
		return 0, err
	}

	var num, den, d float64
	for i := range ax {
		d = cmplx.Abs(ax[i]) - b0[i]
		num += d * d
		den += b0[i] * b0[i]
	}
	if den == 0 {
		return math.Sqrt(num), nil
	}

	return math.Sqrt(num / den), nil
}

// IsFinite reports whether every entry of x has finite real and imaginary parts.
func IsFinite(x []complex128) bool {
	for _, v := range x {
		if cmplx.IsNaN(v) || cmplx.IsInf(v) {
			return false
		}
	}

	return true
}

// Complexify promotes a real vector to complex128.
func Complexify(x []float64) []complex128 {
	var out = make([]complex128, len(x))
	for i, v := range x {
		out[i] = complex(v, 0)
	}

	return out
}
