// SPDX-License-Identifier: MIT

// Package phasepack: sentinel error set shared by every subpackage.
// Operators, the recovery engine and the CLI return these sentinels (or typed
// errors that unwrap to them); callers match with errors.Is / errors.As.
// No routine panics on user-triggered error conditions.

package phasepack

import (
	"errors"
	"fmt"
)

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "phasepack: ..." so that log lines are easy to
// grep. Context is added at the outer boundary with fmt.Errorf("op: %w", ErrX).

var (
	// ErrConfiguration is returned when an operator or options record is
	// ill-formed: missing forward or adjoint function, missing shape, unknown
	// algorithm or init method, non-positive tolerance, undefined stop metric.
	ErrConfiguration = errors.New("phasepack: invalid configuration")

	// ErrDimension indicates incompatible vector or operator sizes.
	ErrDimension = errors.New("phasepack: dimension mismatch")

	// ErrAdjointMismatch signals that a supplied adjoint is not the adjoint of
	// the supplied forward operator within tolerance.
	ErrAdjointMismatch = errors.New("phasepack: adjoint mismatch")

	// ErrNumericalFailure indicates that a computation produced NaN or ±Inf,
	// or an iterative sub-solve broke down.
	ErrNumericalFailure = errors.New("phasepack: numerical failure")
)

// DimensionError reports a length mismatch for a named operation.
// It matches ErrDimension via errors.Is.
type DimensionError struct {
	Op   string // operation name, e.g. "operator.Multiply"
	Want int    // expected length
	Got  int    // observed length
}

// Error implements the error interface.
func (e *DimensionError) Error() string {
	return fmt.Sprintf("%s: %v: want length %d, got %d", e.Op, ErrDimension, e.Want, e.Got)
}

// Unwrap exposes ErrDimension to errors.Is.
func (e *DimensionError) Unwrap() error { return ErrDimension }

// CheckLen returns a *DimensionError when got != want, nil otherwise.
func CheckLen(op string, want, got int) error {
	if want != got {
		return &DimensionError{Op: op, Want: want, Got: got}
	}

	return nil
}

// AdjointError carries the relative inner-product discrepancy observed by an
// adjoint check. It matches ErrAdjointMismatch via errors.Is.
type AdjointError struct {
	RelErr float64 // |<Ax,y> - <x,A^H y>| / |<Ax,y>|
	Tol    float64 // tolerance that was exceeded
}

// Error implements the error interface.
func (e *AdjointError) Error() string {
	return fmt.Sprintf("%v: relative error %.3g exceeds %.3g", ErrAdjointMismatch, e.RelErr, e.Tol)
}

// Unwrap exposes ErrAdjointMismatch to errors.Is.
func (e *AdjointError) Unwrap() error { return ErrAdjointMismatch }
