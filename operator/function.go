// SPDX-License-Identifier: MIT

package operator

import (
	"fmt"

	"github.com/katalvlaran/phasepack"
)

const (
	opNew     = "operator.New"
	opNewFunc = "operator.NewFunc"
)

// FuncOperator is a measurement operator backed by caller-supplied forward
// and adjoint functions with an explicit shape.
//
// The functions must be safe for concurrent use if the operator is shared
// across goroutines, and must not retain their argument.
type FuncOperator struct {
	forward VectorFunc
	adjoint VectorFunc
	m, n    int
}

var _ Operator = (*FuncOperator)(nil)

// New builds an operator from cfg.
//
// Implementation:
//   - Stage 1: cfg.Matrix set ⇒ matrix-backed operator (NewMatrix).
//   - Stage 2: otherwise require both Forward and Adjoint and a positive shape.
//   - Stage 3: verify the adjoint.
//
// Errors:
//   - phasepack.ErrConfiguration: neither matrix nor functions, only one of
//     Forward/Adjoint, or non-positive Rows/Cols for the function pair.
//   - phasepack.ErrAdjointMismatch: the pair failed the adjoint check.
func New(cfg Config, opts ...Option) (Operator, error) {
	// Stage 1: matrix wins.
	if cfg.Matrix != nil {
		op, err := NewMatrix(cfg.Matrix, opts...)
		if err != nil {
			return nil, err
		}
		return op, nil
	}

	// Stage 2: function pair.
	switch {
	case cfg.Forward == nil && cfg.Adjoint == nil:
		return nil, fmt.Errorf("%s: neither matrix nor forward/adjoint functions given: %w", opNew, phasepack.ErrConfiguration)
	case cfg.Forward == nil:
		return nil, fmt.Errorf("%s: adjoint given without forward: %w", opNew, phasepack.ErrConfiguration)
	case cfg.Adjoint == nil:
		return nil, fmt.Errorf("%s: forward given without adjoint: %w", opNew, phasepack.ErrConfiguration)
	}

	op, err := NewFunc(cfg.Forward, cfg.Adjoint, cfg.Rows, cfg.Cols, opts...)
	if err != nil {
		return nil, err
	}

	return op, nil
}

// NewFunc builds a function-backed operator of shape rows×cols and verifies
// that adjoint is the adjoint of forward.
func NewFunc(forward, adjoint VectorFunc, rows, cols int, opts ...Option) (*FuncOperator, error) {
	if forward == nil || adjoint == nil {
		return nil, fmt.Errorf("%s: forward and adjoint are both required: %w", opNewFunc, phasepack.ErrConfiguration)
	}
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%s: shape %dx%d must be positive: %w", opNewFunc, rows, cols, phasepack.ErrConfiguration)
	}

	var op = &FuncOperator{forward: forward, adjoint: adjoint, m: rows, n: cols}
	if err := verifyAdjoint(op, gatherOptions(opts...)); err != nil {
		return nil, fmt.Errorf("%s: %w", opNewFunc, err)
	}

	return op, nil
}

// Shape returns (m, n).
func (o *FuncOperator) Shape() (m, n int) { return o.m, o.n }

// Multiply returns forward(x). The argument is copied before the call.
func (o *FuncOperator) Multiply(x []complex128) ([]complex128, error) {
	if err := phasepack.CheckLen(opMultiply, o.n, len(x)); err != nil {
		return nil, err
	}

	var out = o.forward(append([]complex128(nil), x...))
	if len(out) != o.m {
		return nil, fmt.Errorf("forward function: %w", &phasepack.DimensionError{Op: opMultiply, Want: o.m, Got: len(out)})
	}

	return out, nil
}

// AdjointMultiply returns adjoint(y). The argument is copied before the call.
func (o *FuncOperator) AdjointMultiply(y []complex128) ([]complex128, error) {
	if err := phasepack.CheckLen(opAdjointMultiply, o.m, len(y)); err != nil {
		return nil, err
	}

	var out = o.adjoint(append([]complex128(nil), y...))
	if len(out) != o.n {
		return nil, fmt.Errorf("adjoint function: %w", &phasepack.DimensionError{Op: opAdjointMultiply, Want: o.n, Got: len(out)})
	}

	return out, nil
}
