// SPDX-License-Identifier: MIT

package operator

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/cblas128"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/phasepack"
)

// Operation tags used in wrapped errors.
const (
	opNewMatrix       = "operator.NewMatrix"
	opNewReal         = "operator.NewReal"
	opMultiply        = "operator.Multiply"
	opAdjointMultiply = "operator.AdjointMultiply"
)

// MatrixOperator is a measurement operator backed by a dense complex matrix.
// The matrix is copied at construction; later changes to the caller's
// matrix are not observed.
type MatrixOperator struct {
	a    *mat.CDense
	m, n int
}

var _ Operator = (*MatrixOperator)(nil)

// NewMatrix builds a matrix-backed operator from any mat.CMatrix and verifies
// its adjoint.
//
// Errors:
//   - phasepack.ErrConfiguration if a is nil or has a zero dimension.
//   - phasepack.ErrAdjointMismatch if the adjoint check fails (only possible
//     for ill-conditioned numerics; the conjugate transpose is exact).
//
// Complexity: O(m·n) copy plus one forward/adjoint pair for the check.
func NewMatrix(a mat.CMatrix, opts ...Option) (*MatrixOperator, error) {
	if a == nil {
		return nil, fmt.Errorf("%s: nil matrix: %w", opNewMatrix, phasepack.ErrConfiguration)
	}
	var r, c = a.Dims()
	if r == 0 || c == 0 {
		return nil, fmt.Errorf("%s: empty %dx%d matrix: %w", opNewMatrix, r, c, phasepack.ErrConfiguration)
	}

	var dense = mat.NewCDense(r, c, nil)
	dense.Copy(a)

	return finishMatrix(opNewMatrix, dense, opts)
}

// NewReal builds a matrix-backed operator from a real matrix, promoting its
// entries to complex128.
func NewReal(a mat.Matrix, opts ...Option) (*MatrixOperator, error) {
	if a == nil {
		return nil, fmt.Errorf("%s: nil matrix: %w", opNewReal, phasepack.ErrConfiguration)
	}
	var r, c = a.Dims()
	if r == 0 || c == 0 {
		return nil, fmt.Errorf("%s: empty %dx%d matrix: %w", opNewReal, r, c, phasepack.ErrConfiguration)
	}

	var (
		data = make([]complex128, r*c)
		i, j int
	)
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			data[i*c+j] = complex(a.At(i, j), 0)
		}
	}

	return finishMatrix(opNewReal, mat.NewCDense(r, c, data), opts)
}

// finishMatrix wraps dense and runs the adjoint check.
func finishMatrix(tag string, dense *mat.CDense, opts []Option) (*MatrixOperator, error) {
	var (
		r, c = dense.Dims()
		op   = &MatrixOperator{a: dense, m: r, n: c}
	)
	if err := verifyAdjoint(op, gatherOptions(opts...)); err != nil {
		return nil, fmt.Errorf("%s: %w", tag, err)
	}

	return op, nil
}

// Shape returns (m, n).
func (o *MatrixOperator) Shape() (m, n int) { return o.m, o.n }

// Matrix returns a copy of the backing matrix.
func (o *MatrixOperator) Matrix() *mat.CDense {
	var out = mat.NewCDense(o.m, o.n, nil)
	out.Copy(o.a)

	return out
}

// Multiply returns A·x via complex GEMV.
func (o *MatrixOperator) Multiply(x []complex128) ([]complex128, error) {
	if err := phasepack.CheckLen(opMultiply, o.n, len(x)); err != nil {
		return nil, err
	}

	var y = make([]complex128, o.m)
	cblas128.Gemv(blas.NoTrans, 1, o.a.RawCMatrix(),
		cblas128.Vector{N: o.n, Inc: 1, Data: x}, 0,
		cblas128.Vector{N: o.m, Inc: 1, Data: y})

	return y, nil
}

// AdjointMultiply returns Aᴴ·y via complex GEMV with conjugate transpose.
func (o *MatrixOperator) AdjointMultiply(y []complex128) ([]complex128, error) {
	if err := phasepack.CheckLen(opAdjointMultiply, o.m, len(y)); err != nil {
		return nil, err
	}

	var x = make([]complex128, o.n)
	cblas128.Gemv(blas.ConjTrans, 1, o.a.RawCMatrix(),
		cblas128.Vector{N: o.m, Inc: 1, Data: y}, 0,
		cblas128.Vector{N: o.n, Inc: 1, Data: x})

	return x, nil
}
