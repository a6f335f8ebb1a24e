// SPDX-License-Identifier: MIT

//go:generate mockgen -source types.go -destination ../internal/mocks/mock_operator.go -package mocks Operator

package operator

import (
	"gonum.org/v1/gonum/mat"
)

// Operator is a linear measurement map A: ℂⁿ → ℂᵐ.
//
// Implementations must be safe for concurrent calls and must not retain or
// mutate the argument slices.
type Operator interface {
	// Shape returns (m, n): measurement count and signal length.
	Shape() (m, n int)

	// Multiply returns A·x. len(x) must equal n.
	Multiply(x []complex128) ([]complex128, error)

	// AdjointMultiply returns Aᴴ·y. len(y) must equal m.
	AdjointMultiply(y []complex128) ([]complex128, error)
}

// VectorFunc is a forward or adjoint product supplied by the caller.
type VectorFunc func(v []complex128) []complex128

// Config selects the operator variant built by New.
//
// Fields:
//   - Matrix: dense measurement matrix; when set, the other fields are ignored.
//   - Forward: x ↦ A·x (function-backed variant).
//   - Adjoint: y ↦ Aᴴ·y (function-backed variant).
//   - Rows: m, required for the function-backed variant.
//   - Cols: n, required for the function-backed variant.
type Config struct {
	Matrix  mat.CMatrix
	Forward VectorFunc
	Adjoint VectorFunc
	Rows    int
	Cols    int
}

// LSQRResult reports the outcome of LeastSquares.
type LSQRResult struct {
	X            []complex128 // least-squares solution estimate
	Iterations   int          // Golub–Kahan steps performed
	ResidualNorm float64      // estimate of ‖b − A·x‖
	Converged    bool         // a stopping rule fired before maxIter
}

// EigenResult reports the outcome of DominantEigenvector.
type EigenResult struct {
	Vector     []complex128 // unit-norm eigenvector, largest-magnitude entry real positive
	Value      float64      // Rayleigh quotient vᴴ·Y·v
	Iterations int          // power iterations (0 on the dense path)
	Converged  bool
}
