// Package operator provides the measurement operators used by phase
// retrieval: linear maps A: ℂⁿ → ℂᵐ exposed through forward (A·x) and
// adjoint (Aᴴ·y) products.
//
// What lives here:
//   - Operator: the capability interface consumed by the recovery engine.
//   - MatrixOperator: backed by a dense complex (or promoted real) matrix.
//   - FuncOperator: backed by caller-supplied forward/adjoint functions.
//   - FourierOperator: masked 2-D Fourier transforms (coded diffraction).
//   - VerifyAdjoint: randomized inner-product test run at construction.
//   - LeastSquares: LSQR solver using only forward/adjoint products.
//   - DominantEigenvector: leading eigenvector of (1/m)·Aᴴ·diag(w)·A.
//
// Contracts:
//   - Every constructor verifies the adjoint; a failing pair yields no
//     operator and an error matching phasepack.ErrAdjointMismatch.
//   - Operators are immutable after construction and safe for concurrent
//     read-only use.
//   - Length mismatches return *phasepack.DimensionError.
//
// Determinism:
//   - Randomized steps (adjoint check, power-iteration start) draw from a
//     seeded PCG stream; seed==0 selects the package default (see WithSeed).
package operator
