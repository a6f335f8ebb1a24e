package operator_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/phasepack"
	"github.com/katalvlaran/phasepack/operator"
)

// TestNew_ConfigurationErrors verifies every ill-formed Config is rejected
// with ErrConfiguration.
func TestNew_ConfigurationErrors(t *testing.T) {
	var id = func(v []complex128) []complex128 { return v }

	cases := []struct {
		name string
		cfg  operator.Config
	}{
		{"empty", operator.Config{}},
		{"forward only", operator.Config{Forward: id, Rows: 2, Cols: 2}},
		{"adjoint only", operator.Config{Adjoint: id, Rows: 2, Cols: 2}},
		{"missing shape", operator.Config{Forward: id, Adjoint: id}},
		{"negative rows", operator.Config{Forward: id, Adjoint: id, Rows: -1, Cols: 2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			op, err := operator.New(tc.cfg)
			assert.ErrorIs(t, err, phasepack.ErrConfiguration)
			assert.Nil(t, op)
		})
	}
}

// TestNew_MatrixWins ensures a Config with a matrix builds a matrix-backed
// operator of the matrix's shape.
func TestNew_MatrixWins(t *testing.T) {
	op, err := operator.New(operator.Config{Matrix: randomCDense(6, 3, 1), Rows: 99})
	require.NoError(t, err)
	require.IsType(t, &operator.MatrixOperator{}, op)

	m, n := op.Shape()
	assert.Equal(t, 6, m)
	assert.Equal(t, 3, n)
}

// TestNewReal_SymmetricPasses checks a real symmetric matrix always passes the
// adjoint check and multiplies as expected.
func TestNewReal_SymmetricPasses(t *testing.T) {
	a := mat.NewDense(3, 3, []float64{
		2, 1, 0,
		1, 3, 4,
		0, 4, 5,
	})
	op, err := operator.NewReal(a)
	require.NoError(t, err)

	y, err := op.Multiply([]complex128{1, 1i, -1})
	require.NoError(t, err)
	requireVecClose(t, []complex128{2 + 1i, 1 + 3i - 4, 4i - 5}, y, 1e-12, "A·x")
}

// TestNewMatrix_HermitianPassesAnySeed runs the adjoint check of a Hermitian
// matrix across several seeds.
func TestNewMatrix_HermitianPassesAnySeed(t *testing.T) {
	h := mat.NewCDense(2, 2, []complex128{
		2, 1 - 1i,
		1 + 1i, 3,
	})
	for seed := int64(1); seed <= 5; seed++ {
		op, err := operator.NewMatrix(h, operator.WithSeed(seed))
		require.NoError(t, err, "seed %d", seed)
		assert.NoError(t, operator.VerifyAdjoint(op, operator.WithSeed(seed+100)))
	}
}

// TestNewMatrix_CopiesInput ensures later caller mutations are not observed.
func TestNewMatrix_CopiesInput(t *testing.T) {
	a := identityCDense(2)
	op, err := operator.NewMatrix(a)
	require.NoError(t, err)

	a.Set(0, 0, 42)
	y, err := op.Multiply([]complex128{1, 1})
	require.NoError(t, err)
	requireVecClose(t, []complex128{1, 1}, y, 0, "identity after caller mutation")
}

// TestNewFunc_ScaledAdjointRejected: an adjoint off by a factor of two has
// relative error exactly 1.
func TestNewFunc_ScaledAdjointRejected(t *testing.T) {
	a := randomCDense(5, 3, 2)
	fwd := func(x []complex128) []complex128 {
		return matVec(a, x)
	}
	adj := func(y []complex128) []complex128 {
		x := matVec(a.H(), y)
		for i := range x {
			x[i] *= 2
		}
		return x
	}

	op, err := operator.NewFunc(fwd, adj, 5, 3)
	require.ErrorIs(t, err, phasepack.ErrAdjointMismatch)
	assert.Nil(t, op)

	var aerr *phasepack.AdjointError
	require.True(t, errors.As(err, &aerr))
	assert.InDelta(t, 1.0, aerr.RelErr, 1e-9)
}

// TestNewFunc_UnconjugatedAdjointRejected: for A = i·B with B real, the plain
// transpose flips the sign of the inner product.
func TestNewFunc_UnconjugatedAdjointRejected(t *testing.T) {
	b := [][]float64{{1, 2}, {0, -1}, {3, 1}}
	fwd := func(x []complex128) []complex128 {
		y := make([]complex128, 3)
		for i := range b {
			for j := range b[i] {
				y[i] += 1i * complex(b[i][j], 0) * x[j]
			}
		}
		return y
	}
	transposeOnly := func(y []complex128) []complex128 {
		x := make([]complex128, 2)
		for i := range b {
			for j := range b[i] {
				x[j] += 1i * complex(b[i][j], 0) * y[i]
			}
		}
		return x
	}

	_, err := operator.New(operator.Config{Forward: fwd, Adjoint: transposeOnly, Rows: 3, Cols: 2})
	assert.ErrorIs(t, err, phasepack.ErrAdjointMismatch)
}

// TestFuncOperator_WrongOutputLength surfaces a forward function returning
// the wrong length as a dimension error at construction.
func TestFuncOperator_WrongOutputLength(t *testing.T) {
	bad := func(x []complex128) []complex128 { return make([]complex128, 1) }
	adj := func(y []complex128) []complex128 { return make([]complex128, 2) }

	_, err := operator.NewFunc(bad, adj, 3, 2)
	assert.ErrorIs(t, err, phasepack.ErrDimension)
}

// TestMultiply_DimensionMismatch checks both products validate their input.
func TestMultiply_DimensionMismatch(t *testing.T) {
	op, err := operator.NewMatrix(randomCDense(4, 2, 3))
	require.NoError(t, err)

	_, err = op.Multiply(make([]complex128, 3))
	var derr *phasepack.DimensionError
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, 2, derr.Want)
	assert.Equal(t, 3, derr.Got)

	_, err = op.AdjointMultiply(make([]complex128, 2))
	assert.ErrorIs(t, err, phasepack.ErrDimension)
}

// TestFuncOperator_DoesNotLeakArgument ensures functions that mutate their
// argument do not corrupt the caller's slice.
func TestFuncOperator_DoesNotLeakArgument(t *testing.T) {
	negate := func(v []complex128) []complex128 {
		for i := range v {
			v[i] = -v[i]
		}
		return v
	}
	op, err := operator.NewFunc(negate, negate, 2, 2)
	require.NoError(t, err)

	x := []complex128{1, 2}
	_, err = op.Multiply(x)
	require.NoError(t, err)
	assert.Equal(t, []complex128{1, 2}, x)
}

// TestOptions_PanicOnNonsense mirrors the WithX validation contract.
func TestOptions_PanicOnNonsense(t *testing.T) {
	assert.Panics(t, func() { operator.WithAdjointTolerance(0) })
	assert.Panics(t, func() { operator.WithEigenTolerance(-1) })
	assert.Panics(t, func() { operator.WithEigenMaxIter(0) })
	assert.Panics(t, func() { operator.WithDenseEigenLimit(-1) })
	assert.NotPanics(t, func() { operator.WithDenseEigenLimit(0) })
}
