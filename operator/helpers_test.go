package operator_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/cmplxs"
	"gonum.org/v1/gonum/mat"
)

// randomCDense returns an r×c matrix with i.i.d. complex normal entries.
func randomCDense(r, c int, seed uint64) *mat.CDense {
	var (
		rng  = rand.New(rand.NewPCG(seed, seed+1))
		data = make([]complex128, r*c)
	)
	for i := range data {
		data[i] = complex(rng.NormFloat64(), rng.NormFloat64())
	}

	return mat.NewCDense(r, c, data)
}

// randomVec returns a complex normal vector of length n.
func randomVec(n int, seed uint64) []complex128 {
	var (
		rng = rand.New(rand.NewPCG(seed, seed+7))
		v   = make([]complex128, n)
	)
	for i := range v {
		v[i] = complex(rng.NormFloat64(), rng.NormFloat64())
	}

	return v
}

// requireVecClose asserts element-wise closeness of complex vectors.
func requireVecClose(t *testing.T, want, got []complex128, tol float64, msg string) {
	t.Helper()
	require.Len(t, got, len(want), msg)
	require.Truef(t, cmplxs.EqualApprox(want, got, tol), "%s: want %v, got %v", msg, want, got)
}

// identityCDense returns the n×n identity as a complex matrix.
func identityCDense(n int) *mat.CDense {
	var a = mat.NewCDense(n, n, nil)
	for i := 0; i < n; i++ {
		a.Set(i, i, 1)
	}

	return a
}

// matVec computes a·x entry by entry, independent of the operator under test.
func matVec(a mat.CMatrix, x []complex128) []complex128 {
	r, c := a.Dims()
	y := make([]complex128, r)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			y[i] += a.At(i, j) * x[j]
		}
	}
	return y
}
