package retrieval_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/cmplxs"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/phasepack/operator"
	"github.com/katalvlaran/phasepack/retrieval"
)

// Test-only strategies, registered once per process.
const (
	algHalfway  retrieval.Algorithm = "test-halfway"
	algNaNAfter retrieval.Algorithm = "test-nan-after-two"
)

func init() {
	// Moves halfway to the true signal each step.
	retrieval.Register(algHalfway, func(p retrieval.Problem) (retrieval.Solver, error) {
		return &halfway{target: p.Opts.Xt}, nil
	})
	// Behaves for two steps, then returns NaN.
	retrieval.Register(algNaNAfter, func(p retrieval.Problem) (retrieval.Solver, error) {
		return &nanAfter{left: 2}, nil
	})
}

type halfway struct{ target []complex128 }

func (h *halfway) Step(x []complex128) ([]complex128, float64, error) {
	next := make([]complex128, len(x))
	for i := range x {
		next[i] = (x[i] + h.target[i]) / 2
	}
	diff := make([]complex128, len(x))
	cmplxs.SubTo(diff, next, x)
	return next, cmplxs.Norm(diff, 2) / cmplxs.Norm(next, 2), nil
}

type nanAfter struct{ left int }

func (s *nanAfter) Step(x []complex128) ([]complex128, float64, error) {
	next := append([]complex128(nil), x...)
	if s.left == 0 {
		next[0] = complex(math.NaN(), 0)
		return next, 1, nil
	}
	s.left--
	next[0] += 1
	return next, 1, nil
}

// identityProblem returns the 4×4 identity operator with xt = [1 2 3 4].
func identityProblem(t *testing.T) (operator.Operator, []complex128, []float64) {
	t.Helper()
	a := mat.NewCDense(4, 4, nil)
	for i := 0; i < 4; i++ {
		a.Set(i, i, 1)
	}
	op, err := operator.NewMatrix(a)
	require.NoError(t, err)

	return op, []complex128{1, 2, 3, 4}, []float64{1, 2, 3, 4}
}
