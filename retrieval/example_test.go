package retrieval_test

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/phasepack"
	"github.com/katalvlaran/phasepack/operator"
	"github.com/katalvlaran/phasepack/retrieval"
)

// ExampleSolvePhaseRetrieval recovers a positive signal observed through
// the identity operator.
func ExampleSolvePhaseRetrieval() {
	a := mat.NewCDense(4, 4, nil)
	for i := 0; i < 4; i++ {
		a.Set(i, i, 1)
	}
	op, err := operator.NewMatrix(a)
	if err != nil {
		fmt.Println(err)
		return
	}

	xt := []complex128{1, 2, 3, 4}
	opts := retrieval.DefaultOptions()
	opts.Tol = 1e-6
	opts.Xt = xt

	x, outs, _, err := retrieval.SolvePhaseRetrieval(op, []float64{1, 2, 3, 4}, opts)
	if err != nil {
		fmt.Println(err)
		return
	}
	e, _ := phasepack.ReconError(x, xt)
	fmt.Printf("state=%s recovered=%t\n", outs.State(), e < 1e-6)
	// Output: state=converged recovered=true
}
