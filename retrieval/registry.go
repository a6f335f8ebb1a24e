// SPDX-License-Identifier: MIT

package retrieval

import (
	"slices"
	"sync"

	"github.com/katalvlaran/phasepack/operator"
)

// Solver is one recovery strategy bound to a problem. Step consumes the
// current estimate and returns the next one together with the
// algorithm-defined residual. Step must not retain or mutate x.
type Solver interface {
	Step(x []complex128) (next []complex128, residual float64, err error)
}

// Problem is what a Factory receives: the operator, measurements, resolved
// options and the initial estimate.
type Problem struct {
	A    operator.Operator
	B0   []float64
	X0   []complex128
	Opts Options
}

// Factory binds a strategy to a problem.
type Factory func(p Problem) (Solver, error)

var registry = struct {
	sync.RWMutex
	m map[Algorithm]Factory
}{
	m: map[Algorithm]Factory{
		AlgorithmFienup:          newFienup,
		AlgorithmGerchbergSaxton: newGerchbergSaxton,
		AlgorithmGaussNewton:     newGaussNewton,
		AlgorithmWirtingerFlow:   newWirtingerFlow,
		AlgorithmAmplitudeFlow:   newAmplitudeFlow,
	},
}

// Register makes a strategy available under name. It panics if name is
// empty, f is nil, or name is already registered.
func Register(name Algorithm, f Factory) {
	if name == "" {
		panic("retrieval: Register: empty algorithm name")
	}
	if f == nil {
		panic("retrieval: Register: nil factory for " + string(name))
	}

	registry.Lock()
	defer registry.Unlock()
	if _, dup := registry.m[name]; dup {
		panic("retrieval: Register: duplicate algorithm " + string(name))
	}
	registry.m[name] = f
}

// Algorithms returns the registered names in sorted order.
func Algorithms() []Algorithm {
	registry.RLock()
	defer registry.RUnlock()

	var out = make([]Algorithm, 0, len(registry.m))
	for name := range registry.m {
		out = append(out, name)
	}
	slices.Sort(out)

	return out
}

func lookup(name Algorithm) (Factory, bool) {
	registry.RLock()
	defer registry.RUnlock()
	f, ok := registry.m[name]

	return f, ok
}
