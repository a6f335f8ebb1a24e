// SPDX-License-Identifier: MIT

// Package problem builds reproducible synthetic phase-retrieval problems:
// a measurement operator A, a true signal xt and magnitudes b0 = |A·xt|.
//
// Data types:
//   - DataGaussian: dense A with i.i.d. entries N(0, 1/2) (+ i·N(0, 1/2) when
//     complex); xt drawn the same way.
//   - DataFourier: A·x = FFT_m([x; 0]) (zero-padded 1-D transform) with
//     adjoint Aᴴ·y = first n entries of the unnormalized inverse transform.
//
// Determinism: the same Config (including Seed) yields the same problem.
package problem

import (
	"fmt"
	"math"
	"math/cmplx"
	"math/rand/v2"
	"strings"
	"sync"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/katalvlaran/phasepack"
	"github.com/katalvlaran/phasepack/operator"
)

// DataType selects the measurement model.
type DataType string

const (
	// DataGaussian draws a dense complex Gaussian measurement matrix.
	DataGaussian DataType = "gaussian"

	// DataFourier uses a zero-padded 1-D Fourier transform.
	DataFourier DataType = "fourier"
)

const (
	opBuild = "problem.BuildTestProblem"

	// defaultSeed is used when Config.Seed == 0.
	defaultSeed int64 = 1
)

// Config describes a synthetic problem.
//
// Fields:
//   - M, N: measurement count and signal length (M ≥ N for DataFourier).
//   - IsComplex: complex operator and signal; false gives real ones.
//   - IsNonNegativeOnly: real, entry-wise non-negative xt (implies real signal).
//   - DataType: DataGaussian (default when empty) or DataFourier.
//   - Seed: random stream seed; 0 selects the package default.
type Config struct {
	M, N              int
	IsComplex         bool
	IsNonNegativeOnly bool
	DataType          DataType
	Seed              int64
}

// ParseDataType maps a case-insensitive name to a DataType.
func ParseDataType(s string) (DataType, error) {
	switch DataType(strings.ToLower(strings.TrimSpace(s))) {
	case DataGaussian, "":
		return DataGaussian, nil
	case DataFourier:
		return DataFourier, nil
	default:
		return "", fmt.Errorf("problem: unknown data type %q: %w", s, phasepack.ErrConfiguration)
	}
}

// BuildTestProblem returns (A, xt, b0).
//
// Errors:
//   - phasepack.ErrConfiguration for non-positive sizes, M < N with
//     DataFourier, or an unknown data type.
//   - errors from operator construction (adjoint check).
func BuildTestProblem(cfg Config) (operator.Operator, []complex128, []float64, error) {
	if cfg.M <= 0 || cfg.N <= 0 {
		return nil, nil, nil, fmt.Errorf("%s: sizes m=%d n=%d must be positive: %w", opBuild, cfg.M, cfg.N, phasepack.ErrConfiguration)
	}

	var (
		seed = cfg.Seed
		dt   = cfg.DataType
	)
	if seed == 0 {
		seed = defaultSeed
	}
	if dt == "" {
		dt = DataGaussian
	}

	var (
		dist = distuv.Normal{Mu: 0, Sigma: math.Sqrt(0.5), Src: rand.NewPCG(uint64(seed), uint64(seed)*0x9e3779b97f4a7c15)}
		op   operator.Operator
		err  error
	)
	switch dt {
	case DataGaussian:
		op, err = gaussianOperator(cfg, dist)
	case DataFourier:
		op, err = fourierOperator(cfg)
	default:
		err = fmt.Errorf("%s: unknown data type %q: %w", opBuild, dt, phasepack.ErrConfiguration)
	}
	if err != nil {
		return nil, nil, nil, err
	}

	var xt = drawVector(cfg.N, cfg.IsComplex && !cfg.IsNonNegativeOnly, dist)
	if cfg.IsNonNegativeOnly {
		for i := range xt {
			xt[i] = complex(math.Abs(real(xt[i])), 0)
		}
	}

	ax, err := op.Multiply(xt)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%s: %w", opBuild, err)
	}
	var b0 = make([]float64, len(ax))
	for i, v := range ax {
		b0[i] = cmplx.Abs(v)
	}

	return op, xt, b0, nil
}

// drawVector returns n draws of dist, with an independent imaginary part
// when isComplex.
func drawVector(n int, isComplex bool, dist distuv.Normal) []complex128 {
	var out = make([]complex128, n)
	for i := range out {
		if isComplex {
			out[i] = complex(dist.Rand(), dist.Rand())
		} else {
			out[i] = complex(dist.Rand(), 0)
		}
	}

	return out
}

func gaussianOperator(cfg Config, dist distuv.Normal) (*operator.MatrixOperator, error) {
	var a = mat.NewCDense(cfg.M, cfg.N, drawVector(cfg.M*cfg.N, cfg.IsComplex, dist))

	op, err := operator.NewMatrix(a)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opBuild, err)
	}

	return op, nil
}

func fourierOperator(cfg Config) (*operator.FuncOperator, error) {
	if cfg.M < cfg.N {
		return nil, fmt.Errorf("%s: fourier data needs m ≥ n (m=%d n=%d): %w", opBuild, cfg.M, cfg.N, phasepack.ErrConfiguration)
	}

	var (
		m, n  = cfg.M, cfg.N
		plans = sync.Pool{New: func() any { return fourier.NewCmplxFFT(m) }}
	)
	var forward = func(x []complex128) []complex128 {
		var (
			fft    = plans.Get().(*fourier.CmplxFFT)
			padded = make([]complex128, m)
		)
		defer plans.Put(fft)
		copy(padded, x)

		return fft.Coefficients(padded, padded)
	}
	var adjoint = func(y []complex128) []complex128 {
		var (
			fft = plans.Get().(*fourier.CmplxFFT)
			seq = fft.Sequence(nil, y)
		)
		plans.Put(fft)

		return seq[:n:n]
	}

	op, err := operator.NewFunc(forward, adjoint, m, n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opBuild, err)
	}

	return op, nil
}
