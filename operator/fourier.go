// SPDX-License-Identifier: MIT

package operator

import (
	"fmt"
	"math/cmplx"
	"sync"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/katalvlaran/phasepack"
)

const opNewFourier = "operator.NewFourier"

// FourierOperator models coded diffraction imaging: an image of rows×cols
// pixels is multiplied by each of k masks and 2-D Fourier transformed.
//
//	forward:  y_k = FFT2(mask_k ∘ x)                  m = k·rows·cols
//	adjoint:  x   = Σ_k conj(mask_k) ∘ IFFT2ᵤ(y_k)     n = rows·cols
//
// IFFT2ᵤ is the unnormalized inverse transform, the exact adjoint of FFT2.
// Images and masks are stored row-major. Transform plans are pooled, so the
// operator is safe for concurrent use.
type FourierOperator struct {
	masks      [][]complex128
	rows, cols int
	pool       sync.Pool
}

var _ Operator = (*FourierOperator)(nil)

// fftWorkspace holds non-goroutine-safe FFT plans and scratch buffers.
type fftWorkspace struct {
	rowFFT *fourier.CmplxFFT
	colFFT *fourier.CmplxFFT
	col    []complex128
	img    []complex128
}

// NewFourier builds a masked Fourier operator. Every mask must hold
// rows·cols entries; masks are copied.
//
// Errors:
//   - phasepack.ErrConfiguration when no mask is given or the image shape is
//     not positive.
//   - *phasepack.DimensionError when a mask has the wrong length.
func NewFourier(masks [][]complex128, rows, cols int, opts ...Option) (*FourierOperator, error) {
	if len(masks) == 0 {
		return nil, fmt.Errorf("%s: no masks: %w", opNewFourier, phasepack.ErrConfiguration)
	}
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%s: image shape %dx%d must be positive: %w", opNewFourier, rows, cols, phasepack.ErrConfiguration)
	}

	var own = make([][]complex128, len(masks))
	for k, mk := range masks {
		if err := phasepack.CheckLen(opNewFourier, rows*cols, len(mk)); err != nil {
			return nil, fmt.Errorf("mask %d: %w", k, err)
		}
		own[k] = append([]complex128(nil), mk...)
	}

	var op = &FourierOperator{masks: own, rows: rows, cols: cols}
	op.pool.New = func() any {
		return &fftWorkspace{
			rowFFT: fourier.NewCmplxFFT(cols),
			colFFT: fourier.NewCmplxFFT(rows),
			col:    make([]complex128, rows),
			img:    make([]complex128, rows*cols),
		}
	}
	if err := verifyAdjoint(op, gatherOptions(opts...)); err != nil {
		return nil, fmt.Errorf("%s: %w", opNewFourier, err)
	}

	return op, nil
}

// Shape returns (k·rows·cols, rows·cols).
func (o *FourierOperator) Shape() (m, n int) {
	n = o.rows * o.cols
	return len(o.masks) * n, n
}

// Masks returns the number of masks.
func (o *FourierOperator) Masks() int { return len(o.masks) }

// Multiply returns the stacked spectra FFT2(mask_k ∘ x), mask-major.
func (o *FourierOperator) Multiply(x []complex128) ([]complex128, error) {
	var m, n = o.Shape()
	if err := phasepack.CheckLen(opMultiply, n, len(x)); err != nil {
		return nil, err
	}

	var (
		ws  = o.pool.Get().(*fftWorkspace)
		out = make([]complex128, m)
		blk []complex128
	)
	defer o.pool.Put(ws)

	for k, mk := range o.masks {
		blk = out[k*n : (k+1)*n]
		for i := range blk {
			blk[i] = mk[i] * x[i]
		}
		o.transform2D(ws, blk, false)
	}

	return out, nil
}

// AdjointMultiply returns Σ_k conj(mask_k) ∘ IFFT2ᵤ(y_k).
func (o *FourierOperator) AdjointMultiply(y []complex128) ([]complex128, error) {
	var m, n = o.Shape()
	if err := phasepack.CheckLen(opAdjointMultiply, m, len(y)); err != nil {
		return nil, err
	}

	var (
		ws  = o.pool.Get().(*fftWorkspace)
		out = make([]complex128, n)
	)
	defer o.pool.Put(ws)

	for k, mk := range o.masks {
		copy(ws.img, y[k*n:(k+1)*n])
		o.transform2D(ws, ws.img, true)
		for i := range out {
			out[i] += cmplx.Conj(mk[i]) * ws.img[i]
		}
	}

	return out, nil
}

// transform2D applies the unnormalized forward (inverse=false) or backward
// (inverse=true) 2-D DFT to a row-major rows×cols block in place.
func (o *FourierOperator) transform2D(ws *fftWorkspace, blk []complex128, inverse bool) {
	var (
		r, c int
		row  []complex128
	)
	// Rows.
	for r = 0; r < o.rows; r++ {
		row = blk[r*o.cols : (r+1)*o.cols]
		if inverse {
			ws.rowFFT.Sequence(row, row)
		} else {
			ws.rowFFT.Coefficients(row, row)
		}
	}
	// Columns through the gather buffer.
	for c = 0; c < o.cols; c++ {
		for r = 0; r < o.rows; r++ {
			ws.col[r] = blk[r*o.cols+c]
		}
		if inverse {
			ws.colFFT.Sequence(ws.col, ws.col)
		} else {
			ws.colFFT.Coefficients(ws.col, ws.col)
		}
		for r = 0; r < o.rows; r++ {
			blk[r*o.cols+c] = ws.col[r]
		}
	}
}
