// Package gradient estimates partial derivatives of fields sampled on a
// uniform grid by finite differencing.
//
// Interior samples use the second order central difference
//
//	(f[k+1] - f[k-1]) / 2h
//
// and the first and last samples use the first order one-sided differences
// (f[1]-f[0])/h and (f[n-1]-f[n-2])/h.
package gradient

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrTooFewSamples is returned when fewer than two samples lie along the
	// differencing axis.
	ErrTooFewSamples = errors.New("gradient: need at least two samples along axis")

	// ErrBadSpacing is returned for a zero, negative or non-finite step.
	ErrBadSpacing = errors.New("gradient: spacing must be positive and finite")
)

// Axis selects the index that varies while differencing.
type Axis uint8

const (
	// AlongRows differentiates with respect to the row parameter: the column
	// is held fixed and the row index i varies.
	AlongRows Axis = iota
	// AlongCols differentiates with respect to the column parameter: the row
	// is held fixed and the column index j varies.
	AlongCols
)

func (a Axis) String() string {
	switch a {
	case AlongRows:
		return "rows"
	case AlongCols:
		return "cols"
	default:
		return fmt.Sprintf("Axis(%d)", uint8(a))
	}
}

// Partial returns the derivative of f along axis for a uniform step h.
// The result has the same shape as f; f is not modified.
func Partial(f mat.Matrix, h float64, axis Axis) (*mat.Dense, error) {
	if !(h > 0) || math.IsInf(h, 0) {
		return nil, fmt.Errorf("%w: got %v", ErrBadSpacing, h)
	}
	nr, nc := f.Dims()

	var dst *mat.Dense
	switch axis {
	case AlongRows:
		if nr < 2 {
			return nil, fmt.Errorf("%w: %d rows", ErrTooFewSamples, nr)
		}
		dst = mat.NewDense(nr, nc, nil)
		col := make([]float64, nr)
		out := make([]float64, nr)
		for j := 0; j < nc; j++ {
			mat.Col(col, j, f)
			difference(out, col, h)
			dst.SetCol(j, out)
		}
	case AlongCols:
		if nc < 2 {
			return nil, fmt.Errorf("%w: %d columns", ErrTooFewSamples, nc)
		}
		dst = mat.NewDense(nr, nc, nil)
		row := make([]float64, nc)
		for i := 0; i < nr; i++ {
			mat.Row(row, i, f)
			difference(dst.RawRowView(i), row, h)
		}
	default:
		return nil, fmt.Errorf("gradient: unknown axis %v", axis)
	}
	return dst, nil
}

// Gradient returns both partials of f on a grid whose columns are spaced du
// apart and whose rows are spaced dv apart.
func Gradient(f mat.Matrix, du, dv float64) (dfdu, dfdv *mat.Dense, err error) {
	if dfdu, err = Partial(f, du, AlongCols); err != nil {
		return nil, nil, err
	}
	if dfdv, err = Partial(f, dv, AlongRows); err != nil {
		return nil, nil, err
	}
	return dfdu, dfdv, nil
}

// difference writes the finite difference of src into dst, len(src) >= 2.
func difference(dst, src []float64, h float64) {
	n := len(src)
	dst[0] = (src[1] - src[0]) / h
	dst[n-1] = (src[n-1] - src[n-2]) / h
	for k := 1; k < n-1; k++ {
		dst[k] = (src[k+1] - src[k-1]) / (2 * h)
	}
}
