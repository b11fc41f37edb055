// Package interp maps physical quantities onto visual ones through
// piecewise-linear control-point tables.
//
// xs must be strictly increasing and len(xs) == len(ys) >= 2. Interpolate
// does not re-check this on every call; NewTable does.
package interp

import (
	"errors"
	"fmt"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
)

// Interpolate evaluates the table (xs, ys) at x. Outside [xs[0], xs[n-1]]
// the result is clamped to the nearest endpoint unless extrapolate is set,
// in which case the end segment's slope is extended.
func Interpolate(x float64, xs, ys []float64, extrapolate bool) float64 {
	n := len(xs)
	switch {
	case x <= xs[0]:
		if !extrapolate || x == xs[0] || n < 2 {
			return ys[0]
		}
		return segment(x, xs, ys, 0)
	case x >= xs[n-1]:
		if !extrapolate || x == xs[n-1] {
			return ys[n-1]
		}
		return segment(x, xs, ys, n-2)
	}
	return segment(x, xs, ys, floats.Within(xs, x))
}

func segment(x float64, xs, ys []float64, i int) float64 {
	x0, x1 := xs[i], xs[i+1]
	y0, y1 := ys[i], ys[i+1]
	return y0 + (y1-y0)*(x-x0)/(x1-x0)
}

// ErrInvalidTable is returned by NewTable for malformed control points.
var ErrInvalidTable = errors.New("invalid interpolation table")

// Table is a precompiled control-point table for mappings evaluated every
// frame.
type Table struct {
	xs, ys []float64
	pl     interp.PiecewiseLinear
}

// NewTable validates and compiles a table. The inputs are copied.
func NewTable(xs, ys []float64) (*Table, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("%w: %d x values, %d y values", ErrInvalidTable, len(xs), len(ys))
	}
	if len(xs) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 points, got %d", ErrInvalidTable, len(xs))
	}
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return nil, fmt.Errorf("%w: x[%d]=%g not greater than x[%d]=%g", ErrInvalidTable, i, xs[i], i-1, xs[i-1])
		}
	}
	t := &Table{xs: slices.Clone(xs), ys: slices.Clone(ys)}
	if err := t.pl.Fit(t.xs, t.ys); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTable, err)
	}
	return t, nil
}

// MustTable is NewTable for package-level tables known to be valid.
func MustTable(xs, ys []float64) *Table {
	t, err := NewTable(xs, ys)
	if err != nil {
		panic(err)
	}
	return t
}

// At evaluates the table at x, clamping outside the domain.
func (t *Table) At(x float64) float64 {
	return t.pl.Predict(x)
}

// Extrapolate evaluates the table at x, extending the end slopes.
func (t *Table) Extrapolate(x float64) float64 {
	return Interpolate(x, t.xs, t.ys, true)
}

// Domain returns the first and last x of the table.
func (t *Table) Domain() (lo, hi float64) {
	return t.xs[0], t.xs[len(t.xs)-1]
}
