// Package shape maps matrix cells to planar offsets.
//
// Each layer shape has one pure strategy function taking a cell position
// (row, column) and the layer dimensions, and returning an (x, y) offset in
// the layer's plane. Strategies are total over validated input: callers
// guarantee rows > 0 and cols > 0 (see layer.Layer.Validate), so no
// strategy can divide by zero.
//
// Dispatch goes through a lookup table keyed by the closed shape tag set,
// so adding a shape is a table addition, not a rewritten conditional chain.
package shape

import (
	"math"

	"github.com/layerscope/layerscope/pkg/errors"
	"github.com/layerscope/layerscope/pkg/layer"
)

// Spacing constants shared by all strategies.
const (
	// UnitSpacing is the planar distance between adjacent grid cells.
	UnitSpacing = 1.0

	// RingSpacing is the radial distance between concentric circle rows.
	RingSpacing = 1.0
)

// Func computes the planar offset of cell (r, c) in a rows×cols layer.
// Implementations are pure: no side effects, no stored state.
type Func func(r, c, rows, cols int) (x, y float64)

// strategies is the dispatch table for the closed shape set.
var strategies = map[layer.Shape]Func{
	layer.ShapeRectangle: Rectangle,
	layer.ShapeCircle:    Circle,
	layer.ShapeTriangle:  Triangle,
}

// For returns the strategy function for a shape tag.
// Unrecognized tags fail with an UNKNOWN_SHAPE error rather than silently
// placing cells at the origin.
func For(s layer.Shape) (Func, error) {
	fn, ok := strategies[s]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownShape, "unknown shape: %q", s)
	}
	return fn, nil
}

// Rectangle places cells on a grid centered at the origin:
//
//	x = (c − (cols−1)/2) · UnitSpacing
//	y = (r − (rows−1)/2) · UnitSpacing
func Rectangle(r, c, rows, cols int) (float64, float64) {
	x := (float64(c) - float64(cols-1)/2) * UnitSpacing
	y := (float64(r) - float64(rows-1)/2) * UnitSpacing
	return x, y
}

// Circle places rows on concentric rings around the origin. Row 0 is the
// innermost ring at radius RingSpacing, never radius 0, so single-cell rows
// do not pile up at the center. Columns are spread evenly around each ring.
func Circle(r, c, rows, cols int) (float64, float64) {
	angle := 2 * math.Pi * float64(c) / float64(cols)
	radius := float64(r+1) * RingSpacing
	return radius * math.Cos(angle), radius * math.Sin(angle)
}

// Triangle places cells on a skewed grid where each row shifts left by half
// a cell, producing triangular packing. The whole layer is shifted down by
// rows·√3/4 to center it vertically.
func Triangle(r, c, rows, cols int) (float64, float64) {
	x := (float64(c) - float64(r)/2) * UnitSpacing
	y := float64(r)*(math.Sqrt(3)/2)*UnitSpacing - float64(rows)*(math.Sqrt(3)/4)*UnitSpacing
	return x, y
}
