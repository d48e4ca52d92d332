package layer

import (
	"github.com/layerscope/layerscope/pkg/errors"
)

// Validate checks the structural invariants of a single layer.
//
// It returns an error when dimensions are zero or negative, or when the
// shape tag is outside the recognized set. A value grid smaller than the
// declared dimensions is deliberately not an error: missing cells read as 0
// via [Layer.Value]. A grid larger than declared is also tolerated; builders
// only address [0,Rows)×[0,Cols).
func (l *Layer) Validate() error {
	if l.Rows <= 0 || l.Cols <= 0 {
		return errors.New(errors.ErrCodeInvalidLayer,
			"layer %q has invalid dimensions %dx%d", l.Name, l.Rows, l.Cols)
	}
	if !ValidShapes[l.Shape] {
		return errors.New(errors.ErrCodeUnknownShape,
			"layer %q has unknown shape %q", l.Name, l.Shape)
	}
	return nil
}

// Validate checks the whole graph: it must contain at least one layer and
// every layer must individually validate. An empty graph is refused here so
// the assembler never produces an empty scene.
func (g *Graph) Validate() error {
	if g.IsEmpty() {
		return errors.New(errors.ErrCodeEmptyGraph, "graph contains no layers")
	}
	for i := range g.Layers {
		if err := g.Layers[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}
