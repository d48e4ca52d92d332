package scene

import (
	"github.com/layerscope/layerscope/pkg/layer"
	"github.com/layerscope/layerscope/pkg/scene/shape"
)

// BuildLayerNodes computes the node list for layer l at stack index i.
//
// Cells are visited in row-major order and the output order is stable:
// downstream edge builders rely on finding node (r, c) at index r·Cols+c.
// The node count is exactly Rows·Cols; absent cells still produce a node
// with value 0 per the missing-cell policy.
//
// The z coordinate is i·zSpacing for every node in the layer.
func BuildLayerNodes(l *layer.Layer, i int, zSpacing float64) ([]Node, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	place, err := shape.For(l.Shape)
	if err != nil {
		return nil, err
	}

	z := float64(i) * zSpacing
	nodes := make([]Node, 0, l.CellCount())
	for r := 0; r < l.Rows; r++ {
		for c := 0; c < l.Cols; c++ {
			x, y := place(r, c, l.Rows, l.Cols)
			nodes = append(nodes, Node{
				X:     x,
				Y:     y,
				Z:     z,
				Value: l.Value(r, c),
				Row:   r,
				Col:   c,
				Label: l.Label(r, c),
				URL:   l.URL(r, c),
			})
		}
	}
	return nodes, nil
}
