package scene

import (
	"github.com/layerscope/layerscope/pkg/layer"
)

// cellKey identifies a node by its (row, col) cell position.
type cellKey struct{ r, c int }

// nodeIndex maps cell positions to node list indices, making neighbor
// lookups O(1) and the edge builder linear in cell count.
type nodeIndex map[cellKey]int

func indexNodes(nodes []Node) nodeIndex {
	idx := make(nodeIndex, len(nodes))
	for i, n := range nodes {
		idx[cellKey{n.Row, n.Col}] = i
	}
	return idx
}

// BuildIntraEdges produces the outline edges connecting topologically
// adjacent cells of one layer, so the layer's shape stays visible even when
// its values are sparse.
//
// For each cell (r, c) it emits an edge to:
//   - the right neighbor (r, c+1) — for circle layers the last column wraps
//     back to column 0, closing each ring; other shapes never wrap
//   - the lower neighbor (r+1, c), if it exists
//   - for triangle layers only, the diagonal neighbor (r+1, c−1), if it
//     exists, closing the triangular packing
//
// Each edge appears once, emitted from the lower-indexed cell. nodes must
// be the stable row-major output of [BuildLayerNodes] for the same layer.
func BuildIntraEdges(l *layer.Layer, nodes []Node) []Segment {
	idx := indexNodes(nodes)
	edges := make([]Segment, 0, len(nodes)*2)

	add := func(from Node, toR, toC int) {
		if j, ok := idx[cellKey{toR, toC}]; ok {
			edges = append(edges, Segment{From: from.Pos(), To: nodes[j].Pos()})
		}
	}

	for _, n := range nodes {
		switch {
		case l.Shape == layer.ShapeCircle && n.Col == l.Cols-1:
			// Ring wraparound. A one-column ring would self-loop; skip it.
			if l.Cols > 1 {
				add(n, n.Row, 0)
			}
		default:
			add(n, n.Row, n.Col+1)
		}

		add(n, n.Row+1, n.Col)

		if l.Shape == layer.ShapeTriangle {
			add(n, n.Row+1, n.Col-1)
		}
	}
	return edges
}
