package scene

// DefaultInterEdgeCap bounds the inter-layer edge count per layer pair.
// Full bipartite connectivity between two 71×71 layers would be ~25M
// segments; the cap keeps render cost bounded.
const DefaultInterEdgeCap = 500

// InterEdgeOptions tunes inter-layer edge construction.
type InterEdgeOptions struct {
	// Cap is the enumeration cutoff per layer pair. Enumeration stops once
	// the edge count exceeds Cap, so at most Cap+1 edges are emitted.
	// Zero means DefaultInterEdgeCap.
	Cap int
}

func (o InterEdgeOptions) cap() int {
	if o.Cap <= 0 {
		return DefaultInterEdgeCap
	}
	return o.Cap
}

// BuildInterEdges produces the bipartite edge set connecting every node of
// src to every node of dst, truncated at the configured cap.
//
// Both inputs are iterated in their stable row-major order, so truncation
// is deterministic: the earliest row-major pairs always win and later ones
// are simply omitted. This biases dense layers toward their low-index
// corner; it is a compatibility-preserving policy, tunable via
// [InterEdgeOptions], not randomized sampling.
func BuildInterEdges(src, dst []Node, opts InterEdgeOptions) []Segment {
	capacity := min(len(src)*len(dst), opts.cap()+1)
	edges := make([]Segment, 0, capacity)

	for _, s := range src {
		for _, d := range dst {
			edges = append(edges, Segment{From: s.Pos(), To: d.Pos()})
			if len(edges) > opts.cap() {
				return edges
			}
		}
	}
	return edges
}
