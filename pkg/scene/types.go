package scene

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Trace kinds.
const (
	TracePoints = "points"
	TraceLines  = "lines"
)

// Edge kinds carried by line traces.
const (
	EdgeIntra = "intra"
	EdgeInter = "inter"
)

// Default styling applied when a layer declares no colors of its own.
const (
	DefaultNodeColor = "#1f77b4"
	DefaultEdgeColor = "#999999"

	// IntraEdgeOpacity keeps outline edges reading as structure, not data.
	IntraEdgeOpacity = 0.4

	// InterEdgeOpacity keeps dense bipartite bundles translucent.
	InterEdgeOpacity = 0.2
)

// =============================================================================
// Node - One Matrix Cell in 3D
// =============================================================================

// Node is a single matrix cell's 3D position plus its value, label, and
// link metadata. Nodes are derived values owned by one scene build; they
// are recomputed, never mutated.
type Node struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
	Value float64 `json:"value"`
	Row   int     `json:"row"`
	Col   int     `json:"col"`
	Label string  `json:"label,omitempty"`
	URL   string  `json:"url,omitempty"`
}

// Point is a bare 3D coordinate, used for edge endpoints.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Pos returns the node's coordinate as a Point.
func (n Node) Pos() Point { return Point{X: n.X, Y: n.Y, Z: n.Z} }

// Segment is one edge: a pair of endpoint coordinates. Segments are
// undirected for rendering purposes but always emitted once, from the
// lower-indexed cell.
type Segment struct {
	From Point `json:"from"`
	To   Point `json:"to"`
}

// =============================================================================
// Trace - One Renderable Group
// =============================================================================

// Trace is one independently stylable group handed to the rendering
// surface: either a point-set (Kind TracePoints, Points populated) or a
// line-set (Kind TraceLines, Segments populated, EdgeKind set).
type Trace struct {
	Kind string `json:"kind"`
	Name string `json:"name"`

	// Point-set fields. Anchor marks a layer-name anchor trace, whose
	// single point is presentation only and not part of the node count.
	Points     []Node `json:"points,omitempty"`
	ShowLabels bool   `json:"show_labels,omitempty"`
	Anchor     bool   `json:"anchor,omitempty"`

	// Line-set fields
	Segments []Segment `json:"segments,omitempty"`
	EdgeKind string    `json:"edge_kind,omitempty"`

	// Shared styling
	Color   string  `json:"color,omitempty"`
	Opacity float64 `json:"opacity,omitempty"`
}

// IsPoints returns true for point-set traces.
func (t *Trace) IsPoints() bool { return t.Kind == TracePoints }

// IsLines returns true for line-set traces.
func (t *Trace) IsLines() bool { return t.Kind == TraceLines }

// =============================================================================
// Scene - One Complete Build
// =============================================================================

// Scene is the full ordered trace list for one build. Per-layer traces
// (nodes, outline, optional name anchor) come first in layer order,
// followed by one inter-layer trace per consecutive layer pair.
type Scene struct {
	Traces []Trace `json:"traces"`
}

// NodeCount returns the total matrix-cell node count across point traces.
// Layer-name anchor points are excluded.
func (s *Scene) NodeCount() int {
	total := 0
	for i := range s.Traces {
		if s.Traces[i].Anchor {
			continue
		}
		total += len(s.Traces[i].Points)
	}
	return total
}

// EdgeCount returns the total segment count across line traces.
func (s *Scene) EdgeCount() int {
	total := 0
	for i := range s.Traces {
		total += len(s.Traces[i].Segments)
	}
	return total
}
