package layer

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Shape identifies the planar placement family for a layer's cells.
type Shape string

// Recognized layer shapes.
const (
	ShapeRectangle Shape = "rectangle"
	ShapeCircle    Shape = "circle"
	ShapeTriangle  Shape = "triangle"
)

// ValidShapes is the closed set of recognized shape tags.
var ValidShapes = map[Shape]bool{
	ShapeRectangle: true,
	ShapeCircle:    true,
	ShapeTriangle:  true,
}

// =============================================================================
// Layer - One Named Matrix
// =============================================================================

// Layer is one named numeric matrix with a declared shape.
// Values are stored row-major; Labels and URLs are optional grids parallel
// to Values. A layer is a read-only input: builders never mutate it.
type Layer struct {
	Name      string      `json:"name" bson:"name"`
	Rows      int         `json:"rows" bson:"rows"`
	Cols      int         `json:"cols" bson:"cols"`
	Shape     Shape       `json:"shape" bson:"shape"`
	Values    [][]float64 `json:"values" bson:"values"`
	Color     string      `json:"color,omitempty" bson:"color,omitempty"`
	EdgeColor string      `json:"edge_color,omitempty" bson:"edge_color,omitempty"`
	Labels    [][]string  `json:"labels,omitempty" bson:"labels,omitempty"`
	URLs      [][]string  `json:"urls,omitempty" bson:"urls,omitempty"`
}

// Value returns the cell value at (r, c), or 0 when the cell is absent
// from the stored grid. Out-of-range lookups never panic.
func (l *Layer) Value(r, c int) float64 {
	if r < 0 || r >= len(l.Values) {
		return 0
	}
	row := l.Values[r]
	if c < 0 || c >= len(row) {
		return 0
	}
	return row[c]
}

// Label returns the cell label at (r, c), or "" when absent.
func (l *Layer) Label(r, c int) string {
	return cellString(l.Labels, r, c)
}

// URL returns the cell link at (r, c), or "" when absent.
func (l *Layer) URL(r, c int) string {
	return cellString(l.URLs, r, c)
}

// CellCount returns the number of addressable cells (Rows·Cols).
func (l *Layer) CellCount() int {
	return l.Rows * l.Cols
}

func cellString(grid [][]string, r, c int) string {
	if r < 0 || r >= len(grid) {
		return ""
	}
	row := grid[r]
	if c < 0 || c >= len(row) {
		return ""
	}
	return row[c]
}

// =============================================================================
// Graph - Ordered Layer Sequence
// =============================================================================

// Graph is an ordered sequence of layers. Order defines z-stacking and
// inter-layer connection direction: layer i connects only to layer i+1.
type Graph struct {
	Layers []Layer `json:"layers" bson:"layers"`
}

// LayerCount returns the number of layers.
func (g *Graph) LayerCount() int { return len(g.Layers) }

// NodeCount returns the total cell count across all layers.
func (g *Graph) NodeCount() int {
	total := 0
	for i := range g.Layers {
		total += g.Layers[i].CellCount()
	}
	return total
}

// IsEmpty returns true if the graph has no layers.
func (g *Graph) IsEmpty() bool { return len(g.Layers) == 0 }
