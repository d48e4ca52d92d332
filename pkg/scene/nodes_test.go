package scene

import (
	"math"
	"testing"

	"github.com/layerscope/layerscope/pkg/errors"
	"github.com/layerscope/layerscope/pkg/layer"
)

const eps = 1e-9

func rectLayer(rows, cols int) *layer.Layer {
	values := make([][]float64, rows)
	for r := range values {
		values[r] = make([]float64, cols)
		for c := range values[r] {
			values[r][c] = float64(r*cols + c)
		}
	}
	return &layer.Layer{
		Name:   "test",
		Rows:   rows,
		Cols:   cols,
		Shape:  layer.ShapeRectangle,
		Values: values,
	}
}

func TestBuildLayerNodesCount(t *testing.T) {
	for _, dims := range [][2]int{{1, 1}, {2, 2}, {3, 5}, {7, 4}} {
		l := rectLayer(dims[0], dims[1])
		nodes, err := BuildLayerNodes(l, 0, 1)
		if err != nil {
			t.Fatalf("BuildLayerNodes: %v", err)
		}
		if len(nodes) != dims[0]*dims[1] {
			t.Errorf("%dx%d: got %d nodes, want %d", dims[0], dims[1], len(nodes), dims[0]*dims[1])
		}
	}
}

func TestBuildLayerNodesRowMajorOrder(t *testing.T) {
	l := rectLayer(3, 4)
	nodes, err := BuildLayerNodes(l, 0, 1)
	if err != nil {
		t.Fatalf("BuildLayerNodes: %v", err)
	}
	for i, n := range nodes {
		if n.Row != i/4 || n.Col != i%4 {
			t.Fatalf("node %d at (%d,%d), want (%d,%d)", i, n.Row, n.Col, i/4, i%4)
		}
		if n.Value != float64(i) {
			t.Errorf("node %d value %v, want %v", i, n.Value, float64(i))
		}
	}
}

func TestBuildLayerNodesExample(t *testing.T) {
	// 2x2 rectangle at index 0: nodes at z=0, x,y in {-0.5, +0.5},
	// row-major (0,0)→(−0.5,−0.5) ... (1,1)→(0.5,0.5).
	l := rectLayer(2, 2)
	nodes, err := BuildLayerNodes(l, 0, 4)
	if err != nil {
		t.Fatalf("BuildLayerNodes: %v", err)
	}
	want := []struct{ x, y float64 }{
		{-0.5, -0.5}, {0.5, -0.5}, {-0.5, 0.5}, {0.5, 0.5},
	}
	for i, w := range want {
		n := nodes[i]
		if math.Abs(n.X-w.x) > eps || math.Abs(n.Y-w.y) > eps || n.Z != 0 {
			t.Errorf("node %d = (%v,%v,%v), want (%v,%v,0)", i, n.X, n.Y, n.Z, w.x, w.y)
		}
	}
}

func TestBuildLayerNodesZSpacing(t *testing.T) {
	l := rectLayer(2, 3)

	base, err := BuildLayerNodes(l, 3, 1)
	if err != nil {
		t.Fatalf("BuildLayerNodes: %v", err)
	}
	scaled, err := BuildLayerNodes(l, 3, 4)
	if err != nil {
		t.Fatalf("BuildLayerNodes: %v", err)
	}

	// Changing zSpacing moves only z; x and y are untouched.
	for i := range base {
		if base[i].X != scaled[i].X || base[i].Y != scaled[i].Y {
			t.Errorf("node %d planar offset changed with zSpacing", i)
		}
		if base[i].Z != 3 || scaled[i].Z != 12 {
			t.Errorf("node %d z = (%v, %v), want (3, 12)", i, base[i].Z, scaled[i].Z)
		}
	}
}

func TestBuildLayerNodesMissingCells(t *testing.T) {
	// Declared 2x3 but only one stored row with two values: absent cells
	// read as 0 and still produce nodes.
	l := &layer.Layer{
		Name:   "sparse",
		Rows:   2,
		Cols:   3,
		Shape:  layer.ShapeRectangle,
		Values: [][]float64{{7, 8}},
	}
	nodes, err := BuildLayerNodes(l, 0, 1)
	if err != nil {
		t.Fatalf("BuildLayerNodes: %v", err)
	}
	if len(nodes) != 6 {
		t.Fatalf("got %d nodes, want 6", len(nodes))
	}
	wantValues := []float64{7, 8, 0, 0, 0, 0}
	for i, w := range wantValues {
		if nodes[i].Value != w {
			t.Errorf("node %d value %v, want %v", i, nodes[i].Value, w)
		}
	}
}

func TestBuildLayerNodesMetadata(t *testing.T) {
	l := rectLayer(1, 2)
	l.Labels = [][]string{{"a", "b"}}
	l.URLs = [][]string{{"https://example.com/a"}}

	nodes, err := BuildLayerNodes(l, 0, 1)
	if err != nil {
		t.Fatalf("BuildLayerNodes: %v", err)
	}
	if nodes[0].Label != "a" || nodes[1].Label != "b" {
		t.Errorf("labels = %q, %q", nodes[0].Label, nodes[1].Label)
	}
	if nodes[0].URL != "https://example.com/a" || nodes[1].URL != "" {
		t.Errorf("urls = %q, %q", nodes[0].URL, nodes[1].URL)
	}
}

func TestBuildLayerNodesInvalidLayer(t *testing.T) {
	tests := []struct {
		name string
		l    *layer.Layer
		code errors.Code
	}{
		{"zero rows", &layer.Layer{Name: "x", Rows: 0, Cols: 2, Shape: layer.ShapeRectangle}, errors.ErrCodeInvalidLayer},
		{"negative cols", &layer.Layer{Name: "x", Rows: 2, Cols: -1, Shape: layer.ShapeRectangle}, errors.ErrCodeInvalidLayer},
		{"unknown shape", &layer.Layer{Name: "x", Rows: 2, Cols: 2, Shape: "blob"}, errors.ErrCodeUnknownShape},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildLayerNodes(tt.l, 0, 1)
			if !errors.Is(err, tt.code) {
				t.Errorf("got %v, want code %s", err, tt.code)
			}
		})
	}
}
