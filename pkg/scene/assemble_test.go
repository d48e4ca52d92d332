package scene

import (
	"reflect"
	"testing"

	"github.com/layerscope/layerscope/pkg/errors"
	"github.com/layerscope/layerscope/pkg/layer"
)

func twoLayerGraph() *layer.Graph {
	return &layer.Graph{Layers: []layer.Layer{
		*rectLayer(3, 3),
		{
			Name:   "output",
			Rows:   2,
			Cols:   2,
			Shape:  layer.ShapeRectangle,
			Values: [][]float64{{1, 2}, {3, 4}},
		},
	}}
}

func TestAssembleEmptyGraph(t *testing.T) {
	_, err := Assemble(&layer.Graph{}, DefaultConfig())
	if !errors.Is(err, errors.ErrCodeEmptyGraph) {
		t.Fatalf("got %v, want EMPTY_GRAPH", err)
	}
}

func TestAssembleTraceOrder(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ShowLayerNames = true
	cfg.ShowInterLayerEdges = true

	s, err := Assemble(twoLayerGraph(), cfg)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	// Per layer: nodes, outline, name anchor; then one inter trace.
	wantKinds := []string{
		TracePoints, TraceLines, TracePoints,
		TracePoints, TraceLines, TracePoints,
		TraceLines,
	}
	if len(s.Traces) != len(wantKinds) {
		t.Fatalf("got %d traces, want %d", len(s.Traces), len(wantKinds))
	}
	for i, k := range wantKinds {
		if s.Traces[i].Kind != k {
			t.Errorf("trace %d kind %s, want %s", i, s.Traces[i].Kind, k)
		}
	}
	if s.Traces[6].EdgeKind != EdgeInter {
		t.Errorf("last trace edge kind %s, want %s", s.Traces[6].EdgeKind, EdgeInter)
	}
}

func TestAssembleTogglesOff(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ShowLayerNames = false
	cfg.ShowInterLayerEdges = false

	s, err := Assemble(twoLayerGraph(), cfg)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	// Only nodes + outline per layer remain.
	if len(s.Traces) != 4 {
		t.Fatalf("got %d traces, want 4", len(s.Traces))
	}
	for _, tr := range s.Traces {
		if tr.EdgeKind == EdgeInter {
			t.Error("inter-layer trace present despite toggle off")
		}
	}
}

func TestAssembleZStacking(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ZSpacing = 4

	s, err := Assemble(twoLayerGraph(), cfg)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	// Layer node traces are at indices 0 and 3 (nodes, outline, anchor each).
	for _, n := range s.Traces[0].Points {
		if n.Z != 0 {
			t.Errorf("layer 0 node z = %v, want 0", n.Z)
		}
	}
	for _, n := range s.Traces[3].Points {
		if n.Z != 4 {
			t.Errorf("layer 1 node z = %v, want 4", n.Z)
		}
	}
}

func TestAssembleInterEdgeCount(t *testing.T) {
	s, err := AssembleWithOptions(twoLayerGraph(), DefaultConfig(), InterEdgeOptions{Cap: 20})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	inter := s.Traces[len(s.Traces)-1]
	// min(9*4, cap+1) = 21.
	if len(inter.Segments) != 21 {
		t.Errorf("got %d inter edges, want 21", len(inter.Segments))
	}
}

func TestAssembleIdempotent(t *testing.T) {
	g := twoLayerGraph()
	cfg := DefaultConfig()

	a, err := Assemble(g, cfg)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	b, err := Assemble(g, cfg)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("two builds from the same inputs differ")
	}
}

func TestAssembleNameAnchor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ShowLayerNames = true

	s, err := Assemble(twoLayerGraph(), cfg)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	anchor := s.Traces[2]
	if len(anchor.Points) != 1 {
		t.Fatalf("anchor trace has %d points, want 1", len(anchor.Points))
	}
	a := anchor.Points[0]
	if a.Label != "test" {
		t.Errorf("anchor label %q, want layer name", a.Label)
	}
	// Positioned beyond the layer's max x extent (3x3 grid reaches x=1).
	if a.X <= 1 {
		t.Errorf("anchor x = %v, want > 1", a.X)
	}
	if !anchor.ShowLabels {
		t.Error("anchor trace must always show its label")
	}
	if !anchor.Anchor {
		t.Error("anchor trace must be marked as an anchor")
	}
	if s.NodeCount() != 13 {
		t.Errorf("NodeCount = %d, want 13 cells with anchors excluded", s.NodeCount())
	}
}

func TestAssembleLayerColors(t *testing.T) {
	g := twoLayerGraph()
	g.Layers[0].Color = "#ff0000"
	g.Layers[0].EdgeColor = "#00ff00"

	s, err := Assemble(g, DefaultConfig())
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if s.Traces[0].Color != "#ff0000" {
		t.Errorf("node trace color %q", s.Traces[0].Color)
	}
	if s.Traces[1].Color != "#00ff00" {
		t.Errorf("outline trace color %q", s.Traces[1].Color)
	}
	// Second layer declares nothing and falls back to defaults.
	if s.Traces[3].Color != DefaultNodeColor || s.Traces[4].Color != DefaultEdgeColor {
		t.Error("default colors not applied")
	}
}
