package scene

import (
	"reflect"
	"testing"
)

func TestInterEdgesFullWhenUnderCap(t *testing.T) {
	src := buildNodes(t, rectLayer(2, 2))
	dst := buildNodes(t, rectLayer(3, 3))

	edges := BuildInterEdges(src, dst, InterEdgeOptions{Cap: 500})
	if len(edges) != 36 {
		t.Errorf("got %d edges, want 4*9 = 36", len(edges))
	}
}

func TestInterEdgesCapTruncation(t *testing.T) {
	src := buildNodes(t, rectLayer(3, 3))
	dst := buildNodes(t, rectLayer(3, 3))

	// Enumeration stops once the count exceeds the cap: min(81, cap+1).
	edges := BuildInterEdges(src, dst, InterEdgeOptions{Cap: 10})
	if len(edges) != 11 {
		t.Errorf("got %d edges, want cap+1 = 11", len(edges))
	}
}

func TestInterEdgesRowMajorOrder(t *testing.T) {
	src := buildNodes(t, rectLayer(2, 2))
	dst := buildNodes(t, rectLayer(2, 2))

	edges := BuildInterEdges(src, dst, InterEdgeOptions{Cap: 5})

	// Earliest row-major pairs always win: source (0,0) against targets in
	// their row-major order, then source (0,1).
	want := []Segment{
		{From: src[0].Pos(), To: dst[0].Pos()},
		{From: src[0].Pos(), To: dst[1].Pos()},
		{From: src[0].Pos(), To: dst[2].Pos()},
		{From: src[0].Pos(), To: dst[3].Pos()},
		{From: src[1].Pos(), To: dst[0].Pos()},
		{From: src[1].Pos(), To: dst[1].Pos()},
	}
	if !reflect.DeepEqual(edges, want) {
		t.Errorf("truncated edges:\n got %+v\nwant %+v", edges, want)
	}
}

func TestInterEdgesDeterministic(t *testing.T) {
	src := buildNodes(t, rectLayer(4, 4))
	dst := buildNodes(t, rectLayer(4, 4))

	a := BuildInterEdges(src, dst, InterEdgeOptions{Cap: 100})
	b := BuildInterEdges(src, dst, InterEdgeOptions{Cap: 100})
	if !reflect.DeepEqual(a, b) {
		t.Error("inter-layer edges are not deterministic")
	}
}

func TestInterEdgesDefaultCap(t *testing.T) {
	opts := InterEdgeOptions{}
	if opts.cap() != DefaultInterEdgeCap {
		t.Errorf("zero cap = %d, want default %d", opts.cap(), DefaultInterEdgeCap)
	}
}
