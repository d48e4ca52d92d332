package store

import (
	"context"
	"testing"

	"github.com/layerscope/layerscope/pkg/errors"
	"github.com/layerscope/layerscope/pkg/layer"
)

func testGraph() *layer.Graph {
	return &layer.Graph{Layers: []layer.Layer{
		{Name: "input", Rows: 2, Cols: 2, Shape: layer.ShapeRectangle},
	}}
}

func TestMemoryStoreSaveLoad(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if err := s.Save(ctx, "demo", testGraph()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	g, err := s.Load(ctx, "demo")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if g.LayerCount() != 1 || g.Layers[0].Name != "input" {
		t.Errorf("loaded graph = %+v", g)
	}
}

func TestMemoryStoreLoadIsolated(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	if err := s.Save(ctx, "demo", testGraph()); err != nil {
		t.Fatal(err)
	}

	g, _ := s.Load(ctx, "demo")
	g.Layers[0].Name = "mutated"

	g2, _ := s.Load(ctx, "demo")
	if g2.Layers[0].Name != "input" {
		t.Error("Load returned shared state")
	}
}

func TestMemoryStoreSaveOverwrites(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	if err := s.Save(ctx, "demo", testGraph()); err != nil {
		t.Fatal(err)
	}

	g2 := &layer.Graph{Layers: []layer.Layer{
		{Name: "v2", Rows: 1, Cols: 1, Shape: layer.ShapeCircle},
	}}
	if err := s.Save(ctx, "demo", g2); err != nil {
		t.Fatal(err)
	}

	got, _ := s.Load(ctx, "demo")
	if got.Layers[0].Name != "v2" {
		t.Errorf("loaded %q after overwrite", got.Layers[0].Name)
	}

	recs, _ := s.List(ctx)
	if len(recs) != 1 {
		t.Errorf("List returned %d records, want 1", len(recs))
	}
}

func TestMemoryStoreNotFound(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, err := s.Load(ctx, "nope"); !errors.Is(err, errors.ErrCodeGraphNotFound) {
		t.Errorf("Load: got %v, want GRAPH_NOT_FOUND", err)
	}
	if err := s.Delete(ctx, "nope"); !errors.Is(err, errors.ErrCodeGraphNotFound) {
		t.Errorf("Delete: got %v, want GRAPH_NOT_FOUND", err)
	}
}

func TestMemoryStoreListSorted(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := s.Save(ctx, name, testGraph()); err != nil {
			t.Fatal(err)
		}
	}

	recs, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"alpha", "mid", "zeta"}
	for i, rec := range recs {
		if rec.Name != want[i] {
			t.Errorf("recs[%d] = %q, want %q", i, rec.Name, want[i])
		}
	}
}

func TestMemoryStoreRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if err := s.Save(ctx, "", testGraph()); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("empty name: got %v", err)
	}
	bad := &layer.Graph{Layers: []layer.Layer{{Name: "x", Rows: 0, Cols: 1, Shape: layer.ShapeRectangle}}}
	if err := s.Save(ctx, "demo", bad); !errors.Is(err, errors.ErrCodeInvalidLayer) {
		t.Errorf("invalid graph: got %v", err)
	}
	if err := s.Save(ctx, "demo", &layer.Graph{}); !errors.Is(err, errors.ErrCodeEmptyGraph) {
		t.Errorf("empty graph: got %v", err)
	}
}
