package provider

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/layerscope/layerscope/pkg/errors"
	"github.com/layerscope/layerscope/pkg/layer"
)

func writeGraphFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFileProviderJSON(t *testing.T) {
	path := writeGraphFile(t, "graph.json", `{
		"layers": [
			{"name": "input", "rows": 1, "cols": 3, "shape": "circle",
			 "values": [[1, 2, 3]]}
		]
	}`)

	g, err := NewFileProvider(path).Fetch(context.Background(), Request{})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if g.LayerCount() != 1 || g.Layers[0].Shape != layer.ShapeCircle {
		t.Errorf("graph = %+v", g)
	}
}

func TestFileProviderTOML(t *testing.T) {
	path := writeGraphFile(t, "graph.toml", `
[[layers]]
name = "input"
rows = 2
cols = 2
shape = "rectangle"
values = [[1.0, 0.0], [0.0, 1.0]]
color = "#ff0000"

[[layers]]
name = "hidden"
rows = 1
cols = 3
shape = "circle"
`)

	g, err := NewFileProvider(path).Fetch(context.Background(), Request{})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if g.LayerCount() != 2 {
		t.Fatalf("LayerCount = %d, want 2", g.LayerCount())
	}
	if g.Layers[0].Color != "#ff0000" {
		t.Errorf("color = %q", g.Layers[0].Color)
	}
	if got := g.Layers[0].Value(0, 0); got != 1.0 {
		t.Errorf("Value(0,0) = %v", got)
	}
	// Values omitted entirely: every cell defaults to zero.
	if got := g.Layers[1].Value(0, 2); got != 0 {
		t.Errorf("sparse Value = %v", got)
	}
}

func TestFileProviderUnsupportedExtension(t *testing.T) {
	path := writeGraphFile(t, "graph.yaml", "layers: []")

	_, err := NewFileProvider(path).Fetch(context.Background(), Request{})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Fatalf("got %v, want INVALID_FORMAT", err)
	}
}

func TestFileProviderMissingFile(t *testing.T) {
	for _, name := range []string{"missing.json", "missing.toml"} {
		path := filepath.Join(t.TempDir(), name)
		_, err := NewFileProvider(path).Fetch(context.Background(), Request{})
		if !errors.Is(err, errors.ErrCodeFileNotFound) {
			t.Errorf("%s: got %v, want FILE_NOT_FOUND", name, err)
		}
	}
}

func TestFileProviderInvalidGraph(t *testing.T) {
	path := writeGraphFile(t, "graph.toml", `
[[layers]]
name = "bad"
rows = 0
cols = 3
shape = "rectangle"
`)

	_, err := NewFileProvider(path).Fetch(context.Background(), Request{})
	if !errors.Is(err, errors.ErrCodeInvalidLayer) {
		t.Fatalf("got %v, want INVALID_LAYER", err)
	}
}
