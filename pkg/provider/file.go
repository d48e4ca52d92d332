package provider

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/layerscope/layerscope/pkg/errors"
	"github.com/layerscope/layerscope/pkg/layer"
)

// FileProvider reads a layer graph from a local JSON or TOML file,
// selected by extension. TOML exists for hand-authored graphs:
//
//	[[layers]]
//	name = "input"
//	rows = 2
//	cols = 2
//	shape = "rectangle"
//	values = [[1.0, 0.0], [0.0, 1.0]]
type FileProvider struct {
	// Path of the graph file. Request.SheetID is ignored.
	Path string
}

// NewFileProvider creates a provider reading from path.
func NewFileProvider(path string) *FileProvider {
	return &FileProvider{Path: path}
}

// Fetch reads and validates the graph file.
func (p *FileProvider) Fetch(ctx context.Context, _ Request) (*layer.Graph, error) {
	switch strings.ToLower(filepath.Ext(p.Path)) {
	case ".toml":
		return p.readTOML()
	case ".json":
		return p.readJSON()
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"unsupported graph file %q (want .json or .toml)", p.Path)
	}
}

func (p *FileProvider) readJSON() (*layer.Graph, error) {
	g, err := layer.ReadGraphFile(p.Path)
	if err != nil {
		if os.IsNotExist(underlying(err)) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "graph file %s", p.Path)
		}
		return nil, err
	}
	return g, nil
}

// tomlGraph mirrors layer.Graph with TOML field tags.
type tomlGraph struct {
	Layers []tomlLayer `toml:"layers"`
}

type tomlLayer struct {
	Name      string      `toml:"name"`
	Rows      int         `toml:"rows"`
	Cols      int         `toml:"cols"`
	Shape     string      `toml:"shape"`
	Values    [][]float64 `toml:"values"`
	Color     string      `toml:"color"`
	EdgeColor string      `toml:"edge_color"`
	Labels    [][]string  `toml:"labels"`
	URLs      [][]string  `toml:"urls"`
}

func (p *FileProvider) readTOML() (*layer.Graph, error) {
	var tg tomlGraph
	if _, err := toml.DecodeFile(p.Path, &tg); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "graph file %s", p.Path)
		}
		return nil, fmt.Errorf("decode %s: %w", p.Path, err)
	}

	g := &layer.Graph{Layers: make([]layer.Layer, len(tg.Layers))}
	for i, tl := range tg.Layers {
		g.Layers[i] = layer.Layer{
			Name:      tl.Name,
			Rows:      tl.Rows,
			Cols:      tl.Cols,
			Shape:     layer.Shape(tl.Shape),
			Values:    tl.Values,
			Color:     tl.Color,
			EdgeColor: tl.EdgeColor,
			Labels:    tl.Labels,
			URLs:      tl.URLs,
		}
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func underlying(err error) error {
	for {
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return err
		}
		next := u.Unwrap()
		if next == nil {
			return err
		}
		err = next
	}
}

// Ensure FileProvider implements Provider.
var _ Provider = (*FileProvider)(nil)
