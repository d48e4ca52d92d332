package scene

import (
	"fmt"

	"github.com/layerscope/layerscope/pkg/layer"
	"github.com/layerscope/layerscope/pkg/scene/shape"
)

// Assemble builds the complete scene for a graph under a configuration
// snapshot.
//
// The trace order is: for each layer in graph order, its node trace, its
// outline trace, and (when ShowLayerNames is set) its name-anchor trace;
// then one inter-layer trace per consecutive layer pair (when
// ShowInterLayerEdges is set). The whole scene is recomputed on every call;
// no state survives between builds.
//
// A graph with zero layers fails with EMPTY_GRAPH and produces no scene.
func Assemble(g *layer.Graph, cfg Config) (*Scene, error) {
	return assemble(g, cfg, InterEdgeOptions{})
}

// AssembleWithOptions is Assemble with a tunable inter-layer edge policy.
func AssembleWithOptions(g *layer.Graph, cfg Config, inter InterEdgeOptions) (*Scene, error) {
	return assemble(g, cfg, inter)
}

func assemble(g *layer.Graph, cfg Config, inter InterEdgeOptions) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}

	s := &Scene{}
	layerNodes := make([][]Node, len(g.Layers))

	for i := range g.Layers {
		l := &g.Layers[i]
		nodes, err := BuildLayerNodes(l, i, cfg.ZSpacing)
		if err != nil {
			return nil, err
		}
		layerNodes[i] = nodes

		s.Traces = append(s.Traces, Trace{
			Kind:       TracePoints,
			Name:       l.Name,
			Points:     nodes,
			ShowLabels: cfg.ShowLabels,
			Color:      colorOr(l.Color, DefaultNodeColor),
		})

		s.Traces = append(s.Traces, Trace{
			Kind:     TraceLines,
			Name:     l.Name + " outline",
			Segments: BuildIntraEdges(l, nodes),
			EdgeKind: EdgeIntra,
			Color:    colorOr(l.EdgeColor, DefaultEdgeColor),
			Opacity:  IntraEdgeOpacity,
		})

		if cfg.ShowLayerNames {
			s.Traces = append(s.Traces, nameAnchor(l, nodes))
		}
	}

	if cfg.ShowInterLayerEdges {
		for i := 0; i+1 < len(g.Layers); i++ {
			src := &g.Layers[i]
			s.Traces = append(s.Traces, Trace{
				Kind:     TraceLines,
				Name:     fmt.Sprintf("%s to %s", src.Name, g.Layers[i+1].Name),
				Segments: BuildInterEdges(layerNodes[i], layerNodes[i+1], inter),
				EdgeKind: EdgeInter,
				Color:    colorOr(src.EdgeColor, DefaultEdgeColor),
				Opacity:  InterEdgeOpacity,
			})
		}
	}

	return s, nil
}

// nameAnchor places a single disconnected node to the side of the layer,
// carrying only the layer's name as a label.
func nameAnchor(l *layer.Layer, nodes []Node) Trace {
	maxX, z := 0.0, 0.0
	for i, n := range nodes {
		if i == 0 || n.X > maxX {
			maxX = n.X
		}
		z = n.Z
	}
	return Trace{
		Kind: TracePoints,
		Name: l.Name + " label",
		Points: []Node{{
			X:     maxX + shape.UnitSpacing,
			Y:     0,
			Z:     z,
			Label: l.Name,
		}},
		ShowLabels: true,
		Anchor:     true,
		Color:      colorOr(l.Color, DefaultNodeColor),
	}
}

func colorOr(c, fallback string) string {
	if c != "" {
		return c
	}
	return fallback
}
