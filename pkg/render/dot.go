package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/layerscope/layerscope/pkg/errors"
	"github.com/layerscope/layerscope/pkg/layer"
)

// DOTOptions configures structural preview rendering.
type DOTOptions struct {
	// Detailed includes per-layer dimensions and shape tags in cluster
	// labels. When false, only layer names are shown.
	Detailed bool
}

// ToDOT converts a layer graph to Graphviz DOT format for a flat 2D
// structural preview: one cluster per layer with its cells in a grid,
// and a single summary arrow between consecutive layers (the full
// bipartite edge set would be unreadable at this zoom level).
//
// The resulting DOT string can be rendered with [RenderSVG] or [RenderPNG].
func ToDOT(g *layer.Graph, opts DOTOptions) string {
	var buf bytes.Buffer
	buf.WriteString("digraph layers {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  compound=true;\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=10, width=0.3, fixedsize=true];\n")
	buf.WriteString("\n")

	for i := range g.Layers {
		writeLayerCluster(&buf, &g.Layers[i], i, opts.Detailed)
	}

	buf.WriteString("\n")
	for i := 1; i < len(g.Layers); i++ {
		// Anchor the summary arrow on each cluster's first cell.
		fmt.Fprintf(&buf, "  %q -> %q [ltail=\"cluster_%d\", lhead=\"cluster_%d\"];\n",
			cellID(i-1, 0, 0), cellID(i, 0, 0), i-1, i)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeLayerCluster(buf *bytes.Buffer, l *layer.Layer, idx int, detailed bool) {
	fmt.Fprintf(buf, "  subgraph \"cluster_%d\" {\n", idx)
	fmt.Fprintf(buf, "    label=%q;\n", clusterLabel(l, detailed))
	buf.WriteString("    style=rounded;\n")
	if l.Color != "" {
		fmt.Fprintf(buf, "    node [fillcolor=%q];\n", l.Color)
	}

	for r := 0; r < l.Rows; r++ {
		ids := make([]string, l.Cols)
		for c := 0; c < l.Cols; c++ {
			id := cellID(idx, r, c)
			ids[c] = fmt.Sprintf("%q", id)
			fmt.Fprintf(buf, "    %q [label=%q];\n", id, cellLabel(l, r, c))
		}
		// Same-rank rows keep the grid shape under dot's layered layout.
		fmt.Fprintf(buf, "    { rank=same; %s }\n", strings.Join(ids, "; "))
	}
	buf.WriteString("  }\n")
}

func clusterLabel(l *layer.Layer, detailed bool) string {
	if !detailed {
		return l.Name
	}
	return fmt.Sprintf("%s (%dx%d %s)", l.Name, l.Rows, l.Cols, l.Shape)
}

func cellLabel(l *layer.Layer, r, c int) string {
	if label := l.Label(r, c); label != "" {
		return label
	}
	return fmt.Sprintf("%g", l.Value(r, c))
}

func cellID(layerIdx, r, c int) string {
	return fmt.Sprintf("l%d_r%d_c%d", layerIdx, r, c)
}

// RenderSVG renders a DOT preview to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.SVG)
}

// RenderPNG renders a DOT preview to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.PNG)
}

func renderFormat(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render preview")
	}
	return buf.Bytes(), nil
}
