// Package render exports assembled scenes to external formats.
//
// # Overview
//
// The scene assembler produces geometry; this package turns that geometry
// into artifacts other tools consume:
//
//   - [RenderJSON]: coordinate-array trace documents for browser-side 3D
//     plotting surfaces (point-sets with text/link payloads, line-sets
//     with explicit path breaks)
//   - [ToDOT], [RenderSVG], [RenderPNG]: flat 2D structural previews of
//     the layer graph via Graphviz
//
// # JSON Traces
//
//	s, err := scene.Assemble(g, cfg)
//	data, err := render.RenderJSON(s, render.WithJSONSource("my-sheet"))
//
// # Structural Previews
//
// Previews render the INPUT graph, not the assembled scene: they show
// layer structure at a glance, not 3D geometry.
//
//	dot := render.ToDOT(g, render.DOTOptions{Detailed: true})
//	svg, err := render.RenderSVG(dot)
package render
