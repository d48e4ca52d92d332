package render

import (
	"encoding/json"

	"github.com/layerscope/layerscope/pkg/errors"
	"github.com/layerscope/layerscope/pkg/scene"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	compact bool
	source  string
}

// WithJSONCompact emits single-line JSON instead of the default
// pretty-printed document. Use for piping into other tools.
func WithJSONCompact() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

// WithJSONSource records where the underlying graph came from (a sheet ID,
// a file path, a store name) so re-renders can be traced to their input.
func WithJSONSource(s string) JSONOption { return func(r *jsonRenderer) { r.source = s } }

type jsonOutput struct {
	Source string      `json:"source,omitempty"`
	Nodes  int         `json:"nodes"`
	Edges  int         `json:"edges"`
	Traces []jsonTrace `json:"traces"`
}

// jsonTrace is one renderable group in plotly-compatible shape: parallel
// coordinate arrays rather than structured points, with nil entries in the
// line arrays acting as path breaks between segments.
type jsonTrace struct {
	Kind       string     `json:"kind"`
	Name       string     `json:"name"`
	X          []*float64 `json:"x"`
	Y          []*float64 `json:"y"`
	Z          []*float64 `json:"z"`
	Text       []string   `json:"text,omitempty"`
	Links      []string   `json:"links,omitempty"`
	ShowLabels bool       `json:"show_labels,omitempty"`
	EdgeKind   string     `json:"edge_kind,omitempty"`
	Color      string     `json:"color,omitempty"`
	Opacity    float64    `json:"opacity,omitempty"`
}

// RenderJSON exports a scene as a JSON document of coordinate-array traces,
// the interchange format consumed by browser-side 3D plotting surfaces.
//
// Point traces carry one array entry per node, with per-node text and link
// payloads when any node in the trace has them. Line traces flatten their
// segments into from/to coordinate pairs separated by explicit nulls, the
// convention plotting libraries use to break a polyline between segments.
//
// RenderJSON does not modify s and is safe to call concurrently.
func RenderJSON(s *scene.Scene, opts ...JSONOption) ([]byte, error) {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Source: r.source,
		Nodes:  s.NodeCount(),
		Edges:  s.EdgeCount(),
		Traces: make([]jsonTrace, 0, len(s.Traces)),
	}
	for i := range s.Traces {
		out.Traces = append(out.Traces, buildJSONTrace(&s.Traces[i]))
	}

	var (
		data []byte
		err  error
	)
	if r.compact {
		data, err = json.Marshal(out)
	} else {
		data, err = json.MarshalIndent(out, "", "  ")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode scene")
	}
	return data, nil
}

func buildJSONTrace(t *scene.Trace) jsonTrace {
	jt := jsonTrace{
		Kind:       t.Kind,
		Name:       t.Name,
		ShowLabels: t.ShowLabels,
		EdgeKind:   t.EdgeKind,
		Color:      t.Color,
		Opacity:    t.Opacity,
	}
	if t.IsLines() {
		fillLineArrays(&jt, t.Segments)
		return jt
	}
	fillPointArrays(&jt, t.Points)
	return jt
}

func fillPointArrays(jt *jsonTrace, nodes []scene.Node) {
	jt.X = make([]*float64, len(nodes))
	jt.Y = make([]*float64, len(nodes))
	jt.Z = make([]*float64, len(nodes))

	hasText, hasLinks := false, false
	text := make([]string, len(nodes))
	links := make([]string, len(nodes))

	for i := range nodes {
		n := &nodes[i]
		jt.X[i], jt.Y[i], jt.Z[i] = ptr(n.X), ptr(n.Y), ptr(n.Z)
		text[i] = n.Label
		if n.Label != "" {
			hasText = true
		}
		if errors.IsNavigableURL(n.URL) {
			links[i] = n.URL
			hasLinks = true
		}
	}

	if hasText {
		jt.Text = text
	}
	if hasLinks {
		jt.Links = links
	}
}

// fillLineArrays flattens segments into from, to, nil triplets: the nil
// breaks the polyline so each segment renders independently.
func fillLineArrays(jt *jsonTrace, segs []scene.Segment) {
	n := len(segs) * 3
	jt.X = make([]*float64, 0, n)
	jt.Y = make([]*float64, 0, n)
	jt.Z = make([]*float64, 0, n)

	for _, seg := range segs {
		jt.X = append(jt.X, ptr(seg.From.X), ptr(seg.To.X), nil)
		jt.Y = append(jt.Y, ptr(seg.From.Y), ptr(seg.To.Y), nil)
		jt.Z = append(jt.Z, ptr(seg.From.Z), ptr(seg.To.Z), nil)
	}
}

func ptr(v float64) *float64 { return &v }
