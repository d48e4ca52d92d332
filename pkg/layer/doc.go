// Package layer defines the matrix-layer data model and its wire format.
//
// This package is the canonical serialization boundary for Layerscope's
// input data: a [Graph] is an ordered sequence of named numeric matrices
// ([Layer]), each rendered as one z-slice of the 3D scene. Layers are
// read-only inputs; everything derived from them (nodes, edges, scenes)
// lives in pkg/scene and is rebuilt from scratch on every build.
//
// # Shapes
//
// Every layer declares one of a closed set of shapes controlling how its
// cells are placed in the plane:
//
//	layer.ShapeRectangle  // centered grid
//	layer.ShapeCircle     // concentric rings, one per row
//	layer.ShapeTriangle   // skewed grid
//
// Unknown shape tags are rejected by [Layer.Validate]; they never silently
// fall back to a default placement.
//
// # Missing cells
//
// A cell lookup outside the stored value grid returns 0 (and empty label
// and URL). This is an intentional policy, not an error: sparse sheets are
// common and should render rather than fail. Dimension errors (zero or
// negative rows/cols) are validation failures.
//
// # Serialization
//
// Graphs use a simple JSON format shared with the remote sheet provider:
//
//	{
//	  "layers": [
//	    {"name": "input", "rows": 2, "cols": 2, "shape": "rectangle",
//	     "values": [[1, 0], [0, 1]]}
//	  ]
//	}
//
// Common operations:
//
//	g, _ := layer.ReadGraphFile("graph.json")   // File → Graph
//	layer.WriteGraphFile(g, "output.json")      // Graph → File
//	data, _ := layer.MarshalGraph(g)            // Graph → []byte
//	parsed, _ := layer.UnmarshalGraph(data)     // []byte → Graph
//
// All functions are safe for concurrent reads but not concurrent writes.
package layer
