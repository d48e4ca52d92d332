// Package scene builds 3D scene descriptions from matrix-layer graphs.
//
// A scene is a flat, ordered list of traces: point-sets holding one node
// per matrix cell, and line-sets holding intra-layer outline edges or
// inter-layer connection edges. The rendering surface consumes traces in
// order; each trace is independently stylable.
//
// # Build model
//
// [Assemble] is a pure function from an immutable (Graph, Config) pair to a
// fresh Scene value. There is no incremental state: every build recomputes
// every node and edge, and two builds from the same inputs yield identical
// scenes. Construction is synchronous and never blocks, so no operation
// here takes a context.
//
// The per-layer stages compose as:
//
//	BuildLayerNodes × N  →  BuildIntraEdges × N
//	                        BuildInterEdges × (N−1)  →  Assemble
//
// # Configuration
//
// [Config] is the immutable snapshot a build is made against. [ConfigStore]
// holds two copies, staged and active: interactive surfaces edit the staged
// copy freely and commit it atomically, and builds only ever read the
// active copy. A half-edited configuration can never leak into a build.
package scene
