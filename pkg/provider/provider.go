// Package provider supplies matrix-layer graphs to the pipeline.
//
// The geometry core performs no I/O of its own: it consumes a validated
// [layer.Graph] and nothing else. Providers sit on the other side of that
// boundary and absorb every failure mode of the outside world — network
// errors, timeouts, malformed payloads, empty sheets — converting each into
// a structured error before the core can see it. The core never receives a
// partially-valid graph.
//
// Two provider families exist:
//   - [SheetProvider]: fetches a graph from a remote sheet endpoint by
//     spreadsheet ID, with timeout and retry
//   - [FileProvider]: reads a graph from a local JSON or TOML file
package provider

import (
	"context"

	"github.com/layerscope/layerscope/pkg/layer"
)

// Request identifies the graph to fetch.
type Request struct {
	// SheetID is the spreadsheet identifier understood by the endpoint.
	SheetID string

	// Endpoint overrides the default fetch endpoint. Optional.
	Endpoint string
}

// Provider fetches a validated layer graph.
//
// Implementations must never return a graph alongside an error, and never
// return an empty graph: zero layers is reported as an EMPTY_GRAPH error.
type Provider interface {
	Fetch(ctx context.Context, req Request) (*layer.Graph, error)
}

// =============================================================================
// Wire Format
// =============================================================================

// Envelope statuses shared with the remote sheet endpoint.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Response is the wire envelope returned by the sheet endpoint. Network
// failures never surface raw: the sheet provider folds transport errors,
// non-OK statuses, and timeouts into the same error shape the endpoint
// itself uses.
type Response struct {
	Status  string   `json:"status"`
	Message string   `json:"message,omitempty"`
	Data    *Payload `json:"data,omitempty"`
}

// Payload carries the layer data of a successful response.
type Payload struct {
	Layers []layer.Layer `json:"layers"`
}
