// Package store persists named layer graphs.
//
// The store keeps INPUT data only: graphs a user wants to revisit or share
// by name. Assembled scenes are never stored — they are cheap to rebuild
// and their geometry depends on view configuration, so persisting them
// would only create staleness.
//
// Two implementations exist:
//   - [MongoStore]: durable storage backed by a MongoDB collection
//   - [MemoryStore]: process-local storage for tests and offline use
package store

import (
	"context"
	"time"

	"github.com/layerscope/layerscope/pkg/layer"
)

// Record is a saved graph with its bookkeeping fields.
type Record struct {
	// Name is the user-chosen identifier, unique within the store.
	Name string `json:"name" bson:"name"`

	// Graph is the saved layer graph.
	Graph layer.Graph `json:"graph" bson:"graph"`

	// UpdatedAt is the time of the last Save for this name.
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Store saves and retrieves named layer graphs.
//
// Save overwrites any existing record with the same name. Load and Delete
// report a missing name as a GRAPH_NOT_FOUND error.
type Store interface {
	// Save stores g under name, replacing any previous record.
	Save(ctx context.Context, name string, g *layer.Graph) error

	// Load retrieves the graph saved under name.
	Load(ctx context.Context, name string) (*layer.Graph, error)

	// List returns all records ordered by name.
	List(ctx context.Context) ([]Record, error)

	// Delete removes the record saved under name.
	Delete(ctx context.Context, name string) error

	// Close releases any resources held by the store.
	Close(ctx context.Context) error
}
