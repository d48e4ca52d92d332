package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/layerscope/layerscope/pkg/errors"
	"github.com/layerscope/layerscope/pkg/layer"
)

// MemoryStore is a process-local Store. Safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	recs map[string]Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{recs: make(map[string]Record)}
}

// Save stores a copy of g under name, replacing any previous record.
func (s *MemoryStore) Save(_ context.Context, name string, g *layer.Graph) error {
	if err := errors.ValidateGraphName(name); err != nil {
		return err
	}
	if err := g.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.recs[name] = Record{Name: name, Graph: *g, UpdatedAt: time.Now().UTC()}
	return nil
}

// Load retrieves the graph saved under name.
func (s *MemoryStore) Load(_ context.Context, name string) (*layer.Graph, error) {
	if err := errors.ValidateGraphName(name); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.recs[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeGraphNotFound, "graph %s not found", name)
	}
	g := rec.Graph
	return &g, nil
}

// List returns all records ordered by name.
func (s *MemoryStore) List(_ context.Context) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := make([]Record, 0, len(s.recs))
	for _, rec := range s.recs {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].Name < recs[j].Name })
	return recs, nil
}

// Delete removes the record saved under name.
func (s *MemoryStore) Delete(_ context.Context, name string) error {
	if err := errors.ValidateGraphName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.recs[name]; !ok {
		return errors.New(errors.ErrCodeGraphNotFound, "graph %s not found", name)
	}
	delete(s.recs, name)
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close(context.Context) error { return nil }

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
