package scene

import (
	"sync"

	"github.com/layerscope/layerscope/pkg/errors"
)

// DefaultZSpacing is the default z distance between consecutive layers.
const DefaultZSpacing = 2.0

// Config is an immutable snapshot of the display settings a scene is built
// against. Builds never observe a Config changing underneath them: callers
// pass it by value.
type Config struct {
	ShowLabels          bool    `json:"show_labels"`
	ShowLayerNames      bool    `json:"show_layer_names"`
	ShowInterLayerEdges bool    `json:"show_inter_layer_edges"`
	ZSpacing            float64 `json:"z_spacing"`
}

// DefaultConfig returns the settings a fresh viewer starts with.
func DefaultConfig() Config {
	return Config{
		ShowLabels:          false,
		ShowLayerNames:      true,
		ShowInterLayerEdges: true,
		ZSpacing:            DefaultZSpacing,
	}
}

// Validate checks that the configuration can drive a build.
func (c Config) Validate() error {
	if c.ZSpacing <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "z spacing must be positive, got %v", c.ZSpacing)
	}
	return nil
}

// =============================================================================
// ConfigStore - Staged/Active Snapshots
// =============================================================================

// ConfigStore holds two copies of the configuration: a staged copy
// reflecting in-progress edits, and an active copy that drives the last
// committed scene build. Commit atomically replaces active with staged;
// there is no partial application.
//
// The store exists so interactive surfaces can edit settings freely
// without triggering a rebuild per keystroke. The contract it preserves:
// a scene reflects only the committed configuration, never the staged one.
//
// All methods are safe for concurrent use.
type ConfigStore struct {
	mu     sync.RWMutex
	staged Config
	active Config
}

// NewConfigStore creates a store with both copies set to cfg.
func NewConfigStore(cfg Config) *ConfigStore {
	return &ConfigStore{staged: cfg, active: cfg}
}

// Active returns the configuration driving the current scene.
func (s *ConfigStore) Active() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// Staged returns the edited-but-uncommitted configuration.
func (s *ConfigStore) Staged() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.staged
}

// Stage applies an edit to the staged copy. The active copy is untouched.
func (s *ConfigStore) Stage(edit func(*Config)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	edit(&s.staged)
}

// SetStaged replaces the staged copy wholesale.
func (s *ConfigStore) SetStaged(cfg Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.staged = cfg
}

// Commit validates the staged copy and, on success, atomically makes it the
// active one. On validation failure the active copy is left untouched and
// the staged edits remain for correction.
func (s *ConfigStore) Commit() (Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.staged.Validate(); err != nil {
		return s.active, err
	}
	s.active = s.staged
	return s.active, nil
}

// Revert discards staged edits, resetting the staged copy to active.
func (s *ConfigStore) Revert() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.staged = s.active
}

// Dirty reports whether the staged copy differs from the active one.
func (s *ConfigStore) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.staged != s.active
}
