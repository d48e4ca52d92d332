package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// The serve mode uses this to keep per-deployment entries apart when
// several instances share one Redis database.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// GraphKey generates a prefixed key for graph caching.
func (k *ScopedKeyer) GraphKey(sheetID string, opts GraphKeyOpts) string {
	return k.prefix + k.inner.GraphKey(sheetID, opts)
}

// SceneKey generates a prefixed key for scene caching.
func (k *ScopedKeyer) SceneKey(graphHash string, opts SceneKeyOpts) string {
	return k.prefix + k.inner.SceneKey(graphHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(sceneHash, opts)
}
