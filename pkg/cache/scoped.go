package cache

// ScopedKeyer wraps a Keyer with a prefix so that several tenants, or
// several releases, can share one backend without sharing entries.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "v1.2.0:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys. A nil inner keyer means
// the default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// CompositionKey generates a prefixed composition key.
func (k *ScopedKeyer) CompositionKey(id string) string {
	return k.prefix + k.inner.CompositionKey(id)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(compositionID string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(compositionID, opts)
}
