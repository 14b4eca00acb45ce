// Package cache stores generated compositions and rendered artifacts.
//
// # Backends
//
//   - [FileCache]: one file per entry under a directory (CLI default)
//   - [RedisCache]: shared cache for API deployments
//   - [MongoCache]: document store with a TTL index
//   - [NullCache]: disables caching
//
// [Open] picks a backend from a URL, so the CLI and the server can share
// one flag:
//
//	c, err := cache.Open(ctx, "redis://localhost:6379/0", dir)
//
// # Keys
//
// Keys come from a [Keyer]. The default keyer hashes its inputs, and a
// [ScopedKeyer] prefixes every key, for example with the release version so
// upgrades never serve stale artifacts.
//
// Every composition is stored under its ID. Only seeded runs are looked up
// before generating; unseeded runs can still be fetched later by ID.
package cache

import (
	"context"
	"time"
)

// Default entry lifetimes.
const (
	TTLComposition = 30 * 24 * time.Hour
	TTLArtifact    = 30 * 24 * time.Hour
)

// Cache is a byte store with per-entry expiry. A miss is reported by
// ok == false with a nil error.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// CompositionKey returns the key of a generated composition, identified
	// by its configuration-derived ID.
	CompositionKey(id string) string
	// ArtifactKey returns the key of one rendering of a composition.
	ArtifactKey(compositionID string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts holds every sink setting that changes the rendered bytes.
type ArtifactKeyOpts struct {
	Format    string  `json:"format"`
	Scale     float64 `json:"scale,omitempty"`
	NoLabels  bool    `json:"no_labels,omitempty"`
	Generator string  `json:"generator,omitempty"`
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// CompositionKey implements [Keyer].
func (DefaultKeyer) CompositionKey(id string) string {
	return hashKey("composition", id)
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(compositionID string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", compositionID, opts)
}
