// Package cache provides the caching layer for modviz.
//
// The pipeline caches two kinds of values: parsed graphs (keyed by input
// hash and filter options) and rendered artifacts (keyed by graph hash and
// render options). Backends implement the [Cache] interface:
//
//   - [FileCache]: on-disk cache for CLI usage
//   - [MemoryCache]: in-process LRU for the HTTP server
//   - [RedisCache]: shared cache for multi-instance deployments
//   - [NullCache]: no-op cache when caching is disabled
//
// Key construction is delegated to a [Keyer] so deployments can namespace
// keys (see [ScopedKeyer]) without touching call sites.
package cache

import (
	"context"
	"time"
)

// Cache is the storage interface for cached byte payloads.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// GraphKeyOpts carries the filter options that shape a parsed graph and so
// must be part of its cache key.
type GraphKeyOpts struct {
	AllowPrefixes []string
	AllowAll      bool
	HidePrefixes  []string
	MaxDepth      int
	Isolated      bool
}

// ArtifactKeyOpts carries the render options that shape an artifact.
type ArtifactKeyOpts struct {
	Format      string
	ShowVersion bool
	Consolidate bool
	HostPrefix  string
}

// Keyer constructs cache keys for the pipeline's cacheable stages.
type Keyer interface {
	// GraphKey identifies a filtered graph by the hash of its input edge
	// list plus its filter options.
	GraphKey(inputHash string, opts GraphKeyOpts) string

	// ArtifactKey identifies a rendered artifact by its graph hash plus its
	// render options.
	ArtifactKey(graphHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key parts into prefixed SHA-256 keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// GraphKey implements [Keyer].
func (k *DefaultKeyer) GraphKey(inputHash string, opts GraphKeyOpts) string {
	return hashKey("graph", inputHash, opts)
}

// ArtifactKey implements [Keyer].
func (k *DefaultKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", graphHash, opts)
}

// ScopedKeyer wraps a Keyer with a namespace prefix, isolating tenants or
// test runs that share one backend.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to all keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// GraphKey implements [Keyer].
func (k *ScopedKeyer) GraphKey(inputHash string, opts GraphKeyOpts) string {
	return k.prefix + k.inner.GraphKey(inputHash, opts)
}

// ArtifactKey implements [Keyer].
func (k *ScopedKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(graphHash, opts)
}
