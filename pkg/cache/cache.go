// Package cache stores computed coordinates and rendered pictures.
//
// # Backends
//
// Three [Cache] implementations are provided:
//   - [NullCache]: stores nothing, for --no-cache and tests
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP server
//
// # Keys
//
// A [Keyer] turns content hashes and the options that affect a result into
// cache keys. Layout keys identify generated atom coordinates for a
// molecule; artifact keys identify one rendered output format for a full
// render request.
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.ArtifactKey(cache.Hash(request), cache.ArtifactKeyOpts{Format: "svg"})
//	if data, hit, err := c.Get(ctx, key); err == nil && hit {
//	    return data, nil
//	}
//
// Errors from Get are advisory: callers treat them as misses.
package cache

import (
	"context"
	"time"
)

// Default entry lifetimes.
const (
	// TTLLayout is the lifetime of generated coordinates. Layouts are
	// deterministic, so they only expire to bound storage.
	TTLLayout = 30 * 24 * time.Hour

	// TTLArtifact is the lifetime of rendered outputs.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the entry for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey identifies generated coordinates for a molecule.
	LayoutKey(moleculeHash string, opts LayoutKeyOpts) string

	// ArtifactKey identifies one output format of a render request.
	ArtifactKey(requestHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the options that change generated coordinates.
type LayoutKeyOpts struct {
	BondLength float64 `json:"bond_length"`
	Seed       int     `json:"seed"`
}

// ArtifactKeyOpts are the options that change a rendered output beyond
// the request itself.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	PNGScale float64 `json:"png_scale,omitempty"`
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(moleculeHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", moleculeHash, opts)
}

// ArtifactKey returns "artifact:<format>:<sha256>". The format stays
// readable so that stored entries can be told apart.
func (DefaultKeyer) ArtifactKey(requestHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+opts.Format, requestHash, opts)
}
