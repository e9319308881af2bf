// Package cache stores computed orderings, drawings and rendered artifacts
// so repeated runs over the same instance skip the work.
//
// # Backends
//
//   - [NullCache] stores nothing.
//   - [FileCache] keeps one JSON file per key below a directory. This is
//     the CLI default.
//   - [BadgerCache] is an embedded LSM store, on disk or in memory.
//   - [RedisCache] is shared between processes, e.g. several API servers.
//
// [Open] picks a backend by name.
//
// # Keys
//
// A [Keyer] derives keys from a content hash of the input (see [GraphHash]
// and [Hash]) and the options that influence the result. [ScopedKeyer] prefixes every
// key so that independent users of one backend do not collide.
package cache

import (
	"context"
	"time"
)

// Default lifetimes of cached values.
const (
	TTLOrdering = 7 * 24 * time.Hour
	TTLDrawing  = 7 * 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value stored under key. A miss is reported through
	// the boolean, not as an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the backend.
	Close() error
}

// OrderingKeyOpts identifies a canonical ordering of a graph.
type OrderingKeyOpts struct {
	V1, V2, Vn int
}

// DrawingKeyOpts identifies a drawing computed from a canonical ordering.
// The ordering determines the graph, so the ordering hash is the only
// other input.
type DrawingKeyOpts struct {
	Algorithm     string
	MaxIncrements int
}

// ArtifactKeyOpts identifies a rendered image of a drawing.
type ArtifactKeyOpts struct {
	Format string
	Scale  float64
	Grid   bool
}

// Keyer derives cache keys.
type Keyer interface {
	OrderingKey(graphHash string, opts OrderingKeyOpts) string
	DrawingKey(orderingHash string, opts DrawingKeyOpts) string
	ArtifactKey(drawingHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the options into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard key scheme.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) OrderingKey(graphHash string, opts OrderingKeyOpts) string {
	return hashKey("ordering", graphHash, opts.V1, opts.V2, opts.Vn)
}

func (DefaultKeyer) DrawingKey(orderingHash string, opts DrawingKeyOpts) string {
	return hashKey("drawing", orderingHash, opts.Algorithm, opts.MaxIncrements)
}

func (DefaultKeyer) ArtifactKey(drawingHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", drawingHash, opts.Format, opts.Scale, opts.Grid)
}
