// Package cache stores layouts and rendered artifacts keyed by content hash.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [RedisCache]: shared cache for the HTTP server (go-redis)
//   - [MongoCache]: shared cache with TTL index (mongo-driver)
//   - [NullCache]: disables caching
//
// # Keys
//
// A [Keyer] derives keys from the hash of the input plus every option that
// changes the output, so a key never maps to a stale layout. Layout keys
// cover the function and the measurement font; artifact keys add the output
// format and drawing options on top of a layout hash.
package cache

import (
	"context"
	"time"
)

// Default time-to-live values.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl <= 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}
