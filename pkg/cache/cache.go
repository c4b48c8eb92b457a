// Package cache stores computed layouts so unchanged inputs are not laid out
// twice.
//
// A layout is a pure function of its input document, its options and the
// collapse set, so a hash of those three is a sound cache key ([Keyer]).
// Three [Cache] backends are provided:
//
//   - [FileCache]: one JSON entry per key under a directory (CLI default)
//   - [RedisCache]: shared cache for server deployments
//   - [NullCache]: never stores anything (--no-cache)
//
// RedisCache retries commands that fail at the network level a few times
// with a short backoff; connecting is a single bounded attempt.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the value for key and whether it was present.
	// A missing or expired entry is a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
