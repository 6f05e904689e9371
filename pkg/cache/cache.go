// Package cache stores comparison results between runs.
//
// A [Cache] is a byte store with per-entry expiry. Three backends exist:
// [FileCache] for the CLI, [RedisCache] for the HTTP server, and [NullCache]
// when caching is disabled. Keys are produced by a [Keyer] so that every
// backend sees the same key for the same pair of inputs and options.
package cache

import (
	"context"
	"time"
)

// TTLCompare is how long a comparison record stays valid.
const TTLCompare = 7 * 24 * time.Hour

// TTLConvert is how long a converted network stays valid.
const TTLConvert = 30 * 24 * time.Hour

// Cache is a key/value store with expiry.
//
// Get reports a miss with ok == false and a nil error. Implementations must be
// safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
