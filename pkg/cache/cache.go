// Package cache memoizes the results of pure layout operations.
//
// Every operation in pkg/grid and pkg/responsive is a function of its
// request, so a response can be stored under a hash of the request and
// replayed verbatim. The HTTP server is the main consumer.
//
// # Implementations
//
//   - [NullCache]: never stores anything. Use it to disable memoization.
//   - [MemoryCache]: in-process map with per-entry TTL and a size bound.
//
// # Keys
//
// [OpKey] builds keys of the form "op:<name>:<sha256>" from the operation
// name and the canonical JSON of the request.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte payloads under string keys.
//
// Get reports a miss with ok == false and a nil error. Implementations must
// be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// DefaultTTL is the lifetime of a memoized operation result.
const DefaultTTL = 10 * time.Minute
