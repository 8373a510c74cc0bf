// Package cache provides a small string cache used to memoize computed SIP
// plans and statement analyses. Two implementations exist: a Redis-backed
// cache for deployments and an in-memory cache for single-instance runs and
// tests.
package cache

import (
	"context"
	"time"
)

// Cache stores serialized computation results keyed by their inputs.
type Cache interface {
	// Get returns the cached value and whether it was present.
	Get(ctx context.Context, key string) (string, bool)

	// Set stores a value with the given time-to-live. A zero ttl means the
	// entry does not expire.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}
