package ratelimit

import (
	"context"
	"time"
)

// Store is the subset of the shared key-value store the limiter needs.
type Store interface {
	// Get returns the value at key; found is false when the key does not exist.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	// Set stores value at key without an expiry.
	Set(ctx context.Context, key, value string) error
	// Incr atomically increments the integer at key and returns the new value.
	Incr(ctx context.Context, key string) (int64, error)
	// Expire attaches a time-to-live to key.
	Expire(ctx context.Context, key string, ttl time.Duration) error
}
