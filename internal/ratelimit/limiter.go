// Package ratelimit implements a per-session fixed-window request limiter
// whose counters live in the shared key-value store.
package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

const (
	// DefaultLimit is compared with the counter before it is incremented, so
	// DefaultLimit+1 requests are admitted per window.
	DefaultLimit = 10
	// DefaultWindow is the counter TTL, set once when the counter is created.
	DefaultWindow = 30 * time.Second
	// KeyPrefix namespaces counters by session identifier.
	KeyPrefix = "rate-limiter-"
)

// Decision is the outcome of a single Allow call.
type Decision struct {
	Allowed bool
	// Count is the counter value after the request was recorded, or the
	// value that caused the rejection.
	Count  int64
	Limit  int64
	Window time.Duration
}

// Limiter defines the interface for rate limiting.
type Limiter interface {
	// Allow checks if a request for the given session should be admitted.
	Allow(ctx context.Context, sessionID string) (*Decision, error)
}

// FixedWindowLimiter counts requests per session in a window that starts on
// the first request and ends when the store expires the counter.
//
// The read, create and increment steps are separate store calls; two
// concurrent first requests for a session may both create the counter and
// lose one increment. When the counter expires between the read and the
// increment, INCR recreates it without a TTL; Allow sees that as a count of 1
// on a key it had found and sets the window expiry again.
type FixedWindowLimiter struct {
	store  Store
	limit  int64
	window time.Duration
}

// NewFixedWindowLimiter creates a new fixed window rate limiter.
func NewFixedWindowLimiter(store Store, limit int64, window time.Duration) *FixedWindowLimiter {
	return &FixedWindowLimiter{
		store:  store,
		limit:  limit,
		window: window,
	}
}

// Key returns the store key holding the counter for a session.
func Key(sessionID string) string {
	return KeyPrefix + sessionID
}

func (l *FixedWindowLimiter) Allow(ctx context.Context, sessionID string) (*Decision, error) {
	key := Key(sessionID)

	value, found, err := l.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	if !found {
		if err = l.store.Set(ctx, key, "0"); err != nil {
			return nil, err
		}

		if err = l.store.Expire(ctx, key, l.window); err != nil {
			return nil, err
		}

		value = "0"
	}

	current, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("rate limit counter %q is not an integer: %w", key, err)
	}

	if current > l.limit {
		rejectionsTotal.Inc()

		return l.decision(false, current), nil
	}

	count, err := l.store.Incr(ctx, key)
	if err != nil {
		return nil, err
	}

	if found && count == 1 {
		if err = l.store.Expire(ctx, key, l.window); err != nil {
			return nil, err
		}
	}

	return l.decision(true, count), nil
}

func (l *FixedWindowLimiter) decision(allowed bool, count int64) *Decision {
	return &Decision{
		Allowed: allowed,
		Count:   count,
		Limit:   l.limit,
		Window:  l.window,
	}
}
