// Package events defines the domain events the server publishes and the
// consumer records.
package events

import (
	"context"
	"time"
)

const (
	// TopicPageCountComputed receives an event each time the catalog is fetched and summed.
	TopicPageCountComputed = "pages.computed"
	// TopicRateLimitExceeded receives an event for each rejected request.
	TopicRateLimitExceeded = "ratelimit.exceeded"
)

// PageCountComputed is emitted after a cache miss stored a fresh total.
type PageCountComputed struct {
	Total      int64     `json:"total"`
	ComputedAt time.Time `json:"computedAt"`
	SessionID  string    `json:"sessionId"`
	RequestID  string    `json:"requestId,omitempty"`
}

// RateLimitExceeded is emitted when a session is turned away with 429.
type RateLimitExceeded struct {
	SessionID  string        `json:"sessionId"`
	Count      int64         `json:"count"`
	Limit      int64         `json:"limit"`
	Window     time.Duration `json:"window"`
	RejectedAt time.Time     `json:"rejectedAt"`
	RequestID  string        `json:"requestId,omitempty"`
}

// Store persists consumed events.
type Store interface {
	SavePageCountComputed(ctx context.Context, event *PageCountComputed) error
	SaveRateLimitExceeded(ctx context.Context, event *RateLimitExceeded) error
}
