package store

import (
	"context"

	"github.com/serroba/book-pages-go/internal/events"
	"go.uber.org/zap"
)

// Noop is an events.Store that only logs what it receives.
type Noop struct {
	logger *zap.Logger
}

// NewNoop creates a new log-only event store.
func NewNoop(logger *zap.Logger) *Noop {
	return &Noop{logger: logger}
}

func (n *Noop) SavePageCountComputed(_ context.Context, event *events.PageCountComputed) error {
	n.logger.Info("page count computed",
		zap.Int64("total", event.Total),
		zap.String("session_id", event.SessionID),
		zap.Time("computed_at", event.ComputedAt),
	)

	return nil
}

func (n *Noop) SaveRateLimitExceeded(_ context.Context, event *events.RateLimitExceeded) error {
	n.logger.Info("rate limit exceeded",
		zap.String("session_id", event.SessionID),
		zap.Int64("count", event.Count),
		zap.Int64("limit", event.Limit),
		zap.Time("rejected_at", event.RejectedAt),
	)

	return nil
}
