package handlers

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/book-pages-go/internal/apierror"
	"github.com/serroba/book-pages-go/internal/events"
	"github.com/serroba/book-pages-go/internal/messaging"
	"github.com/serroba/book-pages-go/internal/middleware"
	"github.com/serroba/book-pages-go/internal/pages"
	"github.com/serroba/book-pages-go/internal/session"
	"go.uber.org/zap"
)

const (
	MessageFromCache    = "Data fetched from Redis cache"
	MessageFromUpstream = "Data fetched from external API and cached in Redis"
)

// PageCounter returns the aggregate page count.
type PageCounter interface {
	Total(ctx context.Context) (*pages.Result, error)
}

// BooksHandler serves the page count endpoint.
type BooksHandler struct {
	pages                    PageCounter
	publishPageCountComputed messaging.Publish[events.PageCountComputed]
	logger                   *zap.Logger
}

// NewBooksHandler creates a new books handler.
func NewBooksHandler(
	pages PageCounter,
	publishPageCountComputed messaging.Publish[events.PageCountComputed],
	logger *zap.Logger,
) *BooksHandler {
	return &BooksHandler{
		pages:                    pages,
		publishPageCountComputed: publishPageCountComputed,
		logger:                   logger,
	}
}

func (h *BooksHandler) PageCount(ctx context.Context, _ *struct{}) (*PageCountResponse, error) {
	sessionID := session.IDFromContext(ctx)

	result, err := h.pages.Total(ctx)
	if err != nil {
		h.logger.Error("failed to compute page count",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError(apierror.MessageInternal, err)
	}

	resp := &PageCountResponse{}
	resp.Body.Success = true
	resp.Body.Total = result.Total

	if result.Source == pages.SourceCache {
		resp.Body.Message = MessageFromCache

		return resp, nil
	}

	resp.Body.Message = MessageFromUpstream

	event := &events.PageCountComputed{
		Total:      result.Total,
		ComputedAt: time.Now(),
		SessionID:  sessionID,
		RequestID:  middleware.RequestIDFromContext(ctx),
	}

	if err := h.publishPageCountComputed(ctx, event); err != nil {
		h.logger.Error("failed to publish page count event",
			zap.Int64("total", event.Total),
			zap.Error(err),
		)
	}

	return resp, nil
}
