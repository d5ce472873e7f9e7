// Package health reports whether the service can reach its key-value store.
package health

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/book-pages-go/internal/ratelimit"
	"go.uber.org/zap"
)

// Checker defines the interface for checking service health.
type Checker interface {
	Ping(ctx context.Context) error
}

// Handler handles health check operations.
type Handler struct {
	redis  Checker
	logger *zap.Logger
}

// NewHandler creates a new health handler.
func NewHandler(redis Checker, logger *zap.Logger) *Handler {
	return &Handler{redis: redis, logger: logger}
}

// Response is the response for health check endpoint.
type Response struct {
	Body struct {
		Status string `enum:"ok,degraded"         json:"status"`
		Redis  string `enum:"healthy,unhealthy" json:"redis"`
	}
}

// Check reports the service status. An unreachable store degrades the status
// but still answers 200.
func (h *Handler) Check(ctx context.Context, _ *struct{}) (*Response, error) {
	resp := &Response{}
	resp.Body.Status = "ok"

	if err := h.redis.Ping(ctx); err != nil {
		h.logger.Warn("redis health check failed", zap.Error(err))

		resp.Body.Redis = "unhealthy"
		resp.Body.Status = "degraded"
	} else {
		resp.Body.Redis = "healthy"
	}

	return resp, nil
}

// RegisterRoutes registers health check routes. They are never rate limited.
func RegisterRoutes(api huma.API, h *Handler) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Tags:        []string{"Health"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{Disabled: true},
		},
	}, h.Check)
}
