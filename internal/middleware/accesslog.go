package middleware

import (
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/book-pages-go/internal/session"
	"go.uber.org/zap"
)

// AccessLog logs one line per request once the handler has written its response.
// It must run after RequestID and Session so both ids are available.
func AccessLog(_ huma.API, logger *zap.Logger) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		start := time.Now()

		next(ctx)

		reqCtx := ctx.Context()
		status := ctx.Status()

		fields := []zap.Field{
			zap.String("method", ctx.Method()),
			zap.String("path", getOperationPath(ctx)),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", clientIP(ctx)),
			zap.String("request_id", RequestIDFromContext(reqCtx)),
			zap.String("session_id", session.IDFromContext(reqCtx)),
		}

		switch {
		case status >= 500:
			logger.Error("request", fields...)
		case status >= 400:
			logger.Warn("request", fields...)
		default:
			logger.Info("request", fields...)
		}
	}
}

// getOperationPath extracts the route template, falling back to the raw path.
func getOperationPath(ctx huma.Context) string {
	if op := ctx.Operation(); op != nil {
		return op.Path
	}

	u := ctx.URL()

	return u.Path
}

// clientIP extracts the client IP from the request, considering proxies.
func clientIP(ctx huma.Context) string {
	if xff := ctx.Header("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}

		return strings.TrimSpace(xff)
	}

	if xri := ctx.Header("X-Real-IP"); xri != "" {
		return xri
	}

	addr := ctx.RemoteAddr()
	if idx := strings.LastIndex(addr, ":"); idx != -1 {
		return addr[:idx]
	}

	return addr
}
