package middleware

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
)

// HeaderRequestID carries the request correlation id in both directions.
const HeaderRequestID = "X-Request-ID"

type requestIDKey struct{}

// RequestIDFromContext returns the request id assigned by RequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey{}).(string); ok {
		return v
	}

	return ""
}

// RequestID is a middleware that reuses the caller's X-Request-ID or generates
// one, echoes it on the response and stores it in the request context.
func RequestID(_ huma.API, generate func() string) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		id := ctx.Header(HeaderRequestID)
		if id == "" || len(id) > 128 {
			id = generate()
		}

		ctx.SetHeader(HeaderRequestID, id)

		newCtx := context.WithValue(ctx.Context(), requestIDKey{}, id)
		next(huma.WithContext(ctx, newCtx))
	}
}
