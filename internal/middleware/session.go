package middleware

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/book-pages-go/internal/session"
	"go.uber.org/zap"
)

// Session is a middleware that makes sure every request carries a session id.
// A request without the cookie gets a fresh id and exactly one Set-Cookie
// header; a request with it passes through untouched. It never rejects.
func Session(_ huma.API, logger *zap.Logger) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		id, ok := session.FromCookieHeader(cookieLines(ctx)...)
		if !ok {
			id = session.NewID()
			ctx.AppendHeader("Set-Cookie", session.NewCookie(id, time.Now()).String())

			logger.Debug("session issued", zap.String("session_id", id))
		}

		newCtx := session.WithID(ctx.Context(), id)
		next(huma.WithContext(ctx, newCtx))
	}
}

// cookieLines returns every Cookie header line of the request.
func cookieLines(ctx huma.Context) []string {
	var lines []string

	ctx.EachHeader(func(name, value string) {
		if http.CanonicalHeaderKey(name) == "Cookie" {
			lines = append(lines, value)
		}
	})

	return lines
}
