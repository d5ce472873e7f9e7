// Package session carries the per-browser correlation identifier used to key rate limits.
// The identifier is an unauthenticated random token; it is not proof of identity.
package session

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	// CookieName is the cookie that persists the identifier client-side.
	CookieName = "session_id"
	// MaxAge is how long a browser keeps the identifier. It is not renewed.
	MaxAge = 15 * time.Minute
)

type idKey struct{}

// NewID returns a random (version 4) UUID string.
func NewID() string {
	return uuid.NewString()
}

// WithID returns a copy of ctx carrying the session identifier.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, idKey{}, id)
}

// IDFromContext returns the session identifier stored in ctx, or "" when none is set.
func IDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(idKey{}).(string); ok {
		return v
	}

	return ""
}

// FromCookieHeader extracts the identifier from the raw Cookie request header
// lines. Malformed pairs are skipped the way net/http skips them when serving
// a request, so one bad neighbouring cookie does not hide the identifier.
// An empty value counts as absent.
func FromCookieHeader(lines ...string) (string, bool) {
	req := &http.Request{Header: http.Header{"Cookie": lines}}

	c, err := req.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return "", false
	}

	return c.Value, true
}

// NewCookie builds the HttpOnly cookie issued on first contact.
func NewCookie(id string, now time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(MaxAge.Seconds()),
		Expires:  now.Add(MaxAge).UTC(),
		HttpOnly: true,
	}
}
