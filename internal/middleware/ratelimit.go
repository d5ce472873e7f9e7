package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/book-pages-go/internal/apierror"
	"github.com/serroba/book-pages-go/internal/events"
	"github.com/serroba/book-pages-go/internal/messaging"
	"github.com/serroba/book-pages-go/internal/ratelimit"
	"github.com/serroba/book-pages-go/internal/session"
	"go.uber.org/zap"
)

// MessageRateLimited is returned with every 429 response.
const MessageRateLimited = "Too many requests, please cool down and try again later"

var errMissingSession = errors.New("missing session id in request context")

// RateLimiter returns a Huma middleware that limits requests per session id.
// It must run after Session. Operations whose metadata disables rate limiting
// are passed straight through.
//
// A store failure fails the request with 500; the limiter neither fails open
// nor retries. Rejections carry no Retry-After header.
func RateLimiter(
	api huma.API,
	limiter ratelimit.Limiter,
	publish messaging.Publish[events.RateLimitExceeded],
	logger *zap.Logger,
) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if cfg := ratelimit.GetEndpointConfig(ctx); cfg != nil && cfg.Disabled {
			next(ctx)

			return
		}

		path := getOperationPath(ctx)

		sessionID := session.IDFromContext(ctx.Context())
		if sessionID == "" {
			logger.Error("rate limit check without session", zap.String("path", path))
			_ = huma.WriteErr(api, ctx, http.StatusInternalServerError, apierror.MessageInternal, errMissingSession)

			return
		}

		decision, err := limiter.Allow(ctx.Context(), sessionID)
		if err != nil {
			logger.Error("rate limit check failed",
				zap.String("path", path),
				zap.String("session_id", sessionID),
				zap.Error(err),
			)
			_ = huma.WriteErr(api, ctx, http.StatusInternalServerError, apierror.MessageInternal, err)

			return
		}

		if !decision.Allowed {
			handleRateLimitExceeded(api, ctx, decision, sessionID, path, publish, logger)

			return
		}

		next(ctx)
	}
}

// handleRateLimitExceeded logs, publishes and responds to a rejected request.
func handleRateLimitExceeded(
	api huma.API,
	ctx huma.Context,
	decision *ratelimit.Decision,
	sessionID, path string,
	publish messaging.Publish[events.RateLimitExceeded],
	logger *zap.Logger,
) {
	requestID := RequestIDFromContext(ctx.Context())

	logger.Warn("rate limit exceeded",
		zap.String("path", path),
		zap.String("session_id", sessionID),
		zap.Int64("count", decision.Count),
		zap.Int64("limit", decision.Limit),
		zap.Duration("window", decision.Window),
		zap.String("request_id", requestID),
	)

	event := &events.RateLimitExceeded{
		SessionID:  sessionID,
		Count:      decision.Count,
		Limit:      decision.Limit,
		Window:     decision.Window,
		RejectedAt: time.Now(),
		RequestID:  requestID,
	}

	if err := publish(ctx.Context(), event); err != nil {
		logger.Error("failed to publish rate limit event",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
	}

	_ = huma.WriteErr(api, ctx, http.StatusTooManyRequests, MessageRateLimited)
}
