package container

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	"github.com/jaevor/go-nanoid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/samber/do"
	"github.com/serroba/book-pages-go/internal/apierror"
	"github.com/serroba/book-pages-go/internal/events"
	"github.com/serroba/book-pages-go/internal/handlers"
	"github.com/serroba/book-pages-go/internal/health"
	"github.com/serroba/book-pages-go/internal/messaging"
	"github.com/serroba/book-pages-go/internal/middleware"
	"github.com/serroba/book-pages-go/internal/pages"
	"github.com/serroba/book-pages-go/internal/ratelimit"
	"github.com/serroba/book-pages-go/internal/store"
	"go.uber.org/zap"
)

// RequestIDLength is the length of generated request ids.
const RequestIDLength = 21

// APIDeps are the components the HTTP API is built from.
type APIDeps struct {
	Logger                   *zap.Logger
	Limiter                  ratelimit.Limiter
	Pages                    handlers.PageCounter
	Health                   health.Checker
	PublishPageCountComputed messaging.Publish[events.PageCountComputed]
	PublishRateLimitExceeded messaging.Publish[events.RateLimitExceeded]
	RequestID                func() string
}

// NewAPI registers the middleware chain and every route on router.
// Middleware order: request id, session, access log, rate limit.
func NewAPI(router *chi.Mux, deps APIDeps) huma.API {
	apierror.Install()

	config := huma.DefaultConfig("Book Pages", "1.0.0")
	config.CreateHooks = nil

	api := humachi.New(router, config)

	api.UseMiddleware(
		middleware.RequestID(api, deps.RequestID),
		middleware.Session(api, deps.Logger),
		middleware.AccessLog(api, deps.Logger),
		middleware.RateLimiter(api, deps.Limiter, deps.PublishRateLimitExceeded, deps.Logger),
	)

	handlers.RegisterRoutes(api, handlers.NewBooksHandler(deps.Pages, deps.PublishPageCountComputed, deps.Logger))
	health.RegisterRoutes(api, health.NewHandler(deps.Health, deps.Logger))

	return api
}

func HTTPPackage(i *do.Injector) {
	do.Provide(i, func(_ *do.Injector) (*chi.Mux, error) {
		router := chi.NewMux()
		router.Handle("/metrics", promhttp.Handler())

		return router, nil
	})

	do.Provide(i, func(i *do.Injector) (huma.API, error) {
		requestID, err := nanoid.Standard(RequestIDLength)
		if err != nil {
			return nil, err
		}

		kv := do.MustInvoke[*store.Redis](i)

		return NewAPI(do.MustInvoke[*chi.Mux](i), APIDeps{
			Logger:                   do.MustInvoke[*zap.Logger](i),
			Limiter:                  do.MustInvoke[ratelimit.Limiter](i),
			Pages:                    do.MustInvoke[*pages.Aggregator](i),
			Health:                   kv,
			PublishPageCountComputed: do.MustInvoke[messaging.Publish[events.PageCountComputed]](i),
			PublishRateLimitExceeded: do.MustInvoke[messaging.Publish[events.RateLimitExceeded]](i),
			RequestID:                requestID,
		}), nil
	})
}
