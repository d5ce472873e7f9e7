package container

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/serroba/book-pages-go/internal/catalog"
	"github.com/serroba/book-pages-go/internal/events"
	eventstore "github.com/serroba/book-pages-go/internal/events/store"
	"github.com/serroba/book-pages-go/internal/messaging"
	"github.com/serroba/book-pages-go/internal/pages"
	"github.com/serroba/book-pages-go/internal/ratelimit"
	"github.com/serroba/book-pages-go/internal/store"
	"go.uber.org/zap"
)

// ConsumerGroupName is the Redis streams consumer group of the event consumer.
const ConsumerGroupName = "book-pages-consumer"

func LoggerPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*zap.Logger, error) {
		opts := do.MustInvoke[*Options](i)

		return NewLogger(opts.LogFormat)
	})
}

func RedisPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*redis.Client, error) {
		opts := do.MustInvoke[*Options](i)

		return redis.NewClient(&redis.Options{Addr: opts.RedisAddr}), nil
	})
}

// StorePackage provides the shared key-value store. It owns the Redis client
// and closes it on shutdown.
func StorePackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*store.Redis, error) {
		return store.NewRedis(do.MustInvoke[*redis.Client](i)), nil
	})
}

func CatalogPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*catalog.Client, error) {
		opts := do.MustInvoke[*Options](i)

		return catalog.NewClient(opts.CatalogURL, opts.Timeout()), nil
	})
}

func PagesPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*pages.Aggregator, error) {
		return pages.NewAggregator(
			do.MustInvoke[*store.Redis](i),
			do.MustInvoke[*catalog.Client](i),
		), nil
	})
}

func RateLimitPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (ratelimit.Limiter, error) {
		return ratelimit.NewFixedWindowLimiter(
			do.MustInvoke[*store.Redis](i),
			ratelimit.DefaultLimit,
			ratelimit.DefaultWindow,
		), nil
	})
}

// PublisherGroupPackage provides the typed event publishers. With events
// disabled they discard and no Redis stream publisher is created.
func PublisherGroupPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*messaging.PublisherGroup, error) {
		client := do.MustInvoke[*redis.Client](i)
		logger := do.MustInvoke[*zap.Logger](i)

		publisher, err := redisstream.NewPublisher(redisstream.PublisherConfig{
			Client:     client,
			Marshaller: redisstream.DefaultMarshallerUnmarshaller{},
		}, messaging.NewZapLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("create redis stream publisher: %w", err)
		}

		return messaging.NewPublisherGroup(publisher), nil
	})

	do.Provide(i, func(i *do.Injector) (messaging.Publish[events.PageCountComputed], error) {
		if !do.MustInvoke[*Options](i).Events {
			return messaging.Discard[events.PageCountComputed](), nil
		}

		group := do.MustInvoke[*messaging.PublisherGroup](i)

		return messaging.NewPublishFunc[events.PageCountComputed](group.Publisher(), events.TopicPageCountComputed), nil
	})

	do.Provide(i, func(i *do.Injector) (messaging.Publish[events.RateLimitExceeded], error) {
		if !do.MustInvoke[*Options](i).Events {
			return messaging.Discard[events.RateLimitExceeded](), nil
		}

		group := do.MustInvoke[*messaging.PublisherGroup](i)

		return messaging.NewPublishFunc[events.RateLimitExceeded](group.Publisher(), events.TopicRateLimitExceeded), nil
	})
}

// PostgresPackage provides the store the consumer records events in: Postgres
// when a DSN is configured, a log-only store otherwise.
func PostgresPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (events.Store, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		if opts.DatabaseURL == "" {
			logger.Info("no database configured, events are logged only")

			return eventstore.NewNoop(logger), nil
		}

		ctx := context.Background()

		pool, err := pgxpool.New(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}

		pg := eventstore.NewPostgres(pool)

		if err = pg.Migrate(ctx); err != nil {
			pool.Close()

			return nil, err
		}

		return pg, nil
	})
}

func ConsumerGroupPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*messaging.ConsumerGroup, error) {
		client := do.MustInvoke[*redis.Client](i)
		logger := do.MustInvoke[*zap.Logger](i)
		eventStore := do.MustInvoke[events.Store](i)

		subscriber, err := redisstream.NewSubscriber(redisstream.SubscriberConfig{
			Client:        client,
			Unmarshaller:  redisstream.DefaultMarshallerUnmarshaller{},
			ConsumerGroup: ConsumerGroupName,
		}, messaging.NewZapLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("create redis stream subscriber: %w", err)
		}

		return NewConsumerGroup(subscriber, eventStore, logger), nil
	})
}
