package container

import (
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/serroba/book-pages-go/internal/events"
	"github.com/serroba/book-pages-go/internal/messaging"
	"go.uber.org/zap"
)

// NewConsumerGroup subscribes one consumer per event topic, each saving into eventStore.
func NewConsumerGroup(subscriber message.Subscriber, eventStore events.Store, logger *zap.Logger) *messaging.ConsumerGroup {
	group := messaging.NewConsumerGroup(subscriber, logger)

	group.Add(messaging.NewConsumer[events.PageCountComputed](
		subscriber,
		events.TopicPageCountComputed,
		eventStore.SavePageCountComputed,
		logger,
	))
	group.Add(messaging.NewConsumer[events.RateLimitExceeded](
		subscriber,
		events.TopicRateLimitExceeded,
		eventStore.SaveRateLimitExceeded,
		logger,
	))

	return group
}
