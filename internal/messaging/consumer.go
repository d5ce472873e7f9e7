package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// ErrAlreadyStarted is returned by Start on a consumer that is already running.
var ErrAlreadyStarted = errors.New("consumer already started")

const (
	resultHandled  = "handled"
	resultDecode   = "decode_error"
	resultRejected = "handler_error"
)

var eventsConsumedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "book_pages_events_consumed_total",
	Help: "Events read from a stream, by topic and outcome",
}, []string{"topic", "result"})

// Handler processes a single decoded event.
type Handler[T any] func(ctx context.Context, event *T) error

// Consumer feeds the JSON events of one topic to a typed handler.
// Messages that fail to decode or to be handled are nacked so the stream
// redelivers them.
type Consumer[T any] struct {
	subscriber message.Subscriber
	topic      string
	handler    Handler[T]
	logger     *zap.Logger

	mu      sync.Mutex
	running bool
	stop    context.CancelFunc
	stopped chan struct{}
}

// NewConsumer creates a new consumer for a specific event type.
func NewConsumer[T any](
	subscriber message.Subscriber,
	topic string,
	handler Handler[T],
	logger *zap.Logger,
) *Consumer[T] {
	return &Consumer[T]{
		subscriber: subscriber,
		topic:      topic,
		handler:    handler,
		logger:     logger.With(zap.String("topic", topic)),
	}
}

// Topic returns the topic this consumer subscribes to.
func (c *Consumer[T]) Topic() string {
	return c.topic
}

// Start subscribes and handles messages on a background goroutine until
// ctx is cancelled, Shutdown is called or the subscription closes.
func (c *Consumer[T]) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return ErrAlreadyStarted
	}

	ctx, stop := context.WithCancel(ctx)

	msgs, err := c.subscriber.Subscribe(ctx, c.topic)
	if err != nil {
		stop()

		return fmt.Errorf("subscribe to %s: %w", c.topic, err)
	}

	c.running = true
	c.stop = stop
	c.stopped = make(chan struct{})

	go c.listen(ctx, msgs, c.stopped)

	return nil
}

func (c *Consumer[T]) listen(ctx context.Context, msgs <-chan *message.Message, stopped chan<- struct{}) {
	defer close(stopped)

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				c.logger.Info("subscription closed")

				return
			}

			eventsConsumedTotal.WithLabelValues(c.topic, c.handle(ctx, msg)).Inc()
		}
	}
}

// handle acks or nacks msg and reports the outcome.
func (c *Consumer[T]) handle(ctx context.Context, msg *message.Message) string {
	log := c.logger.With(zap.String("message_uuid", msg.UUID))

	event := new(T)
	if err := json.Unmarshal(msg.Payload, event); err != nil {
		log.Error("failed to decode event", zap.Error(err))
		msg.Nack()

		return resultDecode
	}

	if err := c.handler(ctx, event); err != nil {
		log.Error("failed to handle event", zap.Error(err))
		msg.Nack()

		return resultRejected
	}

	msg.Ack()
	log.Debug("event handled")

	return resultHandled
}

// Shutdown stops the consumer and waits for the message in hand to finish.
// It is a no-op on a consumer that is not running.
func (c *Consumer[T]) Shutdown() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return nil
	}

	c.stop()
	<-c.stopped
	c.running = false

	return nil
}
