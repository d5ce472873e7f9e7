package messaging

import (
	"context"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.uber.org/zap"
)

// Runnable is anything the group starts and stops, typically a Consumer.
type Runnable interface {
	Start(ctx context.Context) error
	Shutdown() error
}

// ConsumerGroup runs the consumers that share one subscriber and owns that
// subscriber's lifetime.
type ConsumerGroup struct {
	subscriber message.Subscriber
	logger     *zap.Logger
	pending    []Runnable
	running    []Runnable
}

// NewConsumerGroup creates a new consumer group.
func NewConsumerGroup(subscriber message.Subscriber, logger *zap.Logger) *ConsumerGroup {
	return &ConsumerGroup{
		subscriber: subscriber,
		logger:     logger,
	}
}

// Add registers a consumer to be started by Start.
func (g *ConsumerGroup) Add(consumer Runnable) {
	g.pending = append(g.pending, consumer)
}

// Start runs every registered consumer. It is all or nothing: when one fails
// the consumers started before it are stopped again.
func (g *ConsumerGroup) Start(ctx context.Context) error {
	for i, consumer := range g.pending {
		if err := consumer.Start(ctx); err != nil {
			_ = g.stopRunning()

			return fmt.Errorf("start consumer %d: %w", i, err)
		}

		g.running = append(g.running, consumer)
	}

	g.logger.Info("consumer group started", zap.Int("consumers", len(g.running)))

	return nil
}

// Shutdown stops the running consumers, newest first, then closes the
// subscriber. The returned error joins every failure.
func (g *ConsumerGroup) Shutdown() error {
	g.logger.Info("shutting down consumer group", zap.Int("consumers", len(g.running)))

	err := g.stopRunning()

	if closeErr := g.subscriber.Close(); closeErr != nil {
		err = errors.Join(err, fmt.Errorf("close subscriber: %w", closeErr))
	}

	return err
}

func (g *ConsumerGroup) stopRunning() error {
	var errs []error

	for i := len(g.running) - 1; i >= 0; i-- {
		if err := g.running[i].Shutdown(); err != nil {
			errs = append(errs, err)
		}
	}

	g.running = nil

	return errors.Join(errs...)
}
