package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"

	"payout_manager/internal/domain"
)

// EventApplier records one validated tracking event.
type EventApplier interface {
	Apply(ctx context.Context, event *domain.TrackingEvent) error
}

// RabbitMQ consumes tracking events from the queue and applies them through
// the tracker. Malformed and unknown-content events are acked and dropped;
// transient failures are requeued once.
type RabbitMQ struct {
	conn      *amqp.Connection
	channel   *amqp.Channel
	queueName string
	tracker   EventApplier
	logger    *slog.Logger
}

type Config struct {
	URL       string
	QueueName string
}

func NewRabbitMQ(cfg Config, tracker EventApplier, logger *slog.Logger) (*RabbitMQ, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := ch.Qos(32, 0, false); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("set qos: %w", err)
	}

	return &RabbitMQ{
		conn:      conn,
		channel:   ch,
		queueName: cfg.QueueName,
		tracker:   tracker,
		logger:    logger,
	}, nil
}

// Run consumes until the context is canceled or the channel closes.
func (c *RabbitMQ) Run(ctx context.Context) error {
	deliveries, err := c.channel.ConsumeWithContext(
		ctx,
		c.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	c.logger.Info("consuming tracking events", "queue", c.queueName)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return errors.New("delivery channel closed")
			}
			c.handle(ctx, delivery)
		}
	}
}

func (c *RabbitMQ) handle(ctx context.Context, delivery amqp.Delivery) {
	var event domain.TrackingEvent
	if err := json.Unmarshal(delivery.Body, &event); err != nil {
		c.logger.Error("discarding malformed event", "error", err)
		_ = delivery.Ack(false)
		return
	}

	err := c.tracker.Apply(ctx, &event)
	switch {
	case err == nil:
		_ = delivery.Ack(false)
	case errors.Is(err, domain.ErrInvalidEvent), errors.Is(err, domain.ErrContentNotFound):
		c.logger.Warn("discarding unprocessable event",
			"type", event.Type,
			"content_id", event.ContentID,
			"error", err,
		)
		_ = delivery.Ack(false)
	default:
		c.logger.Error("failed to apply event, requeueing",
			"content_id", event.ContentID,
			"error", err,
		)
		_ = delivery.Nack(false, !delivery.Redelivered)
	}
}

func (c *RabbitMQ) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
