package messaging

import (
	"context"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"resto-backoffice/internal/logger"
)

// MessageHandler processes one delivered message body
type MessageHandler func(ctx context.Context, body []byte) error

// handleTimeout bounds the processing of a single delivery
const handleTimeout = 30 * time.Second

// Consumer handles message consumption from RabbitMQ
type Consumer struct {
	conn        *Connection
	logger      *logger.Logger
	queueName   string
	consumerTag string
	prefetch    int
}

// NewConsumer creates a new message consumer
func NewConsumer(conn *Connection, log *logger.Logger, queueName, consumerTag string, prefetch int) *Consumer {
	return &Consumer{
		conn:        conn,
		logger:      log,
		queueName:   queueName,
		consumerTag: consumerTag,
		prefetch:    prefetch,
	}
}

// StartConsuming consumes the queue until ctx is cancelled. Deliveries are
// acked on handler success and nacked with requeue on failure.
func (c *Consumer) StartConsuming(ctx context.Context, handler MessageHandler) error {
	if c.conn.IsClosed() {
		if err := c.conn.Reconnect(); err != nil {
			return fmt.Errorf("failed to reconnect: %w", err)
		}
	}

	if err := c.conn.Channel().Qos(c.prefetch, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	msgs, err := c.conn.Channel().Consume(
		c.queueName,
		c.consumerTag,
		false, // auto-ack off, we ack manually
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.logger.Info("consumer_started", "",
		fmt.Sprintf("Consuming queue %s (tag %s, prefetch %d)", c.queueName, c.consumerTag, c.prefetch))

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("consumer_stopped", "", "Consumer stopped by context")
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				c.logger.Warn("consumer_channel_closed", "",
					"Delivery channel closed, reconnecting")
				if err := c.conn.Reconnect(); err != nil {
					return fmt.Errorf("failed to reconnect after channel closed: %w", err)
				}
				return c.StartConsuming(ctx, handler)
			}
			c.processMessage(ctx, d, handler)
		}
	}
}

func (c *Consumer) processMessage(ctx context.Context, delivery amqp091.Delivery, handler MessageHandler) {
	processingCtx, cancel := context.WithTimeout(ctx, handleTimeout)
	defer cancel()

	start := time.Now()
	err := handler(processingCtx, delivery.Body)
	duration := time.Since(start)

	if err != nil {
		c.logger.Error("message_processing_failed", "",
			fmt.Sprintf("Failed to process message from %s (key %s, %dms)",
				c.queueName, delivery.RoutingKey, duration.Milliseconds()), err)
		if nackErr := delivery.Nack(false, true); nackErr != nil {
			c.logger.Error("message_nack_failed", "", "Failed to nack message", nackErr)
		}
		return
	}

	c.logger.Debug("message_processed", "",
		fmt.Sprintf("Processed message from %s (key %s, %dms)",
			c.queueName, delivery.RoutingKey, duration.Milliseconds()))
	if ackErr := delivery.Ack(false); ackErr != nil {
		c.logger.Error("message_ack_failed", "", "Failed to ack message", ackErr)
	}
}

// Close cancels the consumer registration
func (c *Consumer) Close() error {
	if c.conn != nil && !c.conn.IsClosed() {
		if err := c.conn.Channel().Cancel(c.consumerTag, false); err != nil {
			c.logger.Error("consumer_cancel_failed", "", "Failed to cancel consumer", err)
		}
	}
	return nil
}
