package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"resto-backoffice/internal/logger"
	"resto-backoffice/internal/models"
)

// Publisher handles message publishing to RabbitMQ
type Publisher struct {
	conn   *Connection
	logger *logger.Logger
}

// NewPublisher creates a new message publisher
func NewPublisher(conn *Connection, log *logger.Logger) *Publisher {
	return &Publisher{
		conn:   conn,
		logger: log,
	}
}

// PublishOrderCreated publishes an order-created event to the order_events
// topic exchange and mirrors it to the notifications fanout.
func (p *Publisher) PublishOrderCreated(ctx context.Context, event *models.OrderCreatedEvent) error {
	key := models.OrderRoutingKey("created", event.OwnerID)
	if err := p.publishMessage(ctx, "order_events", key, event, true); err != nil {
		return err
	}
	return p.publishMessage(ctx, "notifications_fanout", "", event, false)
}

// PublishStatusChanged publishes a status-changed event
func (p *Publisher) PublishStatusChanged(ctx context.Context, event *models.StatusChangedEvent) error {
	key := models.OrderRoutingKey("status_changed", event.OwnerID)
	if err := p.publishMessage(ctx, "order_events", key, event, true); err != nil {
		return err
	}
	return p.publishMessage(ctx, "notifications_fanout", "", event, false)
}

// publishMessage is the generic message publishing function
func (p *Publisher) publishMessage(ctx context.Context, exchange, routingKey string, message interface{}, persistent bool) error {
	// Check if connection is alive
	if p.conn.IsClosed() {
		if err := p.conn.Reconnect(); err != nil {
			return fmt.Errorf("failed to reconnect: %w", err)
		}
	}

	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	deliveryMode := uint8(1) // Non-persistent by default
	if persistent {
		deliveryMode = 2
	}

	publishing := amqp091.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: deliveryMode,
		Timestamp:    time.Now(),
	}

	// Publish with timeout
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err = p.conn.Channel().PublishWithContext(
		ctx,
		exchange,   // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		publishing,
	)

	if err != nil {
		p.logger.Error("message_publish_failed",
			"",
			fmt.Sprintf("Failed to publish message to exchange %s", exchange),
			err)
		return fmt.Errorf("failed to publish message: %w", err)
	}

	p.logger.Debug("message_published",
		"",
		fmt.Sprintf("Published message to exchange %s (routing key %q, %d bytes)", exchange, routingKey, len(body)))

	return nil
}

// Close closes the publisher
func (p *Publisher) Close() error {
	return p.conn.Close()
}
