package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"resto-backoffice/internal/logger"
	"resto-backoffice/internal/messaging"
)

// orderEvent is the union of the fields carried by order.created and
// order.status_changed envelopes; NewStatus distinguishes the two.
type orderEvent struct {
	OrderNumber  string     `json:"order_number"`
	OwnerID      string     `json:"owner_id"`
	OldStatus    string     `json:"old_status"`
	NewStatus    string     `json:"new_status"`
	TotalAmount  float64    `json:"total_amount"`
	DeliveryTime *time.Time `json:"delivery_time,omitempty"`
}

// Subscriber tails the notifications queue and writes an audit line per
// order event. Actual customer delivery (email, SMS, push) happens outside
// this service; the queue survives restarts so downstream senders can bind
// their own consumers.
type Subscriber struct {
	consumer *messaging.Consumer
	logger   *logger.Logger
}

func NewSubscriber(consumer *messaging.Consumer, log *logger.Logger) *Subscriber {
	return &Subscriber{consumer: consumer, logger: log}
}

// Run consumes until ctx is cancelled
func (s *Subscriber) Run(ctx context.Context) error {
	return s.consumer.StartConsuming(ctx, s.handleEvent)
}

func (s *Subscriber) handleEvent(ctx context.Context, body []byte) error {
	var event orderEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("parse order event: %w", err)
	}

	if event.NewStatus == "" {
		s.logger.Info("order_event", "",
			fmt.Sprintf("Order %s created (owner %s, total %.2f)",
				event.OrderNumber, event.OwnerID, event.TotalAmount))
		return nil
	}

	s.logger.Info("order_event", "",
		fmt.Sprintf("Order %s moved %s -> %s (owner %s)",
			event.OrderNumber, event.OldStatus, event.NewStatus, event.OwnerID))
	return nil
}

// Close stops the underlying consumer
func (s *Subscriber) Close() error {
	return s.consumer.Close()
}
