package models

import (
	"fmt"
	"time"
)

// OrderCreatedEvent is published after an order commits
type OrderCreatedEvent struct {
	OrderNumber     string      `json:"order_number"`
	OwnerID         string      `json:"owner_id"`
	CustomerID      string      `json:"customer_id"`
	Items           []OrderItem `json:"items"`
	TotalAmount     float64     `json:"total_amount"`
	PaymentMethod   string      `json:"payment_method"`
	DeliveryAddress string      `json:"delivery_address"`
	CreatedAt       time.Time   `json:"created_at"`
}

// StatusChangedEvent is published after a lifecycle transition commits
type StatusChangedEvent struct {
	OrderNumber  string     `json:"order_number"`
	OwnerID      string     `json:"owner_id"`
	OldStatus    string     `json:"old_status"`
	NewStatus    string     `json:"new_status"`
	DeliveryTime *time.Time `json:"delivery_time,omitempty"`
	Timestamp    time.Time  `json:"timestamp"`
}

// NewOrderCreatedEvent builds the event for a freshly persisted order
func NewOrderCreatedEvent(order *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		OrderNumber:     order.OrderNumber,
		OwnerID:         order.OwnerID,
		CustomerID:      order.CustomerID,
		Items:           order.Items,
		TotalAmount:     order.TotalAmount,
		PaymentMethod:   string(order.PaymentMethod),
		DeliveryAddress: order.DeliveryAddress,
		CreatedAt:       order.CreatedAt,
	}
}

// NewStatusChangedEvent builds the event for a committed transition
func NewStatusChangedEvent(order *Order, old OrderStatus) *StatusChangedEvent {
	return &StatusChangedEvent{
		OrderNumber:  order.OrderNumber,
		OwnerID:      order.OwnerID,
		OldStatus:    string(old),
		NewStatus:    string(order.Status),
		DeliveryTime: order.DeliveryTime,
		Timestamp:    time.Now().UTC(),
	}
}

// OrderRoutingKey generates the routing key for order events
func OrderRoutingKey(event string, ownerID string) string {
	return fmt.Sprintf("order.%s.%s", event, ownerID)
}
