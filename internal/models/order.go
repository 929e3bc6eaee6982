package models

import (
	"time"
)

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	StatusPending        OrderStatus = "PENDING"
	StatusConfirmed      OrderStatus = "CONFIRMED"
	StatusPreparing      OrderStatus = "PREPARING"
	StatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	StatusDelivered      OrderStatus = "DELIVERED"
	StatusCancelled      OrderStatus = "CANCELLED"
)

// statusRank orders the forward lifecycle. Terminal states have no successor.
var statusRank = map[OrderStatus]int{
	StatusPending:        0,
	StatusConfirmed:      1,
	StatusPreparing:      2,
	StatusOutForDelivery: 3,
	StatusDelivered:      4,
}

// ParseOrderStatus validates a status string against the closed enumeration
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return OrderStatus(s), nil
	default:
		return "", ValidationError{Field: "status", Message: "unknown order status"}
	}
}

// IsTerminal reports whether no further transitions are permitted
func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransition reports whether to is the immediate successor of s, or a
// cancellation of a non-terminal order.
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	return statusRank[to] == statusRank[s]+1
}

// PaymentMethod represents how the customer pays for an order
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "CASH"
	PaymentCard   PaymentMethod = "CARD"
	PaymentOnline PaymentMethod = "ONLINE"
)

// ParsePaymentMethod validates a payment method string against the closed enumeration
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case PaymentCash, PaymentCard, PaymentOnline:
		return PaymentMethod(s), nil
	default:
		return "", ValidationError{Field: "payment_method", Message: "unknown payment method"}
	}
}

// OrderItem is one dish-quantity pairing within an order. The price is
// snapshotted at purchase time and never follows later catalog changes.
type OrderItem struct {
	ID              string  `json:"id"`
	OrderID         string  `json:"order_id"`
	DishID          string  `json:"dish_id"`
	Quantity        int     `json:"quantity"`
	PriceAtPurchase float64 `json:"price_at_purchase"`
	Notes           *string `json:"notes,omitempty"`
	Dish            *Dish   `json:"dish,omitempty"`
}

// Order is a customer order owned by a merchant
type Order struct {
	ID              string        `json:"id"`
	OrderNumber     string        `json:"order_number"`
	OwnerID         string        `json:"owner_id"`
	CustomerID      string        `json:"customer_id"`
	Items           []OrderItem   `json:"items"`
	TotalAmount     float64       `json:"total_amount"`
	DeliveryFee     *float64      `json:"delivery_fee,omitempty"`
	Tax             *float64      `json:"tax,omitempty"`
	Discount        *float64      `json:"discount,omitempty"`
	Status          OrderStatus   `json:"status"`
	DeliveryAddress string        `json:"delivery_address"`
	Notes           *string       `json:"notes,omitempty"`
	PaymentMethod   PaymentMethod `json:"payment_method"`
	DeliveryTime    *time.Time    `json:"delivery_time,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
	Customer        *Customer     `json:"customer,omitempty"`
}

// CartItem is one requested line in an order cart
type CartItem struct {
	DishID   string  `json:"dish_id"`
	Quantity int     `json:"quantity"`
	Notes    *string `json:"notes,omitempty"`
}

// Cart is the payload for creating an order
type Cart struct {
	CustomerEmail   string     `json:"customer_email"`
	CustomerName    string     `json:"customer_name"`
	CustomerPhone   string     `json:"customer_phone"`
	CustomerAddress string     `json:"customer_address"`
	Items           []CartItem `json:"items"`
	DeliveryAddress string     `json:"delivery_address"`
	DeliveryFee     *float64   `json:"delivery_fee,omitempty"`
	Tax             *float64   `json:"tax,omitempty"`
	Discount        *float64   `json:"discount,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
	PaymentMethod   string     `json:"payment_method"`
	IdempotencyKey  string     `json:"idempotency_key,omitempty"`
}

// StatusUpdateRequest is the payload for a lifecycle transition
type StatusUpdateRequest struct {
	Status       string     `json:"status"`
	Notes        *string    `json:"notes,omitempty"`
	DeliveryTime *time.Time `json:"delivery_time,omitempty"`
}

// OrderStatusHistory is one entry in the order status log
type OrderStatusHistory struct {
	Status    OrderStatus `json:"status"`
	ChangedBy string      `json:"changed_by"`
	ChangedAt time.Time   `json:"timestamp"`
	Notes     *string     `json:"notes,omitempty"`
}
