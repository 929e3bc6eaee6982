package models

import (
	"strings"
	"time"
)

// Customer is a buyer known to one merchant. At most one row exists per
// (owner_id, email) pair.
type Customer struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone,omitempty"`
	Address   *string   `json:"address,omitempty"`
	City      *string   `json:"city,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	OrderCount int            `json:"order_count,omitempty"`
	Orders     []OrderSummary `json:"orders,omitempty"`
}

// OrderSummary is the condensed order view attached to customer listings
type OrderSummary struct {
	ID          string      `json:"id"`
	TotalAmount float64     `json:"total_amount"`
	Status      OrderStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
}

// CustomerRequest is the payload for explicit customer registration
type CustomerRequest struct {
	Email   string  `json:"email"`
	Name    string  `json:"name"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
	City    *string `json:"city,omitempty"`
}

// Validate checks the customer payload
func (r *CustomerRequest) Validate() error {
	if err := ValidateEmail(r.Email); err != nil {
		return err
	}
	if r.Name == "" {
		return ValidationError{Field: "name", Message: "name is required"}
	}
	return nil
}

// ValidateEmail applies the minimal shape check used across the core
func ValidateEmail(email string) error {
	if email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 || strings.ContainsAny(email, " \t") {
		return ValidationError{Field: "email", Message: "email is malformed"}
	}
	return nil
}
