package models

import "time"

// Review is a customer rating of the merchant
type Review struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"owner_id"`
	CustomerID string    `json:"customer_id"`
	Rating     int       `json:"rating"`
	Comment    *string   `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	Customer   *Customer `json:"customer,omitempty"`
}

// ReviewRequest is the payload for recording a review
type ReviewRequest struct {
	CustomerID string  `json:"customer_id"`
	Rating     int     `json:"rating"`
	Comment    *string `json:"comment,omitempty"`
}

// Validate checks the review payload
func (r *ReviewRequest) Validate() error {
	if r.CustomerID == "" {
		return ValidationError{Field: "customer_id", Message: "customer_id is required"}
	}
	if r.Rating < 1 || r.Rating > 5 {
		return ValidationError{Field: "rating", Message: "rating must be between 1 and 5"}
	}
	return nil
}
