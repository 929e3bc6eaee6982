package order

import (
	"fmt"

	"resto-backoffice/internal/models"
)

// ValidateCart checks the cart payload shape before any store access.
// Dish existence is checked later against the owner's catalog.
func ValidateCart(cart *models.Cart) error {
	if err := models.ValidateEmail(cart.CustomerEmail); err != nil {
		return models.ValidationError{Field: "customer_email", Message: "customer email is malformed"}
	}

	if cart.CustomerName == "" {
		return models.ValidationError{Field: "customer_name", Message: "customer name is required"}
	}

	if cart.DeliveryAddress == "" {
		return models.ValidationError{Field: "delivery_address", Message: "delivery address is required"}
	}

	if _, err := models.ParsePaymentMethod(cart.PaymentMethod); err != nil {
		return err
	}

	if err := validateItems(cart.Items); err != nil {
		return err
	}

	if err := validateCharge("delivery_fee", cart.DeliveryFee); err != nil {
		return err
	}
	if err := validateCharge("tax", cart.Tax); err != nil {
		return err
	}
	if err := validateCharge("discount", cart.Discount); err != nil {
		return err
	}

	return nil
}

func validateItems(items []models.CartItem) error {
	if len(items) == 0 {
		return models.ValidationError{Field: "items", Message: "items cannot be empty"}
	}

	for i, item := range items {
		if item.DishID == "" {
			return models.ValidationError{
				Field:   fmt.Sprintf("items[%d].dish_id", i),
				Message: "dish_id is required",
			}
		}
		if item.Quantity <= 0 {
			return models.ValidationError{
				Field:   fmt.Sprintf("items[%d].quantity", i),
				Message: "quantity must be greater than 0",
			}
		}
	}
	return nil
}

func validateCharge(field string, value *float64) error {
	if value != nil && *value < 0 {
		return models.ValidationError{Field: field, Message: field + " must not be negative"}
	}
	return nil
}
