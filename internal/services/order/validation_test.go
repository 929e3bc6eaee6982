package order

import (
	"errors"
	"testing"

	"resto-backoffice/internal/models"
)

func validCart() *models.Cart {
	return &models.Cart{
		CustomerEmail:   "jane@example.com",
		CustomerName:    "Jane Doe",
		CustomerPhone:   "+3312345678",
		CustomerAddress: "12 Rue de la Paix",
		Items: []models.CartItem{
			{DishID: "dish-1", Quantity: 2},
		},
		DeliveryAddress: "12 Rue de la Paix, Paris",
		PaymentMethod:   "CARD",
	}
}

func TestValidateCart(t *testing.T) {
	negative := -1.0

	tests := []struct {
		name    string
		mutate  func(c *models.Cart)
		wantErr bool
	}{
		{"valid cart", func(c *models.Cart) {}, false},
		{"missing email", func(c *models.Cart) { c.CustomerEmail = "" }, true},
		{"malformed email", func(c *models.Cart) { c.CustomerEmail = "not-an-email" }, true},
		{"missing customer name", func(c *models.Cart) { c.CustomerName = "" }, true},
		{"missing delivery address", func(c *models.Cart) { c.DeliveryAddress = "" }, true},
		{"unknown payment method", func(c *models.Cart) { c.PaymentMethod = "BARTER" }, true},
		{"empty items", func(c *models.Cart) { c.Items = nil }, true},
		{"zero quantity", func(c *models.Cart) { c.Items[0].Quantity = 0 }, true},
		{"negative quantity", func(c *models.Cart) { c.Items[0].Quantity = -3 }, true},
		{"missing dish id", func(c *models.Cart) { c.Items[0].DishID = "" }, true},
		{"negative delivery fee", func(c *models.Cart) { c.DeliveryFee = &negative }, true},
		{"negative tax", func(c *models.Cart) { c.Tax = &negative }, true},
		{"negative discount", func(c *models.Cart) { c.Discount = &negative }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart := validCart()
			tt.mutate(cart)

			err := ValidateCart(cart)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCart() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var validationErr models.ValidationError
				if !errors.As(err, &validationErr) {
					t.Errorf("expected a ValidationError, got %T", err)
				}
			}
		})
	}
}
