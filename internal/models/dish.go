package models

import "time"

// Category groups dishes on the merchant's menu
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Image       *string   `json:"image,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// Dish is a menu entry owned by a merchant. The catalog price is
// authoritative for new orders only; existing orders keep their snapshot.
type Dish struct {
	ID              string    `json:"id"`
	OwnerID         string    `json:"owner_id"`
	CategoryID      string    `json:"category_id"`
	Name            string    `json:"name"`
	Description     *string   `json:"description,omitempty"`
	Price           float64   `json:"price"`
	Image           *string   `json:"image,omitempty"`
	PreparationTime *int      `json:"preparation_time,omitempty"`
	Ingredients     *string   `json:"ingredients,omitempty"`
	Allergens       *string   `json:"allergens,omitempty"`
	Calories        *int      `json:"calories,omitempty"`
	IsVegetarian    bool      `json:"is_vegetarian"`
	IsVegan         bool      `json:"is_vegan"`
	IsGlutenFree    bool      `json:"is_gluten_free"`
	IsAvailable     bool      `json:"is_available"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	Category        *Category `json:"category,omitempty"`
}

// DishRequest is the payload for creating or updating a dish
type DishRequest struct {
	Name            string  `json:"name"`
	Description     *string `json:"description,omitempty"`
	Price           float64 `json:"price"`
	Image           *string `json:"image,omitempty"`
	CategoryID      string  `json:"category_id"`
	PreparationTime *int    `json:"preparation_time,omitempty"`
	Ingredients     *string `json:"ingredients,omitempty"`
	Allergens       *string `json:"allergens,omitempty"`
	Calories        *int    `json:"calories,omitempty"`
	IsVegetarian    bool    `json:"is_vegetarian"`
	IsVegan         bool    `json:"is_vegan"`
	IsGlutenFree    bool    `json:"is_gluten_free"`
	IsAvailable     *bool   `json:"is_available,omitempty"`
}

// Validate checks the dish payload
func (r *DishRequest) Validate() error {
	if r.Name == "" {
		return ValidationError{Field: "name", Message: "name is required"}
	}
	if r.Price <= 0 {
		return ValidationError{Field: "price", Message: "price must be greater than 0"}
	}
	if r.CategoryID == "" {
		return ValidationError{Field: "category_id", Message: "category_id is required"}
	}
	if r.PreparationTime != nil && *r.PreparationTime < 0 {
		return ValidationError{Field: "preparation_time", Message: "preparation_time must not be negative"}
	}
	if r.Calories != nil && *r.Calories < 0 {
		return ValidationError{Field: "calories", Message: "calories must not be negative"}
	}
	return nil
}

// CategoryRequest is the payload for creating a category
type CategoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Image       *string `json:"image,omitempty"`
}

// Validate checks the category payload
func (r *CategoryRequest) Validate() error {
	if r.Name == "" {
		return ValidationError{Field: "name", Message: "name is required"}
	}
	return nil
}
