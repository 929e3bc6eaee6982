package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"resto-backoffice/internal/models"
)

// Store is the persistence surface the catalog service needs
type Store interface {
	GetDish(ctx context.Context, ownerID, dishID string) (*models.Dish, error)
	ListDishes(ctx context.Context, ownerID string) ([]models.Dish, error)
	InsertDish(ctx context.Context, d *models.Dish) error
	UpdateDish(ctx context.Context, d *models.Dish) error
	SoftDeleteDish(ctx context.Context, ownerID, dishID string) error
	InsertCategory(ctx context.Context, c *models.Category) error
	ListCategories(ctx context.Context) ([]models.Category, error)
}

// Service manages the merchant's dish catalog
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// GetDish returns one dish in the owner's catalog
func (s *Service) GetDish(ctx context.Context, ownerID, dishID string) (*models.Dish, error) {
	return s.store.GetDish(ctx, ownerID, dishID)
}

// ListDishes returns the owner's catalog, newest first
func (s *Service) ListDishes(ctx context.Context, ownerID string) ([]models.Dish, error) {
	return s.store.ListDishes(ctx, ownerID)
}

// CreateDish validates and persists a new dish
func (s *Service) CreateDish(ctx context.Context, ownerID string, req *models.DishRequest) (*models.Dish, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	dish := dishFromRequest(ownerID, req)
	dish.ID = uuid.NewString()
	if err := s.store.InsertDish(ctx, dish); err != nil {
		return nil, fmt.Errorf("insert dish: %w", err)
	}
	return dish, nil
}

// UpdateDish validates and applies a full update to an existing dish.
// Catalog price changes never touch historical order items.
func (s *Service) UpdateDish(ctx context.Context, ownerID, dishID string, req *models.DishRequest) (*models.Dish, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	dish := dishFromRequest(ownerID, req)
	dish.ID = dishID
	if err := s.store.UpdateDish(ctx, dish); err != nil {
		return nil, err
	}
	return s.store.GetDish(ctx, ownerID, dishID)
}

// DeleteDish soft-deletes a dish; order history keeps referencing the row
func (s *Service) DeleteDish(ctx context.Context, ownerID, dishID string) error {
	return s.store.SoftDeleteDish(ctx, ownerID, dishID)
}

// CreateCategory validates and persists a new category
func (s *Service) CreateCategory(ctx context.Context, req *models.CategoryRequest) (*models.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	category := &models.Category{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		IsActive:    true,
	}
	if err := s.store.InsertCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("insert category: %w", err)
	}
	return category, nil
}

// ListCategories returns the active categories
func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.store.ListCategories(ctx)
}

func dishFromRequest(ownerID string, req *models.DishRequest) *models.Dish {
	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}
	return &models.Dish{
		OwnerID:         ownerID,
		CategoryID:      req.CategoryID,
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		Image:           req.Image,
		PreparationTime: req.PreparationTime,
		Ingredients:     req.Ingredients,
		Allergens:       req.Allergens,
		Calories:        req.Calories,
		IsVegetarian:    req.IsVegetarian,
		IsVegan:         req.IsVegan,
		IsGlutenFree:    req.IsGlutenFree,
		IsAvailable:     available,
	}
}
