package review

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"resto-backoffice/internal/models"
)

// Store is the persistence surface the ledger needs
type Store interface {
	Insert(ctx context.Context, rev *models.Review) error
	List(ctx context.Context, ownerID string) ([]models.Review, error)
}

// CustomerResolver verifies the reviewed customer exists in scope
type CustomerResolver interface {
	Get(ctx context.Context, ownerID, customerID string) (*models.Customer, error)
}

// Service records customer ratings feeding the dashboard's average
type Service struct {
	store     Store
	customers CustomerResolver
}

func NewService(store Store, customers CustomerResolver) *Service {
	return &Service{store: store, customers: customers}
}

// Create validates and records a review
func (s *Service) Create(ctx context.Context, ownerID string, req *models.ReviewRequest) (*models.Review, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	customer, err := s.customers.Get(ctx, ownerID, req.CustomerID)
	if err != nil {
		return nil, err
	}

	rev := &models.Review{
		ID:         uuid.NewString(),
		OwnerID:    ownerID,
		CustomerID: customer.ID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err := s.store.Insert(ctx, rev); err != nil {
		return nil, fmt.Errorf("insert review: %w", err)
	}
	rev.Customer = customer
	return rev, nil
}

// List returns the owner's reviews, newest first
func (s *Service) List(ctx context.Context, ownerID string) ([]models.Review, error) {
	return s.store.List(ctx, ownerID)
}
