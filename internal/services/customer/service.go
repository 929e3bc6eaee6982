package customer

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"resto-backoffice/internal/models"
)

// Store is the persistence surface the registry needs
type Store interface {
	InsertIfAbsent(ctx context.Context, c *models.Customer) (bool, error)
	Insert(ctx context.Context, c *models.Customer) error
	GetByEmail(ctx context.Context, ownerID, email string) (*models.Customer, error)
	GetByID(ctx context.Context, ownerID, customerID string) (*models.Customer, error)
	List(ctx context.Context, ownerID string) ([]models.Customer, error)
}

// Service resolves and registers customers within one merchant's scope
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// ResolveOrCreate returns the customer for (ownerID, email), creating one
// when absent. An existing record wins: contact fields from a later order
// never overwrite what was stored first. Safe under concurrent calls for
// the same email; the loser of the insert race falls back to the winner's
// row.
func (s *Service) ResolveOrCreate(ctx context.Context, ownerID, email, name, phone, address string) (*models.Customer, error) {
	if err := models.ValidateEmail(email); err != nil {
		return nil, err
	}

	candidate := &models.Customer{
		ID:      uuid.NewString(),
		OwnerID: ownerID,
		Email:   email,
		Name:    name,
		Phone:   optional(phone),
		Address: optional(address),
	}

	if _, err := s.store.InsertIfAbsent(ctx, candidate); err != nil {
		return nil, fmt.Errorf("resolve customer %s: %w", email, err)
	}

	// Whether we won the insert or an earlier row exists, the stored row is
	// authoritative.
	existing, err := s.store.GetByEmail(ctx, ownerID, email)
	if err != nil {
		return nil, fmt.Errorf("resolve customer %s: %w", email, err)
	}
	return existing, nil
}

// Create registers a customer explicitly, failing on a duplicate email
func (s *Service) Create(ctx context.Context, ownerID string, req *models.CustomerRequest) (*models.Customer, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c := &models.Customer{
		ID:      uuid.NewString(),
		OwnerID: ownerID,
		Email:   req.Email,
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		City:    req.City,
	}
	if err := s.store.Insert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Get returns one customer by id
func (s *Service) Get(ctx context.Context, ownerID, customerID string) (*models.Customer, error) {
	return s.store.GetByID(ctx, ownerID, customerID)
}

// List returns the owner's customers with order summaries
func (s *Service) List(ctx context.Context, ownerID string) ([]models.Customer, error) {
	return s.store.List(ctx, ownerID)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
