package customer

import (
	"context"
	"errors"
	"testing"

	"resto-backoffice/internal/models"
)

// fakeStore mimics the (owner_id, email) uniqueness of the customers table
type fakeStore struct {
	byEmail map[string]*models.Customer
	inserts int
}

func newFakeStore() *fakeStore {
	return &fakeStore{byEmail: map[string]*models.Customer{}}
}

func key(ownerID, email string) string { return ownerID + "/" + email }

func (f *fakeStore) InsertIfAbsent(ctx context.Context, c *models.Customer) (bool, error) {
	f.inserts++
	k := key(c.OwnerID, c.Email)
	if _, ok := f.byEmail[k]; ok {
		return false, nil
	}
	copied := *c
	f.byEmail[k] = &copied
	return true, nil
}

func (f *fakeStore) Insert(ctx context.Context, c *models.Customer) error {
	k := key(c.OwnerID, c.Email)
	if _, ok := f.byEmail[k]; ok {
		return models.ConflictError{Resource: "customer", Detail: "email already registered"}
	}
	copied := *c
	f.byEmail[k] = &copied
	return nil
}

func (f *fakeStore) GetByEmail(ctx context.Context, ownerID, email string) (*models.Customer, error) {
	c, ok := f.byEmail[key(ownerID, email)]
	if !ok {
		return nil, models.NotFoundError{Resource: "customer", ID: email}
	}
	copied := *c
	return &copied, nil
}

func (f *fakeStore) GetByID(ctx context.Context, ownerID, customerID string) (*models.Customer, error) {
	for _, c := range f.byEmail {
		if c.OwnerID == ownerID && c.ID == customerID {
			copied := *c
			return &copied, nil
		}
	}
	return nil, models.NotFoundError{Resource: "customer", ID: customerID}
}

func (f *fakeStore) List(ctx context.Context, ownerID string) ([]models.Customer, error) {
	customers := []models.Customer{}
	for _, c := range f.byEmail {
		if c.OwnerID == ownerID {
			customers = append(customers, *c)
		}
	}
	return customers, nil
}

func TestResolveOrCreate_ExistingWins(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewService(store)

	first, err := svc.ResolveOrCreate(ctx, "owner-1", "jane@example.com", "Jane Doe", "+3312345678", "12 Rue de la Paix")
	if err != nil {
		t.Fatalf("first ResolveOrCreate returned error: %v", err)
	}

	// Second order, same email, different contact details
	second, err := svc.ResolveOrCreate(ctx, "owner-1", "jane@example.com", "J. Doe", "+3387654321", "3 Avenue Foch")
	if err != nil {
		t.Fatalf("second ResolveOrCreate returned error: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("expected the same customer record, got %s and %s", first.ID, second.ID)
	}
	if second.Name != "Jane Doe" {
		t.Errorf("stored name overwritten: got %q, want %q", second.Name, "Jane Doe")
	}
	if second.Phone == nil || *second.Phone != "+3312345678" {
		t.Errorf("stored phone overwritten: got %v", second.Phone)
	}
}

func TestResolveOrCreate_ScopedByOwner(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewService(store)

	a, err := svc.ResolveOrCreate(ctx, "owner-1", "jane@example.com", "Jane Doe", "", "")
	if err != nil {
		t.Fatalf("ResolveOrCreate returned error: %v", err)
	}
	b, err := svc.ResolveOrCreate(ctx, "owner-2", "jane@example.com", "Jane Doe", "", "")
	if err != nil {
		t.Fatalf("ResolveOrCreate returned error: %v", err)
	}

	if a.ID == b.ID {
		t.Errorf("same email under different owners must be distinct customers")
	}
}

func TestResolveOrCreate_RejectsMalformedEmail(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeStore())

	_, err := svc.ResolveOrCreate(ctx, "owner-1", "not-an-email", "Jane Doe", "", "")
	var validation models.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestCreate_DuplicateEmailConflicts(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeStore())

	req := &models.CustomerRequest{Email: "jane@example.com", Name: "Jane Doe"}
	if _, err := svc.Create(ctx, "owner-1", req); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	_, err := svc.Create(ctx, "owner-1", req)
	var conflict models.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError on duplicate email, got %v", err)
	}
}
