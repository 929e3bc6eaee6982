package customer

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"resto-backoffice/internal/database"
	"resto-backoffice/internal/models"
)

// Repository persists customers in PostgreSQL
type Repository struct {
	db *database.DB
}

func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// InsertIfAbsent inserts the customer unless a row for (owner_id, email)
// already exists. Reports whether the insert won. Concurrent creators for
// the same email are serialized by the unique constraint; the loser simply
// sees inserted == false.
func (r *Repository) InsertIfAbsent(ctx context.Context, c *models.Customer) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, database.InsertCustomerIfAbsentSQL,
		c.ID, c.OwnerID, c.Email, c.Name, c.Phone, c.Address, c.City)
	if err != nil {
		return false, models.PersistenceError(err)
	}
	return tag.RowsAffected() == 1, nil
}

// Insert persists a new customer, failing on a duplicate email
func (r *Repository) Insert(ctx context.Context, c *models.Customer) error {
	err := r.db.QueryRow(ctx, database.InsertCustomerSQL,
		c.ID, c.OwnerID, c.Email, c.Name, c.Phone, c.Address, c.City,
	).Scan(&c.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err, "customers_owner_email_key") {
			return models.ConflictError{Resource: "customer", Detail: "email already registered"}
		}
		return models.PersistenceError(err)
	}
	return nil
}

// GetByEmail returns the customer for (owner_id, email)
func (r *Repository) GetByEmail(ctx context.Context, ownerID, email string) (*models.Customer, error) {
	var c models.Customer
	err := r.db.QueryRow(ctx, database.SelectCustomerByEmailSQL, ownerID, email).Scan(
		&c.ID, &c.OwnerID, &c.Email, &c.Name, &c.Phone, &c.Address, &c.City, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NotFoundError{Resource: "customer", ID: email}
		}
		return nil, models.PersistenceError(err)
	}
	return &c, nil
}

// GetByID returns the customer for (owner_id, id)
func (r *Repository) GetByID(ctx context.Context, ownerID, customerID string) (*models.Customer, error) {
	var c models.Customer
	err := r.db.QueryRow(ctx, database.SelectCustomerByIDSQL, ownerID, customerID).Scan(
		&c.ID, &c.OwnerID, &c.Email, &c.Name, &c.Phone, &c.Address, &c.City, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NotFoundError{Resource: "customer", ID: customerID}
		}
		return nil, models.PersistenceError(err)
	}
	return &c, nil
}

// List returns the owner's customers newest first, each carrying its order
// summaries and count.
func (r *Repository) List(ctx context.Context, ownerID string) ([]models.Customer, error) {
	rows, err := r.db.Query(ctx, database.ListCustomersSQL, ownerID)
	if err != nil {
		return nil, models.PersistenceError(err)
	}
	defer rows.Close()

	customers := []models.Customer{}
	index := map[string]int{}
	for rows.Next() {
		var c models.Customer
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Email, &c.Name, &c.Phone, &c.Address, &c.City, &c.CreatedAt); err != nil {
			return nil, models.PersistenceError(err)
		}
		index[c.ID] = len(customers)
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, models.PersistenceError(err)
	}

	summaries, err := r.db.Query(ctx, database.SelectCustomerOrderSummariesSQL, ownerID)
	if err != nil {
		return nil, models.PersistenceError(err)
	}
	defer summaries.Close()

	for summaries.Next() {
		var customerID string
		var s models.OrderSummary
		if err := summaries.Scan(&customerID, &s.ID, &s.TotalAmount, &s.Status, &s.CreatedAt); err != nil {
			return nil, models.PersistenceError(err)
		}
		if i, ok := index[customerID]; ok {
			customers[i].Orders = append(customers[i].Orders, s)
			customers[i].OrderCount++
		}
	}
	if err := summaries.Err(); err != nil {
		return nil, models.PersistenceError(err)
	}
	return customers, nil
}
