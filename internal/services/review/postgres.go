package review

import (
	"context"

	"resto-backoffice/internal/database"
	"resto-backoffice/internal/models"
)

// Repository persists reviews in PostgreSQL
type Repository struct {
	db *database.DB
}

func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// Insert persists a new review
func (r *Repository) Insert(ctx context.Context, rev *models.Review) error {
	err := r.db.QueryRow(ctx, database.InsertReviewSQL,
		rev.ID, rev.OwnerID, rev.CustomerID, rev.Rating, rev.Comment,
	).Scan(&rev.CreatedAt)
	if err != nil {
		return models.PersistenceError(err)
	}
	return nil
}

// List returns the owner's reviews newest first, with customers expanded
func (r *Repository) List(ctx context.Context, ownerID string) ([]models.Review, error) {
	rows, err := r.db.Query(ctx, database.ListReviewsSQL, ownerID)
	if err != nil {
		return nil, models.PersistenceError(err)
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var rev models.Review
		var c models.Customer
		err := rows.Scan(
			&rev.ID, &rev.OwnerID, &rev.CustomerID, &rev.Rating, &rev.Comment, &rev.CreatedAt,
			&c.ID, &c.Email, &c.Name, &c.Phone, &c.Address, &c.City, &c.CreatedAt,
		)
		if err != nil {
			return nil, models.PersistenceError(err)
		}
		c.OwnerID = rev.OwnerID
		rev.Customer = &c
		reviews = append(reviews, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, models.PersistenceError(err)
	}
	return reviews, nil
}
