package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"resto-backoffice/internal/database"
	"resto-backoffice/internal/models"
)

// Repository persists dishes and categories in PostgreSQL
type Repository struct {
	db *database.DB
}

func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// GetDish returns a live (not soft-deleted) dish in the owner's catalog
func (r *Repository) GetDish(ctx context.Context, ownerID, dishID string) (*models.Dish, error) {
	var d models.Dish
	err := r.db.QueryRow(ctx, database.SelectDishSQL, ownerID, dishID).Scan(
		&d.ID, &d.OwnerID, &d.CategoryID, &d.Name, &d.Description, &d.Price, &d.Image,
		&d.PreparationTime, &d.Ingredients, &d.Allergens, &d.Calories,
		&d.IsVegetarian, &d.IsVegan, &d.IsGlutenFree, &d.IsAvailable, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NotFoundError{Resource: "dish", ID: dishID}
		}
		return nil, models.PersistenceError(err)
	}
	return &d, nil
}

// ListDishes returns the owner's live dishes with categories, newest first
func (r *Repository) ListDishes(ctx context.Context, ownerID string) ([]models.Dish, error) {
	rows, err := r.db.Query(ctx, database.ListDishesSQL, ownerID)
	if err != nil {
		return nil, models.PersistenceError(err)
	}
	defer rows.Close()

	dishes := []models.Dish{}
	for rows.Next() {
		var d models.Dish
		var cat models.Category
		err := rows.Scan(
			&d.ID, &d.OwnerID, &d.CategoryID, &d.Name, &d.Description, &d.Price, &d.Image,
			&d.PreparationTime, &d.Ingredients, &d.Allergens, &d.Calories,
			&d.IsVegetarian, &d.IsVegan, &d.IsGlutenFree, &d.IsAvailable, &d.CreatedAt, &d.UpdatedAt,
			&cat.ID, &cat.Name, &cat.Description, &cat.Image, &cat.IsActive, &cat.CreatedAt,
		)
		if err != nil {
			return nil, models.PersistenceError(err)
		}
		d.Category = &cat
		dishes = append(dishes, d)
	}
	if err := rows.Err(); err != nil {
		return nil, models.PersistenceError(err)
	}
	return dishes, nil
}

// InsertDish persists a new dish
func (r *Repository) InsertDish(ctx context.Context, d *models.Dish) error {
	err := r.db.QueryRow(ctx, database.InsertDishSQL,
		d.ID, d.OwnerID, d.CategoryID, d.Name, d.Description, d.Price, d.Image,
		d.PreparationTime, d.Ingredients, d.Allergens, d.Calories,
		d.IsVegetarian, d.IsVegan, d.IsGlutenFree, d.IsAvailable,
	).Scan(&d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return models.PersistenceError(err)
	}
	return nil
}

// UpdateDish updates a live dish in place
func (r *Repository) UpdateDish(ctx context.Context, d *models.Dish) error {
	tag, err := r.db.Pool.Exec(ctx, database.UpdateDishSQL,
		d.CategoryID, d.Name, d.Description, d.Price, d.Image,
		d.PreparationTime, d.Ingredients, d.Allergens, d.Calories,
		d.IsVegetarian, d.IsVegan, d.IsGlutenFree, d.IsAvailable,
		d.OwnerID, d.ID,
	)
	if err != nil {
		return models.PersistenceError(err)
	}
	if tag.RowsAffected() == 0 {
		return models.NotFoundError{Resource: "dish", ID: d.ID}
	}
	return nil
}

// SoftDeleteDish hides a dish from the catalog while preserving the row for
// historical order items.
func (r *Repository) SoftDeleteDish(ctx context.Context, ownerID, dishID string) error {
	tag, err := r.db.Pool.Exec(ctx, database.SoftDeleteDishSQL, ownerID, dishID)
	if err != nil {
		return models.PersistenceError(err)
	}
	if tag.RowsAffected() == 0 {
		return models.NotFoundError{Resource: "dish", ID: dishID}
	}
	return nil
}

// InsertCategory persists a new category
func (r *Repository) InsertCategory(ctx context.Context, c *models.Category) error {
	err := r.db.QueryRow(ctx, database.InsertCategorySQL,
		c.ID, c.Name, c.Description, c.Image,
	).Scan(&c.CreatedAt)
	if err != nil {
		return models.PersistenceError(err)
	}
	return nil
}

// ListCategories returns the active categories, name ascending
func (r *Repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := r.db.Query(ctx, database.ListCategoriesSQL)
	if err != nil {
		return nil, models.PersistenceError(err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Image, &c.IsActive, &c.CreatedAt); err != nil {
			return nil, models.PersistenceError(err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, models.PersistenceError(err)
	}
	return categories, nil
}
