package analytics

import (
	"context"
	"time"

	"resto-backoffice/internal/database"
	"resto-backoffice/internal/models"
)

// Repository reads the aggregate figures from PostgreSQL. Everything here
// is read-only and runs at the store's default isolation.
type Repository struct {
	db *database.DB
}

func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// CountOrders returns the owner's total order count across all statuses
func (r *Repository) CountOrders(ctx context.Context, ownerID string) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, database.CountOrdersSQL, ownerID).Scan(&n); err != nil {
		return 0, models.PersistenceError(err)
	}
	return n, nil
}

// RevenueByStatus sums total_amount per order status. Which statuses count
// toward dashboard revenue is decided by the aggregation layer, not here.
func (r *Repository) RevenueByStatus(ctx context.Context, ownerID string) (map[models.OrderStatus]float64, error) {
	rows, err := r.db.Query(ctx, database.RevenueByStatusSQL, ownerID)
	if err != nil {
		return nil, models.PersistenceError(err)
	}
	defer rows.Close()

	revenue := map[models.OrderStatus]float64{}
	for rows.Next() {
		var status models.OrderStatus
		var sum float64
		if err := rows.Scan(&status, &sum); err != nil {
			return nil, models.PersistenceError(err)
		}
		revenue[status] = sum
	}
	if err := rows.Err(); err != nil {
		return nil, models.PersistenceError(err)
	}
	return revenue, nil
}

// CountCustomers returns the owner's customer count
func (r *Repository) CountCustomers(ctx context.Context, ownerID string) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, database.CountCustomersSQL, ownerID).Scan(&n); err != nil {
		return 0, models.PersistenceError(err)
	}
	return n, nil
}

// CountDishes returns the owner's live dish count
func (r *Repository) CountDishes(ctx context.Context, ownerID string) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, database.CountDishesSQL, ownerID).Scan(&n); err != nil {
		return 0, models.PersistenceError(err)
	}
	return n, nil
}

// AverageRating returns the mean review rating, 0 when no reviews exist
func (r *Repository) AverageRating(ctx context.Context, ownerID string) (float64, error) {
	var avg float64
	if err := r.db.QueryRow(ctx, database.AverageRatingSQL, ownerID).Scan(&avg); err != nil {
		return 0, models.PersistenceError(err)
	}
	return avg, nil
}

// PopularDishCounts returns summed quantities per (dish, order status) over
// the owner's whole order history. A dish appears once per status it was
// ordered under; MergeDishCounts folds the rows together.
func (r *Repository) PopularDishCounts(ctx context.Context, ownerID string) ([]models.PopularDish, error) {
	rows, err := r.db.Query(ctx, database.PopularDishCountsSQL, ownerID)
	if err != nil {
		return nil, models.PersistenceError(err)
	}
	defer rows.Close()

	counts := []models.PopularDish{}
	for rows.Next() {
		var p models.PopularDish
		err := rows.Scan(
			&p.Dish.ID, &p.Dish.OwnerID, &p.Dish.CategoryID, &p.Dish.Name, &p.Dish.Description,
			&p.Dish.Price, &p.Dish.Image, &p.Dish.PreparationTime, &p.Dish.Ingredients,
			&p.Dish.Allergens, &p.Dish.Calories, &p.Dish.IsVegetarian, &p.Dish.IsVegan,
			&p.Dish.IsGlutenFree, &p.Dish.IsAvailable, &p.Dish.CreatedAt, &p.Dish.UpdatedAt,
			&p.TotalOrdered,
		)
		if err != nil {
			return nil, models.PersistenceError(err)
		}
		counts = append(counts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, models.PersistenceError(err)
	}
	return counts, nil
}

// MonthlyDeliveredRevenue returns delivered-order revenue summed per UTC
// calendar month, keyed YYYY-MM, for orders created at or after since. The
// month key is computed in SQL against UTC so the session timezone never
// shifts a bucket.
func (r *Repository) MonthlyDeliveredRevenue(ctx context.Context, ownerID string, since time.Time) (map[string]float64, error) {
	rows, err := r.db.Query(ctx, database.MonthlyDeliveredRevenueSQL, ownerID, since)
	if err != nil {
		return nil, models.PersistenceError(err)
	}
	defer rows.Close()

	revenue := map[string]float64{}
	for rows.Next() {
		var month string
		var sum float64
		if err := rows.Scan(&month, &sum); err != nil {
			return nil, models.PersistenceError(err)
		}
		revenue[month] = sum
	}
	if err := rows.Err(); err != nil {
		return nil, models.PersistenceError(err)
	}
	return revenue, nil
}
