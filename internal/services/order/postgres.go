package order

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"resto-backoffice/internal/database"
	"resto-backoffice/internal/models"
)

// changedBy identifies this service in the order status log
const changedBy = "backoffice"

// errOrderNumberTaken signals an order-number collision. The assembler
// regenerates the number and retries; it never reaches callers.
var errOrderNumberTaken = errors.New("order number already taken")

// Repository persists orders in PostgreSQL
type Repository struct {
	db *database.DB
}

func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// CreateOrder persists the order, its items and the initial status-log row
// in one transaction: either all rows become visible or none do.
func (r *Repository) CreateOrder(ctx context.Context, order *models.Order) error {
	err := r.db.WithTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, database.InsertOrderSQL,
			order.ID, order.OrderNumber, order.OwnerID, order.CustomerID, order.TotalAmount,
			order.DeliveryFee, order.Tax, order.Discount, string(order.Status),
			order.DeliveryAddress, order.Notes, string(order.PaymentMethod),
		).Scan(&order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			return err
		}

		for i := range order.Items {
			item := &order.Items[i]
			item.OrderID = order.ID
			_, err := tx.Exec(ctx, database.InsertOrderItemSQL,
				item.ID, order.ID, item.DishID, item.Quantity, item.PriceAtPurchase, item.Notes)
			if err != nil {
				return err
			}
		}

		_, err = tx.Exec(ctx, database.InsertOrderStatusLogSQL,
			order.ID, string(order.Status), changedBy, "initial status")
		return err
	})
	if err != nil {
		if database.IsUniqueViolation(err, "orders_order_number_key") {
			return errOrderNumberTaken
		}
		return models.PersistenceError(err)
	}
	return nil
}

// GetOrder returns one order with its customer and items expanded
func (r *Repository) GetOrder(ctx context.Context, ownerID, orderID string) (*models.Order, error) {
	row := r.db.QueryRow(ctx, database.SelectOrderSQL, ownerID, orderID)
	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NotFoundError{Resource: "order", ID: orderID}
		}
		return nil, models.PersistenceError(err)
	}

	if err := r.attachItems(ctx, []*models.Order{order}); err != nil {
		return nil, err
	}
	return order, nil
}

// ListOrders returns the owner's orders newest first, expanded. A positive
// limit caps the result.
func (r *Repository) ListOrders(ctx context.Context, ownerID string, limit int) ([]models.Order, error) {
	var rows pgx.Rows
	var err error
	if limit > 0 {
		rows, err = r.db.Query(ctx, database.ListRecentOrdersSQL, ownerID, limit)
	} else {
		rows, err = r.db.Query(ctx, database.ListOrdersSQL, ownerID)
	}
	if err != nil {
		return nil, models.PersistenceError(err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, models.PersistenceError(err)
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, models.PersistenceError(err)
	}

	refs := make([]*models.Order, len(orders))
	for i := range orders {
		refs[i] = &orders[i]
	}
	if err := r.attachItems(ctx, refs); err != nil {
		return nil, err
	}
	return orders, nil
}

// TransitionOrder applies a lifecycle transition under a row lock and
// appends the status-log entry in the same transaction. Returns the
// previous status.
func (r *Repository) TransitionOrder(ctx context.Context, ownerID, orderID string, to models.OrderStatus, notes *string, deliveryTime *time.Time) (models.OrderStatus, error) {
	var old models.OrderStatus
	err := r.db.WithTx(ctx, func(tx pgx.Tx) error {
		var current string
		err := tx.QueryRow(ctx, database.SelectOrderStatusForUpdateSQL, ownerID, orderID).Scan(&current)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return models.NotFoundError{Resource: "order", ID: orderID}
			}
			return models.PersistenceError(err)
		}

		old = models.OrderStatus(current)
		if !old.CanTransition(to) {
			return models.InvalidTransitionError{From: old, To: to}
		}

		if _, err := tx.Exec(ctx, database.UpdateOrderStatusSQL, string(to), notes, deliveryTime, ownerID, orderID); err != nil {
			return models.PersistenceError(err)
		}

		if _, err := tx.Exec(ctx, database.InsertOrderStatusLogSQL, orderID, string(to), changedBy, notes); err != nil {
			return models.PersistenceError(err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return old, nil
}

// StatusHistory returns the status-log entries for one order, oldest first
func (r *Repository) StatusHistory(ctx context.Context, orderID string) ([]models.OrderStatusHistory, error) {
	rows, err := r.db.Query(ctx, database.SelectOrderStatusHistorySQL, orderID)
	if err != nil {
		return nil, models.PersistenceError(err)
	}
	defer rows.Close()

	history := []models.OrderStatusHistory{}
	for rows.Next() {
		var h models.OrderStatusHistory
		if err := rows.Scan(&h.Status, &h.ChangedBy, &h.ChangedAt, &h.Notes); err != nil {
			return nil, models.PersistenceError(err)
		}
		history = append(history, h)
	}
	if err := rows.Err(); err != nil {
		return nil, models.PersistenceError(err)
	}
	return history, nil
}

// attachItems loads the items (with dish) for the given orders in one query
func (r *Repository) attachItems(ctx context.Context, orders []*models.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]string, len(orders))
	index := make(map[string]*models.Order, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		index[o.ID] = o
		o.Items = []models.OrderItem{}
	}

	rows, err := r.db.Query(ctx, database.SelectOrderItemsSQL, ids)
	if err != nil {
		return models.PersistenceError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		var dish models.Dish
		err := rows.Scan(
			&item.ID, &item.OrderID, &item.DishID, &item.Quantity, &item.PriceAtPurchase, &item.Notes,
			&dish.ID, &dish.OwnerID, &dish.CategoryID, &dish.Name, &dish.Price, &dish.IsAvailable,
		)
		if err != nil {
			return models.PersistenceError(err)
		}
		item.Dish = &dish
		if o, ok := index[item.OrderID]; ok {
			o.Items = append(o.Items, item)
		}
	}
	if err := rows.Err(); err != nil {
		return models.PersistenceError(err)
	}
	return nil
}

// scanOrder scans one order row joined with its customer
func scanOrder(row pgx.Row) (*models.Order, error) {
	var o models.Order
	var c models.Customer
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.OwnerID, &o.CustomerID, &o.TotalAmount, &o.DeliveryFee,
		&o.Tax, &o.Discount, &o.Status, &o.DeliveryAddress, &o.Notes, &o.PaymentMethod,
		&o.DeliveryTime, &o.CreatedAt, &o.UpdatedAt,
		&c.ID, &c.Email, &c.Name, &c.Phone, &c.Address, &c.City, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.OwnerID = o.OwnerID
	o.Customer = &c
	return &o, nil
}
