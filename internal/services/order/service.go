package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"resto-backoffice/internal/logger"
	"resto-backoffice/internal/models"
)

// maxNumberAttempts bounds order-number regeneration on collision
const maxNumberAttempts = 3

// Store is the persistence surface the assembler needs
type Store interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrder(ctx context.Context, ownerID, orderID string) (*models.Order, error)
	ListOrders(ctx context.Context, ownerID string, limit int) ([]models.Order, error)
	TransitionOrder(ctx context.Context, ownerID, orderID string, to models.OrderStatus, notes *string, deliveryTime *time.Time) (models.OrderStatus, error)
	StatusHistory(ctx context.Context, orderID string) ([]models.OrderStatusHistory, error)
}

// DishCatalog resolves dishes within an owner's catalog
type DishCatalog interface {
	GetDish(ctx context.Context, ownerID, dishID string) (*models.Dish, error)
}

// CustomerRegistry resolves or creates customers by email
type CustomerRegistry interface {
	ResolveOrCreate(ctx context.Context, ownerID, email, name, phone, address string) (*models.Customer, error)
}

// EventPublisher emits lifecycle events to downstream consumers
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, event *models.OrderCreatedEvent) error
	PublishStatusChanged(ctx context.Context, event *models.StatusChangedEvent) error
}

// IdempotencyStore deduplicates caller-supplied idempotency keys
type IdempotencyStore interface {
	Claim(ctx context.Context, key string) error
	Release(ctx context.Context, key string)
}

// Service assembles orders and manages their lifecycle
type Service struct {
	store     Store
	catalog   DishCatalog
	customers CustomerRegistry
	events    EventPublisher
	idem      IdempotencyStore
	logger    *logger.Logger
}

func NewService(store Store, catalog DishCatalog, customers CustomerRegistry, events EventPublisher, idem IdempotencyStore, log *logger.Logger) *Service {
	return &Service{
		store:     store,
		catalog:   catalog,
		customers: customers,
		events:    events,
		idem:      idem,
		logger:    log,
	}
}

// Create materializes a new order from a cart. Validation and dish lookups
// happen before any write; the order, its items and the initial status-log
// row are persisted atomically. The line prices are snapshotted from the
// catalog at this moment and never follow later price changes.
func (s *Service) Create(ctx context.Context, ownerID string, cart *models.Cart) (*models.Order, error) {
	if err := ValidateCart(cart); err != nil {
		return nil, err
	}

	if s.idem != nil && cart.IdempotencyKey != "" {
		if err := s.idem.Claim(ctx, cart.IdempotencyKey); err != nil {
			return nil, err
		}
	}

	order, err := s.assemble(ctx, ownerID, cart)
	if err != nil {
		// Free the key so the caller can retry the whole call after a
		// transient failure.
		if s.idem != nil && cart.IdempotencyKey != "" {
			s.idem.Release(ctx, cart.IdempotencyKey)
		}
		return nil, err
	}

	// Event delivery is best-effort; the order is already committed.
	if s.events != nil {
		if err := s.events.PublishOrderCreated(ctx, models.NewOrderCreatedEvent(order)); err != nil {
			s.logger.Error("event_publish_failed", "",
				fmt.Sprintf("Failed to publish order.created for %s", order.OrderNumber), err)
		}
	}

	return order, nil
}

// assemble performs the write path of Create
func (s *Service) assemble(ctx context.Context, ownerID string, cart *models.Cart) (*models.Order, error) {
	customer, err := s.customers.ResolveOrCreate(ctx, ownerID,
		cart.CustomerEmail, cart.CustomerName, cart.CustomerPhone, cart.CustomerAddress)
	if err != nil {
		return nil, fmt.Errorf("resolve customer: %w", err)
	}

	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		dish, err := s.catalog.GetDish(ctx, ownerID, line.DishID)
		if err != nil {
			// No partial order: the first missing dish aborts the whole call.
			return nil, err
		}
		items = append(items, models.OrderItem{
			ID:              uuid.NewString(),
			DishID:          dish.ID,
			Quantity:        line.Quantity,
			PriceAtPurchase: dish.Price,
			Notes:           line.Notes,
		})
	}

	paymentMethod, err := models.ParsePaymentMethod(cart.PaymentMethod)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		ID:              uuid.NewString(),
		OwnerID:         ownerID,
		CustomerID:      customer.ID,
		Items:           items,
		TotalAmount:     ComputeTotal(items, cart.DeliveryFee, cart.Tax, cart.Discount),
		DeliveryFee:     cart.DeliveryFee,
		Tax:             cart.Tax,
		Discount:        cart.Discount,
		Status:          models.StatusPending,
		DeliveryAddress: cart.DeliveryAddress,
		Notes:           cart.Notes,
		PaymentMethod:   paymentMethod,
		Customer:        customer,
	}

	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		order.OrderNumber = GenerateOrderNumber(time.Now().UTC())
		err = s.store.CreateOrder(ctx, order)
		if err == nil {
			return order, nil
		}
		if !errors.Is(err, errOrderNumberTaken) {
			return nil, err
		}
		s.logger.Warn("order_number_collision", "",
			fmt.Sprintf("Order number %s collided, regenerating (attempt %d)", order.OrderNumber, attempt+1))
	}

	return nil, models.ConflictError{Resource: "order", Detail: "could not allocate a unique order number"}
}

// Get returns one order with customer and items expanded
func (s *Service) Get(ctx context.Context, ownerID, orderID string) (*models.Order, error) {
	return s.store.GetOrder(ctx, ownerID, orderID)
}

// List returns the owner's orders, newest first
func (s *Service) List(ctx context.Context, ownerID string) ([]models.Order, error) {
	return s.store.ListOrders(ctx, ownerID, 0)
}

// UpdateStatus applies a lifecycle transition. Only the immediate successor
// status is accepted, or CANCELLED from any non-terminal state. Lifecycle
// metadata (notes, delivery time) may change; the total amount is frozen at
// creation.
func (s *Service) UpdateStatus(ctx context.Context, ownerID, orderID string, req *models.StatusUpdateRequest) (*models.Order, error) {
	newStatus, err := models.ParseOrderStatus(req.Status)
	if err != nil {
		return nil, err
	}

	old, err := s.store.TransitionOrder(ctx, ownerID, orderID, newStatus, req.Notes, req.DeliveryTime)
	if err != nil {
		return nil, err
	}

	order, err := s.store.GetOrder(ctx, ownerID, orderID)
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		if err := s.events.PublishStatusChanged(ctx, models.NewStatusChangedEvent(order, old)); err != nil {
			s.logger.Error("event_publish_failed", "",
				fmt.Sprintf("Failed to publish order.status_changed for %s", order.OrderNumber), err)
		}
	}

	return order, nil
}

// History returns the status history of one order, verifying ownership first
func (s *Service) History(ctx context.Context, ownerID, orderID string) ([]models.OrderStatusHistory, error) {
	if _, err := s.store.GetOrder(ctx, ownerID, orderID); err != nil {
		return nil, err
	}
	return s.store.StatusHistory(ctx, orderID)
}
