package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"resto-backoffice/internal/logger"
	"resto-backoffice/internal/models"
)

// fakeStore keeps orders in memory and can simulate order-number collisions
type fakeStore struct {
	orders      map[string]*models.Order
	takenBudget int // CreateOrder fails this many times with errOrderNumberTaken
	createCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{orders: map[string]*models.Order{}}
}

func (f *fakeStore) CreateOrder(ctx context.Context, order *models.Order) error {
	f.createCalls++
	if f.takenBudget > 0 {
		f.takenBudget--
		return errOrderNumberTaken
	}
	stored := *order
	stored.Items = append([]models.OrderItem(nil), order.Items...)
	stored.CreatedAt = time.Now().UTC()
	stored.UpdatedAt = stored.CreatedAt
	f.orders[order.ID] = &stored
	return nil
}

func (f *fakeStore) GetOrder(ctx context.Context, ownerID, orderID string) (*models.Order, error) {
	order, ok := f.orders[orderID]
	if !ok || order.OwnerID != ownerID {
		return nil, models.NotFoundError{Resource: "order", ID: orderID}
	}
	copied := *order
	copied.Items = append([]models.OrderItem(nil), order.Items...)
	return &copied, nil
}

func (f *fakeStore) ListOrders(ctx context.Context, ownerID string, limit int) ([]models.Order, error) {
	orders := []models.Order{}
	for _, o := range f.orders {
		if o.OwnerID == ownerID {
			orders = append(orders, *o)
		}
	}
	return orders, nil
}

func (f *fakeStore) TransitionOrder(ctx context.Context, ownerID, orderID string, to models.OrderStatus, notes *string, deliveryTime *time.Time) (models.OrderStatus, error) {
	order, ok := f.orders[orderID]
	if !ok || order.OwnerID != ownerID {
		return "", models.NotFoundError{Resource: "order", ID: orderID}
	}
	old := order.Status
	if !old.CanTransition(to) {
		return "", models.InvalidTransitionError{From: old, To: to}
	}
	order.Status = to
	if notes != nil {
		order.Notes = notes
	}
	if deliveryTime != nil {
		order.DeliveryTime = deliveryTime
	}
	return old, nil
}

func (f *fakeStore) StatusHistory(ctx context.Context, orderID string) ([]models.OrderStatusHistory, error) {
	return []models.OrderStatusHistory{}, nil
}

// fakeCatalog serves dishes from a mutable map so tests can change catalog
// prices after an order is created.
type fakeCatalog struct {
	dishes map[string]*models.Dish
}

func (f *fakeCatalog) GetDish(ctx context.Context, ownerID, dishID string) (*models.Dish, error) {
	dish, ok := f.dishes[dishID]
	if !ok || dish.OwnerID != ownerID {
		return nil, models.NotFoundError{Resource: "dish", ID: dishID}
	}
	copied := *dish
	return &copied, nil
}

// fakeRegistry resolves customers by email with existing-wins semantics
type fakeRegistry struct {
	customers map[string]*models.Customer
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{customers: map[string]*models.Customer{}}
}

func (f *fakeRegistry) ResolveOrCreate(ctx context.Context, ownerID, email, name, phone, address string) (*models.Customer, error) {
	key := ownerID + "/" + email
	if existing, ok := f.customers[key]; ok {
		copied := *existing
		return &copied, nil
	}
	c := &models.Customer{
		ID:      "cust-" + email,
		OwnerID: ownerID,
		Email:   email,
		Name:    name,
	}
	f.customers[key] = c
	copied := *c
	return &copied, nil
}

// fakeEvents counts published events
type fakeEvents struct {
	created int
	status  int
}

func (f *fakeEvents) PublishOrderCreated(ctx context.Context, event *models.OrderCreatedEvent) error {
	f.created++
	return nil
}

func (f *fakeEvents) PublishStatusChanged(ctx context.Context, event *models.StatusChangedEvent) error {
	f.status++
	return nil
}

// fakeIdem remembers claimed keys
type fakeIdem struct {
	claimed map[string]bool
}

func newFakeIdem() *fakeIdem {
	return &fakeIdem{claimed: map[string]bool{}}
}

func (f *fakeIdem) Claim(ctx context.Context, key string) error {
	if f.claimed[key] {
		return models.ConflictError{Resource: "order", Detail: "idempotency key already used"}
	}
	f.claimed[key] = true
	return nil
}

func (f *fakeIdem) Release(ctx context.Context, key string) {
	delete(f.claimed, key)
}

func testDishes(ownerID string) map[string]*models.Dish {
	return map[string]*models.Dish{
		"dish-1": {ID: "dish-1", OwnerID: ownerID, Name: "Coq au vin", Price: 50},
		"dish-2": {ID: "dish-2", OwnerID: ownerID, Name: "Ratatouille", Price: 30},
	}
}

func testService(store *fakeStore, cat *fakeCatalog, events *fakeEvents, idem IdempotencyStore) *Service {
	var publisher EventPublisher
	if events != nil {
		publisher = events
	}
	return NewService(store, cat, newFakeRegistry(), publisher, idem, logger.New("test"))
}

func fullCart() *models.Cart {
	fee := 10.0
	tax := 5.0
	discount := 8.0
	cart := validCart()
	cart.Items = []models.CartItem{
		{DishID: "dish-1", Quantity: 2},
		{DishID: "dish-2", Quantity: 1},
	}
	cart.DeliveryFee = &fee
	cart.Tax = &tax
	cart.Discount = &discount
	return cart
}

func TestCreate_TotalAndPriceSnapshot(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	cat := &fakeCatalog{dishes: testDishes("owner-1")}
	events := &fakeEvents{}
	svc := testService(store, cat, events, nil)

	order, err := svc.Create(ctx, "owner-1", fullCart())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if order.TotalAmount != 137 {
		t.Errorf("TotalAmount = %v, want 137", order.TotalAmount)
	}
	if order.Status != models.StatusPending {
		t.Errorf("initial status = %s, want PENDING", order.Status)
	}
	if events.created != 1 {
		t.Errorf("expected 1 order.created event, got %d", events.created)
	}

	// A later catalog price change must not touch the stored order
	cat.dishes["dish-1"].Price = 99

	stored, err := svc.Get(ctx, "owner-1", order.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if stored.TotalAmount != 137 {
		t.Errorf("TotalAmount after price change = %v, want 137", stored.TotalAmount)
	}
	for _, item := range stored.Items {
		if item.DishID == "dish-1" && item.PriceAtPurchase != 50 {
			t.Errorf("PriceAtPurchase after price change = %v, want 50", item.PriceAtPurchase)
		}
	}
}

func TestCreate_DishNotFoundAbortsWholeOrder(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	cat := &fakeCatalog{dishes: testDishes("owner-1")}
	svc := testService(store, cat, nil, nil)

	cart := fullCart()
	cart.Items = append(cart.Items, models.CartItem{DishID: "dish-missing", Quantity: 1})

	_, err := svc.Create(ctx, "owner-1", cart)
	var notFound models.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if store.createCalls != 0 {
		t.Errorf("expected no persistence attempt, got %d", store.createCalls)
	}
}

func TestCreate_OwnerScopedDishLookup(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	cat := &fakeCatalog{dishes: testDishes("owner-1")}
	svc := testService(store, cat, nil, nil)

	// dish-1 belongs to owner-1; owner-2 must not see it
	_, err := svc.Create(ctx, "owner-2", fullCart())
	var notFound models.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError for cross-owner dish, got %v", err)
	}
}

func TestCreate_OrderNumberCollisionRetries(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.takenBudget = 2
	cat := &fakeCatalog{dishes: testDishes("owner-1")}
	svc := testService(store, cat, nil, nil)

	order, err := svc.Create(ctx, "owner-1", fullCart())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if store.createCalls != 3 {
		t.Errorf("expected 3 persistence attempts, got %d", store.createCalls)
	}
	if order.OrderNumber == "" {
		t.Errorf("expected an order number after retries")
	}
}

func TestCreate_OrderNumberCollisionExhausted(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.takenBudget = maxNumberAttempts
	cat := &fakeCatalog{dishes: testDishes("owner-1")}
	svc := testService(store, cat, nil, nil)

	_, err := svc.Create(ctx, "owner-1", fullCart())
	var conflict models.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError after exhausted retries, got %v", err)
	}
}

func TestCreate_IdempotencyKeyReplayRejected(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	cat := &fakeCatalog{dishes: testDishes("owner-1")}
	idem := newFakeIdem()
	svc := testService(store, cat, nil, idem)

	cart := fullCart()
	cart.IdempotencyKey = "req-42"

	if _, err := svc.Create(ctx, "owner-1", cart); err != nil {
		t.Fatalf("first Create returned error: %v", err)
	}

	_, err := svc.Create(ctx, "owner-1", cart)
	var conflict models.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError on replay, got %v", err)
	}
}

func TestCreate_IdempotencyKeyReleasedOnFailure(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	cat := &fakeCatalog{dishes: map[string]*models.Dish{}}
	idem := newFakeIdem()
	svc := testService(store, cat, nil, idem)

	cart := fullCart()
	cart.IdempotencyKey = "req-43"

	if _, err := svc.Create(ctx, "owner-1", cart); err == nil {
		t.Fatalf("expected failure for empty catalog")
	}
	if idem.claimed["req-43"] {
		t.Errorf("expected idempotency key to be released after failure")
	}
}

func TestAssemble_RejectsUnknownPaymentMethod(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	cat := &fakeCatalog{dishes: testDishes("owner-1")}
	svc := testService(store, cat, nil, nil)

	// Reaches assemble directly so the parse is not shielded by ValidateCart
	cart := fullCart()
	cart.PaymentMethod = "BARTER"

	_, err := svc.assemble(ctx, "owner-1", cart)
	var validation models.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if store.createCalls != 0 {
		t.Errorf("expected no persistence attempt, got %d", store.createCalls)
	}
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	cat := &fakeCatalog{dishes: testDishes("owner-1")}

	tests := []struct {
		name      string
		from      models.OrderStatus
		to        string
		wantErr   bool
		errTarget interface{}
	}{
		{"pending to confirmed", models.StatusPending, "CONFIRMED", false, nil},
		{"pending to cancelled", models.StatusPending, "CANCELLED", false, nil},
		{"out for delivery to cancelled", models.StatusOutForDelivery, "CANCELLED", false, nil},
		{"delivered to pending", models.StatusDelivered, "PENDING", true, &models.InvalidTransitionError{}},
		{"pending skips to delivered", models.StatusPending, "DELIVERED", true, &models.InvalidTransitionError{}},
		{"unknown status", models.StatusPending, "SHIPPED", true, &models.ValidationError{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			events := &fakeEvents{}
			svc := testService(store, cat, events, nil)
			store.orders["ord-1"] = &models.Order{
				ID:      "ord-1",
				OwnerID: "owner-1",
				Status:  tt.from,
			}

			order, err := svc.UpdateStatus(ctx, "owner-1", "ord-1", &models.StatusUpdateRequest{Status: tt.to})
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got order with status %s", order.Status)
				}
				switch target := tt.errTarget.(type) {
				case *models.InvalidTransitionError:
					if !errors.As(err, target) {
						t.Errorf("expected InvalidTransitionError, got %v", err)
					}
				case *models.ValidationError:
					if !errors.As(err, target) {
						t.Errorf("expected ValidationError, got %v", err)
					}
				}
				if events.status != 0 {
					t.Errorf("expected no event on failed transition")
				}
				return
			}

			if err != nil {
				t.Fatalf("UpdateStatus returned error: %v", err)
			}
			if string(order.Status) != tt.to {
				t.Errorf("status = %s, want %s", order.Status, tt.to)
			}
			if events.status != 1 {
				t.Errorf("expected 1 status_changed event, got %d", events.status)
			}
		})
	}
}

func TestUpdateStatus_FreezesTotal(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	cat := &fakeCatalog{dishes: testDishes("owner-1")}
	svc := testService(store, cat, nil, nil)

	created, err := svc.Create(ctx, "owner-1", fullCart())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	when := time.Now().UTC().Add(45 * time.Minute)
	notes := "left at the door"
	updated, err := svc.UpdateStatus(ctx, "owner-1", created.ID, &models.StatusUpdateRequest{
		Status:       "CONFIRMED",
		Notes:        &notes,
		DeliveryTime: &when,
	})
	if err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if updated.TotalAmount != created.TotalAmount {
		t.Errorf("total changed across transition: %v -> %v", created.TotalAmount, updated.TotalAmount)
	}
}
