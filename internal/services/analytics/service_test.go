package analytics

import (
	"context"
	"testing"
	"time"

	"resto-backoffice/internal/models"
)

// fakeStore returns canned aggregates per owner
type fakeStore struct {
	orders    int
	revenue   map[models.OrderStatus]float64
	customers int
	dishes    int
	rating    float64
	popular   []models.PopularDish
	monthly   map[string]float64
}

func (f *fakeStore) CountOrders(ctx context.Context, ownerID string) (int, error) {
	return f.orders, nil
}

func (f *fakeStore) RevenueByStatus(ctx context.Context, ownerID string) (map[models.OrderStatus]float64, error) {
	return f.revenue, nil
}

func (f *fakeStore) CountCustomers(ctx context.Context, ownerID string) (int, error) {
	return f.customers, nil
}

func (f *fakeStore) CountDishes(ctx context.Context, ownerID string) (int, error) {
	return f.dishes, nil
}

func (f *fakeStore) AverageRating(ctx context.Context, ownerID string) (float64, error) {
	return f.rating, nil
}

func (f *fakeStore) PopularDishCounts(ctx context.Context, ownerID string) ([]models.PopularDish, error) {
	return f.popular, nil
}

func (f *fakeStore) MonthlyDeliveredRevenue(ctx context.Context, ownerID string, since time.Time) (map[string]float64, error) {
	return f.monthly, nil
}

// fakeOrders serves the recent-orders list
type fakeOrders struct {
	orders    []models.Order
	lastLimit int
}

func (f *fakeOrders) ListOrders(ctx context.Context, ownerID string, limit int) ([]models.Order, error) {
	f.lastLimit = limit
	return f.orders, nil
}

func fixedNow() time.Time {
	return time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)
}

func TestComputeDashboard(t *testing.T) {
	store := &fakeStore{
		orders: 42,
		revenue: map[models.OrderStatus]float64{
			models.StatusDelivered: 100,
			models.StatusPending:   55,
			models.StatusCancelled: 40,
		},
		customers: 7,
		dishes:    12,
		rating:    4.5,
		// per-(dish, status) rows: d-2 split across delivered and cancelled
		popular: []models.PopularDish{
			{Dish: models.Dish{ID: "d-1"}, TotalOrdered: 3},
			{Dish: models.Dish{ID: "d-2"}, TotalOrdered: 5},
			{Dish: models.Dish{ID: "d-2"}, TotalOrdered: 4},
		},
		monthly: map[string]float64{"2026-08": 100},
	}
	orders := &fakeOrders{orders: []models.Order{{ID: "ord-1"}, {ID: "ord-2"}}}

	svc := NewService(store, orders)
	svc.now = fixedNow

	stats, err := svc.ComputeDashboard(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("ComputeDashboard returned error: %v", err)
	}

	if stats.TotalOrders != 42 {
		t.Errorf("TotalOrders = %d, want 42", stats.TotalOrders)
	}
	if stats.TotalRevenue != 100 {
		t.Errorf("TotalRevenue = %v, want 100 (delivered only)", stats.TotalRevenue)
	}
	if stats.TotalCustomers != 7 {
		t.Errorf("TotalCustomers = %d, want 7", stats.TotalCustomers)
	}
	if stats.TotalDishes != 12 {
		t.Errorf("TotalDishes = %d, want 12", stats.TotalDishes)
	}
	if stats.AverageRating != 4.5 {
		t.Errorf("AverageRating = %v, want 4.5", stats.AverageRating)
	}
	if len(stats.RecentOrders) != 2 {
		t.Errorf("RecentOrders length = %d, want 2", len(stats.RecentOrders))
	}
	if orders.lastLimit != recentOrdersLimit {
		t.Errorf("recent orders limit = %d, want %d", orders.lastLimit, recentOrdersLimit)
	}
	if len(stats.PopularDishes) != 2 || stats.PopularDishes[0].Dish.ID != "d-2" {
		t.Errorf("PopularDishes not ranked by quantity: %+v", stats.PopularDishes)
	}
	if stats.PopularDishes[0].TotalOrdered != 9 {
		t.Errorf("d-2 total = %d, want 9 summed across statuses", stats.PopularDishes[0].TotalOrdered)
	}
	if len(stats.MonthlyRevenue) != 6 {
		t.Fatalf("MonthlyRevenue length = %d, want 6", len(stats.MonthlyRevenue))
	}
	last := stats.MonthlyRevenue[5]
	if last.Month != "2026-08" || last.Revenue != 100 {
		t.Errorf("current month bucket = %+v, want 2026-08/100", last)
	}
}

func TestComputeDashboard_ZeroState(t *testing.T) {
	svc := NewService(&fakeStore{monthly: map[string]float64{}}, &fakeOrders{})
	svc.now = fixedNow

	stats, err := svc.ComputeDashboard(context.Background(), "owner-new")
	if err != nil {
		t.Fatalf("ComputeDashboard returned error: %v", err)
	}

	if stats.TotalOrders != 0 || stats.TotalRevenue != 0 || stats.TotalCustomers != 0 || stats.TotalDishes != 0 {
		t.Errorf("expected zero counters, got %+v", stats)
	}
	if stats.AverageRating != 0 {
		t.Errorf("AverageRating = %v, want 0 for no reviews", stats.AverageRating)
	}
	if len(stats.PopularDishes) != 0 {
		t.Errorf("PopularDishes = %+v, want empty", stats.PopularDishes)
	}
	if len(stats.MonthlyRevenue) != 6 {
		t.Fatalf("MonthlyRevenue length = %d, want 6", len(stats.MonthlyRevenue))
	}
	for _, bucket := range stats.MonthlyRevenue {
		if bucket.Revenue != 0 {
			t.Errorf("bucket %s = %v, want 0", bucket.Month, bucket.Revenue)
		}
	}
}
