package analytics

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"resto-backoffice/internal/models"
)

// recentOrdersLimit is how many expanded orders the dashboard carries
const recentOrdersLimit = 10

// popularDishesLimit is the size of the top-dishes ranking
const popularDishesLimit = 5

// Store is the aggregate read surface the engine needs
type Store interface {
	CountOrders(ctx context.Context, ownerID string) (int, error)
	RevenueByStatus(ctx context.Context, ownerID string) (map[models.OrderStatus]float64, error)
	CountCustomers(ctx context.Context, ownerID string) (int, error)
	CountDishes(ctx context.Context, ownerID string) (int, error)
	AverageRating(ctx context.Context, ownerID string) (float64, error)
	PopularDishCounts(ctx context.Context, ownerID string) ([]models.PopularDish, error)
	MonthlyDeliveredRevenue(ctx context.Context, ownerID string, since time.Time) (map[string]float64, error)
}

// OrderReader provides the expanded recent-orders view
type OrderReader interface {
	ListOrders(ctx context.Context, ownerID string, limit int) ([]models.Order, error)
}

// Service computes the merchant dashboard
type Service struct {
	store  Store
	orders OrderReader
	now    func() time.Time
}

func NewService(store Store, orders OrderReader) *Service {
	return &Service{
		store:  store,
		orders: orders,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// ComputeDashboard aggregates the owner's full history into dashboard
// figures. The queries run concurrently without a shared snapshot, so
// figures may differ by orders committed during computation; the dashboard
// is advisory, not a ledger.
func (s *Service) ComputeDashboard(ctx context.Context, ownerID string) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}
	now := s.now()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.store.CountOrders(ctx, ownerID)
		stats.TotalOrders = n
		return err
	})
	g.Go(func() error {
		byStatus, err := s.store.RevenueByStatus(ctx, ownerID)
		if err != nil {
			return err
		}
		stats.TotalRevenue = DeliveredRevenue(byStatus)
		return nil
	})
	g.Go(func() error {
		n, err := s.store.CountCustomers(ctx, ownerID)
		stats.TotalCustomers = n
		return err
	})
	g.Go(func() error {
		n, err := s.store.CountDishes(ctx, ownerID)
		stats.TotalDishes = n
		return err
	})
	g.Go(func() error {
		avg, err := s.store.AverageRating(ctx, ownerID)
		stats.AverageRating = avg
		return err
	})
	g.Go(func() error {
		orders, err := s.orders.ListOrders(ctx, ownerID, recentOrdersLimit)
		stats.RecentOrders = orders
		return err
	})
	g.Go(func() error {
		counts, err := s.store.PopularDishCounts(ctx, ownerID)
		if err != nil {
			return err
		}
		stats.PopularDishes = RankPopularDishes(MergeDishCounts(counts), popularDishesLimit)
		return nil
	})
	g.Go(func() error {
		revenue, err := s.store.MonthlyDeliveredRevenue(ctx, ownerID, TrendStart(now))
		if err != nil {
			return err
		}
		stats.MonthlyRevenue = MonthBuckets(now, revenue)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}
