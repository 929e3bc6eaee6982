package analytics

import (
	"fmt"
	"sort"
	"time"

	"resto-backoffice/internal/models"
)

// trailingMonths is the span of the monthly revenue trend
const trailingMonths = 6

// DeliveredRevenue selects the dashboard revenue figure from per-status
// sums: delivered orders count, everything else (pending, in flight,
// cancelled) does not.
func DeliveredRevenue(byStatus map[models.OrderStatus]float64) float64 {
	return byStatus[models.StatusDelivered]
}

// MergeDishCounts folds per-(dish, status) count rows into one row per dish,
// summing quantities across every status. No status is excluded; a
// cancelled order still counts toward popularity.
func MergeDishCounts(counts []models.PopularDish) []models.PopularDish {
	byID := map[string]int{}
	merged := make([]models.PopularDish, 0, len(counts))
	for _, c := range counts {
		if i, ok := byID[c.Dish.ID]; ok {
			merged[i].TotalOrdered += c.TotalOrdered
			continue
		}
		byID[c.Dish.ID] = len(merged)
		merged = append(merged, c)
	}
	return merged
}

// RankPopularDishes orders dish counts by total quantity descending and
// truncates to n. Ties break by dish id ascending so the ranking is
// deterministic.
func RankPopularDishes(counts []models.PopularDish, n int) []models.PopularDish {
	ranked := make([]models.PopularDish, len(counts))
	copy(ranked, counts)

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].TotalOrdered != ranked[j].TotalOrdered {
			return ranked[i].TotalOrdered > ranked[j].TotalOrdered
		}
		return ranked[i].Dish.ID < ranked[j].Dish.ID
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// MonthKey formats a timestamp as its UTC calendar-month bucket key. The
// instant decides the bucket, not the wall clock of whatever zone it
// arrived in.
func MonthKey(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

// TrendStart returns the first instant of the oldest month in the trailing
// window ending at now.
func TrendStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(trailingMonths - 1), 0)
}

// MonthBuckets expands per-month revenue sums into the full trailing window,
// oldest first. Months with no delivered orders appear as zero buckets
// rather than being omitted.
func MonthBuckets(now time.Time, revenueByMonth map[string]float64) []models.MonthlyRevenue {
	buckets := make([]models.MonthlyRevenue, 0, trailingMonths)
	month := TrendStart(now)
	for i := 0; i < trailingMonths; i++ {
		key := MonthKey(month)
		buckets = append(buckets, models.MonthlyRevenue{
			Month:   key,
			Revenue: revenueByMonth[key],
		})
		month = month.AddDate(0, 1, 0)
	}
	return buckets
}
