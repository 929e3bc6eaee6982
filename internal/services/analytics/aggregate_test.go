package analytics

import (
	"testing"
	"time"

	"resto-backoffice/internal/models"
)

func dishCount(id string, total int) models.PopularDish {
	return models.PopularDish{
		Dish:         models.Dish{ID: id, Name: "dish " + id},
		TotalOrdered: total,
	}
}

func TestDeliveredRevenue(t *testing.T) {
	byStatus := map[models.OrderStatus]float64{
		models.StatusDelivered: 100,
		models.StatusPending:   50,
		models.StatusCancelled: 30,
		models.StatusPreparing: 20,
	}
	if got := DeliveredRevenue(byStatus); got != 100 {
		t.Errorf("DeliveredRevenue = %v, want 100", got)
	}
	if got := DeliveredRevenue(map[models.OrderStatus]float64{}); got != 0 {
		t.Errorf("DeliveredRevenue of no orders = %v, want 0", got)
	}
}

func TestMergeDishCounts(t *testing.T) {
	// One row per (dish, status); cancelled orders still count
	counts := []models.PopularDish{
		dishCount("d-1", 4), // delivered
		dishCount("d-2", 2), // delivered
		dishCount("d-1", 3), // cancelled
		dishCount("d-1", 1), // pending
	}

	merged := MergeDishCounts(counts)

	if len(merged) != 2 {
		t.Fatalf("got %d dishes, want 2", len(merged))
	}
	for _, m := range merged {
		want := map[string]int{"d-1": 8, "d-2": 2}[m.Dish.ID]
		if m.TotalOrdered != want {
			t.Errorf("dish %s total = %d, want %d", m.Dish.ID, m.TotalOrdered, want)
		}
	}
	if merged[0].Dish.Name != "dish d-1" {
		t.Errorf("dish attributes lost in merge: %+v", merged[0].Dish)
	}
}

func TestRankPopularDishes(t *testing.T) {
	counts := []models.PopularDish{
		dishCount("d-3", 7),
		dishCount("d-1", 12),
		dishCount("d-6", 7),
		dishCount("d-2", 30),
		dishCount("d-5", 1),
		dishCount("d-4", 9),
	}

	ranked := RankPopularDishes(counts, 5)

	if len(ranked) != 5 {
		t.Fatalf("got %d dishes, want 5", len(ranked))
	}
	wantOrder := []string{"d-2", "d-1", "d-4", "d-3", "d-6"}
	for i, want := range wantOrder {
		if ranked[i].Dish.ID != want {
			t.Errorf("rank %d = %s, want %s", i, ranked[i].Dish.ID, want)
		}
	}
	// d-3 and d-6 tie at 7; the lower dish id must come first
	if ranked[3].Dish.ID != "d-3" || ranked[4].Dish.ID != "d-6" {
		t.Errorf("tie not broken by dish id: got %s then %s", ranked[3].Dish.ID, ranked[4].Dish.ID)
	}
}

func TestRankPopularDishes_FewerThanLimit(t *testing.T) {
	ranked := RankPopularDishes([]models.PopularDish{dishCount("d-1", 2)}, 5)
	if len(ranked) != 1 {
		t.Errorf("got %d dishes, want 1", len(ranked))
	}
}

func TestRankPopularDishes_DoesNotMutateInput(t *testing.T) {
	counts := []models.PopularDish{dishCount("d-2", 1), dishCount("d-1", 9)}
	RankPopularDishes(counts, 5)
	if counts[0].Dish.ID != "d-2" {
		t.Errorf("input slice reordered")
	}
}

func TestMonthKey(t *testing.T) {
	got := MonthKey(time.Date(2026, time.March, 15, 10, 30, 0, 0, time.UTC))
	if got != "2026-03" {
		t.Errorf("MonthKey = %q, want %q", got, "2026-03")
	}
}

func TestMonthKey_NormalizesToUTC(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	// 2026-09-01 00:30 JST is still 2026-08-31 15:30 UTC
	got := MonthKey(time.Date(2026, time.September, 1, 0, 30, 0, 0, tokyo))
	if got != "2026-08" {
		t.Errorf("MonthKey = %q, want %q", got, "2026-08")
	}
}

func TestTrendStart(t *testing.T) {
	now := time.Date(2026, time.August, 31, 23, 59, 0, 0, time.UTC)
	got := TrendStart(now)
	want := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("TrendStart = %s, want %s", got, want)
	}
}

func TestTrendStart_YearBoundary(t *testing.T) {
	now := time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC)
	got := TrendStart(now)
	want := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("TrendStart = %s, want %s", got, want)
	}
}

func TestMonthBuckets_ZeroFillsEmptyMonths(t *testing.T) {
	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)
	revenue := map[string]float64{
		"2026-04": 120.50,
		"2026-08": 99.99,
	}

	buckets := MonthBuckets(now, revenue)

	if len(buckets) != 6 {
		t.Fatalf("got %d buckets, want 6", len(buckets))
	}
	want := []models.MonthlyRevenue{
		{Month: "2026-03", Revenue: 0},
		{Month: "2026-04", Revenue: 120.50},
		{Month: "2026-05", Revenue: 0},
		{Month: "2026-06", Revenue: 0},
		{Month: "2026-07", Revenue: 0},
		{Month: "2026-08", Revenue: 99.99},
	}
	for i, w := range want {
		if buckets[i] != w {
			t.Errorf("bucket %d = %+v, want %+v", i, buckets[i], w)
		}
	}
}
