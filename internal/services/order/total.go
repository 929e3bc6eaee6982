package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"resto-backoffice/internal/models"
)

// ComputeTotal derives the order total from the snapshotted line prices plus
// the optional charges, rounded half-up to 2 decimal places exactly once.
// The result is frozen at creation time and never recomputed from the live
// catalog.
func ComputeTotal(items []models.OrderItem, deliveryFee, tax, discount *float64) float64 {
	total := decimal.Zero
	for _, item := range items {
		line := decimal.NewFromFloat(item.PriceAtPurchase).Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}
	total = total.Add(charge(deliveryFee)).Add(charge(tax)).Sub(charge(discount))
	return total.Round(2).InexactFloat64()
}

func charge(value *float64) decimal.Decimal {
	if value == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*value)
}

// GenerateOrderNumber produces a globally unique, human-legible order
// number: a millisecond timestamp plus a random token. Uniqueness is
// enforced by the store's constraint; collisions are retried by the caller.
func GenerateOrderNumber(now time.Time) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
	return fmt.Sprintf("ORD-%d-%s", now.UnixMilli(), token)
}
