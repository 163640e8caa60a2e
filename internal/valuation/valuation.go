// Package valuation computes aggregate portfolio statistics for a user's
// collection. It is a pure read: it never touches the store and never
// mutates the rows it is given.
package valuation

import (
	"brickfolio/internal/domain" // Ledger row and kind types
	"math"                       // Rounding
)

// PriceLookup resolves the current market price of a catalog item.
// The second return is false when the item no longer exists or has no
// stored price; such entries contribute 0 to the portfolio value.
type PriceLookup func(kind domain.ItemKind, itemID uint) (float64, bool)

// Stats is the aggregate valuation of one user's collection
type Stats struct {
	TotalItems           int     `json:"totalItems"`           // Distinct ledger rows, not quantity-weighted
	TotalSets            int     `json:"totalSets"`            // Total set units held
	TotalMinifigures     int     `json:"totalMinifigures"`     // Total minifigure units held
	TotalInvested        float64 `json:"totalInvested"`        // Sum of paid price times quantity
	TotalValue           float64 `json:"totalValue"`           // Sum of current price times quantity
	ProfitLoss           float64 `json:"profitLoss"`           // Value minus invested
	ProfitLossPercentage float64 `json:"profitLossPercentage"` // P/L relative to invested, 0 when nothing invested
}

// Compute aggregates a user's ledger rows against current catalog prices.
// Monetary outputs are rounded to cents after aggregation.
func Compute(items []domain.CollectionItem, lookup PriceLookup) Stats {
	var invested, value float64 // Raw running totals
	var sets, minifigs int      // Quantity-weighted per-kind counts
	for i := range items {
		item := &items[i]
		invested += item.PaidPriceUSD * float64(item.Quantity) // Capital put in
		// Per-kind unit counts
		if item.ItemType == domain.KindSet {
			sets += item.Quantity
		} else {
			minifigs += item.Quantity
		}
		// Current price per entry; deleted or unpriced items count as 0
		if price, ok := lookup(item.ItemType, item.ItemID); ok {
			value += price * float64(item.Quantity)
		}
	}
	profit := value - invested // Raw profit/loss
	// Percentage only makes sense against nonzero invested capital
	var pct float64
	if invested > 0 {
		pct = profit / invested * 100
	}
	return Stats{
		TotalItems:           len(items),    // Row count
		TotalSets:            sets,          // Set units
		TotalMinifigures:     minifigs,      // Minifigure units
		TotalInvested:        round2(invested), // Rounded to cents
		TotalValue:           round2(value),    // Rounded to cents
		ProfitLoss:           round2(profit),   // Rounded to cents
		ProfitLossPercentage: round2(pct),      // Rounded to two decimals
	}
}

// round2 rounds to two decimal places
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
