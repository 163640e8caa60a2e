package valuation

import (
	"testing"

	"brickfolio/internal/domain"

	"github.com/stretchr/testify/assert"
)

// mapLookup builds a PriceLookup from a static table keyed by kind and id
func mapLookup(prices map[domain.ItemKind]map[uint]float64) PriceLookup {
	return func(kind domain.ItemKind, itemID uint) (float64, bool) {
		table, ok := prices[kind]
		if !ok {
			return 0, false
		}
		price, ok := table[itemID]
		return price, ok
	}
}

func TestComputeScenario(t *testing.T) {
	// Two sets at 100 paid, one minifigure at 20 paid
	items := []domain.CollectionItem{
		{ItemType: domain.KindSet, ItemID: 1, Quantity: 2, PaidPriceUSD: 100},
		{ItemType: domain.KindMinifigure, ItemID: 2, Quantity: 1, PaidPriceUSD: 20},
	}
	lookup := mapLookup(map[domain.ItemKind]map[uint]float64{
		domain.KindSet:        {1: 150},
		domain.KindMinifigure: {2: 15},
	})

	stats := Compute(items, lookup)

	assert.Equal(t, 2, stats.TotalItems)
	assert.Equal(t, 2, stats.TotalSets)
	assert.Equal(t, 1, stats.TotalMinifigures)
	assert.Equal(t, 220.00, stats.TotalInvested)
	assert.Equal(t, 315.00, stats.TotalValue)
	assert.Equal(t, 95.00, stats.ProfitLoss)
	assert.Equal(t, 43.18, stats.ProfitLossPercentage)
}

func TestComputeIsPureAndIdempotent(t *testing.T) {
	items := []domain.CollectionItem{
		{ItemType: domain.KindSet, ItemID: 1, Quantity: 3, PaidPriceUSD: 49.99},
		{ItemType: domain.KindMinifigure, ItemID: 7, Quantity: 2, PaidPriceUSD: 12.50},
	}
	lookup := mapLookup(map[domain.ItemKind]map[uint]float64{
		domain.KindSet:        {1: 60},
		domain.KindMinifigure: {7: 9.99},
	})

	before := make([]domain.CollectionItem, len(items))
	copy(before, items)

	first := Compute(items, lookup)
	second := Compute(items, lookup)

	// Same input, same output
	assert.Equal(t, first, second)
	// The entries themselves are untouched
	assert.Equal(t, before, items)
}

func TestComputeToleratesMissingPrices(t *testing.T) {
	// The set still exists; the minifigure was deleted from the catalog
	items := []domain.CollectionItem{
		{ItemType: domain.KindSet, ItemID: 1, Quantity: 1, PaidPriceUSD: 30},
		{ItemType: domain.KindMinifigure, ItemID: 99, Quantity: 4, PaidPriceUSD: 10},
	}
	lookup := mapLookup(map[domain.ItemKind]map[uint]float64{
		domain.KindSet: {1: 45},
	})

	stats := Compute(items, lookup)

	// The orphaned entry contributes 0 value but still counts as invested
	assert.Equal(t, 70.00, stats.TotalInvested)
	assert.Equal(t, 45.00, stats.TotalValue)
	assert.Equal(t, -25.00, stats.ProfitLoss)
}

func TestComputeEmptyAndZeroInvested(t *testing.T) {
	// Empty collection: everything zero, no division by zero
	stats := Compute(nil, mapLookup(nil))
	assert.Equal(t, Stats{}, stats)

	// Items acquired for free: percentage pinned to 0 even with value
	items := []domain.CollectionItem{
		{ItemType: domain.KindSet, ItemID: 1, Quantity: 1, PaidPriceUSD: 0},
	}
	lookup := mapLookup(map[domain.ItemKind]map[uint]float64{
		domain.KindSet: {1: 80},
	})
	stats = Compute(items, lookup)
	assert.Equal(t, 0.00, stats.TotalInvested)
	assert.Equal(t, 80.00, stats.TotalValue)
	assert.Equal(t, 0.00, stats.ProfitLossPercentage)
}

func TestComputeRoundsToCents(t *testing.T) {
	// 3 * 33.333 = 99.999 must come out as 100.00
	items := []domain.CollectionItem{
		{ItemType: domain.KindSet, ItemID: 1, Quantity: 3, PaidPriceUSD: 33.333},
	}
	lookup := mapLookup(map[domain.ItemKind]map[uint]float64{
		domain.KindSet: {1: 33.335},
	})
	stats := Compute(items, lookup)
	assert.Equal(t, 100.00, stats.TotalInvested)
	assert.Equal(t, 100.01, stats.TotalValue)
}
