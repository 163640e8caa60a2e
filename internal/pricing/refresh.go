package pricing

import (
	"brickfolio/internal/domain" // Catalog models

	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// progressEvery controls how often batch refreshers log progress
const progressEvery = 50

// priceSummary holds the post-refresh statistics logged for operators
type priceSummary struct {
	Min   float64 // Lowest stored price
	Max   float64 // Highest stored price
	Avg   float64 // Mean stored price
	Total int64   // Rows with a price
}

// RefreshMinifigurePrices runs the rarity/age strategy over every
// minifigure, one update per row. Rows without a stored year get one
// recovered from the external id when possible, persisted alongside the
// new price. The scan holds no locks across iterations; live reads may
// observe a mix of old and new prices, which is acceptable since prices
// are advisory.
func RefreshMinifigurePrices(db *gorm.DB, rng Rand, currentYear int) error {
	var minifigs []domain.Minifigure // All catalog minifigures
	if err := db.Find(&minifigs).Error; err != nil {
		return err // Nothing to do without the catalog
	}
	logrus.WithField("total", len(minifigs)).Info("Starting minifigure price refresh")

	updated := 0       // Rows refreshed so far
	yearsAssigned := 0 // Rows that gained a recovered year
	for i := range minifigs {
		fig := &minifigs[i]
		year := 0 // 0 means unknown
		if fig.Year != nil {
			year = *fig.Year
		}
		// Try to recover a missing year from the external id
		recovered := false
		if year == 0 {
			if y, ok := ExtractYear(fig.MinifigID); ok {
				year = y
				recovered = true
				yearsAssigned++
				logrus.WithFields(logrus.Fields{
					"minifig_id": fig.MinifigID, // External catalog code
					"year":       y,             // Recovered year
				}).Info("Recovered year from external id")
			}
		}
		appearances := 0 // 0 means unknown; RarityPrice treats it as 1
		if fig.Appearances != nil {
			appearances = *fig.Appearances
		}
		price := RarityPrice(appearances, year, currentYear, rng) // New synthetic price
		// Persist the price, plus the year when one was recovered
		updates := map[string]any{"avg_price_usd": price}
		if recovered {
			updates["year"] = year
		}
		if err := db.Model(&domain.Minifigure{}).Where("id = ?", fig.ID).Updates(updates).Error; err != nil {
			return err
		}
		updated++
		if updated%progressEvery == 0 {
			logrus.WithFields(logrus.Fields{
				"processed": updated,       // Rows refreshed
				"total":     len(minifigs), // Rows overall
			}).Info("Price refresh progress")
		}
	}
	logrus.WithFields(logrus.Fields{
		"updated":        updated,       // Rows refreshed
		"years_assigned": yearsAssigned, // Rows that gained a year
	}).Info("Minifigure price refresh completed")

	// Log min/max/avg so operators can sanity-check the distribution
	var summary priceSummary
	if err := db.Model(&domain.Minifigure{}).
		Select("MIN(avg_price_usd) AS min, MAX(avg_price_usd) AS max, AVG(avg_price_usd) AS avg, COUNT(*) AS total").
		Where("avg_price_usd IS NOT NULL").
		Scan(&summary).Error; err == nil {
		logrus.WithFields(logrus.Fields{
			"min":   summary.Min,   // Lowest price
			"max":   summary.Max,   // Highest price
			"avg":   summary.Avg,   // Mean price
			"total": summary.Total, // Priced rows
		}).Info("Price statistics")
	}
	return nil
}

// RefreshFictitiousPrices runs the simpler piece/age strategy as a bulk
// pass over both catalog tables, one update per row
func RefreshFictitiousPrices(db *gorm.DB, rng Rand) error {
	// Sets first
	var sets []domain.Set
	if err := db.Find(&sets).Error; err != nil {
		return err
	}
	logrus.WithField("total", len(sets)).Info("Refreshing fictitious set prices")
	for i := range sets {
		s := &sets[i]
		pieces := 0 // 0 means unknown; SimpleSetPrice applies the default
		if s.Pieces != nil {
			pieces = *s.Pieces
		}
		year := 0
		if s.Year != nil {
			year = *s.Year
		}
		price := SimpleSetPrice(pieces, year, s.Retired, rng)
		if err := db.Model(&domain.Set{}).Where("id = ?", s.ID).Update("price_usd", price).Error; err != nil {
			return err
		}
	}

	// Then minifigures
	var minifigs []domain.Minifigure
	if err := db.Find(&minifigs).Error; err != nil {
		return err
	}
	logrus.WithField("total", len(minifigs)).Info("Refreshing fictitious minifigure prices")
	for i := range minifigs {
		m := &minifigs[i]
		year := 0
		if m.Year != nil {
			year = *m.Year
		}
		price := SimpleMinifigPrice(year, rng)
		if err := db.Model(&domain.Minifigure{}).Where("id = ?", m.ID).Update("avg_price_usd", price).Error; err != nil {
			return err
		}
	}
	logrus.Info("Fictitious price refresh completed")
	return nil
}
