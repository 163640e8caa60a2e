package main

import (
	"flag" // Strategy selection
	"time" // Current year for the age factor

	"brickfolio/internal/config"  // Custom package for configuration
	"brickfolio/internal/pricing" // Pricing heuristics and refreshers

	"github.com/sirupsen/logrus" // Logrus for structured logging
	"gorm.io/driver/mysql"       // MySQL driver for GORM
	"gorm.io/gorm"               // GORM ORM library
)

// One-shot batch price refresh. Runs serially over the catalog, one update
// per row, and exits; it can race with live reads, which is acceptable
// since prices are advisory.
func main() {
	strategy := flag.String("strategy", "rarity", "pricing strategy: rarity (minifigures) or simple (bulk fictitious pass)")
	flag.Parse()

	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the database
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}

	rng := pricing.DefaultRand() // Time-seeded jitter source

	// Dispatch on the selected strategy
	switch *strategy {
	case "rarity":
		if err := pricing.RefreshMinifigurePrices(db, rng, time.Now().Year()); err != nil {
			logrus.Fatalf("price refresh failed: %v", err)
		}
	case "simple":
		if err := pricing.RefreshFictitiousPrices(db, rng); err != nil {
			logrus.Fatalf("price refresh failed: %v", err)
		}
	default:
		logrus.Fatalf("unknown strategy: %s", *strategy)
	}
}
