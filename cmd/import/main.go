package main

import (
	"context" // Cancellation for the import

	"brickfolio/internal/config"      // Custom package for configuration
	"brickfolio/internal/rebrickable" // Rebrickable API client

	"github.com/sirupsen/logrus" // Logrus for structured logging
	"gorm.io/driver/mysql"       // MySQL driver for GORM
	"gorm.io/gorm"               // GORM ORM library
)

// One-shot Star Wars catalog import from the Rebrickable v3 API.
// Upserts keyed on the external codes keep re-runs idempotent.
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// The import is useless without an API key
	if cfg.RebrickableAPIKey == "" {
		logrus.Fatal("REBRICKABLE_API_KEY is not set; get one at https://rebrickable.com/api/")
	}

	// Connect to the database
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}

	client := rebrickable.NewClient(cfg.RebrickableAPIKey) // API client
	ctx := context.Background()                            // Run to completion

	// Sets first, then minifigures
	totalSets, err := client.ImportSets(ctx, db)
	if err != nil {
		logrus.Fatalf("set import failed after %d rows: %v", totalSets, err)
	}
	totalMinifigs, err := client.ImportMinifigures(ctx, db)
	if err != nil {
		logrus.Fatalf("minifigure import failed after %d rows: %v", totalMinifigs, err)
	}

	// Final summary
	logrus.WithFields(logrus.Fields{
		"sets":        totalSets,                 // Sets imported
		"minifigures": totalMinifigs,             // Minifigures imported
		"total":       totalSets + totalMinifigs, // Everything
	}).Info("Catalog import completed")
}
