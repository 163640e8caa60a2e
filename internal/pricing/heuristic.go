// Package pricing derives synthetic market prices for catalog items from
// weak signals (appearance counts, age, piece counts) when no authoritative
// price exists. Two strategies coexist: the rarity/age model used by the
// main minifigure refresh, and the simpler piece/age model used by the bulk
// fictitious-price pass.
package pricing

import (
	"math"      // Clamping and rounding
	mathrand "math/rand" // Default jitter source
	"regexp"    // Year extraction from external ids
	"strconv"   // Digit parsing
	"time"      // Seed for the default source
)

// Rand supplies the jitter term. Injected so tests can fix the sequence
// and assert exact prices.
type Rand interface {
	Float64() float64 // Uniform in [0, 1)
}

// DefaultRand returns a time-seeded source for production runs
func DefaultRand() Rand {
	return mathrand.New(mathrand.NewSource(time.Now().UnixNano()))
}

// Rarity/age model constants
const (
	BasePrice = 15.0  // Starting point before factors
	MinPrice  = 3.0   // Clamp floor
	MaxPrice  = 150.0 // Clamp ceiling
)

// Year recovery window: 4-digit runs outside this range are not years
const (
	minRecoverableYear = 1999
	maxRecoverableYear = 2025
)

// appearanceFactor weights rarity: the fewer sets a minifigure appears in,
// the more it is worth
func appearanceFactor(count int) float64 {
	switch {
	case count <= 1:
		return 1.8 // Appears in a single set
	case count == 2:
		return 1.5
	case count <= 5:
		return 1.2
	case count <= 10:
		return 1.0
	case count <= 20:
		return 0.7
	default:
		return 0.5 // Very common
	}
}

// ageFactor weights antiquity in whole years
func ageFactor(age int) float64 {
	switch {
	case age >= 20:
		return 2.5 // Vintage
	case age >= 15:
		return 2.0
	case age >= 10:
		return 1.6
	case age >= 5:
		return 1.3
	default:
		return 1.0 // Recent
	}
}

// RarityPrice is the rarity/age strategy. appearances <= 0 is treated as 1;
// year == 0 means unknown, in which case rarity is weighted up by 1.5 to
// compensate and age contributes nothing. The result carries a uniform
// jitter of plus or minus 15 percent and is clamped to [3, 150].
func RarityPrice(appearances, year, currentYear int, rng Rand) float64 {
	if appearances <= 0 {
		appearances = 1 // Missing count treated as rarest bucket input
	}
	appFactor := appearanceFactor(appearances)
	yearFactor := 1.0
	if year > 0 {
		yearFactor = ageFactor(currentYear - year)
	} else {
		appFactor *= 1.5 // No year: lean harder on rarity
	}
	jitter := 0.85 + rng.Float64()*0.3 // Uniform in [0.85, 1.15)
	price := BasePrice * appFactor * yearFactor * jitter
	price = math.Max(MinPrice, math.Min(MaxPrice, price)) // Clamp to sane bounds
	return round2(price)
}

// SimpleSetPrice is the piece/age strategy for sets: a dime per piece with
// a 5 dollar floor, marked up for retirement and pre-2015 releases.
// pieces <= 0 falls back to the 80-piece default. No clamp bounds.
func SimpleSetPrice(pieces, year int, retired bool, rng Rand) float64 {
	if pieces <= 0 {
		pieces = 80 // Default when the count is unknown
	}
	price := math.Max(5, float64(pieces)*0.1)
	if retired {
		price *= 1.4 // Retired sets appreciate
	}
	if year > 0 && year < 2015 {
		price *= 1.2 // Older releases appreciate
	}
	return round2(price)
}

// SimpleMinifigPrice is the piece/age strategy for minifigures: a random
// base in [5, 25) marked up for pre-2015 releases
func SimpleMinifigPrice(year int, rng Rand) float64 {
	price := 5 + rng.Float64()*20 // Uniform in [5, 25)
	if year > 0 && year < 2015 {
		price *= 1.2 // Older releases appreciate
	}
	return round2(price)
}

// yearPattern matches the first run of 4 consecutive digits
var yearPattern = regexp.MustCompile(`\d{4}`)

// ExtractYear recovers a release year from an external catalog id such as
// sw2014b or FIG-201503. Only 4-digit runs parsing into [1999, 2025] count.
func ExtractYear(externalID string) (int, bool) {
	match := yearPattern.FindString(externalID)
	if match == "" {
		return 0, false // No 4-digit run at all
	}
	year, err := strconv.Atoi(match)
	if err != nil || year < minRecoverableYear || year > maxRecoverableYear {
		return 0, false // Digits present but not a plausible year
	}
	return year, true
}

// round2 rounds to two decimal places
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
