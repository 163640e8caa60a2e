package domain

// ItemKind discriminates the two catalog item variants
type ItemKind string

// Allowed catalog item kinds
const (
	KindSet        ItemKind = "set"        // LEGO set
	KindMinifigure ItemKind = "minifigure" // Minifigure
)

// ValidKind reports whether k is one of the two allowed kinds
func ValidKind(k ItemKind) bool {
	return k == KindSet || k == KindMinifigure
}

// CatalogItem is the shared capability of sets and minifigures.
// Ledger and valuation code dispatches through it instead of checking
// which concrete columns happen to be present.
type CatalogItem interface {
	Kind() ItemKind        // Which variant this is
	CatalogID() uint       // Database primary key
	DisplayName() string   // Name snapshotted into ledger rows
	CurrentPrice() float64 // Market price, 0 when none is stored
	ImageURL() *string     // Optional image, snapshotted into ledger rows
}

// Set Model
type Set struct {
	ID       uint     `gorm:"primaryKey" json:"id"`               // Primary key
	SetID    string   `gorm:"column:set_id;uniqueIndex;not null" json:"set_id"` // External catalog code
	Name     string   `gorm:"not null" json:"name"`               // Set name
	Year     *int     `json:"year"`                               // Release year, may be unknown
	Pieces   *int     `json:"pieces"`                             // Piece count, may be unknown
	PriceUSD *float64 `gorm:"column:price_usd" json:"price_usd"`  // Current market price
	Image    *string  `json:"image"`                              // Image URL
	Retired  bool     `json:"retired"`                            // No longer in production
}

// Kind returns the set variant tag
func (s *Set) Kind() ItemKind { return KindSet }

// CatalogID returns the primary key
func (s *Set) CatalogID() uint { return s.ID }

// DisplayName returns the set name
func (s *Set) DisplayName() string { return s.Name }

// CurrentPrice returns the stored price, or 0 when none exists
func (s *Set) CurrentPrice() float64 {
	if s.PriceUSD == nil {
		return 0
	}
	return *s.PriceUSD
}

// ImageURL returns the optional image URL
func (s *Set) ImageURL() *string { return s.Image }

// Minifigure Model
type Minifigure struct {
	ID          uint     `gorm:"primaryKey" json:"id"`                                     // Primary key
	MinifigID   string   `gorm:"column:minifig_id;uniqueIndex;not null" json:"minifig_id"` // External catalog code
	Name        string   `gorm:"not null" json:"name"`                                     // Minifigure name
	Year        *int     `json:"year"`                                                     // Release year, may be unknown
	Appearances *int     `json:"appearances"`                                              // Number of sets it appears in
	AvgPriceUSD *float64 `gorm:"column:avg_price_usd" json:"avg_price_usd"`                // Current average price
	Image       *string  `json:"image"`                                                    // Image URL
}

// Kind returns the minifigure variant tag
func (m *Minifigure) Kind() ItemKind { return KindMinifigure }

// CatalogID returns the primary key
func (m *Minifigure) CatalogID() uint { return m.ID }

// DisplayName returns the minifigure name
func (m *Minifigure) DisplayName() string { return m.Name }

// CurrentPrice returns the stored average price, or 0 when none exists
func (m *Minifigure) CurrentPrice() float64 {
	if m.AvgPriceUSD == nil {
		return 0
	}
	return *m.AvgPriceUSD
}

// ImageURL returns the optional image URL
func (m *Minifigure) ImageURL() *string { return m.Image }
