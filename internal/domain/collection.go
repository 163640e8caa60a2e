package domain

import "time"

// CollectionItem Model: one user's holding of a specific catalog item.
// At most one row exists per (user, item type, item id); repeat adds
// accumulate quantity on the existing row.
type CollectionItem struct {
	ID              uint      `gorm:"primaryKey" json:"id"`                                               // Primary key
	UserID          uint      `gorm:"not null;uniqueIndex:idx_user_item" json:"user_id"`                  // Owner
	ItemType        ItemKind  `gorm:"not null;uniqueIndex:idx_user_item" json:"item_type"`                // set or minifigure
	ItemID          uint      `gorm:"not null;uniqueIndex:idx_user_item" json:"item_id"`                  // Catalog item primary key
	Name            string    `gorm:"not null" json:"name"`                                               // Display name snapshot at add time
	Quantity        int       `gorm:"not null" json:"quantity"`                                           // Units held, 1..1000
	PaidPriceUSD    float64   `gorm:"column:paid_price_usd;not null" json:"paid_price_usd"`               // Paid price per unit
	ConditionStatus string    `gorm:"column:condition_status;default:new" json:"condition_status"`        // new or used
	Notes           *string   `gorm:"size:500" json:"notes"`                                              // Optional notes, trimmed to 500 chars
	Image           *string   `json:"image"`                                                              // Image snapshot at add time
	AddedAt         time.Time `gorm:"column:added_at;autoCreateTime" json:"added_at"`                     // Acquisition timestamp
	UpdatedAt       time.Time `json:"updated_at"`                                                         // Last modification timestamp
}

// TableName keeps the original table name instead of the pluralized default
func (CollectionItem) TableName() string { return "user_collection" }
