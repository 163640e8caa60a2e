package domain

import "time"

// Allowed article categories
var ArticleCategories = []string{"news", "review", "tutorial", "market"}

// ValidCategory reports whether c is one of the editorial categories
func ValidCategory(c string) bool {
	for _, v := range ArticleCategories {
		if v == c {
			return true
		}
	}
	return false
}

// Article Model
type Article struct {
	ID        uint      `gorm:"primaryKey" json:"id"`                 // Primary key
	Title     string    `gorm:"not null" json:"title"`                // Article title
	Content   string    `gorm:"type:text;not null" json:"content"`    // Article body
	Category  string    `gorm:"not null" json:"category"`             // One of news, review, tutorial, market
	Image     *string   `json:"image"`                                // Optional image URL
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`     // Timestamp of creation
}
