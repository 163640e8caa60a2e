package domain

// User Model
type User struct {
	ID       uint    `gorm:"primaryKey" json:"id"`         // Primary key
	Name     string  `gorm:"not null" json:"name"`         // Display name
	Email    string  `gorm:"unique;not null" json:"email"` // Unique email, login identity
	Password string  `gorm:"not null" json:"-"`            // Bcrypt hash, never serialized
	Role     string  `gorm:"default:user" json:"role"`     // Role: user or admin
	Bio      *string `json:"bio"`                          // Optional profile bio
}
