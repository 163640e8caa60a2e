package api

import (
	"brickfolio/internal/domain" // Importing domain models
	"brickfolio/internal/utils"  // Utility functions
	"net/http"                   // HTTP status codes
	"regexp"                     // Regular expressions
	"strings"                    // String manipulation

	"github.com/gin-gonic/gin"   // Gin web framework
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// Request struct for registration
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`     // Display name must be provided
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Request struct for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// emailPattern is a light sanity check, not full RFC validation
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// isValidEmail checks that the email looks like an address
func isValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// RegisterHandler creates a new user account. The role is always "user";
// admins are created out of band, never through this endpoint.
func RegisterHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Name, email and password are required"})
			return
		}
		// Validate email shape
		if !isValidEmail(req.Email) {
			// If email is invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid email address"})
			return
		}
		// Reject duplicate emails up front for a clear message
		var existing domain.User
		if err := db.Where("email = ?", strings.ToLower(req.Email)).First(&existing).Error; err == nil {
			// If a user already holds this email, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email is already registered"})
			return
		}
		// Hash the password and create the user
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			// If hashing fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to register user"})
			return
		}
		// Create user with lowercase email to ensure uniqueness
		user := domain.User{Name: req.Name, Email: strings.ToLower(req.Email), Password: string(hash), Role: "user"}
		// Attempt to create the user in the database
		if err := db.Create(&user).Error; err != nil {
			// Unique index may still fire under a concurrent duplicate register
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email is already registered"})
			return
		}
		// Return success response
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "User registered successfully"})
	}
}

// LoginHandler authenticates a user and returns a JWT token plus the user record
func LoginHandler(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email and password are required"})
			return
		}
		var user domain.User // Fetch user from database
		if err := db.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error; err != nil {
			// If user not found, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User not found"})
			return
		}
		// Compare provided password with stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Incorrect password"})
			return
		}
		// Generate JWT token carrying the user id and role
		token, err := utils.GenerateJWT(user.ID, user.Role, jwtSecret)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to generate token"})
			return
		}
		// Return the token and the user (password is never serialized)
		c.JSON(http.StatusOK, gin.H{"success": true, "token": token, "user": user})
	}
}
