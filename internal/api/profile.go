package api

import (
	"brickfolio/internal/domain" // Importing domain models
	"net/http"                   // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// Request struct for profile updates
type ProfileUpdateRequest struct {
	Name string  `json:"name" binding:"required"` // Display name must be provided
	Bio  *string `json:"bio"`                     // Optional bio, null clears it
}

// GetProfileHandler returns a user's public profile
func GetProfileHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Only the user themselves or an admin may read the profile
		targetID, ok := parseUintParam(c, "id")
		if !ok {
			return // parseUintParam already responded
		}
		if !canAccessUser(c, targetID) {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Access denied"})
			return
		}
		var user domain.User // Fetch user from database
		if err := db.First(&user, targetID).Error; err != nil {
			// If user not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}
		// Return the profile
		c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
	}
}

// UpdateProfileHandler updates a user's name and bio
func UpdateProfileHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		targetID, ok := parseUintParam(c, "id")
		if !ok {
			return
		}
		// Only the user themselves or an admin may update the profile
		if !canAccessUser(c, targetID) {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Access denied"})
			return
		}
		var req ProfileUpdateRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Name is required"})
			return
		}
		var user domain.User // Fetch user from database
		if err := db.First(&user, targetID).Error; err != nil {
			// If user not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}
		// Apply the update; bio may be cleared with null
		if err := db.Model(&user).Updates(map[string]any{"name": req.Name, "bio": req.Bio}).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": targetID,    // Target user ID
				"error":   err.Error(), // Error message
			}).Error("Profile update failed") // Log failure
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update profile"})
			return
		}
		// Re-read so the response reflects the stored row
		if err := db.First(&user, targetID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update profile"})
			return
		}
		// Return the updated profile
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Profile updated successfully", "user": user})
	}
}

// GetUserCollectionHandler returns a user's raw ledger rows, newest first.
// The stats-bearing variant lives on /collection/:userId.
func GetUserCollectionHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		targetID, ok := parseUintParam(c, "id")
		if !ok {
			return
		}
		// Only the user themselves or an admin may read the collection
		if !canAccessUser(c, targetID) {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Access denied"})
			return
		}
		var items []domain.CollectionItem // Slice to hold ledger rows
		if err := db.Where("user_id = ?", targetID).Order("added_at desc").Find(&items).Error; err != nil {
			// Empty array fallback so clients render "no data" instead of crashing
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "items": []domain.CollectionItem{}})
			return
		}
		// Return the ledger rows
		c.JSON(http.StatusOK, gin.H{"success": true, "items": items})
	}
}
