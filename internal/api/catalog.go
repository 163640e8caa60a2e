package api

import (
	"brickfolio/internal/domain" // Importing domain models
	"brickfolio/internal/utils"  // Utility functions
	"context"                    // Context for Redis operations
	"net/http"                   // HTTP status codes

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// Request struct for set create/update (full replace, like the admin form submits)
type SetRequest struct {
	SetID    string   `json:"set_id"`    // External catalog code
	Name     string   `json:"name"`      // Set name
	Year     *int     `json:"year"`      // Release year
	Pieces   *int     `json:"pieces"`    // Piece count
	PriceUSD *float64 `json:"price_usd"` // Market price
	ImageURL *string  `json:"image_url"` // Image URL
	Retired  bool     `json:"retired"`   // Retirement flag
}

// Request struct for minifigure create/update
type MinifigureRequest struct {
	MinifigID   string   `json:"minifig_id"`    // External catalog code
	Name        string   `json:"name"`          // Minifigure name
	Year        *int     `json:"year"`          // Release year
	Appearances *int     `json:"appearances"`   // Set appearance count
	AvgPriceUSD *float64 `json:"avg_price_usd"` // Average price
	ImageURL    *string  `json:"image_url"`     // Image URL
}

// ListSetsHandler returns the full set catalog, Redis-cached for 60 seconds.
// A read may observe a price mid-refresh; prices are advisory so that is fine.
func ListSetsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Context for Redis operations
		var sets []domain.Set       // Slice to hold sets
		// Try the cache first
		if rdb != nil {
			found, err := utils.GetCache(ctx, rdb, utils.SetsCacheKey, &sets)
			if err == nil && found {
				// Return cached list
				c.JSON(http.StatusOK, gin.H{"success": true, "sets": sets, "cached": true})
				return
			}
		}
		// If not in cache, fetch from DB ordered by name
		if err := db.Order("name").Find(&sets).Error; err != nil {
			// Empty array fallback on store failure
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "sets": []domain.Set{}})
			return
		}
		// Cache the list for subsequent reads
		if rdb != nil {
			_ = utils.SetCache(ctx, rdb, utils.SetsCacheKey, sets, utils.CatalogCacheTTL)
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "sets": sets, "cached": false}) // Return set list
	}
}

// CreateSetHandler creates a new catalog set (admin only)
func CreateSetHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SetRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil || req.SetID == "" || req.Name == "" {
			// External id and name are the minimum for a catalog row
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Set ID and name are required"})
			return
		}
		// Build the new set from the request
		set := domain.Set{
			SetID:    req.SetID,    // External catalog code
			Name:     req.Name,     // Set name
			Year:     req.Year,     // Release year
			Pieces:   req.Pieces,   // Piece count
			PriceUSD: req.PriceUSD, // Market price
			Image:    req.ImageURL, // Image URL
			Retired:  req.Retired,  // Retirement flag
		}
		// Attempt to create the set in the database
		if err := db.Create(&set).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"set_id": req.SetID,   // External catalog code
				"error":  err.Error(), // Error message
			}).Error("Set creation failed") // Log failure
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create set"})
			return
		}
		utils.InvalidateCatalogCache(context.Background(), rdb) // Drop the stale list cache
		// Return the created set
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Set created successfully", "set": set})
	}
}

// UpdateSetHandler replaces a catalog set's fields (admin only)
func UpdateSetHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUintParam(c, "id")
		if !ok {
			return
		}
		var req SetRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
			return
		}
		var set domain.Set // Fetch existing set
		if err := db.First(&set, id).Error; err != nil {
			// If set not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Set not found"})
			return
		}
		// Full-replace update, matching the admin edit form
		updates := map[string]any{
			"set_id":    req.SetID,    // External catalog code
			"name":      req.Name,     // Set name
			"year":      req.Year,     // Release year
			"pieces":    req.Pieces,   // Piece count
			"price_usd": req.PriceUSD, // Market price
			"image":     req.ImageURL, // Image URL
			"retired":   req.Retired,  // Retirement flag
		}
		if err := db.Model(&set).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update set"})
			return
		}
		// Re-read so the response reflects the stored row
		if err := db.First(&set, id).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update set"})
			return
		}
		utils.InvalidateCatalogCache(context.Background(), rdb) // Drop the stale list cache
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Set updated successfully", "set": set})
	}
}

// DeleteSetHandler removes a catalog set (admin only). Ledger rows referencing
// it survive; valuation treats their price as 0 from then on.
func DeleteSetHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUintParam(c, "id")
		if !ok {
			return
		}
		var set domain.Set // Fetch existing set
		if err := db.First(&set, id).Error; err != nil {
			// If set not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Set not found"})
			return
		}
		if err := db.Delete(&set).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete set"})
			return
		}
		utils.InvalidateCatalogCache(context.Background(), rdb) // Drop the stale list cache
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Set deleted successfully"})
	}
}

// ListMinifiguresHandler returns the full minifigure catalog, Redis-cached for 60 seconds
func ListMinifiguresHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()         // Context for Redis operations
		var minifigs []domain.Minifigure    // Slice to hold minifigures
		// Try the cache first
		if rdb != nil {
			found, err := utils.GetCache(ctx, rdb, utils.MinifigsCacheKey, &minifigs)
			if err == nil && found {
				// Return cached list
				c.JSON(http.StatusOK, gin.H{"success": true, "minifigures": minifigs, "cached": true})
				return
			}
		}
		// If not in cache, fetch from DB ordered by name
		if err := db.Order("name").Find(&minifigs).Error; err != nil {
			// Empty array fallback on store failure
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "minifigures": []domain.Minifigure{}})
			return
		}
		// Cache the list for subsequent reads
		if rdb != nil {
			_ = utils.SetCache(ctx, rdb, utils.MinifigsCacheKey, minifigs, utils.CatalogCacheTTL)
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "minifigures": minifigs, "cached": false}) // Return minifigure list
	}
}

// CreateMinifigureHandler creates a new catalog minifigure (admin only)
func CreateMinifigureHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req MinifigureRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil || req.MinifigID == "" || req.Name == "" {
			// External id and name are the minimum for a catalog row
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Minifigure ID and name are required"})
			return
		}
		// Build the new minifigure from the request
		minifig := domain.Minifigure{
			MinifigID:   req.MinifigID,   // External catalog code
			Name:        req.Name,        // Minifigure name
			Year:        req.Year,        // Release year
			Appearances: req.Appearances, // Appearance count
			AvgPriceUSD: req.AvgPriceUSD, // Average price
			Image:       req.ImageURL,    // Image URL
		}
		// Attempt to create the minifigure in the database
		if err := db.Create(&minifig).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"minifig_id": req.MinifigID, // External catalog code
				"error":      err.Error(),   // Error message
			}).Error("Minifigure creation failed") // Log failure
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create minifigure"})
			return
		}
		utils.InvalidateCatalogCache(context.Background(), rdb) // Drop the stale list cache
		// Return the created minifigure
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Minifigure created successfully", "minifigure": minifig})
	}
}

// UpdateMinifigureHandler replaces a catalog minifigure's fields (admin only)
func UpdateMinifigureHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUintParam(c, "id")
		if !ok {
			return
		}
		var req MinifigureRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
			return
		}
		var minifig domain.Minifigure // Fetch existing minifigure
		if err := db.First(&minifig, id).Error; err != nil {
			// If minifigure not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Minifigure not found"})
			return
		}
		// Full-replace update, matching the admin edit form
		updates := map[string]any{
			"minifig_id":    req.MinifigID,   // External catalog code
			"name":          req.Name,        // Minifigure name
			"year":          req.Year,        // Release year
			"appearances":   req.Appearances, // Appearance count
			"avg_price_usd": req.AvgPriceUSD, // Average price
			"image":         req.ImageURL,    // Image URL
		}
		if err := db.Model(&minifig).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update minifigure"})
			return
		}
		// Re-read so the response reflects the stored row
		if err := db.First(&minifig, id).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update minifigure"})
			return
		}
		utils.InvalidateCatalogCache(context.Background(), rdb) // Drop the stale list cache
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Minifigure updated successfully", "minifigure": minifig})
	}
}

// DeleteMinifigureHandler removes a catalog minifigure (admin only)
func DeleteMinifigureHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUintParam(c, "id")
		if !ok {
			return
		}
		var minifig domain.Minifigure // Fetch existing minifigure
		if err := db.First(&minifig, id).Error; err != nil {
			// If minifigure not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Minifigure not found"})
			return
		}
		if err := db.Delete(&minifig).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete minifigure"})
			return
		}
		utils.InvalidateCatalogCache(context.Background(), rdb) // Drop the stale list cache
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Minifigure deleted successfully"})
	}
}
