package api

import (
	"brickfolio/internal/domain"    // Importing domain models
	"brickfolio/internal/valuation" // Portfolio statistics
	"net/http"                      // HTTP status codes
	"strings"                       // String manipulation
	"time"                          // Timestamps

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// Ledger bounds; requests outside these fail validation
const (
	MinQuantity  = 1         // Smallest quantity per add/edit
	MaxQuantity  = 1000      // Largest quantity per add/edit
	MaxPaidPrice = 999999.99 // Largest paid price per unit
	MaxNotesLen  = 500       // Notes are trimmed then truncated to this
)

// Request struct for adding an item to the collection.
// Quantity and paidPrice are pointers so "absent" and "zero" stay distinct.
type CollectionAddRequest struct {
	UserID    uint            `json:"userId"`    // Owner of the ledger entry
	ItemType  domain.ItemKind `json:"itemType"`  // set or minifigure
	ItemID    uint            `json:"itemId"`    // Catalog item primary key
	Quantity  *int            `json:"quantity"`  // Units to add
	PaidPrice *float64        `json:"paidPrice"` // Paid price per unit
	Condition string          `json:"condition"` // new or used, defaults to new
	Notes     string          `json:"notes"`     // Optional notes
}

// Request struct for editing an existing ledger entry
type CollectionUpdateRequest struct {
	Quantity  *int     `json:"quantity"`  // Replacement quantity
	PaidPrice *float64 `json:"paidPrice"` // Replacement paid price
	Condition string   `json:"condition"` // new or used, defaults to new
	Notes     string   `json:"notes"`     // Replacement notes
}

// normalizeCondition maps anything outside {new, used} to new
func normalizeCondition(cond string) string {
	if cond == "used" {
		return "used"
	}
	return "new"
}

// normalizeNotes trims and truncates notes, returning nil for empty input
func normalizeNotes(notes string) *string {
	trimmed := strings.TrimSpace(notes)
	if trimmed == "" {
		return nil // Empty notes stored as NULL
	}
	if len(trimmed) > MaxNotesLen {
		trimmed = trimmed[:MaxNotesLen] // Hard cap, matching the column size
	}
	return &trimmed
}

// validBounds checks the shared quantity/price limits for add and edit
func validBounds(quantity int, price float64) (string, bool) {
	if quantity < MinQuantity || quantity > MaxQuantity {
		return "Quantity must be between 1 and 1000", false
	}
	if price < 0 || price > MaxPaidPrice {
		return "Price must be between 0 and 999,999.99", false
	}
	return "", true
}

// lookupCatalogItem fetches the referenced catalog item as its capability
// interface, dispatching on the kind tag
func lookupCatalogItem(db *gorm.DB, kind domain.ItemKind, id uint) (domain.CatalogItem, error) {
	if kind == domain.KindSet {
		var set domain.Set
		if err := db.First(&set, id).Error; err != nil {
			return nil, err
		}
		return &set, nil
	}
	var minifig domain.Minifigure
	if err := db.First(&minifig, id).Error; err != nil {
		return nil, err
	}
	return &minifig, nil
}

// AddToCollectionHandler adds a catalog item to a user's collection.
// A repeat add of the same item accumulates quantity on the existing row
// via an atomic single-statement increment, so concurrent identical adds
// cannot lose updates.
func AddToCollectionHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CollectionAddRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
			return
		}
		// All identifying fields plus quantity and paid price are mandatory
		if req.UserID == 0 || req.ItemType == "" || req.ItemID == 0 || req.Quantity == nil || req.PaidPrice == nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing required fields"})
			return
		}
		// Item type must be one of the two catalog kinds
		if !domain.ValidKind(req.ItemType) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid item type"})
			return
		}
		// Quantity and price limits
		if msg, ok := validBounds(*req.Quantity, *req.PaidPrice); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
			return
		}
		// Users may only grow their own collection; admins may act for anyone
		if !canAccessUser(c, req.UserID) {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Access denied"})
			return
		}
		// The target user must exist
		var user domain.User
		if err := db.First(&user, req.UserID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}
		// The referenced catalog item must exist
		item, err := lookupCatalogItem(db, req.ItemType, req.ItemID)
		if err != nil {
			if req.ItemType == domain.KindSet {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Set not found"})
			} else {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Minifigure not found"})
			}
			return
		}
		// Repeat add: accumulate quantity on the existing row.
		// The existence probe decides the response shape; the increment itself
		// is a single UPDATE expression, so it stays correct under races.
		var existing domain.CollectionItem
		err = db.Where("user_id = ? AND item_type = ? AND item_id = ?", req.UserID, req.ItemType, req.ItemID).
			First(&existing).Error
		if err == nil {
			incErr := db.Model(&domain.CollectionItem{}).
				Where("id = ?", existing.ID).
				Updates(map[string]any{
					"quantity":   gorm.Expr("quantity + ?", *req.Quantity), // Atomic accumulation
					"updated_at": time.Now(),                               // Touch the row
				}).Error
			if incErr != nil {
				logrus.WithFields(logrus.Fields{
					"user_id": req.UserID,     // Owner
					"item":    req.ItemID,     // Catalog item id
					"error":   incErr.Error(), // Error message
				}).Error("Collection quantity update failed") // Log failure
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to add item to collection"})
				return
			}
			// Price, condition and notes on the existing row are untouched
			c.JSON(http.StatusOK, gin.H{"success": true, "message": "Quantity updated in collection", "updated": true})
			return
		}
		if err != gorm.ErrRecordNotFound {
			// Unexpected store failure during the probe
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to add item to collection"})
			return
		}
		// First add: snapshot the item's display name and image
		entry := domain.CollectionItem{
			UserID:          req.UserID,                        // Owner
			ItemType:        req.ItemType,                      // Kind tag
			ItemID:          item.CatalogID(),                  // Catalog item primary key
			Name:            item.DisplayName(),                // Name snapshot
			Quantity:        *req.Quantity,                     // Units acquired
			PaidPriceUSD:    *req.PaidPrice,                    // Paid price per unit
			ConditionStatus: normalizeCondition(req.Condition), // new or used
			Notes:           normalizeNotes(req.Notes),         // Trimmed notes
			Image:           item.ImageURL(),                   // Image snapshot
		}
		if err := db.Create(&entry).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": req.UserID,  // Owner
				"item":    req.ItemID,  // Catalog item id
				"error":   err.Error(), // Error message
			}).Error("Collection insert failed") // Log failure
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to add item to collection"})
			return
		}
		// Log the acquisition
		logrus.WithFields(logrus.Fields{
			"user_id":  req.UserID,    // Owner
			"item":     req.ItemID,    // Catalog item id
			"kind":     req.ItemType,  // set or minifigure
			"quantity": *req.Quantity, // Units acquired
		}).Info("Item added to collection")
		// Return the new ledger row id
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Item added to collection successfully", "itemId": entry.ID})
	}
}

// GetCollectionHandler returns a user's ledger rows plus portfolio statistics
func GetCollectionHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := parseUintParam(c, "userId")
		if !ok {
			return
		}
		// Only the owner or an admin may read the collection
		if !canAccessUser(c, userID) {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Access denied"})
			return
		}
		var items []domain.CollectionItem // Slice to hold ledger rows
		if err := db.Where("user_id = ?", userID).Order("added_at desc").Find(&items).Error; err != nil {
			// Empty items plus zero stats so clients render "no data"
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "items": []domain.CollectionItem{}, "stats": valuation.Stats{}})
			return
		}
		// Compute portfolio statistics against current catalog prices
		stats := valuation.Compute(items, priceLookup(db))
		c.JSON(http.StatusOK, gin.H{"success": true, "items": items, "stats": stats})
	}
}

// priceLookup builds a valuation.PriceLookup over the live catalog tables.
// A missing row or NULL price reads as "no price", contributing 0.
func priceLookup(db *gorm.DB) valuation.PriceLookup {
	return func(kind domain.ItemKind, itemID uint) (float64, bool) {
		item, err := lookupCatalogItem(db, kind, itemID)
		if err != nil {
			return 0, false // Catalog item deleted since the add
		}
		return item.CurrentPrice(), true
	}
}

// UpdateCollectionItemHandler replaces quantity, paid price, condition and
// notes on an existing ledger entry
func UpdateCollectionItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		collectionID, ok := parseUintParam(c, "collectionId")
		if !ok {
			return
		}
		var req CollectionUpdateRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil || req.PaidPrice == nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Quantity and paid price are required"})
			return
		}
		// Same bounds as the add path
		if msg, okBounds := validBounds(*req.Quantity, *req.PaidPrice); !okBounds {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
			return
		}
		var entry domain.CollectionItem // Fetch existing entry
		if err := db.First(&entry, collectionID).Error; err != nil {
			// If entry not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Item not found in collection"})
			return
		}
		// Only the owner or an admin may edit the entry
		if !canAccessUser(c, entry.UserID) {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Access denied"})
			return
		}
		// Full replace of the editable fields
		updates := map[string]any{
			"quantity":         *req.Quantity,                     // Replacement quantity
			"paid_price_usd":   *req.PaidPrice,                    // Replacement paid price
			"condition_status": normalizeCondition(req.Condition), // new or used
			"notes":            normalizeNotes(req.Notes),         // Trimmed notes
			"updated_at":       time.Now(),                        // Touch the row
		}
		if err := db.Model(&entry).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update item"})
			return
		}
		// Re-read so the response reflects the stored row
		if err := db.First(&entry, collectionID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update item"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Item updated successfully", "item": entry})
	}
}

// RemoveFromCollectionHandler deletes a ledger entry by id
func RemoveFromCollectionHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		collectionID, ok := parseUintParam(c, "collectionId")
		if !ok {
			return
		}
		var entry domain.CollectionItem // Fetch existing entry
		if err := db.First(&entry, collectionID).Error; err != nil {
			// If entry not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Item not found in collection"})
			return
		}
		// Only the owner or an admin may remove the entry
		if !canAccessUser(c, entry.UserID) {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Access denied"})
			return
		}
		if err := db.Delete(&entry).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to remove item"})
			return
		}
		// Log the removal
		logrus.WithFields(logrus.Fields{
			"user_id":       entry.UserID, // Owner
			"collection_id": entry.ID,     // Ledger row id
		}).Info("Item removed from collection")
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Item removed from collection"})
	}
}
