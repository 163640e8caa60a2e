package api

import (
	"brickfolio/internal/domain" // Importing domain models
	"net/http"                   // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// Request struct for article creation
type ArticleCreateRequest struct {
	Title    string  `json:"title"`     // Article title
	Content  string  `json:"content"`   // Article body
	Category string  `json:"category"`  // One of news, review, tutorial, market
	ImageURL *string `json:"image_url"` // Optional image URL
}

// Request struct for article updates; only provided fields are touched
type ArticleUpdateRequest struct {
	Title    *string `json:"title"`     // New title, if any
	Content  *string `json:"content"`   // New body, if any
	Category *string `json:"category"`  // New category, if any
	ImageURL *string `json:"image_url"` // New image URL; null clears it
}

// ListArticlesHandler returns all editorial articles, newest first
func ListArticlesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var articles []domain.Article // Slice to hold articles
		if err := db.Order("created_at desc").Find(&articles).Error; err != nil {
			// Empty array fallback on store failure
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "articles": []domain.Article{}})
			return
		}
		// Return the article list
		c.JSON(http.StatusOK, gin.H{"success": true, "articles": articles})
	}
}

// GetArticleHandler returns a single article by id
func GetArticleHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUintParam(c, "id")
		if !ok {
			return
		}
		var article domain.Article // Fetch article from database
		if err := db.First(&article, id).Error; err != nil {
			// If article not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Article not found"})
			return
		}
		// Return the article
		c.JSON(http.StatusOK, gin.H{"success": true, "article": article})
	}
}

// CreateArticleHandler creates an editorial article (admin only)
func CreateArticleHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ArticleCreateRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" || req.Content == "" || req.Category == "" {
			// Title, content and category are all mandatory
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Title, content and category are required"})
			return
		}
		// Category must be one of the editorial categories
		if !domain.ValidCategory(req.Category) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid category"})
			return
		}
		// Build the new article from the request
		article := domain.Article{
			Title:    req.Title,    // Article title
			Content:  req.Content,  // Article body
			Category: req.Category, // Category
			Image:    req.ImageURL, // Optional image URL
		}
		// Attempt to create the article in the database
		if err := db.Create(&article).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create article"})
			return
		}
		// Return the created article
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Article created successfully", "article": article})
	}
}

// UpdateArticleHandler applies a partial update to an article (admin only)
func UpdateArticleHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUintParam(c, "id")
		if !ok {
			return
		}
		var req ArticleUpdateRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
			return
		}
		// Validate category before touching the row
		if req.Category != nil && !domain.ValidCategory(*req.Category) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid category"})
			return
		}
		var article domain.Article // Fetch existing article
		if err := db.First(&article, id).Error; err != nil {
			// If article not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Article not found"})
			return
		}
		// Only provided fields make it into the update
		updates := map[string]any{}
		if req.Title != nil {
			updates["title"] = *req.Title // New title
		}
		if req.Content != nil {
			updates["content"] = *req.Content // New body
		}
		if req.Category != nil {
			updates["category"] = *req.Category // New category
		}
		if req.ImageURL != nil {
			updates["image"] = *req.ImageURL // New image URL
		}
		if len(updates) > 0 {
			if err := db.Model(&article).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update article"})
				return
			}
		}
		// Re-read so the response reflects the stored row
		if err := db.First(&article, id).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update article"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Article updated successfully", "article": article})
	}
}

// DeleteArticleHandler removes an article (admin only)
func DeleteArticleHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUintParam(c, "id")
		if !ok {
			return
		}
		var article domain.Article // Fetch existing article
		if err := db.First(&article, id).Error; err != nil {
			// If article not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Article not found"})
			return
		}
		if err := db.Delete(&article).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete article"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Article deleted successfully"})
	}
}
