package main

import (
	"brickfolio/internal/api"        // Custom package for API handlers
	"brickfolio/internal/config"     // Custom package for configuration
	"brickfolio/internal/middleware" // Custom package for middleware
	"context"                        // context package is needed for Redis operations
	"log"                            // log package is needed for logging

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the database
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// All routes live under /api
	apiGroup := r.Group("/api")

	// Public routes: auth plus anonymous catalog and article reads
	apiGroup.POST("/register", api.RegisterHandler(db))                          // Registration endpoint
	apiGroup.POST("/login", api.LoginHandler(db, cfg.JWTSecret))                 // Login endpoint
	apiGroup.GET("/sets", api.ListSetsHandler(db, redisClient))                  // Set catalog (cached)
	apiGroup.GET("/minifigures", api.ListMinifiguresHandler(db, redisClient))    // Minifigure catalog (cached)
	apiGroup.GET("/articles", api.ListArticlesHandler(db))                       // Article list
	apiGroup.GET("/articles/:id", api.GetArticleHandler(db))                     // Single article

	// Authenticated routes (valid bearer token required)
	authGroup := apiGroup.Group("")
	authGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	authGroup.GET("/profile/:id", api.GetProfileHandler(db))                          // Profile read (self or admin)
	authGroup.PUT("/profile/:id", api.UpdateProfileHandler(db))                       // Profile update (self or admin)
	authGroup.GET("/profile/:id/collection", api.GetUserCollectionHandler(db))        // Raw ledger rows
	authGroup.POST("/collection/add", api.AddToCollectionHandler(db))                 // Ledger add
	authGroup.GET("/collection/:userId", api.GetCollectionHandler(db))                // Ledger plus stats
	authGroup.PUT("/collection/:collectionId", api.UpdateCollectionItemHandler(db))   // Ledger edit
	authGroup.DELETE("/collection/:collectionId", api.RemoveFromCollectionHandler(db)) // Ledger remove

	// Admin routes (token plus admin role, re-checked against the DB)
	adminGroup := apiGroup.Group("")
	adminGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), middleware.AdminOnlyMiddleware(db))
	adminGroup.POST("/sets", api.CreateSetHandler(db, redisClient))                      // Set create
	adminGroup.PUT("/sets/:id", api.UpdateSetHandler(db, redisClient))                   // Set update
	adminGroup.DELETE("/sets/:id", api.DeleteSetHandler(db, redisClient))                // Set delete
	adminGroup.POST("/minifigures", api.CreateMinifigureHandler(db, redisClient))        // Minifigure create
	adminGroup.PUT("/minifigures/:id", api.UpdateMinifigureHandler(db, redisClient))     // Minifigure update
	adminGroup.DELETE("/minifigures/:id", api.DeleteMinifigureHandler(db, redisClient))  // Minifigure delete
	adminGroup.POST("/articles", api.CreateArticleHandler(db))                           // Article create
	adminGroup.PUT("/articles/:id", api.UpdateArticleHandler(db))                        // Article update
	adminGroup.DELETE("/articles/:id", api.DeleteArticleHandler(db))                     // Article delete

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
