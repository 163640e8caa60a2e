package api_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"brickfolio/internal/api"
	"brickfolio/internal/domain"
	"brickfolio/internal/middleware"
	"brickfolio/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

// memdb opens an in-memory database with the full schema
func memdb(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Set{},
		&domain.Minifigure{},
		&domain.Article{},
		&domain.CollectionItem{},
	))
	return db
}

// newRouter wires the same route table as cmd/server against a test database.
// rdb may be nil; the list handlers then skip the cache.
func newRouter(db *gorm.DB, rdb *redis.Client) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	apiGroup := r.Group("/api")
	apiGroup.POST("/register", api.RegisterHandler(db))
	apiGroup.POST("/login", api.LoginHandler(db, testSecret))
	apiGroup.GET("/sets", api.ListSetsHandler(db, rdb))
	apiGroup.GET("/minifigures", api.ListMinifiguresHandler(db, rdb))
	apiGroup.GET("/articles", api.ListArticlesHandler(db))
	apiGroup.GET("/articles/:id", api.GetArticleHandler(db))

	authGroup := apiGroup.Group("")
	authGroup.Use(middleware.JWTAuthMiddleware(testSecret))
	authGroup.GET("/profile/:id", api.GetProfileHandler(db))
	authGroup.PUT("/profile/:id", api.UpdateProfileHandler(db))
	authGroup.GET("/profile/:id/collection", api.GetUserCollectionHandler(db))
	authGroup.POST("/collection/add", api.AddToCollectionHandler(db))
	authGroup.GET("/collection/:userId", api.GetCollectionHandler(db))
	authGroup.PUT("/collection/:collectionId", api.UpdateCollectionItemHandler(db))
	authGroup.DELETE("/collection/:collectionId", api.RemoveFromCollectionHandler(db))

	adminGroup := apiGroup.Group("")
	adminGroup.Use(middleware.JWTAuthMiddleware(testSecret), middleware.AdminOnlyMiddleware(db))
	adminGroup.POST("/sets", api.CreateSetHandler(db, rdb))
	adminGroup.PUT("/sets/:id", api.UpdateSetHandler(db, rdb))
	adminGroup.DELETE("/sets/:id", api.DeleteSetHandler(db, rdb))
	adminGroup.POST("/minifigures", api.CreateMinifigureHandler(db, rdb))
	adminGroup.PUT("/minifigures/:id", api.UpdateMinifigureHandler(db, rdb))
	adminGroup.DELETE("/minifigures/:id", api.DeleteMinifigureHandler(db, rdb))
	adminGroup.POST("/articles", api.CreateArticleHandler(db))
	adminGroup.PUT("/articles/:id", api.UpdateArticleHandler(db))
	adminGroup.DELETE("/articles/:id", api.DeleteArticleHandler(db))

	return r
}

// createUser inserts a user with a hashed password and returns it
func createUser(t *testing.T, db *gorm.DB, name, email, password, role string) domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := domain.User{Name: name, Email: email, Password: string(hash), Role: role}
	require.NoError(t, db.Create(&user).Error)
	return user
}

// tokenFor issues a valid JWT for the given user
func tokenFor(t *testing.T, user domain.User) string {
	t.Helper()
	token, err := utils.GenerateJWT(user.ID, user.Role, testSecret)
	require.NoError(t, err)
	return token
}

// createSet inserts a catalog set with the given current price
func createSet(t *testing.T, db *gorm.DB, setID, name string, price *float64) domain.Set {
	t.Helper()
	set := domain.Set{SetID: setID, Name: name, PriceUSD: price}
	require.NoError(t, db.Create(&set).Error)
	return set
}

// createMinifig inserts a catalog minifigure with the given current price
func createMinifig(t *testing.T, db *gorm.DB, minifigID, name string, price *float64) domain.Minifigure {
	t.Helper()
	fig := domain.Minifigure{MinifigID: minifigID, Name: name, AvgPriceUSD: price}
	require.NoError(t, db.Create(&fig).Error)
	return fig
}

// doJSON performs a request with an optional JSON body and bearer token,
// decoding the response body into a generic map
func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var decoded map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w.Code, decoded
}

func floatPtr(v float64) *float64 { return &v }
