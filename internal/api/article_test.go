package api_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"brickfolio/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticleCRUD(t *testing.T) {
	db := memdb(t)
	r := newRouter(db, nil)
	admin := createUser(t, db, "Leia", "leia@rebellion.org", "alderaan1", "admin")
	token := tokenFor(t, admin)

	// Create requires title, content and category
	code, _ := doJSON(t, r, http.MethodPost, "/api/articles", token, map[string]any{"title": "Only a title"})
	assert.Equal(t, http.StatusBadRequest, code)

	// Category outside the editorial set is rejected
	code, body := doJSON(t, r, http.MethodPost, "/api/articles", token, map[string]any{
		"title": "UCS Falcon retires", "content": "The big one is going away.", "category": "gossip",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, body["message"], "Invalid category")

	code, body = doJSON(t, r, http.MethodPost, "/api/articles", token, map[string]any{
		"title": "UCS Falcon retires", "content": "The big one is going away.", "category": "news",
	})
	require.Equal(t, http.StatusOK, code)
	created := body["article"].(map[string]any)
	articleID := uint(created["id"].(float64))
	assert.Equal(t, "news", created["category"])

	// Anyone can read it back, no token needed
	code, body = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/articles/%d", articleID), "", nil)
	require.Equal(t, http.StatusOK, code)
	fetched := body["article"].(map[string]any)
	assert.Equal(t, "UCS Falcon retires", fetched["title"])

	code, _ = doJSON(t, r, http.MethodGet, "/api/articles/999", "", nil)
	assert.Equal(t, http.StatusNotFound, code)

	// Delete, then the id is gone
	code, _ = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/articles/%d", articleID), token, nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/articles/%d", articleID), token, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestArticlePartialUpdate(t *testing.T) {
	db := memdb(t)
	r := newRouter(db, nil)
	admin := createUser(t, db, "Leia", "leia@rebellion.org", "alderaan1", "admin")
	token := tokenFor(t, admin)

	article := domain.Article{Title: "Pricing used minifigures", Content: "Check the torso print.", Category: "tutorial"}
	require.NoError(t, db.Create(&article).Error)

	// Only the title changes; content and category survive
	code, body := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/articles/%d", article.ID), token, map[string]any{
		"title": "Pricing used minifigures, 2026 edition",
	})
	require.Equal(t, http.StatusOK, code)
	updated := body["article"].(map[string]any)
	assert.Equal(t, "Pricing used minifigures, 2026 edition", updated["title"])
	assert.Equal(t, "Check the torso print.", updated["content"])
	assert.Equal(t, "tutorial", updated["category"])

	// An invalid category in a partial update is rejected before any write
	code, _ = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/articles/%d", article.ID), token, map[string]any{
		"category": "gossip",
	})
	assert.Equal(t, http.StatusBadRequest, code)

	// Unknown article id
	code, _ = doJSON(t, r, http.MethodPut, "/api/articles/999", token, map[string]any{"title": "x"})
	assert.Equal(t, http.StatusNotFound, code)
}

func TestArticleListNewestFirst(t *testing.T) {
	db := memdb(t)
	r := newRouter(db, nil)

	first := domain.Article{Title: "Older", Content: "a", Category: "news"}
	require.NoError(t, db.Create(&first).Error)
	second := domain.Article{Title: "Newer", Content: "b", Category: "market"}
	require.NoError(t, db.Create(&second).Error)
	// Push the second article clearly ahead of the first
	require.NoError(t, db.Model(&second).Update("created_at", first.CreatedAt.Add(time.Hour)).Error)

	code, body := doJSON(t, r, http.MethodGet, "/api/articles", "", nil)
	require.Equal(t, http.StatusOK, code)
	articles := body["articles"].([]any)
	require.Len(t, articles, 2)
	assert.Equal(t, "Newer", articles[0].(map[string]any)["title"])
	assert.Equal(t, "Older", articles[1].(map[string]any)["title"])
}
