package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"socialnet/backend/internal/database"
	"socialnet/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createPostAt(t *testing.T, author models.User, content string, createdAt time.Time) models.Post {
	t.Helper()
	post := models.Post{UserID: author.ID, Content: content, CreatedAt: createdAt}
	require.NoError(t, database.DB.Create(&post).Error)
	return post
}

func TestFeedVisibility(t *testing.T) {
	router := setupTest(t)
	alice := createTestUser(t, "Alice", "alice@example.com")
	bob := createTestUser(t, "Bob", "bob@example.com")
	carol := createTestUser(t, "Carol", "carol@example.com")
	befriend(t, alice, bob)

	base := time.Now().Add(-time.Hour)
	createPostAt(t, alice, "by alice", base)
	createPostAt(t, bob, "by bob", base.Add(time.Minute))
	createPostAt(t, carol, "by carol", base.Add(2*time.Minute))

	w := doJSON(router, "GET", "/api/feed", tokenFor(t, alice.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var page PaginatedResponse[PostResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))

	// Own posts and accepted friends' posts only; Carol is invisible.
	require.Len(t, page.Items, 2)
	assert.Equal(t, "by bob", page.Items[0].Content)
	assert.Equal(t, "by alice", page.Items[1].Content)
	assert.EqualValues(t, 2, page.TotalItems)
}

func TestFeedExcludesPendingAndDeclined(t *testing.T) {
	router := setupTest(t)
	alice := createTestUser(t, "Alice", "alice@example.com")
	bob := createTestUser(t, "Bob", "bob@example.com")
	carol := createTestUser(t, "Carol", "carol@example.com")

	require.NoError(t, database.DB.Create(&models.Friendship{
		User1ID: alice.ID, User2ID: bob.ID, Status: models.StatusPending,
	}).Error)
	require.NoError(t, database.DB.Create(&models.Friendship{
		User1ID: carol.ID, User2ID: alice.ID, Status: models.StatusDeclined,
	}).Error)

	createTestPost(t, bob, "pending author")
	createTestPost(t, carol, "declined author")

	w := doJSON(router, "GET", "/api/feed", tokenFor(t, alice.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var page PaginatedResponse[PostResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Empty(t, page.Items)
	assert.EqualValues(t, 0, page.TotalItems)
}

func TestFeedNewestFirst(t *testing.T) {
	router := setupTest(t)
	alice := createTestUser(t, "Alice", "alice@example.com")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		createPostAt(t, alice, fmt.Sprintf("post %d", i), base.Add(time.Duration(i)*time.Minute))
	}

	w := doJSON(router, "GET", "/api/feed", tokenFor(t, alice.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var page PaginatedResponse[PostResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Items, 5)
	assert.Equal(t, "post 4", page.Items[0].Content)
	assert.Equal(t, "post 0", page.Items[4].Content)
}

func TestFeedPagination(t *testing.T) {
	router := setupTest(t)
	alice := createTestUser(t, "Alice", "alice@example.com")
	token := tokenFor(t, alice.ID)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 7; i++ {
		createPostAt(t, alice, fmt.Sprintf("post %d", i), base.Add(time.Duration(i)*time.Minute))
	}

	w := doJSON(router, "GET", "/api/feed?page=1&limit=3", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var page PaginatedResponse[PostResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 3, page.PerPage)
	assert.EqualValues(t, 7, page.TotalItems)
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Items, 3)
	assert.Equal(t, "post 6", page.Items[0].Content)

	// The last page holds the remainder.
	w = doJSON(router, "GET", "/api/feed?page=3&limit=3", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, "post 0", page.Items[0].Content)
}

func TestFeedPageBeyondEndIsEmpty(t *testing.T) {
	router := setupTest(t)
	alice := createTestUser(t, "Alice", "alice@example.com")
	createTestPost(t, alice, "only post")

	w := doJSON(router, "GET", "/api/feed?page=5&limit=10", tokenFor(t, alice.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var page PaginatedResponse[PostResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.EqualValues(t, 1, page.TotalItems)
}
