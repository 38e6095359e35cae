package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"socialnet/backend/internal/database"
	"socialnet/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePost(t *testing.T) {
	router := setupTest(t)
	alice := createTestUser(t, "Alice", "alice@example.com")

	w := doJSON(router, "POST", "/api/posts", tokenFor(t, alice.ID), PostInput{Content: "Hello world"})
	require.Equal(t, http.StatusCreated, w.Code)

	var post PostResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
	assert.Equal(t, "Hello world", post.Content)
	assert.Equal(t, alice.ID, post.UserID)
	assert.Equal(t, "Alice", post.AuthorFullName)
}

func TestCreatePostImageOnly(t *testing.T) {
	router := setupTest(t)
	alice := createTestUser(t, "Alice", "alice@example.com")

	w := doJSON(router, "POST", "/api/posts", tokenFor(t, alice.ID),
		PostInput{ImageURL: "/static/uploads/posts/pic.png"})
	require.Equal(t, http.StatusCreated, w.Code)

	var post PostResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
	assert.Empty(t, post.Content)
	assert.Equal(t, "/static/uploads/posts/pic.png", post.ImageURL)
}

// Browser clients post multipart forms even when no image was chosen; the
// content field alone must be enough.
func TestCreatePostMultipartWithoutImage(t *testing.T) {
	router := setupTest(t)
	alice := createTestUser(t, "Alice", "alice@example.com")

	w := doForm(router, "POST", "/api/posts", tokenFor(t, alice.ID),
		map[string]string{"content": "hello from a form"})
	require.Equal(t, http.StatusCreated, w.Code)

	var post PostResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
	assert.Equal(t, "hello from a form", post.Content)
	assert.Empty(t, post.ImageURL)
}

func TestCreatePostMultipartEmpty(t *testing.T) {
	router := setupTest(t)
	alice := createTestUser(t, "Alice", "alice@example.com")

	w := doForm(router, "POST", "/api/posts", tokenFor(t, alice.ID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreatePostEmpty(t *testing.T) {
	router := setupTest(t)
	alice := createTestUser(t, "Alice", "alice@example.com")

	w := doJSON(router, "POST", "/api/posts", tokenFor(t, alice.ID), PostInput{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestToggleLike(t *testing.T) {
	router := setupTest(t)
	alice := createTestUser(t, "Alice", "alice@example.com")
	post := createTestPost(t, alice, "Likable")
	token := tokenFor(t, alice.ID)
	path := fmt.Sprintf("/api/posts/%d/like", post.ID)

	w := doJSON(router, "POST", path, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["liked"])

	var count int64
	require.NoError(t, database.DB.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// A second call removes the like instead of stacking another one.
	w = doJSON(router, "POST", path, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeBody(t, w)["liked"])

	require.NoError(t, database.DB.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestToggleLikeUnknownPost(t *testing.T) {
	router := setupTest(t)
	alice := createTestUser(t, "Alice", "alice@example.com")

	w := doJSON(router, "POST", "/api/posts/9999/like", tokenFor(t, alice.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLikesFromDifferentUsersAccumulate(t *testing.T) {
	router := setupTest(t)
	alice := createTestUser(t, "Alice", "alice@example.com")
	bob := createTestUser(t, "Bob", "bob@example.com")
	post := createTestPost(t, alice, "Popular")
	path := fmt.Sprintf("/api/posts/%d/like", post.ID)

	for _, viewer := range []models.User{alice, bob} {
		w := doJSON(router, "POST", path, tokenFor(t, viewer.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)
	}

	// The feed reports the live count.
	w := doJSON(router, "GET", "/api/feed", tokenFor(t, alice.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var page PaginatedResponse[PostResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Items, 1)
	assert.EqualValues(t, 2, page.Items[0].LikesCount)
}

func TestCreateComment(t *testing.T) {
	router := setupTest(t)
	alice := createTestUser(t, "Alice", "alice@example.com")
	bob := createTestUser(t, "Bob", "bob@example.com")
	post := createTestPost(t, alice, "Discuss")

	w := doJSON(router, "POST", fmt.Sprintf("/api/posts/%d/comments", post.ID), tokenFor(t, bob.ID),
		CommentInput{Content: "Nice post"})
	require.Equal(t, http.StatusCreated, w.Code)

	var comment CommentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &comment))
	assert.Equal(t, "Nice post", comment.Content)
	assert.Equal(t, bob.ID, comment.UserID)
	assert.Equal(t, "Bob", comment.AuthorFullName)
	assert.Equal(t, post.ID, comment.PostID)
}

func TestCreateCommentMissingContent(t *testing.T) {
	router := setupTest(t)
	alice := createTestUser(t, "Alice", "alice@example.com")
	post := createTestPost(t, alice, "Discuss")

	w := doJSON(router, "POST", fmt.Sprintf("/api/posts/%d/comments", post.ID), tokenFor(t, alice.ID),
		map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListCommentsChronological(t *testing.T) {
	router := setupTest(t)
	alice := createTestUser(t, "Alice", "alice@example.com")
	post := createTestPost(t, alice, "Discuss")
	token := tokenFor(t, alice.ID)

	for _, content := range []string{"first", "second", "third"} {
		w := doJSON(router, "POST", fmt.Sprintf("/api/posts/%d/comments", post.ID), token,
			CommentInput{Content: content})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(router, "GET", fmt.Sprintf("/api/posts/%d/comments", post.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var comments []CommentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &comments))
	require.Len(t, comments, 3)
	assert.Equal(t, "first", comments[0].Content)
	assert.Equal(t, "third", comments[2].Content)
}

func TestListCommentsUnknownPost(t *testing.T) {
	router := setupTest(t)
	alice := createTestUser(t, "Alice", "alice@example.com")

	w := doJSON(router, "GET", "/api/posts/9999/comments", tokenFor(t, alice.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
