package handler

import (
	"net/http"

	"socialnet/backend/internal/database"
	"socialnet/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// GetFeed godoc
// @Summary      Get the feed
// @Description  Returns posts authored by the caller and their accepted friends, newest first.
// @Tags         feed
// @Produce      json
// @Security     BearerAuth
// @Param        page  query int false "Page number" default(1)
// @Param        limit query int false "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[PostResponse]
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /feed [get]
func GetFeed(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	page, limit := pageParams(c, 10)

	// Visible author set: the viewer plus all accepted counterparties, resolved
	// with one explicit query instead of walking relationship collections.
	friendIDs, err := friendIDsOf(viewerID.(uint))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assemble feed"})
		return
	}
	authorIDs := append(friendIDs, viewerID.(uint))

	var totalItems int64
	if err := database.DB.Model(&models.Post{}).
		Where("user_id IN ?", authorIDs).
		Count(&totalItems).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assemble feed"})
		return
	}

	var posts []models.Post
	if err := postsWithCounts(database.DB).
		Where("posts.user_id IN ?", authorIDs).
		Order("posts.created_at DESC, posts.id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assemble feed"})
		return
	}

	items := make([]PostResponse, 0, len(posts))
	for _, post := range posts {
		items = append(items, newPostResponse(post))
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(items, totalItems, page, limit))
}
