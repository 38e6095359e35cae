package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"socialnet/backend/internal/database"
	"socialnet/backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// region --- DTOs ---

// PostInput defines the JSON structure for creating a post. Posts can also be
// sent as multipart forms with an "image" file part.
type PostInput struct {
	Content  string `json:"content"`
	ImageURL string `json:"image_url"`
}

// PostResponse defines the structure for a post enriched with author fields
// and live like/comment counts.
type PostResponse struct {
	ID                   uint      `json:"id"`
	UserID               uint      `json:"user_id"`
	AuthorFullName       string    `json:"author_full_name"`
	AuthorProfilePicture string    `json:"author_profile_picture"`
	Content              string    `json:"content"`
	ImageURL             string    `json:"image_url"`
	CreatedAt            time.Time `json:"created_at"`
	LikesCount           int64     `json:"likes_count"`
	CommentsCount        int64     `json:"comments_count"`
}

// CommentInput defines the structure for creating a comment.
type CommentInput struct {
	Content string `json:"content" binding:"required"`
}

// CommentResponse defines the structure for a comment with author fields.
type CommentResponse struct {
	ID                   uint      `json:"id"`
	UserID               uint      `json:"user_id"`
	AuthorFullName       string    `json:"author_full_name"`
	AuthorProfilePicture string    `json:"author_profile_picture"`
	PostID               uint      `json:"post_id"`
	Content              string    `json:"content"`
	CreatedAt            time.Time `json:"created_at"`
}

// endregion

func newPostResponse(post models.Post) PostResponse {
	return PostResponse{
		ID:                   post.ID,
		UserID:               post.UserID,
		AuthorFullName:       post.Author.FullName,
		AuthorProfilePicture: post.Author.ProfilePicture,
		Content:              post.Content,
		ImageURL:             post.ImageURL,
		CreatedAt:            post.CreatedAt,
		LikesCount:           post.LikesCount,
		CommentsCount:        post.CommentsCount,
	}
}

func newCommentResponse(comment models.Comment) CommentResponse {
	return CommentResponse{
		ID:                   comment.ID,
		UserID:               comment.UserID,
		AuthorFullName:       comment.Author.FullName,
		AuthorProfilePicture: comment.Author.ProfilePicture,
		PostID:               comment.PostID,
		Content:              comment.Content,
		CreatedAt:            comment.CreatedAt,
	}
}

// postsWithCounts selects posts with their like and comment counts computed by
// counting related rows, so the numbers are never stale.
func postsWithCounts(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Post{}).
		Select("posts.*, " +
			"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) AS likes_count, " +
			"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comments_count").
		Preload("Author")
}

// CreatePost godoc
// @Summary      Create a post
// @Description  Creates a post from JSON or a multipart form with an "image" file. A post needs content or an image; image-only posts store empty content.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body PostInput true "Post content"
// @Success      201  {object}  PostResponse
// @Failure      400  {object}  ErrorResponse "Neither content nor image provided"
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /posts [post]
func CreatePost(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var content, imageURL string

	// Form clients send multipart whether or not a file was attached, so the
	// branch is on the content type, not on the image part being present.
	if c.ContentType() == "multipart/form-data" {
		content = c.PostForm("content")
		if file, err := c.FormFile("image"); err == nil {
			imageURL, err = saveUploadedImage(c, file, "posts")
			if err != nil {
				if errors.Is(err, errBadImageType) {
					c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image file type"})
				} else {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
				}
				return
			}
		}
	} else {
		var input PostInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Content or an image is required for a post"})
			return
		}
		content = input.Content
		imageURL = input.ImageURL
	}

	if content == "" && imageURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content or an image is required for a post"})
		return
	}

	post := models.Post{
		UserID:   viewerID.(uint),
		Content:  content,
		ImageURL: imageURL,
	}
	if err := database.DB.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	database.DB.First(&post.Author, post.UserID)
	c.JSON(http.StatusCreated, newPostResponse(post))
}

// ToggleLike godoc
// @Summary      Like or unlike a post
// @Description  Likes the post, or removes the caller's existing like.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Post ID"
// @Success      200  {object}  map[string]interface{} "{"message": "...", "liked": true}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Post not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /posts/{id}/like [post]
func ToggleLike(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var post models.Post
	if err := database.DB.First(&post, uint(postID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var existing models.Like
	err = database.DB.Where("user_id = ? AND post_id = ?", viewerID, uint(postID)).First(&existing).Error
	if err == nil {
		if err := database.DB.Delete(&existing).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update like status"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Post unliked successfully", "liked": false})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update like status"})
		return
	}

	like := models.Like{UserID: viewerID.(uint), PostID: uint(postID)}
	if err := database.DB.Create(&like).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update like status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post liked successfully", "liked": true})
}

// CreateComment godoc
// @Summary      Comment on a post
// @Description  Appends a comment to a post.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path int          true "Post ID"
// @Param        input body CommentInput true "Comment content"
// @Success      201  {object}  CommentResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Post not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /posts/{id}/comments [post]
func CreateComment(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var post models.Post
	if err := database.DB.First(&post, uint(postID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content is required for a comment"})
		return
	}

	comment := models.Comment{
		UserID:  viewerID.(uint),
		PostID:  uint(postID),
		Content: input.Content,
	}
	if err := database.DB.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post comment"})
		return
	}

	database.DB.First(&comment.Author, comment.UserID)
	c.JSON(http.StatusCreated, newCommentResponse(comment))
}

// ListComments godoc
// @Summary      List comments on a post
// @Description  Returns a post's comments in chronological order.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Post ID"
// @Success      200  {array}   CommentResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Post not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /posts/{id}/comments [get]
func ListComments(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var post models.Post
	if err := database.DB.First(&post, uint(postID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var comments []models.Comment
	if err := database.DB.
		Where("post_id = ?", uint(postID)).
		Order("created_at ASC").
		Preload("Author").
		Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}

	responses := make([]CommentResponse, 0, len(comments))
	for _, comment := range comments {
		responses = append(responses, newCommentResponse(comment))
	}

	c.JSON(http.StatusOK, responses)
}
