package handler

import (
	"net/http"
	"strconv"
	"time"

	"socialnet/backend/internal/config"
	"socialnet/backend/internal/database"
	"socialnet/backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdminUserResponse defines the structure for a user row in admin listings.
type AdminUserResponse struct {
	ID             uint      `json:"id"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	ProfilePicture string    `json:"profile_picture"`
	Bio            string    `json:"bio"`
	CreatedAt      time.Time `json:"created_at"`
}

// DashboardStats defines the structure for the admin dashboard.
type DashboardStats struct {
	TotalUsers        int64 `json:"total_users"`
	TotalPosts        int64 `json:"total_posts"`
	TotalGroups       int64 `json:"total_groups"`
	TotalMessages     int64 `json:"total_messages"`
	NewUsersLast7Days int64 `json:"new_users_last_7_days"`
}

// AdminListUsers godoc
// @Summary      List all users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        page  query int false "Page number" default(1)
// @Param        limit query int false "Items per page" default(20)
// @Success      200  {object}  PaginatedResponse[AdminUserResponse]
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /admin/users [get]
func AdminListUsers(c *gin.Context) {
	page, limit := pageParams(c, 20)

	users, totalItems, err := Paginate[models.User](database.DB.Order("id ASC"), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}

	items := make([]AdminUserResponse, 0, len(users))
	for _, user := range users {
		items = append(items, AdminUserResponse{
			ID:             user.ID,
			FullName:       user.FullName,
			Email:          user.Email,
			Role:           user.Role,
			ProfilePicture: user.ProfilePicture,
			Bio:            user.Bio,
			CreatedAt:      user.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(items, totalItems, page, limit))
}

// AdminDeleteUser godoc
// @Summary      Delete a user
// @Description  Removes the user with their posts, likes, comments, memberships, friendships and reset tokens. Messages are retained. The seeded admin cannot be deleted.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "User ID"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Primary admin account"
// @Failure      404  {object}  ErrorResponse "User not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /admin/users/{id} [delete]
func AdminDeleteUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var user models.User
	if err := database.DB.First(&user, uint(userID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if user.Email == config.AppConfig.AdminEmail {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot delete the primary admin account"})
		return
	}

	// Partial cascade: content, relationships and tokens go. Messages stay,
	// with the sender reference left dangling.
	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		var postIDs []uint
		if err := tx.Model(&models.Post{}).Where("user_id = ?", user.ID).Pluck("id", &postIDs).Error; err != nil {
			return err
		}
		if len(postIDs) > 0 {
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.Like{}).Error; err != nil {
				return err
			}
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Post{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.GroupMember{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user1_id = ? OR user2_id = ?", user.ID, user.ID).Delete(&models.Friendship{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.PasswordResetToken{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&user).Error
	})
	if txErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User and their associated data deleted successfully"})
}

// AdminListPosts godoc
// @Summary      List all posts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        page  query int false "Page number" default(1)
// @Param        limit query int false "Items per page" default(20)
// @Success      200  {object}  PaginatedResponse[PostResponse]
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /admin/posts [get]
func AdminListPosts(c *gin.Context) {
	page, limit := pageParams(c, 20)

	var totalItems int64
	if err := database.DB.Model(&models.Post{}).Count(&totalItems).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve posts"})
		return
	}

	var posts []models.Post
	if err := postsWithCounts(database.DB).
		Order("posts.created_at DESC, posts.id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve posts"})
		return
	}

	items := make([]PostResponse, 0, len(posts))
	for _, post := range posts {
		items = append(items, newPostResponse(post))
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(items, totalItems, page, limit))
}

// AdminDeletePost godoc
// @Summary      Delete a post
// @Description  Removes a post together with its likes and comments.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Post ID"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Post not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /admin/posts/{id} [delete]
func AdminDeletePost(c *gin.Context) {
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

	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
	if txErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

// AdminDashboardStats godoc
// @Summary      Dashboard statistics
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  DashboardStats
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /admin/dashboard-stats [get]
func AdminDashboardStats(c *gin.Context) {
	var stats DashboardStats

	database.DB.Model(&models.User{}).Count(&stats.TotalUsers)
	database.DB.Model(&models.Post{}).Count(&stats.TotalPosts)
	database.DB.Model(&models.Group{}).Count(&stats.TotalGroups)
	database.DB.Model(&models.Message{}).Count(&stats.TotalMessages)

	weekAgo := time.Now().AddDate(0, 0, -7)
	database.DB.Model(&models.User{}).Where("created_at >= ?", weekAgo).Count(&stats.NewUsersLast7Days)

	c.JSON(http.StatusOK, stats)
}
