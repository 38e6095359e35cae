package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"socialnet/backend/internal/database"
	"socialnet/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// ProfileFriend is the short projection used in a profile's friends list.
type ProfileFriend struct {
	ID       uint   `json:"id"`
	FullName string `json:"full_name"`
}

// ProfileResponse defines the structure for a user's profile page.
type ProfileResponse struct {
	ID               uint            `json:"id"`
	FullName         string          `json:"full_name"`
	Email            string          `json:"email"`
	ProfilePicture   string          `json:"profile_picture"`
	Bio              string          `json:"bio"`
	Posts            []PostResponse  `json:"posts"`
	Friends          []ProfileFriend `json:"friends"`
	FriendshipStatus string          `json:"friendship_status_with_current_user"`
	CreatedAt        time.Time       `json:"created_at"`
}

// ProfileUpdateInput defines the JSON structure for profile updates. Avatar
// uploads arrive as a multipart "profile_picture_file" part instead.
type ProfileUpdateInput struct {
	FullName       *string `json:"full_name"`
	Bio            *string `json:"bio"`
	ProfilePicture *string `json:"profile_picture"`
}

// endregion

// GetProfile godoc
// @Summary      Get a user's profile
// @Description  Returns profile fields, recent posts, friends and the relationship status relative to the caller.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "User ID"
// @Success      200  {object}  ProfileResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "User not found"
// @Router       /profile/{id} [get]
func GetProfile(c *gin.Context) {
	viewerID, _ := c.Get("userID")

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

	var posts []models.Post
	if err := postsWithCounts(database.DB).
		Where("posts.user_id = ?", user.ID).
		Order("posts.created_at DESC, posts.id DESC").
		Limit(10).
		Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
		return
	}

	postResponses := make([]PostResponse, 0, len(posts))
	for _, post := range posts {
		postResponses = append(postResponses, newPostResponse(post))
	}

	friends, err := friendsOf(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
		return
	}
	friendResponses := make([]ProfileFriend, 0, len(friends))
	for _, friend := range friends {
		friendResponses = append(friendResponses, ProfileFriend{ID: friend.ID, FullName: friend.FullName})
	}

	c.JSON(http.StatusOK, ProfileResponse{
		ID:               user.ID,
		FullName:         user.FullName,
		Email:            user.Email,
		ProfilePicture:   user.ProfilePicture,
		Bio:              user.Bio,
		Posts:            postResponses,
		Friends:          friendResponses,
		FriendshipStatus: statusBetween(viewerID.(uint), user.ID),
		CreatedAt:        user.CreatedAt,
	})
}

// UpdateProfile godoc
// @Summary      Update own profile
// @Description  Updates full name, bio or profile picture. Accepts JSON or a multipart form with a "profile_picture_file" part.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body ProfileUpdateInput true "Fields to update"
// @Success      200  {object}  MeResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /profile [put]
func UpdateProfile(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var user models.User
	if err := database.DB.First(&user, viewerID.(uint)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	updated := false

	// Form clients send multipart even when no new picture was chosen, so the
	// form fields are read regardless of the file part being present.
	if c.ContentType() == "multipart/form-data" {
		if file, err := c.FormFile("profile_picture_file"); err == nil {
			path, err := saveUploadedImage(c, file, "avatars")
			if err != nil {
				if errors.Is(err, errBadImageType) {
					c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid profile picture file type"})
				} else {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store profile picture"})
				}
				return
			}
			user.ProfilePicture = path
			updated = true
		}

		if name := c.PostForm("full_name"); name != "" && name != user.FullName {
			user.FullName = name
			updated = true
		}
		if bio, ok := c.GetPostForm("bio"); ok && bio != user.Bio {
			user.Bio = bio
			updated = true
		}
	} else {
		var input ProfileUpdateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No data provided for update"})
			return
		}
		if input.FullName != nil && *input.FullName != user.FullName {
			user.FullName = *input.FullName
			updated = true
		}
		if input.Bio != nil && *input.Bio != user.Bio {
			user.Bio = *input.Bio
			updated = true
		}
		if input.ProfilePicture != nil && *input.ProfilePicture != user.ProfilePicture {
			user.ProfilePicture = *input.ProfilePicture
			updated = true
		}
	}

	if !updated {
		c.JSON(http.StatusOK, gin.H{"message": "No changes detected"})
		return
	}

	if err := database.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, MeResponse{
		ID:             user.ID,
		FullName:       user.FullName,
		Email:          user.Email,
		ProfilePicture: user.ProfilePicture,
		Bio:            user.Bio,
		IsAdmin:        user.Role == models.RoleAdmin,
	})
}
