package handler

import (
	"errors"
	"net/http"
	"strconv"

	"socialnet/backend/internal/database"
	"socialnet/backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// region --- DTOs ---

// FriendRequestInput defines the structure for sending a friend request.
type FriendRequestInput struct {
	UserID uint `json:"user_id" binding:"required" example:"2"`
}

// FriendRequestActionInput defines the structure for answering a friend request.
type FriendRequestActionInput struct {
	Action string `json:"action" binding:"required,oneof=accept decline" example:"accept"`
}

// Relationship status values reported to the profile endpoint.
const (
	RelationSelf            = "self"
	RelationFriends         = "friends"
	RelationPendingSent     = "pending_sent"
	RelationPendingReceived = "pending_received"
	RelationNone            = "none"
)

// endregion

// findRelationBetween returns the single relationship record between two users,
// regardless of direction, or gorm.ErrRecordNotFound.
func findRelationBetween(db *gorm.DB, a, b uint) (models.Friendship, error) {
	var relation models.Friendship
	err := db.
		Where("(user1_id = ? AND user2_id = ?) OR (user1_id = ? AND user2_id = ?)", a, b, b, a).
		First(&relation).Error
	return relation, err
}

// statusBetween classifies the relationship from the viewer's point of view.
// Declined records count as none, which is what allows a re-request.
func statusBetween(viewerID, otherID uint) string {
	if viewerID == otherID {
		return RelationSelf
	}

	relation, err := findRelationBetween(database.DB, viewerID, otherID)
	if err != nil {
		return RelationNone
	}

	switch relation.Status {
	case models.StatusAccepted:
		return RelationFriends
	case models.StatusPending:
		if relation.User1ID == viewerID {
			return RelationPendingSent
		}
		return RelationPendingReceived
	default:
		return RelationNone
	}
}

// SendFriendRequest godoc
// @Summary      Send friend request
// @Description  Creates a pending relationship with the target user. A stale declined record is replaced.
// @Tags         friendship
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body FriendRequestInput true "Target user"
// @Success      201  {object}  map[string]interface{} "{"message": "...", "request_id": 1}"
// @Failure      400  {object}  ErrorResponse "Self-request or invalid input"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Target user not found"
// @Failure      409  {object}  ErrorResponse "Active relationship already exists"
// @Failure      500  {object}  ErrorResponse
// @Router       /friend-request [post]
func SendFriendRequest(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var input FriendRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Target user_id is required"})
		return
	}

	if input.UserID == viewerID.(uint) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot send a friend request to yourself"})
		return
	}

	var targetUser models.User
	if err := database.DB.First(&targetUser, input.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Target user not found"})
		return
	}

	existing, err := findRelationBetween(database.DB, viewerID.(uint), input.UserID)
	if err == nil {
		switch existing.Status {
		case models.StatusAccepted:
			c.JSON(http.StatusConflict, gin.H{"error": "You are already friends with this user"})
			return
		case models.StatusPending:
			c.JSON(http.StatusConflict, gin.H{"error": "A friend request between you is already pending"})
			return
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send friend request"})
		return
	}

	newRequest := models.Friendship{
		User1ID: viewerID.(uint),
		User2ID: input.UserID,
		Status:  models.StatusPending,
	}

	// Replacing a declined record and creating the new request commit together.
	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		if existing.ID != 0 && existing.Status == models.StatusDeclined {
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
		}
		return tx.Create(&newRequest).Error
	})
	if txErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send friend request"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Friend request sent successfully", "request_id": newRequest.ID})
}

// RespondFriendRequest godoc
// @Summary      Accept or decline a friend request
// @Description  Only the recipient of a pending request may answer it. Declined records are retained.
// @Tags         friendship
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path int                      true "Request ID"
// @Param        input body FriendRequestActionInput true "accept or decline"
// @Success      200  {object}  map[string]string "{"message": "...", "status": "accepted"}"
// @Failure      400  {object}  ErrorResponse "Invalid action"
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not the recipient"
// @Failure      404  {object}  ErrorResponse "Request not found"
// @Failure      409  {object}  ErrorResponse "Request already answered"
// @Failure      500  {object}  ErrorResponse
// @Router       /friend-request/{id} [put]
func RespondFriendRequest(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return
	}

	var input FriendRequestActionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Action ('accept' or 'decline') is required"})
		return
	}

	var request models.Friendship
	if err := database.DB.First(&request, uint(requestID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Friend request not found"})
		return
	}

	if request.User2ID != viewerID.(uint) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to respond to this friend request"})
		return
	}

	if request.Status != models.StatusPending {
		c.JSON(http.StatusConflict, gin.H{"error": "This friend request has already been answered"})
		return
	}

	status := models.StatusAccepted
	message := "Friend request accepted"
	if input.Action == "decline" {
		status = models.StatusDeclined
		message = "Friend request declined"
	}

	if err := database.DB.Model(&request).Update("status", status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update friend request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message, "status": string(status)})
}

// ListFriends godoc
// @Summary      List friends
// @Description  Returns the deduplicated counterparties of all accepted relationships involving the caller.
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   UserResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /friends [get]
func ListFriends(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	friends, err := friendsOf(viewerID.(uint))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch friends"})
		return
	}

	responses := make([]UserResponse, 0, len(friends))
	for _, friend := range friends {
		responses = append(responses, newUserResponse(friend))
	}

	c.JSON(http.StatusOK, responses)
}

// friendsOf loads the accepted counterparties of a user from both sides of the
// ledger, deduplicated by ID.
func friendsOf(userID uint) ([]models.User, error) {
	ids, err := friendIDsOf(userID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	var friends []models.User
	if err := database.DB.Where("id IN ?", ids).Find(&friends).Error; err != nil {
		return nil, err
	}
	return friends, nil
}

// friendIDsOf returns the IDs of a user's accepted friends. Feed assembly uses
// this directly instead of walking relationship collections row by row.
func friendIDsOf(userID uint) ([]uint, error) {
	var relations []models.Friendship
	err := database.DB.
		Where("status = ? AND (user1_id = ? OR user2_id = ?)", models.StatusAccepted, userID, userID).
		Find(&relations).Error
	if err != nil {
		return nil, err
	}

	seen := make(map[uint]bool, len(relations))
	ids := make([]uint, 0, len(relations))
	for _, r := range relations {
		counterparty := r.User1ID
		if counterparty == userID {
			counterparty = r.User2ID
		}
		if counterparty == userID || seen[counterparty] {
			continue
		}
		seen[counterparty] = true
		ids = append(ids, counterparty)
	}
	return ids, nil
}
