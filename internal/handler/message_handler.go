package handler

import (
	"net/http"
	"strconv"
	"time"

	"socialnet/backend/internal/database"
	"socialnet/backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// region --- DTOs ---

// MessageInput defines the structure for sending a message. Exactly one of
// receiver_id and group_id must be set.
type MessageInput struct {
	Content    string `json:"content" binding:"required"`
	ReceiverID *uint  `json:"receiver_id"`
	GroupID    *uint  `json:"group_id"`
}

// MessageResponse defines the structure for a message with sender fields.
type MessageResponse struct {
	ID                   uint      `json:"id"`
	SenderID             uint      `json:"sender_id"`
	SenderName           string    `json:"sender_name"`
	SenderProfilePicture string    `json:"sender_profile_picture"`
	ReceiverID           *uint     `json:"receiver_id,omitempty"`
	GroupID              *uint     `json:"group_id,omitempty"`
	Content              string    `json:"content"`
	CreatedAt            time.Time `json:"created_at"`
}

// endregion

func newMessageResponse(msg models.Message) MessageResponse {
	return MessageResponse{
		ID:                   msg.ID,
		SenderID:             msg.SenderID,
		SenderName:           msg.Sender.FullName,
		SenderProfilePicture: msg.Sender.ProfilePicture,
		ReceiverID:           msg.ReceiverID,
		GroupID:              msg.GroupID,
		Content:              msg.Content,
		CreatedAt:            msg.CreatedAt,
	}
}

// SendMessage godoc
// @Summary      Send a message
// @Description  Sends a direct message to a user or a message to a group the caller belongs to.
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body MessageInput true "Message"
// @Success      201  {object}  MessageResponse
// @Failure      400  {object}  ErrorResponse "Target missing, ambiguous, or self-addressed"
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not a member of the target group"
// @Failure      404  {object}  ErrorResponse "Receiver or group not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /messages [post]
func SendMessage(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var input MessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message content is required"})
		return
	}

	// Target exclusivity: exactly one of receiver_id and group_id.
	if input.ReceiverID == nil && input.GroupID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Either receiver_id or group_id must be provided"})
		return
	}
	if input.ReceiverID != nil && input.GroupID != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot specify both receiver_id and group_id"})
		return
	}

	if input.ReceiverID != nil {
		if *input.ReceiverID == viewerID.(uint) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot send a message to yourself"})
			return
		}
		var receiver models.User
		if err := database.DB.First(&receiver, *input.ReceiverID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Receiver user not found"})
			return
		}
	}

	if input.GroupID != nil {
		var group models.Group
		if err := database.DB.First(&group, *input.GroupID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
			return
		}
		if !isGroupMember(group.ID, viewerID.(uint)) {
			c.JSON(http.StatusForbidden, gin.H{"error": "You are not a member of this group"})
			return
		}
	}

	msg := models.Message{
		SenderID:   viewerID.(uint),
		ReceiverID: input.ReceiverID,
		GroupID:    input.GroupID,
		Content:    input.Content,
	}
	if err := database.DB.Create(&msg).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	database.DB.First(&msg.Sender, msg.SenderID)
	c.JSON(http.StatusCreated, newMessageResponse(msg))
}

// GetDirectMessages godoc
// @Summary      Get direct message history
// @Description  Returns the direct thread with another user. Pages are fetched newest-first and each page reads oldest-first.
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int true  "Other user ID"
// @Param        page  query int false "Page number" default(1)
// @Param        limit query int false "Items per page" default(20)
// @Success      200  {object}  PaginatedResponse[MessageResponse]
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "User not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /messages/user/{id} [get]
func GetDirectMessages(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	page, limit := pageParams(c, 20)

	otherID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var other models.User
	if err := database.DB.First(&other, uint(otherID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	pairFilter := database.DB.Model(&models.Message{}).
		Where("group_id IS NULL").
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			viewerID, uint(otherID), uint(otherID), viewerID)

	listMessagePage(c, pairFilter, page, limit)
}

// GetGroupMessages godoc
// @Summary      Get group message history
// @Description  Returns a group's messages to members only, with the same newest-first fetch and oldest-first page order.
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int true  "Group ID"
// @Param        page  query int false "Page number" default(1)
// @Param        limit query int false "Items per page" default(20)
// @Success      200  {object}  PaginatedResponse[MessageResponse]
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not a member"
// @Failure      404  {object}  ErrorResponse "Group not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /messages/group/{id} [get]
func GetGroupMessages(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	page, limit := pageParams(c, 20)

	groupID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	var group models.Group
	if err := database.DB.First(&group, uint(groupID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}
	if !isGroupMember(group.ID, viewerID.(uint)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You must be a member of this group to view its messages"})
		return
	}

	groupFilter := database.DB.Model(&models.Message{}).Where("group_id = ?", group.ID)
	listMessagePage(c, groupFilter, page, limit)
}

// listMessagePage fetches one page of a message query, newest first, then
// reverses the page so it reads chronologically. The newest page stays cheap
// to fetch while the client renders it top to bottom.
func listMessagePage(c *gin.Context, filter *gorm.DB, page, limit int) {
	var totalItems int64
	if err := filter.Session(&gorm.Session{}).Count(&totalItems).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}

	var messages []models.Message
	if err := filter.
		Order("created_at DESC, id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Preload("Sender").
		Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}

	items := make([]MessageResponse, 0, len(messages))
	for i := len(messages) - 1; i >= 0; i-- {
		items = append(items, newMessageResponse(messages[i]))
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(items, totalItems, page, limit))
}
