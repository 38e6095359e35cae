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

// GroupInput defines the structure for creating a group.
type GroupInput struct {
	Name        string `json:"name" binding:"required" example:"Hiking Club"`
	Description string `json:"description"`
}

// GroupResponse defines the structure for a group.
type GroupResponse struct {
	ID              uint      `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	CreatedByUserID uint      `json:"created_by_user_id"`
	OwnerName       string    `json:"owner_name,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// GroupMemberResponse defines the structure for a group member listing.
type GroupMemberResponse struct {
	ID             uint      `json:"id"`
	FullName       string    `json:"full_name"`
	ProfilePicture string    `json:"profile_picture"`
	JoinedAt       time.Time `json:"joined_at"`
}

// endregion

func newGroupResponse(group models.Group) GroupResponse {
	return GroupResponse{
		ID:              group.ID,
		Name:            group.Name,
		Description:     group.Description,
		CreatedByUserID: group.CreatedByUserID,
		OwnerName:       group.Owner.FullName,
		CreatedAt:       group.CreatedAt,
	}
}

// isGroupMember reports whether the user belongs to the group.
func isGroupMember(groupID, userID uint) bool {
	var member models.GroupMember
	err := database.DB.Where("group_id = ? AND user_id = ?", groupID, userID).First(&member).Error
	return err == nil
}

// CreateGroup godoc
// @Summary      Create a group
// @Description  Creates a group and adds the creator as its first member in the same transaction.
// @Tags         groups
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body GroupInput true "Group Info"
// @Success      201  {object}  GroupResponse
// @Failure      400  {object}  ErrorResponse "Group name is required"
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /groups [post]
func CreateGroup(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var input GroupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Group name is required"})
		return
	}

	group := models.Group{
		Name:            input.Name,
		Description:     input.Description,
		CreatedByUserID: viewerID.(uint),
	}

	// Group row and creator membership commit together.
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&group).Error; err != nil {
			return err
		}
		member := models.GroupMember{GroupID: group.ID, UserID: viewerID.(uint)}
		return tx.Create(&member).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create group"})
		return
	}

	database.DB.First(&group.Owner, group.CreatedByUserID)
	c.JSON(http.StatusCreated, newGroupResponse(group))
}

// ListGroups godoc
// @Summary      List own groups
// @Description  Returns the groups the caller is a member of.
// @Tags         groups
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   GroupResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /groups [get]
func ListGroups(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var groups []models.Group
	if err := database.DB.
		Joins("JOIN group_members ON group_members.group_id = groups.id").
		Where("group_members.user_id = ?", viewerID).
		Preload("Owner").
		Find(&groups).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch groups"})
		return
	}

	responses := make([]GroupResponse, 0, len(groups))
	for _, group := range groups {
		responses = append(responses, newGroupResponse(group))
	}

	c.JSON(http.StatusOK, responses)
}

// JoinGroup godoc
// @Summary      Join a group
// @Description  Adds the caller to a group's membership.
// @Tags         groups
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Group ID"
// @Success      201  {object}  map[string]interface{} "{"message": "...", "membership_id": 1}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Group not found"
// @Failure      409  {object}  ErrorResponse "Already a member"
// @Failure      500  {object}  ErrorResponse
// @Router       /groups/{id}/join [post]
func JoinGroup(c *gin.Context) {
	viewerID, _ := c.Get("userID")

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

	if isGroupMember(group.ID, viewerID.(uint)) {
		c.JSON(http.StatusConflict, gin.H{"error": "You are already a member of this group"})
		return
	}

	member := models.GroupMember{GroupID: group.ID, UserID: viewerID.(uint)}
	if err := database.DB.Create(&member).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to join group"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Successfully joined the group", "membership_id": member.ID})
}

// ListGroupMembers godoc
// @Summary      List group members
// @Description  Returns the members of a group.
// @Tags         groups
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Group ID"
// @Success      200  {array}   GroupMemberResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Group not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /groups/{id}/members [get]
func ListGroupMembers(c *gin.Context) {
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

	var members []models.GroupMember
	if err := database.DB.
		Where("group_id = ?", group.ID).
		Preload("User").
		Order("joined_at ASC").
		Find(&members).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch members"})
		return
	}

	responses := make([]GroupMemberResponse, 0, len(members))
	for _, member := range members {
		responses = append(responses, GroupMemberResponse{
			ID:             member.User.ID,
			FullName:       member.User.FullName,
			ProfilePicture: member.User.ProfilePicture,
			JoinedAt:       member.JoinedAt,
		})
	}

	c.JSON(http.StatusOK, responses)
}
