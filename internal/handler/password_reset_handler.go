package handler

import (
	"net/http"
	"time"

	"socialnet/backend/internal/database"
	"socialnet/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// resetTokenTTL is the validity window of a password reset token.
const resetTokenTTL = time.Hour

// region --- DTOs ---

// PasswordResetRequestInput defines the structure for requesting a reset token.
type PasswordResetRequestInput struct {
	Email string `json:"email" binding:"required,email" example:"test@example.com"`
}

// PasswordResetInput defines the structure for consuming a reset token.
type PasswordResetInput struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// endregion

// RequestPasswordReset godoc
// @Summary      Request a password reset token
// @Description  Issues a one-hour reset token, replacing any previous token for the user. The token is returned in the response body.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body PasswordResetRequestInput true "Account email"
// @Success      200  {object}  map[string]string "{"message": "...", "reset_token": "..."}"
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "User not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /request-password-reset [post]
func RequestPasswordReset(c *gin.Context) {
	var input PasswordResetRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	var user models.User
	if err := database.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	token := models.PasswordResetToken{
		UserID:    user.ID,
		Token:     uuid.New().String(),
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}

	// A user has a single active token: issuing a new one supersedes the old.
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.PasswordResetToken{}).Error; err != nil {
			return err
		}
		return tx.Create(&token).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate reset token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset token generated", "reset_token": token.Token})
}

// ResetPassword godoc
// @Summary      Reset a password
// @Description  Sets a new password for the account the token belongs to and consumes the token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body PasswordResetInput true "Token and new password"
// @Success      200  {object}  map[string]string "{"message": "Password has been reset successfully"}"
// @Failure      400  {object}  ErrorResponse "Invalid or expired token"
// @Failure      500  {object}  ErrorResponse
// @Router       /reset-password [post]
func ResetPassword(c *gin.Context) {
	var input PasswordResetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token and new password are required"})
		return
	}

	var token models.PasswordResetToken
	if err := database.DB.Where("token = ?", input.Token).First(&token).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token is invalid or has expired"})
		return
	}
	if time.Now().After(token.ExpiresAt) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token is invalid or has expired"})
		return
	}

	var user models.User
	if err := database.DB.First(&user, token.UserID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token is invalid"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&user).Update("password_hash", string(hashedPassword)).Error; err != nil {
			return err
		}
		return tx.Delete(&token).Error
	})
	if txErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password has been reset successfully"})
}
