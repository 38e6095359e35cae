package models

import "time"

// PasswordResetToken grants a one-time password change within its validity
// window. Requesting a new token deletes any previous one for the same user,
// and a successful reset consumes the token.
type PasswordResetToken struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;index"`
	Token     string `gorm:"size:255;unique;not null"`
	CreatedAt time.Time
	ExpiresAt time.Time `gorm:"not null"`
}
