package models

import "gorm.io/gorm"

// RoleAdmin marks a user that passes the admin middleware. Regular accounts
// carry RoleUser; the admin account is created by the seed command, never
// through registration.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered account.
type User struct {
	gorm.Model
	FullName       string `gorm:"size:150;not null"`
	Email          string `gorm:"size:150;unique;not null"`
	PasswordHash   string `gorm:"size:255;not null"`
	Role           string `gorm:"size:50;not null;default:'user';index"`
	ProfilePicture string `gorm:"size:255"`
	Bio            string `gorm:"type:text"`
}
