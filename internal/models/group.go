package models

import "time"

// Group is a named community. The creator becomes its first member within the
// same transaction that creates the group.
type Group struct {
	ID              uint   `gorm:"primaryKey"`
	Name            string `gorm:"size:150;not null"`
	Description     string `gorm:"type:text"`
	CreatedByUserID uint   `gorm:"not null"`
	CreatedAt       time.Time

	Owner User `gorm:"foreignKey:CreatedByUserID"`
}

// GroupMember links a user to a group. A user joins a group at most once.
type GroupMember struct {
	ID       uint      `gorm:"primaryKey"`
	GroupID  uint      `gorm:"not null;uniqueIndex:idx_group_member"`
	UserID   uint      `gorm:"not null;uniqueIndex:idx_group_member"`
	JoinedAt time.Time `gorm:"autoCreateTime"`

	User User `gorm:"foreignKey:UserID"`
}
