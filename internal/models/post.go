package models

import "time"

// Post is an item on a user's wall. The owner is immutable after creation.
type Post struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;index"`
	Content   string `gorm:"type:text;not null"`
	ImageURL  string `gorm:"size:255"`
	CreatedAt time.Time

	Author User `gorm:"foreignKey:UserID"`

	// Computed at query time from the likes/comments tables, never stored.
	LikesCount    int64 `gorm:"->;-:migration"`
	CommentsCount int64 `gorm:"->;-:migration"`
}

// Like marks that a user liked a post. A user likes a post at most once.
type Like struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_like_user_post"`
	PostID    uint `gorm:"not null;uniqueIndex:idx_like_user_post"`
	CreatedAt time.Time
}

// Comment is an append-only reply to a post.
type Comment struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;index"`
	PostID    uint   `gorm:"not null;index"`
	Content   string `gorm:"type:text;not null"`
	CreatedAt time.Time

	Author User `gorm:"foreignKey:UserID"`
}
