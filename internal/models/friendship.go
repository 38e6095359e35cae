package models

import "time"

// FriendshipStatus defines the state of a relationship between two users.
type FriendshipStatus string

const (
	// StatusPending means a friend request has been sent but not yet answered.
	StatusPending FriendshipStatus = "pending"

	// StatusAccepted means the friend request was accepted, and the users are now friends.
	StatusAccepted FriendshipStatus = "accepted"

	// StatusDeclined means the recipient turned the request down. The record is
	// kept so a later re-request replaces it instead of colliding with it.
	StatusDeclined FriendshipStatus = "declined"
)

// Friendship represents the relationship between two users. User1 is always the
// requester and User2 the recipient; the unique index guarantees at most one
// record per direction, and handlers check both directions before creating one,
// so a pair never holds more than one active record.
type Friendship struct {
	ID        uint             `gorm:"primaryKey"`
	User1ID   uint             `gorm:"not null;uniqueIndex:idx_friendship_pair"`
	User2ID   uint             `gorm:"not null;uniqueIndex:idx_friendship_pair"`
	Status    FriendshipStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt time.Time
	UpdatedAt time.Time

	User1 User `gorm:"foreignKey:User1ID"`
	User2 User `gorm:"foreignKey:User2ID"`
}
