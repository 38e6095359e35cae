package models

import "time"

// Message is either a direct message (ReceiverID set) or a group message
// (GroupID set), never both or neither. Handlers validate the target before
// writing; the check constraint backs them up at the storage layer.
type Message struct {
	ID         uint   `gorm:"primaryKey"`
	SenderID   uint   `gorm:"not null;index"`
	ReceiverID *uint  `gorm:"index"`
	GroupID    *uint  `gorm:"index"`
	Content    string `gorm:"type:text;not null;check:message_target,(receiver_id IS NOT NULL AND group_id IS NULL) OR (receiver_id IS NULL AND group_id IS NOT NULL)"`
	CreatedAt  time.Time

	Sender   User  `gorm:"foreignKey:SenderID"`
	Receiver *User `gorm:"foreignKey:ReceiverID"`
}
