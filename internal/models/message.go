package models

import (
	"time"

	"github.com/google/uuid"
)

// MessageType distinguishes plain chat messages from paid superchats.
type MessageType string

const (
	// MessageText is a plain text message.
	MessageText MessageType = "text"
	// MessageSuperchat is a message sent with superchat points attached.
	MessageSuperchat MessageType = "superchat"
)

// MessageStatus tracks delivery state of a message.
type MessageStatus string

const (
	// MessageStatusSent means the message is stored but not yet read.
	MessageStatusSent MessageStatus = "sent"
	// MessageStatusRead means the receiver has read the message.
	MessageStatusRead MessageStatus = "read"
)

// Message is a chat message exchanged inside a match.
type Message struct {
	ID              string        `gorm:"primaryKey;size:64" json:"id"`
	MatchID         string        `gorm:"size:160;not null;index:idx_messages_match_created,priority:1" json:"matchId"`
	SenderID        string        `gorm:"size:64;not null" json:"senderId"`
	ReceiverID      string        `gorm:"size:64;not null" json:"receiverId"`
	Content         string        `gorm:"size:2000;not null" json:"content"`
	MessageType     MessageType   `gorm:"type:varchar(16);not null;default:'text'" json:"messageType"`
	SuperchatPoints int           `gorm:"not null;default:0" json:"superchatPoints,omitempty"`
	Status          MessageStatus `gorm:"type:varchar(16);not null;default:'sent'" json:"status"`
	CreatedAt       time.Time     `gorm:"index:idx_messages_match_created,priority:2" json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

// TableName specifies the table name for GORM
func (Message) TableName() string {
	return "messages"
}

// NewMessageID returns a fresh message identifier.
func NewMessageID() string {
	return "msg_" + uuid.NewString()
}
