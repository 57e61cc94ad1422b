package models

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType distinguishes the events a notification records.
type NotificationType string

const (
	// NotificationLike is sent to a profile that received a like.
	NotificationLike NotificationType = "LIKE"
	// NotificationMatch is sent to both participants of a new match.
	NotificationMatch NotificationType = "MATCH"
)

// Notification represents an event requiring user awareness. Rows are created
// atomically with the like or match that caused them and are mutated only by
// read-state transitions.
type Notification struct {
	ID         string           `gorm:"primaryKey;size:64" json:"id"`
	UserID     string           `gorm:"size:64;not null;index:idx_notifications_user_created,priority:1" json:"userId"`
	FromUserID string           `gorm:"size:64;not null" json:"fromUserId"`
	Type       NotificationType `gorm:"type:varchar(16);not null" json:"type"`
	Message    string           `gorm:"size:500;not null" json:"message"`
	IsRead     bool             `gorm:"not null;default:false" json:"isRead"`
	CreatedAt  time.Time        `gorm:"index:idx_notifications_user_created,priority:2" json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}

// TableName specifies the table name for GORM
func (Notification) TableName() string {
	return "notifications"
}

// NewNotificationID returns a fresh notification identifier.
func NewNotificationID() string {
	return "notif_" + uuid.NewString()
}
