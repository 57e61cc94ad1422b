package models

import (
	"fmt"
	"time"
)

// LikeAction is the kind of preference expressed by a like record.
type LikeAction string

const (
	// ActionLike is a standard like.
	ActionLike LikeAction = "LIKE"
	// ActionPass is an explicit pass on a profile.
	ActionPass LikeAction = "PASS"
	// ActionSuperchat is a like with an attached paid message.
	ActionSuperchat LikeAction = "SUPERCHAT"
)

// Valid reports whether the action is one of the known kinds.
func (a LikeAction) Valid() bool {
	switch a {
	case ActionLike, ActionPass, ActionSuperchat:
		return true
	}
	return false
}

// Like represents a directed preference expression from one user to another.
//
// Invariant: at most one active Like per ordered (FromUserID, ToProfileID)
// pair. The pair index makes the duplicate and reciprocity checks point
// lookups instead of scans.
type Like struct {
	ID          string     `gorm:"primaryKey;size:128" json:"id"`
	FromUserID  string     `gorm:"size:64;not null;index:idx_likes_pair,priority:1;index:idx_likes_from_created,priority:1" json:"fromUserId"`
	ToProfileID string     `gorm:"size:64;not null;index:idx_likes_pair,priority:2;index:idx_likes_to_profile" json:"toProfileId"`
	ActionType  LikeAction `gorm:"type:varchar(16);not null" json:"actionType"`
	Message     string     `gorm:"size:500" json:"message,omitempty"`
	IsMatched   bool       `gorm:"not null;default:false" json:"isMatched"`
	IsActive    bool       `gorm:"not null;default:true" json:"isActive"`
	CreatedAt   time.Time  `gorm:"index:idx_likes_from_created,priority:2" json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// TableName specifies the table name for GORM
func (Like) TableName() string {
	return "likes"
}

// NewLikeID builds the composite like identifier used since the first schema
// version: "<from>_<to>_<unix millis>".
func NewLikeID(fromUserID, toProfileID string, at time.Time) string {
	return fmt.Sprintf("%s_%s_%d", fromUserID, toProfileID, at.UnixMilli())
}
