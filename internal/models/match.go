package models

import (
	"fmt"
	"time"
)

// MatchStatus represents the lifecycle state of a match.
type MatchStatus string

const (
	// MatchStatusActive indicates an open match where both users can message.
	MatchStatusActive MatchStatus = "ACTIVE"
	// MatchStatusEnded indicates a soft-deleted match.
	MatchStatusEnded MatchStatus = "ENDED"
)

// Match represents a mutual-like relationship enabling messaging.
//
// User1ID/User2ID are stored in canonical order (lexicographically smallest
// first) so the unordered pair has exactly one storage key. Last-message
// fields are denormalized here and maintained by the message send
// transaction.
type Match struct {
	ID                  string      `gorm:"primaryKey;size:160" json:"id"`
	User1ID             string      `gorm:"size:64;not null;index:idx_matches_user1" json:"user1Id"`
	User2ID             string      `gorm:"size:64;not null;index:idx_matches_user2" json:"user2Id"`
	Status              MatchStatus `gorm:"type:varchar(16);not null;default:'ACTIVE'" json:"status"`
	LastMessage         string      `gorm:"size:1000" json:"lastMessage,omitempty"`
	LastMessageAt       time.Time   `json:"lastMessageAt"`
	LastMessageSenderID string      `gorm:"size:64" json:"lastMessageSenderId,omitempty"`
	UnreadCount1        int         `gorm:"not null;default:0" json:"unreadCount1"`
	UnreadCount2        int         `gorm:"not null;default:0" json:"unreadCount2"`
	CreatedAt           time.Time   `json:"createdAt"`
	UpdatedAt           time.Time   `json:"updatedAt"`
}

// TableName specifies the table name for GORM
func (Match) TableName() string {
	return "matches"
}

// CanonicalPair orders two user IDs lexicographically, smallest first.
func CanonicalPair(a, b string) (string, string) {
	if b < a {
		return b, a
	}
	return a, b
}

// NewMatch builds a match for the unordered pair {a, b} with canonical
// ordering and the composite identifier format carried over from the first
// schema version.
func NewMatch(a, b string, at time.Time) *Match {
	u1, u2 := CanonicalPair(a, b)
	return &Match{
		ID:            fmt.Sprintf("match_%s_%s_%d", u1, u2, at.UnixMilli()),
		User1ID:       u1,
		User2ID:       u2,
		Status:        MatchStatusActive,
		LastMessageAt: at,
		CreatedAt:     at,
		UpdatedAt:     at,
	}
}

// HasParticipant reports whether userID is one of the two matched users.
func (m *Match) HasParticipant(userID string) bool {
	return m.User1ID == userID || m.User2ID == userID
}

// OtherParticipant returns the participant that is not userID. The second
// return value is false when userID is not part of the match.
func (m *Match) OtherParticipant(userID string) (string, bool) {
	switch userID {
	case m.User1ID:
		return m.User2ID, true
	case m.User2ID:
		return m.User1ID, true
	}
	return "", false
}
