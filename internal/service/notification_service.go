package service

import (
	"context"
	"time"

	"datingmeet/internal/models"
	"datingmeet/internal/repository"
)

// NotificationService exposes read and acknowledgement operations over a
// user's notification feed.
type NotificationService struct {
	repo repository.NotificationRepository
	now  func() time.Time
}

// NewNotificationService returns a new NotificationService.
func NewNotificationService(repo repository.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo, now: time.Now}
}

// UnreadCount is the payload returned by CountUnread.
type UnreadCount struct {
	Count int64 `json:"count"`
}

// MarkAllReadResult reports how many notifications were acknowledged.
type MarkAllReadResult struct {
	Updated int64 `json:"updated"`
}

// List returns the user's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID string, limit int) ([]models.Notification, error) {
	if userID == "" {
		return nil, models.NewInvalidRequestError("userId is required")
	}
	return s.repo.ListByUser(ctx, userID, limit)
}

// ListRecent returns notifications from the last 24 hours, newest first.
func (s *NotificationService) ListRecent(ctx context.Context, userID string, limit int) ([]models.Notification, error) {
	if userID == "" {
		return nil, models.NewInvalidRequestError("userId is required")
	}
	since := s.now().UTC().Add(-24 * time.Hour)
	return s.repo.ListRecent(ctx, userID, since, limit)
}

// CountUnread returns how many of the user's notifications are unread.
func (s *NotificationService) CountUnread(ctx context.Context, userID string) (*UnreadCount, error) {
	if userID == "" {
		return nil, models.NewInvalidRequestError("userId is required")
	}
	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &UnreadCount{Count: count}, nil
}

// MarkRead acknowledges a single notification. Only the owner may do so;
// acknowledging an already-read notification succeeds.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	if userID == "" {
		return models.NewInvalidRequestError("userId is required")
	}
	if notificationID == "" {
		return models.NewInvalidRequestError("notificationId is required")
	}
	return s.repo.MarkRead(ctx, notificationID, userID)
}

// MarkAllRead acknowledges every unread notification for the user. Calling it
// with nothing unread is not an error.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (*MarkAllReadResult, error) {
	if userID == "" {
		return nil, models.NewInvalidRequestError("userId is required")
	}
	updated, err := s.repo.MarkAllRead(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &MarkAllReadResult{Updated: updated}, nil
}
