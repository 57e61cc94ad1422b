package repository

import (
	"context"
	"errors"
	"time"

	"datingmeet/internal/cache"
	"datingmeet/internal/models"

	"gorm.io/gorm"
)

// DefaultNotificationPageSize bounds how many notifications a single list
// call returns. Recent listings use the smaller DefaultRecentNotificationLimit.
const (
	DefaultNotificationPageSize    = 50
	DefaultRecentNotificationLimit = 20
)

// NotificationRepository defines persistence operations for notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	GetByID(ctx context.Context, id string) (*models.Notification, error)
	// ListByUser returns the user's notifications, newest first, capped at
	// DefaultNotificationPageSize.
	ListByUser(ctx context.Context, userID string, limit int) ([]models.Notification, error)
	// ListRecent returns notifications created at or after the given
	// instant, newest first.
	ListRecent(ctx context.Context, userID string, since time.Time, limit int) ([]models.Notification, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	// MarkRead flips a single notification to read. The update is
	// conditioned on ownership so a non-owner cannot modify it.
	MarkRead(ctx context.Context, id, userID string) error
	// MarkAllRead flips every unread notification for the user and returns
	// how many rows changed.
	MarkAllRead(ctx context.Context, userID string) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository returns a new NotificationRepository implementation.
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *models.Notification) error {
	if err := r.db.WithContext(ctx).Create(n).Error; err != nil {
		return models.NewPersistenceError(err)
	}
	cache.InvalidateUnreadCount(ctx, n.UserID)
	return nil
}

func (r *notificationRepository) GetByID(ctx context.Context, id string) (*models.Notification, error) {
	var n models.Notification
	err := readDB(r.db).WithContext(ctx).Where("id = ?", id).First(&n).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Notification", id)
		}
		return nil, models.NewPersistenceError(err)
	}
	return &n, nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID string, limit int) ([]models.Notification, error) {
	if limit <= 0 || limit > DefaultNotificationPageSize {
		limit = DefaultNotificationPageSize
	}
	var notifications []models.Notification
	err := readDB(r.db).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, models.NewPersistenceError(err)
	}
	return notifications, nil
}

func (r *notificationRepository) ListRecent(ctx context.Context, userID string, since time.Time, limit int) ([]models.Notification, error) {
	if limit <= 0 || limit > DefaultRecentNotificationLimit {
		limit = DefaultRecentNotificationLimit
	}
	var notifications []models.Notification
	err := readDB(r.db).WithContext(ctx).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, models.NewPersistenceError(err)
	}
	return notifications, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := cache.Aside(ctx, cache.UnreadCountKey(userID), &count, cache.UnreadCountTTL, func() error {
		if err := readDB(r.db).WithContext(ctx).Model(&models.Notification{}).
			Where("user_id = ? AND is_read = ?", userID, false).
			Count(&count).Error; err != nil {
			return models.NewPersistenceError(err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id, userID string) error {
	result := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if result.Error != nil {
		return models.NewPersistenceError(result.Error)
	}
	if result.RowsAffected == 0 {
		// Distinguish a missing notification from one owned by another user.
		var n models.Notification
		err := r.db.WithContext(ctx).Where("id = ?", id).First(&n).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Notification", id)
		}
		if err != nil {
			return models.NewPersistenceError(err)
		}
		if n.UserID != userID {
			return models.NewForbiddenError("You cannot modify this notification")
		}
		// Already read, treat as success.
	}
	cache.InvalidateUnreadCount(ctx, userID)
	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	if result.Error != nil {
		return 0, models.NewPersistenceError(result.Error)
	}
	cache.InvalidateUnreadCount(ctx, userID)
	return result.RowsAffected, nil
}
