// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"datingmeet/internal/cache"
	"datingmeet/internal/models"
	"datingmeet/internal/observability"

	"gorm.io/gorm"
)

// LikeRepository defines persistence operations for like actions.
type LikeRepository interface {
	// FindActiveByPair returns the active like from one user to a profile,
	// or nil when no such like exists.
	FindActiveByPair(ctx context.Context, fromUserID, toProfileID string) (*models.Like, error)
	// CountActionsSince counts actions of the given type submitted by the
	// user at or after the given instant.
	CountActionsSince(ctx context.Context, fromUserID string, action models.LikeAction, since time.Time) (int64, error)
	// CreateWithFanout persists the like together with its fan-out records
	// in a single transaction. match may be nil when the like is not
	// reciprocal. Earlier likes are never modified; the matched flag is
	// fixed at each like's creation time. Either every record is written or
	// none are.
	CreateWithFanout(ctx context.Context, like *models.Like, match *models.Match, notifications []models.Notification) error
	ListSent(ctx context.Context, fromUserID string, limit int) ([]models.Like, error)
	ListReceived(ctx context.Context, toProfileID string, limit int) ([]models.Like, error)
	GetByID(ctx context.Context, id string) (*models.Like, error)
	Deactivate(ctx context.Context, id string) error
}

type likeRepository struct {
	db      *gorm.DB
	metrics *observability.DatabaseMetrics
}

// NewLikeRepository returns a new LikeRepository implementation.
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db, metrics: observability.NewDatabaseMetrics(db)}
}

func (r *likeRepository) FindActiveByPair(ctx context.Context, fromUserID, toProfileID string) (*models.Like, error) {
	var like models.Like
	err := readDB(r.db).WithContext(ctx).
		Where("from_user_id = ? AND to_profile_id = ? AND is_active = ?", fromUserID, toProfileID, true).
		Order("created_at DESC").
		First(&like).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewPersistenceError(err)
	}
	return &like, nil
}

func (r *likeRepository) CountActionsSince(ctx context.Context, fromUserID string, action models.LikeAction, since time.Time) (int64, error) {
	defer r.metrics.TrackQuery("count_actions_since", "likes")()

	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("from_user_id = ? AND action_type = ? AND created_at >= ?", fromUserID, action, since).
		Count(&count).Error
	if err != nil {
		return 0, models.NewPersistenceError(err)
	}
	return count, nil
}

func (r *likeRepository) CreateWithFanout(ctx context.Context, like *models.Like, match *models.Match, notifications []models.Notification) error {
	defer r.metrics.TrackQuery("create_with_fanout", "likes")()
	ctx, span := observability.GetTraceLayer().TraceRepositoryMethod(ctx, "CreateWithFanout", "likes")
	defer span.End()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(like).Error; err != nil {
			return err
		}
		if match != nil {
			if err := tx.Create(match).Error; err != nil {
				return err
			}
		}
		for i := range notifications {
			if err := tx.Create(&notifications[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return models.NewDuplicateActionError("You have already acted on this profile")
		}
		return models.NewPersistenceError(err)
	}

	// Fan-out changed both participants' match lists and inboxes.
	if match != nil {
		cache.InvalidateMatches(ctx, match.User1ID)
		cache.InvalidateMatches(ctx, match.User2ID)
	}
	for i := range notifications {
		cache.InvalidateUnreadCount(ctx, notifications[i].UserID)
	}
	return nil
}

func (r *likeRepository) ListSent(ctx context.Context, fromUserID string, limit int) ([]models.Like, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var likes []models.Like
	err := readDB(r.db).WithContext(ctx).
		Where("from_user_id = ? AND is_active = ?", fromUserID, true).
		Order("created_at DESC").
		Limit(limit).
		Find(&likes).Error
	if err != nil {
		return nil, models.NewPersistenceError(err)
	}
	return likes, nil
}

func (r *likeRepository) ListReceived(ctx context.Context, toProfileID string, limit int) ([]models.Like, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var likes []models.Like
	err := readDB(r.db).WithContext(ctx).
		Where("to_profile_id = ? AND is_active = ? AND action_type <> ?", toProfileID, true, models.ActionPass).
		Order("created_at DESC").
		Limit(limit).
		Find(&likes).Error
	if err != nil {
		return nil, models.NewPersistenceError(err)
	}
	return likes, nil
}

func (r *likeRepository) GetByID(ctx context.Context, id string) (*models.Like, error) {
	var like models.Like
	err := readDB(r.db).WithContext(ctx).Where("id = ?", id).First(&like).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Like", id)
		}
		return nil, models.NewPersistenceError(err)
	}
	return &like, nil
}

func (r *likeRepository) Deactivate(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return models.NewPersistenceError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Like", id)
	}
	return nil
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}
