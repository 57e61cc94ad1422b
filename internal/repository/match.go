package repository

import (
	"context"
	"errors"
	"sort"
	"time"

	"datingmeet/internal/cache"
	"datingmeet/internal/models"

	"gorm.io/gorm"
)

// MatchRepository defines persistence operations for matches.
type MatchRepository interface {
	GetByID(ctx context.Context, id string) (*models.Match, error)
	// FindActiveByPair returns the active match between the two users
	// regardless of argument order, or nil when none exists.
	FindActiveByPair(ctx context.Context, a, b string) (*models.Match, error)
	// ListForUser returns the user's matches, newest first. Queries both
	// participant columns and merges the results.
	ListForUser(ctx context.Context, userID string, limit int) ([]models.Match, error)
	// RecordMessage updates the denormalized last-message fields and bumps
	// the recipient's unread counter inside the given transaction handle.
	RecordMessage(tx *gorm.DB, match *models.Match, msg *models.Message) error
	ResetUnread(ctx context.Context, match *models.Match, userID string) error
	End(ctx context.Context, id string) error
}

type matchRepository struct {
	db *gorm.DB
}

// NewMatchRepository returns a new MatchRepository implementation.
func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) GetByID(ctx context.Context, id string) (*models.Match, error) {
	var match models.Match
	err := readDB(r.db).WithContext(ctx).Where("id = ?", id).First(&match).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Match", id)
		}
		return nil, models.NewPersistenceError(err)
	}
	return &match, nil
}

func (r *matchRepository) FindActiveByPair(ctx context.Context, a, b string) (*models.Match, error) {
	u1, u2 := models.CanonicalPair(a, b)
	var match models.Match
	err := readDB(r.db).WithContext(ctx).
		Where("user1_id = ? AND user2_id = ? AND status = ?", u1, u2, models.MatchStatusActive).
		First(&match).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewPersistenceError(err)
	}
	return &match, nil
}

func (r *matchRepository) ListForUser(ctx context.Context, userID string, limit int) ([]models.Match, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	// Only the default page is cached; the key carries no limit.
	if limit == 50 {
		var matches []models.Match
		err := cache.Aside(ctx, cache.MatchListKey(userID), &matches, cache.MatchListTTL, func() error {
			loaded, loadErr := r.listForUser(ctx, userID, limit)
			if loadErr != nil {
				return loadErr
			}
			matches = loaded
			return nil
		})
		if err != nil {
			return nil, err
		}
		return matches, nil
	}
	return r.listForUser(ctx, userID, limit)
}

func (r *matchRepository) listForUser(ctx context.Context, userID string, limit int) ([]models.Match, error) {
	var asUser1, asUser2 []models.Match
	db := readDB(r.db).WithContext(ctx)

	if err := db.
		Where("user1_id = ? AND status = ?", userID, models.MatchStatusActive).
		Order("created_at DESC").Limit(limit).
		Find(&asUser1).Error; err != nil {
		return nil, models.NewPersistenceError(err)
	}
	if err := db.
		Where("user2_id = ? AND status = ?", userID, models.MatchStatusActive).
		Order("created_at DESC").Limit(limit).
		Find(&asUser2).Error; err != nil {
		return nil, models.NewPersistenceError(err)
	}

	merged := append(asUser1, asUser2...)
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})
	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged, nil
}

func (r *matchRepository) RecordMessage(tx *gorm.DB, match *models.Match, msg *models.Message) error {
	updates := map[string]interface{}{
		"last_message":           msg.Content,
		"last_message_at":        msg.CreatedAt,
		"last_message_sender_id": msg.SenderID,
		"updated_at":             time.Now().UTC(),
	}
	if msg.SenderID == match.User1ID {
		updates["unread_count2"] = gorm.Expr("unread_count2 + 1")
	} else {
		updates["unread_count1"] = gorm.Expr("unread_count1 + 1")
	}
	if err := tx.Model(&models.Match{}).Where("id = ?", match.ID).Updates(updates).Error; err != nil {
		return models.NewPersistenceError(err)
	}
	cache.InvalidateMatches(tx.Statement.Context, match.User1ID)
	cache.InvalidateMatches(tx.Statement.Context, match.User2ID)
	return nil
}

func (r *matchRepository) ResetUnread(ctx context.Context, match *models.Match, userID string) error {
	column := "unread_count1"
	if userID == match.User2ID {
		column = "unread_count2"
	}
	err := r.db.WithContext(ctx).Model(&models.Match{}).
		Where("id = ?", match.ID).
		Update(column, 0).Error
	if err != nil {
		return models.NewPersistenceError(err)
	}
	return nil
}

func (r *matchRepository) End(ctx context.Context, id string) error {
	match, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Model(&models.Match{}).
		Where("id = ? AND status = ?", id, models.MatchStatusActive).
		Update("status", models.MatchStatusEnded)
	if result.Error != nil {
		return models.NewPersistenceError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Match", id)
	}
	cache.InvalidateMatches(ctx, match.User1ID)
	cache.InvalidateMatches(ctx, match.User2ID)
	return nil
}
