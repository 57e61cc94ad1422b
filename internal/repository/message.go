package repository

import (
	"context"
	"errors"

	"datingmeet/internal/models"

	"gorm.io/gorm"
)

// MessageRepository defines persistence operations for chat messages.
type MessageRepository interface {
	// CreateWithMatchUpdate persists the message and updates the parent
	// match's denormalized last-message fields in one transaction.
	CreateWithMatchUpdate(ctx context.Context, msg *models.Message, match *models.Match) error
	ListForMatch(ctx context.Context, matchID string, limit int) ([]models.Message, error)
	GetByID(ctx context.Context, id string) (*models.Message, error)
	// MarkReadForMatch flips unread messages addressed to the user in the
	// match to read status.
	MarkReadForMatch(ctx context.Context, matchID, userID string) (int64, error)
}

type messageRepository struct {
	db      *gorm.DB
	matches MatchRepository
}

// NewMessageRepository returns a new MessageRepository implementation.
func NewMessageRepository(db *gorm.DB, matches MatchRepository) MessageRepository {
	return &messageRepository{db: db, matches: matches}
}

func (r *messageRepository) CreateWithMatchUpdate(ctx context.Context, msg *models.Message, match *models.Match) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return err
		}
		return r.matches.RecordMessage(tx, match, msg)
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return models.NewPersistenceError(err)
	}
	return nil
}

func (r *messageRepository) ListForMatch(ctx context.Context, matchID string, limit int) ([]models.Message, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}
	var messages []models.Message
	err := readDB(r.db).WithContext(ctx).
		Where("match_id = ?", matchID).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, models.NewPersistenceError(err)
	}
	return messages, nil
}

func (r *messageRepository) GetByID(ctx context.Context, id string) (*models.Message, error) {
	var msg models.Message
	err := readDB(r.db).WithContext(ctx).Where("id = ?", id).First(&msg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Message", id)
		}
		return nil, models.NewPersistenceError(err)
	}
	return &msg, nil
}

func (r *messageRepository) MarkReadForMatch(ctx context.Context, matchID, userID string) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Message{}).
		Where("match_id = ? AND receiver_id = ? AND status = ?", matchID, userID, models.MessageStatusSent).
		Update("status", models.MessageStatusRead)
	if result.Error != nil {
		return 0, models.NewPersistenceError(result.Error)
	}
	return result.RowsAffected, nil
}
