package service

import (
	"context"
	"time"

	"datingmeet/internal/models"
	"datingmeet/internal/repository"
)

const maxMessageLen = 2000

// MessageService implements chat within a match.
type MessageService struct {
	messageRepo repository.MessageRepository
	matchRepo   repository.MatchRepository
	now         func() time.Time
}

// NewMessageService returns a new MessageService.
func NewMessageService(messageRepo repository.MessageRepository, matchRepo repository.MatchRepository) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		matchRepo:   matchRepo,
		now:         time.Now,
	}
}

// SendMessageInput carries one outgoing chat message.
type SendMessageInput struct {
	SenderID        string
	MatchID         string
	Content         string
	MessageType     models.MessageType
	SuperchatPoints int
}

// Send validates and persists a message. Only participants of an active
// match may send, and the match's last-message fields update atomically with
// the insert.
func (s *MessageService) Send(ctx context.Context, in SendMessageInput) (*models.Message, error) {
	if in.SenderID == "" {
		return nil, models.NewInvalidRequestError("senderId is required")
	}
	if in.MatchID == "" {
		return nil, models.NewInvalidRequestError("matchId is required")
	}
	if in.Content == "" {
		return nil, models.NewInvalidRequestError("content is required")
	}
	if len(in.Content) > maxMessageLen {
		return nil, models.NewInvalidRequestError("content exceeds maximum length")
	}
	msgType := in.MessageType
	if msgType == "" {
		msgType = models.MessageText
	}
	if msgType != models.MessageText && msgType != models.MessageSuperchat {
		return nil, models.NewInvalidRequestError("messageType must be text or superchat")
	}

	match, err := s.matchRepo.GetByID(ctx, in.MatchID)
	if err != nil {
		return nil, err
	}
	if !match.HasParticipant(in.SenderID) {
		return nil, models.NewForbiddenError("You are not part of this match")
	}
	if match.Status != models.MatchStatusActive {
		return nil, models.NewInvalidRequestError("This match is no longer active")
	}

	receiver, _ := match.OtherParticipant(in.SenderID)
	now := s.now().UTC()
	msg := &models.Message{
		ID:              models.NewMessageID(),
		MatchID:         match.ID,
		SenderID:        in.SenderID,
		ReceiverID:      receiver,
		Content:         in.Content,
		MessageType:     msgType,
		SuperchatPoints: in.SuperchatPoints,
		Status:          models.MessageStatusSent,
		CreatedAt:       now,
	}

	if err := s.messageRepo.CreateWithMatchUpdate(ctx, msg, match); err != nil {
		return nil, err
	}
	return msg, nil
}

// List returns messages within a match, newest first. Only participants may
// read them.
func (s *MessageService) List(ctx context.Context, userID, matchID string, limit int) ([]models.Message, error) {
	if userID == "" || matchID == "" {
		return nil, models.NewInvalidRequestError("userId and matchId are required")
	}
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.HasParticipant(userID) {
		return nil, models.NewForbiddenError("You are not part of this match")
	}
	return s.messageRepo.ListForMatch(ctx, matchID, limit)
}

// MarkRead flips the user's unread messages in the match to read and clears
// the match-level unread counter.
func (s *MessageService) MarkRead(ctx context.Context, userID, matchID string) (int64, error) {
	if userID == "" || matchID == "" {
		return 0, models.NewInvalidRequestError("userId and matchId are required")
	}
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return 0, err
	}
	if !match.HasParticipant(userID) {
		return 0, models.NewForbiddenError("You are not part of this match")
	}
	updated, err := s.messageRepo.MarkReadForMatch(ctx, matchID, userID)
	if err != nil {
		return 0, err
	}
	if err := s.matchRepo.ResetUnread(ctx, match, userID); err != nil {
		return updated, err
	}
	return updated, nil
}
