package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"datingmeet/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// messageRepoStub is a stub for repository.MessageRepository.
type messageRepoStub struct {
	createWithMatchUpdateFn func(context.Context, *models.Message, *models.Match) error
	listForMatchFn          func(context.Context, string, int) ([]models.Message, error)
	getByIDFn               func(context.Context, string) (*models.Message, error)
	markReadForMatchFn      func(context.Context, string, string) (int64, error)
}

func (s *messageRepoStub) CreateWithMatchUpdate(ctx context.Context, msg *models.Message, match *models.Match) error {
	return s.createWithMatchUpdateFn(ctx, msg, match)
}
func (s *messageRepoStub) ListForMatch(ctx context.Context, matchID string, limit int) ([]models.Message, error) {
	return s.listForMatchFn(ctx, matchID, limit)
}
func (s *messageRepoStub) GetByID(ctx context.Context, id string) (*models.Message, error) {
	return s.getByIDFn(ctx, id)
}
func (s *messageRepoStub) MarkReadForMatch(ctx context.Context, matchID, userID string) (int64, error) {
	return s.markReadForMatchFn(ctx, matchID, userID)
}

func noopMessageRepo() *messageRepoStub {
	return &messageRepoStub{
		createWithMatchUpdateFn: func(_ context.Context, _ *models.Message, _ *models.Match) error { return nil },
		listForMatchFn:          func(_ context.Context, _ string, _ int) ([]models.Message, error) { return nil, nil },
		getByIDFn:               func(_ context.Context, _ string) (*models.Message, error) { return &models.Message{}, nil },
		markReadForMatchFn:      func(_ context.Context, _, _ string) (int64, error) { return 0, nil },
	}
}

func activeMatchRepo(user1, user2 string) *matchRepoStub {
	repo := noopMatchRepo()
	repo.getByIDFn = func(_ context.Context, id string) (*models.Match, error) {
		m := models.NewMatch(user1, user2, time.Now().UTC())
		m.ID = id
		return m, nil
	}
	return repo
}

func TestMessageService_Send_Validation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := NewMessageService(noopMessageRepo(), activeMatchRepo("alice", "bob"))

	_, err := svc.Send(ctx, SendMessageInput{MatchID: "m1", Content: "hi"})
	assertAppErrorCode(t, err, models.CodeInvalidRequest)

	_, err = svc.Send(ctx, SendMessageInput{SenderID: "alice", Content: "hi"})
	assertAppErrorCode(t, err, models.CodeInvalidRequest)

	_, err = svc.Send(ctx, SendMessageInput{SenderID: "alice", MatchID: "m1"})
	assertAppErrorCode(t, err, models.CodeInvalidRequest)

	_, err = svc.Send(ctx, SendMessageInput{SenderID: "alice", MatchID: "m1", Content: strings.Repeat("x", maxMessageLen+1)})
	assertAppErrorCode(t, err, models.CodeInvalidRequest)

	_, err = svc.Send(ctx, SendMessageInput{SenderID: "alice", MatchID: "m1", Content: "hi", MessageType: "gif"})
	assertAppErrorCode(t, err, models.CodeInvalidRequest)
}

func TestMessageService_Send_ParticipantsOnly(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := NewMessageService(noopMessageRepo(), activeMatchRepo("alice", "bob"))

	_, err := svc.Send(ctx, SendMessageInput{SenderID: "mallory", MatchID: "m1", Content: "hi"})
	assertAppErrorCode(t, err, models.CodeForbidden)
}

func TestMessageService_Send_EndedMatchRejected(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	matchRepo := noopMatchRepo()
	matchRepo.getByIDFn = func(_ context.Context, id string) (*models.Match, error) {
		m := models.NewMatch("alice", "bob", time.Now().UTC())
		m.ID = id
		m.Status = models.MatchStatusEnded
		return m, nil
	}
	svc := NewMessageService(noopMessageRepo(), matchRepo)

	_, err := svc.Send(ctx, SendMessageInput{SenderID: "alice", MatchID: "m1", Content: "hi"})
	assertAppErrorCode(t, err, models.CodeInvalidRequest)
}

func TestMessageService_Send_AddressesOtherParticipant(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var gotMsg *models.Message
	msgRepo := noopMessageRepo()
	msgRepo.createWithMatchUpdateFn = func(_ context.Context, msg *models.Message, _ *models.Match) error {
		gotMsg = msg
		return nil
	}
	svc := NewMessageService(msgRepo, activeMatchRepo("alice", "bob"))

	msg, err := svc.Send(ctx, SendMessageInput{SenderID: "bob", MatchID: "m1", Content: "hey"})
	require.NoError(t, err)
	require.NotNil(t, gotMsg)
	assert.Equal(t, "alice", msg.ReceiverID)
	assert.Equal(t, models.MessageText, msg.MessageType)
	assert.Equal(t, models.MessageStatusSent, msg.Status)
}

func TestMessageService_MarkRead_ResetsMatchCounter(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	msgRepo := noopMessageRepo()
	msgRepo.markReadForMatchFn = func(_ context.Context, _, _ string) (int64, error) { return 4, nil }

	matchRepo := activeMatchRepo("alice", "bob")
	var resetFor string
	matchRepo.resetUnreadFn = func(_ context.Context, _ *models.Match, userID string) error {
		resetFor = userID
		return nil
	}
	svc := NewMessageService(msgRepo, matchRepo)

	updated, err := svc.MarkRead(ctx, "bob", "m1")
	require.NoError(t, err)
	assert.EqualValues(t, 4, updated)
	assert.Equal(t, "bob", resetFor)
}
