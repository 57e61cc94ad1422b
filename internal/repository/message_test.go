package repository

import (
	"context"
	"testing"
	"time"

	"datingmeet/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageRepository_CreateWithMatchUpdate(t *testing.T) {
	truncateTables(t)
	matches := NewMatchRepository(testDB)
	repo := NewMessageRepository(testDB, matches)
	ctx := context.Background()

	now := time.Now().UTC()
	match := models.NewMatch("hugo", "iris", now)
	require.NoError(t, testDB.Create(match).Error)

	msg := &models.Message{
		ID:          models.NewMessageID(),
		MatchID:     match.ID,
		SenderID:    "hugo",
		ReceiverID:  "iris",
		Content:     "first message",
		MessageType: models.MessageText,
		Status:      models.MessageStatusSent,
		CreatedAt:   now,
	}
	require.NoError(t, repo.CreateWithMatchUpdate(ctx, msg, match))

	stored, err := repo.GetByID(ctx, msg.ID)
	require.NoError(t, err)
	assert.Equal(t, "first message", stored.Content)

	updatedMatch, err := matches.GetByID(ctx, match.ID)
	require.NoError(t, err)
	assert.Equal(t, "first message", updatedMatch.LastMessage)
	assert.Equal(t, "hugo", updatedMatch.LastMessageSenderID)
}

func TestMessageRepository_MarkReadForMatch(t *testing.T) {
	truncateTables(t)
	matches := NewMatchRepository(testDB)
	repo := NewMessageRepository(testDB, matches)
	ctx := context.Background()

	now := time.Now().UTC()
	match := models.NewMatch("jade", "kyle", now)
	require.NoError(t, testDB.Create(match).Error)

	for i := 0; i < 3; i++ {
		msg := &models.Message{
			ID:          models.NewMessageID(),
			MatchID:     match.ID,
			SenderID:    "jade",
			ReceiverID:  "kyle",
			Content:     "hello",
			MessageType: models.MessageText,
			Status:      models.MessageStatusSent,
			CreatedAt:   now.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, testDB.Create(msg).Error)
	}

	// Messages addressed to jade are untouched.
	reply := &models.Message{
		ID:          models.NewMessageID(),
		MatchID:     match.ID,
		SenderID:    "kyle",
		ReceiverID:  "jade",
		Content:     "hi back",
		MessageType: models.MessageText,
		Status:      models.MessageStatusSent,
		CreatedAt:   now.Add(10 * time.Second),
	}
	require.NoError(t, testDB.Create(reply).Error)

	updated, err := repo.MarkReadForMatch(ctx, match.ID, "kyle")
	require.NoError(t, err)
	assert.Equal(t, int64(3), updated)

	stored, err := repo.GetByID(ctx, reply.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MessageStatusSent, stored.Status)
}

func TestMessageRepository_ListForMatch_NewestFirst(t *testing.T) {
	truncateTables(t)
	matches := NewMatchRepository(testDB)
	repo := NewMessageRepository(testDB, matches)
	ctx := context.Background()

	now := time.Now().UTC()
	match := models.NewMatch("liam", "maya", now)
	require.NoError(t, testDB.Create(match).Error)

	for i := 0; i < 5; i++ {
		msg := &models.Message{
			ID:          models.NewMessageID(),
			MatchID:     match.ID,
			SenderID:    "liam",
			ReceiverID:  "maya",
			Content:     "msg",
			MessageType: models.MessageText,
			Status:      models.MessageStatusSent,
			CreatedAt:   now.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, testDB.Create(msg).Error)
	}

	list, err := repo.ListForMatch(ctx, match.ID, 3)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i := 1; i < len(list); i++ {
		assert.True(t, list[i].CreatedAt.Before(list[i-1].CreatedAt))
	}
}
