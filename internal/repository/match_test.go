package repository

import (
	"context"
	"testing"
	"time"

	"datingmeet/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchRepository_FindActiveByPair_OrderIndependent(t *testing.T) {
	truncateTables(t)
	repo := NewMatchRepository(testDB)
	ctx := context.Background()

	match := models.NewMatch("zoe", "adam", time.Now().UTC())
	require.NoError(t, testDB.Create(match).Error)

	// Canonical ordering puts adam first.
	assert.Equal(t, "adam", match.User1ID)
	assert.Equal(t, "zoe", match.User2ID)

	found, err := repo.FindActiveByPair(ctx, "zoe", "adam")
	require.NoError(t, err)
	require.NotNil(t, found)

	found, err = repo.FindActiveByPair(ctx, "adam", "zoe")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, match.ID, found.ID)
}

func TestMatchRepository_ListForUser_MergesBothSides(t *testing.T) {
	truncateTables(t)
	repo := NewMatchRepository(testDB)
	ctx := context.Background()

	base := time.Now().UTC()
	// "ben" appears as user1 in one match and user2 in another.
	m1 := models.NewMatch("ben", "zara", base.Add(-time.Minute))
	m2 := models.NewMatch("amy", "ben", base)
	require.NoError(t, testDB.Create(m1).Error)
	require.NoError(t, testDB.Create(m2).Error)

	ended := models.NewMatch("ben", "casey", base.Add(-2*time.Minute))
	ended.Status = models.MatchStatusEnded
	require.NoError(t, testDB.Create(ended).Error)

	matches, err := repo.ListForUser(ctx, "ben", 10)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, m2.ID, matches[0].ID, "newest match first")
	assert.Equal(t, m1.ID, matches[1].ID)
}

func TestMatchRepository_RecordMessage_BumpsRecipientUnread(t *testing.T) {
	truncateTables(t)
	repo := NewMatchRepository(testDB)
	ctx := context.Background()

	now := time.Now().UTC()
	match := models.NewMatch("dana", "eli", now)
	require.NoError(t, testDB.Create(match).Error)

	msg := &models.Message{
		ID:         models.NewMessageID(),
		MatchID:    match.ID,
		SenderID:   match.User1ID,
		ReceiverID: match.User2ID,
		Content:    "hey!",
		CreatedAt:  now,
	}
	require.NoError(t, repo.RecordMessage(testDB, match, msg))

	updated, err := repo.GetByID(ctx, match.ID)
	require.NoError(t, err)
	assert.Equal(t, "hey!", updated.LastMessage)
	assert.Equal(t, match.User1ID, updated.LastMessageSenderID)
	assert.Equal(t, 0, updated.UnreadCount1)
	assert.Equal(t, 1, updated.UnreadCount2)

	require.NoError(t, repo.ResetUnread(ctx, updated, match.User2ID))
	updated, err = repo.GetByID(ctx, match.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.UnreadCount2)
}

func TestMatchRepository_End(t *testing.T) {
	truncateTables(t)
	repo := NewMatchRepository(testDB)
	ctx := context.Background()

	match := models.NewMatch("finn", "gwen", time.Now().UTC())
	require.NoError(t, testDB.Create(match).Error)

	require.NoError(t, repo.End(ctx, match.ID))

	found, err := repo.FindActiveByPair(ctx, "finn", "gwen")
	require.NoError(t, err)
	assert.Nil(t, found)

	// Ending twice reports NotFound since no active row remains.
	err = repo.End(ctx, match.ID)
	assert.Error(t, err)
}
