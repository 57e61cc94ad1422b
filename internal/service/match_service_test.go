package service

import (
	"context"
	"testing"
	"time"

	"datingmeet/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// profileRepoStub is a stub for repository.ProfileRepository.
type profileRepoStub struct {
	getFn      func(context.Context, string) (*models.Profile, error)
	upsertFn   func(context.Context, *models.Profile) error
	discoverFn func(context.Context, string, string, int) ([]models.Profile, error)
	deleteFn   func(context.Context, string) error
}

func (s *profileRepoStub) Get(ctx context.Context, userID string) (*models.Profile, error) {
	return s.getFn(ctx, userID)
}
func (s *profileRepoStub) Upsert(ctx context.Context, profile *models.Profile) error {
	return s.upsertFn(ctx, profile)
}
func (s *profileRepoStub) Discover(ctx context.Context, userID, gender string, limit int) ([]models.Profile, error) {
	return s.discoverFn(ctx, userID, gender, limit)
}
func (s *profileRepoStub) Delete(ctx context.Context, userID string) error {
	return s.deleteFn(ctx, userID)
}

func noopProfileRepo() *profileRepoStub {
	return &profileRepoStub{
		getFn:      func(_ context.Context, id string) (*models.Profile, error) { return &models.Profile{UserID: id}, nil },
		upsertFn:   func(_ context.Context, _ *models.Profile) error { return nil },
		discoverFn: func(_ context.Context, _, _ string, _ int) ([]models.Profile, error) { return nil, nil },
		deleteFn:   func(_ context.Context, _ string) error { return nil },
	}
}

func TestMatchService_List_AnnotatesPartner(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	now := time.Now().UTC()
	matchRepo := noopMatchRepo()
	matchRepo.listForUserFn = func(_ context.Context, _ string, _ int) ([]models.Match, error) {
		return []models.Match{*models.NewMatch("alice", "bob", now)}, nil
	}
	profileRepo := noopProfileRepo()
	profileRepo.getFn = func(_ context.Context, id string) (*models.Profile, error) {
		return &models.Profile{UserID: id, Name: "Bob"}, nil
	}

	svc := NewMatchService(matchRepo, profileRepo)
	views, err := svc.List(ctx, "alice", 10)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.NotNil(t, views[0].Partner)
	assert.Equal(t, "bob", views[0].Partner.UserID)
}

func TestMatchService_List_MissingPartnerProfileDegrades(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	matchRepo := noopMatchRepo()
	matchRepo.listForUserFn = func(_ context.Context, _ string, _ int) ([]models.Match, error) {
		return []models.Match{*models.NewMatch("alice", "bob", time.Now().UTC())}, nil
	}
	profileRepo := noopProfileRepo()
	profileRepo.getFn = func(_ context.Context, id string) (*models.Profile, error) {
		return nil, models.NewNotFoundError("Profile", id)
	}

	svc := NewMatchService(matchRepo, profileRepo)
	views, err := svc.List(ctx, "alice", 10)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Nil(t, views[0].Partner)
}

func TestMatchService_Get_ParticipantsOnly(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	matchRepo := noopMatchRepo()
	matchRepo.getByIDFn = func(_ context.Context, id string) (*models.Match, error) {
		return models.NewMatch("alice", "bob", time.Now().UTC()), nil
	}
	svc := NewMatchService(matchRepo, noopProfileRepo())

	_, err := svc.Get(ctx, "mallory", "match_1")
	assertAppErrorCode(t, err, models.CodeForbidden)

	match, err := svc.Get(ctx, "alice", "match_1")
	require.NoError(t, err)
	assert.True(t, match.HasParticipant("alice"))
}

func TestMatchService_End_ChecksMembershipFirst(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	matchRepo := noopMatchRepo()
	matchRepo.getByIDFn = func(_ context.Context, id string) (*models.Match, error) {
		return models.NewMatch("alice", "bob", time.Now().UTC()), nil
	}
	ended := false
	matchRepo.endFn = func(_ context.Context, _ string) error {
		ended = true
		return nil
	}
	svc := NewMatchService(matchRepo, noopProfileRepo())

	err := svc.End(ctx, "mallory", "match_1")
	assertAppErrorCode(t, err, models.CodeForbidden)
	assert.False(t, ended)

	require.NoError(t, svc.End(ctx, "bob", "match_1"))
	assert.True(t, ended)
}
