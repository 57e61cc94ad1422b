package service

import (
	"context"
	"strings"
	"time"

	"datingmeet/internal/models"
	"datingmeet/internal/repository"
)

const (
	maxNameLen = 128
	maxBioLen  = 1000
	maxPhotos  = 9
)

// ProfileService manages dating profiles.
type ProfileService struct {
	repo repository.ProfileRepository
}

// NewProfileService returns a new ProfileService.
func NewProfileService(repo repository.ProfileRepository) *ProfileService {
	return &ProfileService{repo: repo}
}

// UpsertProfileInput carries profile fields for create or update.
type UpsertProfileInput struct {
	UserID    string
	Name      string
	BirthDate string
	Gender    string
	Bio       string
	Photos    []string
}

// Upsert creates or replaces the caller's profile.
func (s *ProfileService) Upsert(ctx context.Context, in UpsertProfileInput) (*models.Profile, error) {
	if in.UserID == "" {
		return nil, models.NewInvalidRequestError("userId is required")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, models.NewInvalidRequestError("name is required")
	}
	if len(name) > maxNameLen {
		return nil, models.NewInvalidRequestError("name exceeds maximum length")
	}
	if len(in.Bio) > maxBioLen {
		return nil, models.NewInvalidRequestError("bio exceeds maximum length")
	}
	if len(in.Photos) > maxPhotos {
		return nil, models.NewInvalidRequestError("too many photos")
	}
	if in.BirthDate != "" {
		if _, err := time.Parse("2006-01-02", in.BirthDate); err != nil {
			return nil, models.NewInvalidRequestError("birthDate must be YYYY-MM-DD")
		}
	}

	profile := &models.Profile{
		UserID:    in.UserID,
		Name:      name,
		BirthDate: in.BirthDate,
		Gender:    strings.ToLower(strings.TrimSpace(in.Gender)),
		Bio:       in.Bio,
		Photos:    models.PhotoList(in.Photos),
	}
	// Verification status is managed out of band and survives profile edits.
	if existing, err := s.repo.Get(ctx, in.UserID); err == nil {
		profile.IsVerified = existing.IsVerified
		profile.CreatedAt = existing.CreatedAt
	}
	if err := s.repo.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Get returns a profile by user ID.
func (s *ProfileService) Get(ctx context.Context, userID string) (*models.Profile, error) {
	if userID == "" {
		return nil, models.NewInvalidRequestError("userId is required")
	}
	return s.repo.Get(ctx, userID)
}

// Discover returns candidate profiles for the caller.
func (s *ProfileService) Discover(ctx context.Context, userID, gender string, limit int) ([]models.Profile, error) {
	if userID == "" {
		return nil, models.NewInvalidRequestError("userId is required")
	}
	return s.repo.Discover(ctx, userID, strings.ToLower(strings.TrimSpace(gender)), limit)
}

// Delete removes the caller's profile.
func (s *ProfileService) Delete(ctx context.Context, userID string) error {
	if userID == "" {
		return models.NewInvalidRequestError("userId is required")
	}
	return s.repo.Delete(ctx, userID)
}
