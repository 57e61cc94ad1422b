package repository

import (
	"context"
	"errors"

	"datingmeet/internal/cache"
	"datingmeet/internal/models"

	"gorm.io/gorm"
)

// ProfileRepository defines persistence operations for dating profiles.
type ProfileRepository interface {
	Get(ctx context.Context, userID string) (*models.Profile, error)
	Upsert(ctx context.Context, profile *models.Profile) error
	// Discover returns candidate profiles for the user, excluding the user
	// themselves, optionally filtered by gender.
	Discover(ctx context.Context, userID, gender string, limit int) ([]models.Profile, error)
	Delete(ctx context.Context, userID string) error
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository returns a new ProfileRepository implementation.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Get(ctx context.Context, userID string) (*models.Profile, error) {
	var profile models.Profile
	key := cache.ProfileKey(userID)

	err := cache.Aside(ctx, key, &profile, cache.ProfileTTL, func() error {
		if err := readDB(r.db).WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Profile", userID)
			}
			return models.NewPersistenceError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Upsert(ctx context.Context, profile *models.Profile) error {
	if err := r.db.WithContext(ctx).Save(profile).Error; err != nil {
		return models.NewPersistenceError(err)
	}
	cache.InvalidateProfile(ctx, profile.UserID)
	return nil
}

func (r *profileRepository) Discover(ctx context.Context, userID, gender string, limit int) ([]models.Profile, error) {
	if limit <= 0 || limit > 100 {
		limit = 25
	}
	query := readDB(r.db).WithContext(ctx).Where("user_id <> ?", userID)
	if gender != "" {
		query = query.Where("gender = ?", gender)
	}

	var profiles []models.Profile
	if err := query.Limit(limit).Find(&profiles).Error; err != nil {
		return nil, models.NewPersistenceError(err)
	}
	return profiles, nil
}

func (r *profileRepository) Delete(ctx context.Context, userID string) error {
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Profile{})
	if result.Error != nil {
		return models.NewPersistenceError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Profile", userID)
	}
	cache.InvalidateProfile(ctx, userID)
	return nil
}
