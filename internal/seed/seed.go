// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"datingmeet/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumProfiles int
	NumLikes    int
	ShouldClean bool
}

// Seeder populates the database with demo profiles, likes, matches and
// notifications that resemble production data.
type Seeder struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	seed := time.Now().UnixNano()
	gofakeit.Seed(seed)
	return &Seeder{
		db:   db,
		rand: rand.New(rand.NewSource(seed)),
	}
}

// ClearAll removes all seeded data. Delete order respects the dependency
// direction between tables.
func (s *Seeder) ClearAll() error {
	for _, table := range []string{"messages", "notifications", "matches", "likes", "profiles"} {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	log.Println("Database cleared")
	return nil
}

// Run seeds the database per the given options.
func (s *Seeder) Run(opts Options) error {
	if opts.NumProfiles <= 0 {
		opts.NumProfiles = 50
	}
	if opts.NumLikes <= 0 {
		opts.NumLikes = opts.NumProfiles * 4
	}

	profiles, err := s.seedProfiles(opts.NumProfiles)
	if err != nil {
		return err
	}
	likes, matches, err := s.seedLikes(profiles, opts.NumLikes)
	if err != nil {
		return err
	}

	log.Printf("Seeded %d profiles, %d likes, %d matches", len(profiles), likes, matches)
	return nil
}

// BuildProfile constructs a random profile without persisting it.
func (s *Seeder) BuildProfile() *models.Profile {
	gender := "female"
	name := gofakeit.Name()
	if s.rand.Intn(2) == 0 {
		gender = "male"
	}

	age := 18 + s.rand.Intn(30)
	birth := time.Now().AddDate(-age, -s.rand.Intn(12), -s.rand.Intn(28))

	photos := make(models.PhotoList, 0, 3)
	for i := 0; i < 1+s.rand.Intn(3); i++ {
		photos = append(photos, fmt.Sprintf("https://picsum.photos/seed/%s/600/800", gofakeit.UUID()))
	}

	return &models.Profile{
		UserID:     "user_" + strings.ToLower(gofakeit.LetterN(12)),
		Name:       name,
		BirthDate:  birth.Format("2006-01-02"),
		Gender:     gender,
		Bio:        gofakeit.Sentence(12),
		Photos:     photos,
		IsVerified: s.rand.Intn(4) == 0,
	}
}

func (s *Seeder) seedProfiles(n int) ([]models.Profile, error) {
	profiles := make([]models.Profile, 0, n)
	for i := 0; i < n; i++ {
		p := s.BuildProfile()
		if err := s.db.Create(p).Error; err != nil {
			return nil, fmt.Errorf("create profile: %w", err)
		}
		profiles = append(profiles, *p)
	}
	return profiles, nil
}

// seedLikes creates likes between random profile pairs. When a pair likes
// each other a match and MATCH notifications are created, mirroring what the
// like service does at runtime.
func (s *Seeder) seedLikes(profiles []models.Profile, n int) (likes, matches int, err error) {
	if len(profiles) < 2 {
		return 0, 0, nil
	}

	seen := make(map[string]bool)
	for i := 0; i < n; i++ {
		from := profiles[s.rand.Intn(len(profiles))]
		to := profiles[s.rand.Intn(len(profiles))]
		if from.UserID == to.UserID {
			continue
		}
		pairKey := from.UserID + "|" + to.UserID
		if seen[pairKey] {
			continue
		}
		seen[pairKey] = true

		action := models.ActionLike
		if s.rand.Intn(5) == 0 {
			action = models.ActionPass
		}

		createdAt := time.Now().Add(-time.Duration(s.rand.Intn(72)) * time.Hour)
		like := models.Like{
			ID:          models.NewLikeID(from.UserID, to.UserID, createdAt),
			FromUserID:  from.UserID,
			ToProfileID: to.UserID,
			ActionType:  action,
			IsActive:    true,
			CreatedAt:   createdAt,
		}

		reciprocal := action == models.ActionLike && seen[to.UserID+"|"+from.UserID]
		if err := s.db.Transaction(func(tx *gorm.DB) error {
			if reciprocal {
				var prior models.Like
				findErr := tx.Where(
					"from_user_id = ? AND to_profile_id = ? AND is_active = ? AND action_type = ?",
					to.UserID, from.UserID, true, models.ActionLike,
				).First(&prior).Error
				if findErr == nil {
					// Only the completing like carries the matched flag; the
					// prior one keeps the state it was created with.
					like.IsMatched = true
					match := models.NewMatch(from.UserID, to.UserID, createdAt)
					if err := tx.Create(match).Error; err != nil {
						return err
					}
					for _, uid := range []string{from.UserID, to.UserID} {
						other, _ := match.OtherParticipant(uid)
						notif := models.Notification{
							ID:         models.NewNotificationID(),
							UserID:     uid,
							FromUserID: other,
							Type:       models.NotificationMatch,
							Message:    "It's a match!",
							CreatedAt:  createdAt,
						}
						if err := tx.Create(&notif).Error; err != nil {
							return err
						}
					}
					matches++
				}
			}
			if !like.IsMatched && action == models.ActionLike {
				notif := models.Notification{
					ID:         models.NewNotificationID(),
					UserID:     to.UserID,
					FromUserID: from.UserID,
					Type:       models.NotificationLike,
					Message:    "Someone liked your profile!",
					IsRead:     s.rand.Intn(2) == 0,
					CreatedAt:  createdAt,
				}
				if err := tx.Create(&notif).Error; err != nil {
					return err
				}
			}
			return tx.Create(&like).Error
		}); err != nil {
			return likes, matches, fmt.Errorf("create like: %w", err)
		}
		likes++
	}
	return likes, matches, nil
}
