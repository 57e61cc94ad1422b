package seed

import (
	"testing"

	"datingmeet/internal/database"
	"datingmeet/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func seedTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))
	return db
}

func TestBuildProfile(t *testing.T) {
	s := NewSeeder(seedTestDB(t))

	p := s.BuildProfile()
	assert.NotEmpty(t, p.UserID)
	assert.NotEmpty(t, p.Name)
	assert.NotEmpty(t, p.BirthDate)
	assert.Contains(t, []string{"male", "female"}, p.Gender)
	assert.NotEmpty(t, p.Photos)
}

func TestRunSeedsConsistentData(t *testing.T) {
	db := seedTestDB(t)
	s := NewSeeder(db)

	require.NoError(t, s.Run(Options{NumProfiles: 20, NumLikes: 60}))

	var profileCount, likeCount int64
	require.NoError(t, db.Model(&models.Profile{}).Count(&profileCount).Error)
	require.NoError(t, db.Model(&models.Like{}).Count(&likeCount).Error)
	assert.Equal(t, int64(20), profileCount)
	assert.Positive(t, likeCount)

	// Every match corresponds to two likes (of which only the completing one
	// is flagged) and two MATCH notifications.
	var matches []models.Match
	require.NoError(t, db.Find(&matches).Error)
	for _, m := range matches {
		var pairLikes, flagged int64
		pairScope := db.Model(&models.Like{}).Where(
			"(from_user_id = ? AND to_profile_id = ?) OR (from_user_id = ? AND to_profile_id = ?)",
			m.User1ID, m.User2ID, m.User2ID, m.User1ID,
		)
		require.NoError(t, pairScope.Session(&gorm.Session{}).Count(&pairLikes).Error)
		require.NoError(t, pairScope.Session(&gorm.Session{}).Where("is_matched = ?", true).Count(&flagged).Error)
		assert.Equal(t, int64(2), pairLikes, "match %s", m.ID)
		assert.Equal(t, int64(1), flagged, "match %s", m.ID)

		var notifs int64
		require.NoError(t, db.Model(&models.Notification{}).
			Where("type = ? AND user_id IN ?", models.NotificationMatch, []string{m.User1ID, m.User2ID}).
			Count(&notifs).Error)
		assert.Equal(t, int64(2), notifs, "match %s", m.ID)
	}
}

func TestClearAll(t *testing.T) {
	db := seedTestDB(t)
	s := NewSeeder(db)

	require.NoError(t, s.Run(Options{NumProfiles: 5, NumLikes: 10}))
	require.NoError(t, s.ClearAll())

	var count int64
	require.NoError(t, db.Model(&models.Profile{}).Count(&count).Error)
	assert.Zero(t, count)
}
