package database

import (
	"context"
	"testing"

	"datingmeet/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestConfigurePool(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	cfg := &config.Config{
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           5,
		DBConnMaxLifetimeMinutes: 15,
	}

	err = configurePool(db, cfg)
	assert.NoError(t, err)
}

func TestSchemaPolicy(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.Config
		runSQL  bool
		runAuto bool
		wantErr bool
	}{
		{
			name:    "hybrid in development",
			cfg:     &config.Config{Env: "development", DBSchemaMode: "hybrid"},
			runSQL:  true,
			runAuto: true,
		},
		{
			name:    "hybrid in production",
			cfg:     &config.Config{Env: "production", DBSchemaMode: "hybrid"},
			runSQL:  true,
			runAuto: false,
		},
		{
			name:   "sql only",
			cfg:    &config.Config{Env: "development", DBSchemaMode: "sql"},
			runSQL: true,
		},
		{
			name:    "auto in production without override",
			cfg:     &config.Config{Env: "production", DBSchemaMode: "auto"},
			wantErr: true,
		},
		{
			name:    "unknown mode",
			cfg:     &config.Config{Env: "development", DBSchemaMode: "bogus"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runSQL, runAuto, err := schemaPolicy(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.runSQL, runSQL)
			assert.Equal(t, tt.runAuto, runAuto)
		})
	}
}

func TestAutoMigrate_CreatesTables(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, runAutoMigrate(db))

	for _, table := range []string{"profiles", "likes", "matches", "notifications", "messages"} {
		assert.True(t, db.Migrator().HasTable(table), "expected table %s", table)
	}
}

func TestRegisteredMigrations_HaveScripts(t *testing.T) {
	ms := GetMigrations()
	require.NotEmpty(t, ms)
	for _, m := range ms {
		assert.NotEmpty(t, m.UpScript, "migration %s has empty up script", m.String())
		assert.NotEmpty(t, m.DownScript, "migration %s has empty down script", m.String())
	}
}

func TestGetSchemaStatus_SQLDisabled(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	cfg := &config.Config{Env: "development", DBSchemaMode: "auto"}
	status, err := GetSchemaStatus(context.Background(), db, cfg)
	require.NoError(t, err)
	assert.False(t, status.WillRunSQL)
	assert.True(t, status.WillRunAutoMigrate)
	assert.Empty(t, status.PendingMigrations)
}
