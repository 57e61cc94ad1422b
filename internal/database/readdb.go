package database

import (
	"fmt"
	"log/slog"
	"time"

	"datingmeet/internal/config"
	"datingmeet/internal/middleware"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// readDB is the optional read-replica connection. Nil when no replica is
// configured; callers fall back to the primary.
var readDB *gorm.DB

// GetReadDB returns the read-replica connection, or nil if none is configured.
func GetReadDB() *gorm.DB {
	return readDB
}

// ConnectReadReplica opens a connection to the read replica when DB_READ_HOST
// is set. Replica failures are non-fatal; reads fall back to the primary.
func ConnectReadReplica(cfg *config.Config) {
	if cfg.DBReadHost == "" {
		return
	}

	sslMode := cfg.DBSSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	port := cfg.DBReadPort
	if port == "" {
		port = cfg.DBPort
	}
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBReadHost,
		port,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		sslMode,
	)

	gormLogger := &CustomGormLogger{
		logger: middleware.Logger,
		Config: logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	}

	replica, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		middleware.Logger.Warn("Read replica unavailable, reads fall back to primary",
			slog.String("host", cfg.DBReadHost),
			slog.String("error", err.Error()),
		)
		return
	}

	if err := configurePool(replica, cfg); err != nil {
		middleware.Logger.Warn("Failed to configure read replica pool", slog.String("error", err.Error()))
	}

	readDB = replica
	middleware.Logger.Info("Read replica connected", slog.String("host", cfg.DBReadHost))
}
