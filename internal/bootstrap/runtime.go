// Package bootstrap wires up runtime dependencies shared by the server and
// auxiliary commands.
package bootstrap

import (
	"fmt"

	"datingmeet/internal/cache"
	"datingmeet/internal/config"
	"datingmeet/internal/database"
	"datingmeet/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	SeedDemoData bool
}

// InitRuntime connects to the database and Redis and optionally seeds demo
// data. Redis may come back nil when unreachable; callers degrade gracefully.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}
	database.ConnectReadReplica(cfg)

	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.SeedDemoData && !cfg.IsProduction() {
		if err := seed.NewSeeder(db).Run(seed.Options{}); err != nil {
			return nil, nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	return db, r, nil
}
