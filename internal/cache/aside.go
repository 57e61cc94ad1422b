package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"datingmeet/internal/observability"

	"github.com/redis/go-redis/v9"
)

// Aside implements the cache-aside pattern: try the cache first, fall back to
// the loader on a miss and populate the cache with the loaded value. The
// loader is expected to fill dest. Cache failures degrade to the loader.
func Aside(ctx context.Context, key string, dest interface{}, ttl time.Duration, loader func() error) error {
	if client == nil {
		return loader()
	}

	ctx, span := observability.GetTraceLayer().TraceRedisOperation(ctx, "cache_aside")
	defer span.End()

	raw, err := client.Get(ctx, key).Result()
	if err == nil {
		if unmarshalErr := json.Unmarshal([]byte(raw), dest); unmarshalErr == nil {
			return nil
		}
		// Corrupt entry, drop it and reload.
		client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		return loader()
	}

	if err := loader(); err != nil {
		return err
	}

	if encoded, err := json.Marshal(dest); err == nil {
		client.Set(ctx, key, encoded, ttl)
	}
	return nil
}
