package database

import (
	"context"
	"fmt"
	"time"

	"game-platform/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// InitRedis returns nil when no address is configured; callers treat that as caching disabled.
func InitRedis(ctx context.Context, config utils.RedisConfig) (*redis.Client, error) {
	if config.Addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis failed: %w", err)
	}

	return client, nil
}
