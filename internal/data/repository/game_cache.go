package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"game-platform/internal/data/entity"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// GameCache is a best-effort read-through cache; failures are logged and
// treated as misses.
type GameCache interface {
	GetByID(ctx context.Context, id string) (*entity.Game, bool)
	GetByAppID(ctx context.Context, appID int64) (*entity.Game, bool)
	Set(ctx context.Context, game *entity.Game)
	Invalidate(ctx context.Context, game *entity.Game)
	InvalidateAppID(ctx context.Context, appID int64)
}

type redisGameCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewGameCache returns a no-op cache when client is nil
func NewGameCache(client *redis.Client, ttl time.Duration, log *zap.Logger) GameCache {
	if client == nil || ttl <= 0 {
		return noopGameCache{}
	}
	return &redisGameCache{client: client, ttl: ttl, log: log}
}

func idKey(id string) string {
	return "game:id:" + id
}

func appIDKey(appID int64) string {
	return "game:appid:" + strconv.FormatInt(appID, 10)
}

func (c *redisGameCache) get(ctx context.Context, key string) (*entity.Game, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		c.log.Warn("Game cache read failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	var game entity.Game
	if err := json.Unmarshal(raw, &game); err != nil {
		c.log.Warn("Game cache entry corrupt", zap.String("key", key), zap.Error(err))
		_ = c.client.Del(ctx, key).Err()
		return nil, false
	}
	return &game, true
}

func (c *redisGameCache) GetByID(ctx context.Context, id string) (*entity.Game, bool) {
	return c.get(ctx, idKey(id))
}

func (c *redisGameCache) GetByAppID(ctx context.Context, appID int64) (*entity.Game, bool) {
	return c.get(ctx, appIDKey(appID))
}

func (c *redisGameCache) Set(ctx context.Context, game *entity.Game) {
	raw, err := json.Marshal(game)
	if err != nil {
		c.log.Warn("Game cache encode failed", zap.Error(err))
		return
	}

	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, idKey(game.ID.Hex()), raw, c.ttl)
		pipe.Set(ctx, appIDKey(game.AppID), raw, c.ttl)
		return nil
	})
	if err != nil {
		c.log.Warn("Game cache write failed", zap.String("id", game.ID.Hex()), zap.Error(err))
	}
}

func (c *redisGameCache) Invalidate(ctx context.Context, game *entity.Game) {
	if err := c.client.Del(ctx, idKey(game.ID.Hex()), appIDKey(game.AppID)).Err(); err != nil {
		c.log.Warn("Game cache invalidate failed", zap.String("id", game.ID.Hex()), zap.Error(err))
	}
}

func (c *redisGameCache) InvalidateAppID(ctx context.Context, appID int64) {
	if err := c.client.Del(ctx, appIDKey(appID)).Err(); err != nil {
		c.log.Warn("Game cache invalidate failed", zap.String("key", fmt.Sprint(appID)), zap.Error(err))
	}
}

type noopGameCache struct{}

func (noopGameCache) GetByID(context.Context, string) (*entity.Game, bool)   { return nil, false }
func (noopGameCache) GetByAppID(context.Context, int64) (*entity.Game, bool) { return nil, false }
func (noopGameCache) Set(context.Context, *entity.Game)                      {}
func (noopGameCache) Invalidate(context.Context, *entity.Game)               {}
func (noopGameCache) InvalidateAppID(context.Context, int64)                 {}
