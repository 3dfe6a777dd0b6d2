package repository

import (
	"context"
	"testing"
	"time"

	"game-platform/internal/data/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestCache(t *testing.T) (GameCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewGameCache(client, time.Minute, zap.NewNop()), mr
}

func sampleGame() *entity.Game {
	return &entity.Game{
		ID: primitive.NewObjectID(),
		GameData: entity.GameData{
			AppID:       570,
			Name:        "Dota 2",
			IsFree:      true,
			Platforms:   &entity.Platforms{Windows: true, Linux: true},
			ReleaseDate: &entity.ReleaseDate{Date: "9 Jul, 2013"},
		},
	}
}

func TestGameCacheRoundTrip(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()
	game := sampleGame()

	_, ok := cache.GetByID(ctx, game.ID.Hex())
	assert.False(t, ok)

	cache.Set(ctx, game)

	byID, ok := cache.GetByID(ctx, game.ID.Hex())
	require.True(t, ok)
	assert.Equal(t, game.ID, byID.ID)
	assert.Equal(t, "Dota 2", byID.Name)

	byAppID, ok := cache.GetByAppID(ctx, 570)
	require.True(t, ok)
	assert.Equal(t, game.ID, byAppID.ID)

	mr.FastForward(2 * time.Minute)
	_, ok = cache.GetByAppID(ctx, 570)
	assert.False(t, ok)
}

func TestGameCacheInvalidate(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()
	game := sampleGame()

	cache.Set(ctx, game)
	cache.Invalidate(ctx, game)

	_, ok := cache.GetByID(ctx, game.ID.Hex())
	assert.False(t, ok)
	_, ok = cache.GetByAppID(ctx, game.AppID)
	assert.False(t, ok)
}

func TestGameCacheCorruptEntryIsMiss(t *testing.T) {
	cache, mr := newTestCache(t)
	require.NoError(t, mr.Set(appIDKey(10), "{not json"))

	_, ok := cache.GetByAppID(context.Background(), 10)
	assert.False(t, ok)
	assert.False(t, mr.Exists(appIDKey(10)))
}

func TestNoopGameCache(t *testing.T) {
	cache := NewGameCache(nil, time.Minute, zap.NewNop())
	game := sampleGame()

	cache.Set(context.Background(), game)
	_, ok := cache.GetByID(context.Background(), game.ID.Hex())
	assert.False(t, ok)
}
