package repository

import (
	"context"
	"errors"
	"fmt"

	"game-platform/internal/data/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const gamesCollection = "games"

type GameRepository interface {
	EnsureIndexes(ctx context.Context) error
	Create(ctx context.Context, game *entity.Game) error
	CreateMany(ctx context.Context, games []*entity.Game) error
	FindByID(ctx context.Context, id string) (*entity.Game, error)
	FindByAppID(ctx context.Context, appID int64) (*entity.Game, error)
	ExistingAppIDs(ctx context.Context, appIDs []int64) (map[int64]struct{}, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Game, error)
	Count(ctx context.Context) (int64, error)
	Replace(ctx context.Context, game *entity.Game) error
	DeleteByID(ctx context.Context, id string) error
	DeleteByAppID(ctx context.Context, appID int64) (int64, error)
}

type gameRepository struct {
	coll *mongo.Collection
	log  *zap.Logger
}

func NewGameRepository(db *mongo.Database, log *zap.Logger) GameRepository {
	return &gameRepository{
		coll: db.Collection(gamesCollection),
		log:  log,
	}
}

// EnsureIndexes creates the unique appId index
func (gr *gameRepository) EnsureIndexes(ctx context.Context) error {
	_, err := gr.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "appId", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("ux_games_app_id"),
	})
	if err != nil {
		return fmt.Errorf("create games indexes: %w", err)
	}
	return nil
}

func (gr *gameRepository) Create(ctx context.Context, game *entity.Game) error {
	if game.ID.IsZero() {
		game.ID = primitive.NewObjectID()
	}

	_, err := gr.coll.InsertOne(ctx, game)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("create game %d: %w: %w", game.AppID, ErrDuplicate, err)
	}
	if err != nil {
		gr.log.Error("Failed to create game", zap.Error(err), zap.Int64("app_id", game.AppID))
		return fmt.Errorf("create game %d: %w", game.AppID, err)
	}
	return nil
}

// CreateMany inserts games in one ordered batch
func (gr *gameRepository) CreateMany(ctx context.Context, games []*entity.Game) error {
	if len(games) == 0 {
		return nil
	}

	docs := make([]any, 0, len(games))
	for _, game := range games {
		if game.ID.IsZero() {
			game.ID = primitive.NewObjectID()
		}
		docs = append(docs, game)
	}

	_, err := gr.coll.InsertMany(ctx, docs)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("create %d games: %w: %w", len(games), ErrDuplicate, err)
	}
	if err != nil {
		gr.log.Error("Failed to create games", zap.Error(err), zap.Int("count", len(games)))
		return fmt.Errorf("create %d games: %w", len(games), err)
	}
	return nil
}

func (gr *gameRepository) findOne(ctx context.Context, filter bson.M) (*entity.Game, error) {
	var game entity.Game
	err := gr.coll.FindOne(ctx, filter).Decode(&game)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// FindByID returns nil for malformed ids as well as missing documents
func (gr *gameRepository) FindByID(ctx context.Context, id string) (*entity.Game, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	game, err := gr.findOne(ctx, bson.M{"_id": oid})
	if err != nil {
		gr.log.Error("Failed to find game by ID", zap.Error(err), zap.String("id", id))
		return nil, fmt.Errorf("find game by ID %s: %w", id, err)
	}
	return game, nil
}

func (gr *gameRepository) FindByAppID(ctx context.Context, appID int64) (*entity.Game, error) {
	game, err := gr.findOne(ctx, bson.M{"appId": appID})
	if err != nil {
		gr.log.Error("Failed to find game by appId", zap.Error(err), zap.Int64("app_id", appID))
		return nil, fmt.Errorf("find game by appId %d: %w", appID, err)
	}
	return game, nil
}

func (gr *gameRepository) ExistingAppIDs(ctx context.Context, appIDs []int64) (map[int64]struct{}, error) {
	existing := make(map[int64]struct{})
	if len(appIDs) == 0 {
		return existing, nil
	}

	cursor, err := gr.coll.Find(ctx,
		bson.M{"appId": bson.M{"$in": appIDs}},
		options.Find().SetProjection(bson.M{"appId": 1}),
	)
	if err != nil {
		gr.log.Error("Failed to look up appIds", zap.Error(err), zap.Int("count", len(appIDs)))
		return nil, fmt.Errorf("find existing appIds: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var doc struct {
			AppID int64 `bson:"appId"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode appId: %w", err)
		}
		existing[doc.AppID] = struct{}{}
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate appIds: %w", err)
	}
	return existing, nil
}

// FindAll returns one page of games ordered by appId
func (gr *gameRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Game, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "appId", Value: 1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := gr.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		gr.log.Error("Failed to list games", zap.Error(err), zap.Int("limit", limit), zap.Int("offset", offset))
		return nil, fmt.Errorf("find all games limit %d offset %d: %w", limit, offset, err)
	}
	defer cursor.Close(ctx)

	var games []*entity.Game
	if err := cursor.All(ctx, &games); err != nil {
		gr.log.Error("Failed to decode games", zap.Error(err))
		return nil, fmt.Errorf("decode games: %w", err)
	}
	return games, nil
}

func (gr *gameRepository) Count(ctx context.Context) (int64, error) {
	count, err := gr.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		gr.log.Error("Failed to count games", zap.Error(err))
		return 0, fmt.Errorf("count games: %w", err)
	}
	return count, nil
}

// Replace overwrites the stored document with the same _id
func (gr *gameRepository) Replace(ctx context.Context, game *entity.Game) error {
	result, err := gr.coll.ReplaceOne(ctx, bson.M{"_id": game.ID}, game)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("replace game %s: %w: %w", game.ID.Hex(), ErrDuplicate, err)
	}
	if err != nil {
		gr.log.Error("Failed to replace game", zap.Error(err), zap.String("id", game.ID.Hex()))
		return fmt.Errorf("replace game %s: %w", game.ID.Hex(), err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("replace game %s: %w", game.ID.Hex(), ErrNotFound)
	}
	return nil
}

func (gr *gameRepository) DeleteByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("delete game %s: %w", id, ErrNotFound)
	}

	result, err := gr.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		gr.log.Error("Failed to delete game", zap.Error(err), zap.String("id", id))
		return fmt.Errorf("delete game %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("delete game %s: %w", id, ErrNotFound)
	}
	return nil
}

func (gr *gameRepository) DeleteByAppID(ctx context.Context, appID int64) (int64, error) {
	result, err := gr.coll.DeleteMany(ctx, bson.M{"appId": appID})
	if err != nil {
		gr.log.Error("Failed to delete game by appId", zap.Error(err), zap.Int64("app_id", appID))
		return 0, fmt.Errorf("delete game by appId %d: %w", appID, err)
	}
	return result.DeletedCount, nil
}
