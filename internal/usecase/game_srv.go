package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"game-platform/internal/data/entity"
	"game-platform/internal/data/repository"
	"game-platform/internal/dto/request"
	"game-platform/pkg/utils"

	"go.uber.org/zap"
)

type GameService interface {
	Create(ctx context.Context, req *request.GameRequest) (*entity.Game, error)
	CreateBulk(ctx context.Context, reqs []request.GameRequest) (*BulkResult, error)
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	GetByAppID(ctx context.Context, appID int64) (*entity.Game, error)
	List(ctx context.Context, page, size int) (*utils.Page[*entity.Game], error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, id string, req *request.GameRequest) (*entity.Game, error)
	Delete(ctx context.Context, id string) error
	DeleteByAppID(ctx context.Context, appID int64) error
}

// BulkResult lists the inserted games and the appIds skipped as duplicates
type BulkResult struct {
	Created []*entity.Game
	Skipped []int64
}

type gameService struct {
	games repository.GameRepository
	cache repository.GameCache
	log   *zap.Logger
	now   func() time.Time
}

func NewGameService(games repository.GameRepository, cache repository.GameCache, log *zap.Logger) GameService {
	return &gameService{
		games: games,
		cache: cache,
		log:   log.With(zap.String("service", "game")),
		now:   time.Now,
	}
}

func gameExists(appID int64) error {
	return utils.ErrAlreadyExists(utils.CodeGameAlreadyExists, fmt.Sprintf("Game already exists with appId: %d", appID))
}

func gameNotFound(field string, value any) error {
	return utils.ErrNotFound(utils.CodeGameNotFound, fmt.Sprintf("Game not found with %s: %v", field, value))
}

func (gs *gameService) Create(ctx context.Context, req *request.GameRequest) (*entity.Game, error) {
	// 1. Validate
	if details := utils.ValidateStruct(req); len(details) > 0 {
		return nil, utils.ErrValidation("Validation failed", details)
	}

	// 2. appId must be unused
	existing, err := gs.games.FindByAppID(ctx, req.AppID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, gameExists(req.AppID)
	}

	// 3. Insert
	now := gs.now().UTC()
	game := &entity.Game{GameData: *req, CreatedAt: now, UpdatedAt: now}
	err = gs.games.Create(ctx, game)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, gameExists(req.AppID)
	}
	if err != nil {
		return nil, err
	}

	gs.log.Info("Game created", zap.String("id", game.ID.Hex()), zap.Int64("app_id", game.AppID))
	return game, nil
}

// CreateBulk inserts every game whose appId is new, skipping appIds already
// stored or repeated earlier in the batch.
func (gs *gameService) CreateBulk(ctx context.Context, reqs []request.GameRequest) (*BulkResult, error) {
	// 1. Validate the whole batch first
	if len(reqs) == 0 {
		return nil, utils.ErrValidation("At least one game is required", nil)
	}
	var details []utils.FieldError
	for i := range reqs {
		for _, d := range utils.ValidateStruct(&reqs[i]) {
			d.Field = "[" + strconv.Itoa(i) + "]." + d.Field
			details = append(details, d)
		}
	}
	if len(details) > 0 {
		return nil, utils.ErrValidation("Validation failed", details)
	}

	// 2. Find appIds that already exist
	appIDs := make([]int64, 0, len(reqs))
	for i := range reqs {
		appIDs = append(appIDs, reqs[i].AppID)
	}
	existing, err := gs.games.ExistingAppIDs(ctx, appIDs)
	if err != nil {
		return nil, err
	}

	// 3. Keep the first occurrence of each new appId
	now := gs.now().UTC()
	result := &BulkResult{Created: []*entity.Game{}, Skipped: []int64{}}
	seen := make(map[int64]struct{}, len(reqs))
	for i := range reqs {
		appID := reqs[i].AppID
		if _, dup := existing[appID]; dup {
			result.Skipped = append(result.Skipped, appID)
			continue
		}
		if _, dup := seen[appID]; dup {
			result.Skipped = append(result.Skipped, appID)
			continue
		}
		seen[appID] = struct{}{}
		result.Created = append(result.Created, &entity.Game{GameData: reqs[i], CreatedAt: now, UpdatedAt: now})
	}

	if len(result.Skipped) > 0 {
		gs.log.Warn("Skipped duplicate games in bulk create", zap.Int64s("app_ids", result.Skipped))
	}

	// 4. Insert
	err = gs.games.CreateMany(ctx, result.Created)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, utils.ErrAlreadyExists(utils.CodeGameAlreadyExists, "Some games were created concurrently, retry the batch").Wrap(err)
	}
	if err != nil {
		return nil, err
	}

	gs.log.Info("Bulk games created", zap.Int("created", len(result.Created)), zap.Int("skipped", len(result.Skipped)))
	return result, nil
}

func (gs *gameService) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	if game, ok := gs.cache.GetByID(ctx, id); ok {
		return game, nil
	}

	game, err := gs.games.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, gameNotFound("id", id)
	}

	// A read that overlaps an Update may cache the old game again; it stays until the TTL expires.
	gs.cache.Set(ctx, game)
	return game, nil
}

func (gs *gameService) GetByAppID(ctx context.Context, appID int64) (*entity.Game, error) {
	if game, ok := gs.cache.GetByAppID(ctx, appID); ok {
		return game, nil
	}

	game, err := gs.games.FindByAppID(ctx, appID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, gameNotFound("appId", appID)
	}

	gs.cache.Set(ctx, game)
	return game, nil
}

func (gs *gameService) List(ctx context.Context, page, size int) (*utils.Page[*entity.Game], error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > utils.MaxPageSize {
		size = utils.DefaultPageSize
	}

	games, err := gs.games.FindAll(ctx, size, utils.CalculateOffset(page, size))
	if err != nil {
		return nil, err
	}
	total, err := gs.games.Count(ctx)
	if err != nil {
		return nil, err
	}

	return utils.NewPage(games, page, size, total), nil
}

func (gs *gameService) Count(ctx context.Context) (int64, error) {
	return gs.games.Count(ctx)
}

// Update replaces every client field of the game, keeping id and createdAt
func (gs *gameService) Update(ctx context.Context, id string, req *request.GameRequest) (*entity.Game, error) {
	// 1. Validate
	if details := utils.ValidateStruct(req); len(details) > 0 {
		return nil, utils.ErrValidation("Validation failed", details)
	}

	// 2. Load current document
	current, err := gs.games.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, gameNotFound("id", id)
	}

	// 3. A changed appId must not collide with another game
	if req.AppID != current.AppID {
		other, err := gs.games.FindByAppID(ctx, req.AppID)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != current.ID {
			return nil, gameExists(req.AppID)
		}
	}

	// 4. Replace
	updated := &entity.Game{
		ID:        current.ID,
		GameData:  *req,
		CreatedAt: current.CreatedAt,
		UpdatedAt: gs.now().UTC(),
	}
	err = gs.games.Replace(ctx, updated)
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		return nil, gameExists(req.AppID)
	case errors.Is(err, repository.ErrNotFound):
		return nil, gameNotFound("id", id)
	case err != nil:
		return nil, err
	}

	gs.cache.Invalidate(ctx, current)
	gs.cache.Invalidate(ctx, updated)

	gs.log.Info("Game updated", zap.String("id", id), zap.Int64("app_id", updated.AppID))
	return updated, nil
}

func (gs *gameService) Delete(ctx context.Context, id string) error {
	current, err := gs.games.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if current == nil {
		return gameNotFound("id", id)
	}

	err = gs.games.DeleteByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return gameNotFound("id", id)
	}
	if err != nil {
		return err
	}

	gs.cache.Invalidate(ctx, current)
	gs.log.Info("Game deleted", zap.String("id", id), zap.Int64("app_id", current.AppID))
	return nil
}

// DeleteByAppID is idempotent; deleting a missing appId succeeds
func (gs *gameService) DeleteByAppID(ctx context.Context, appID int64) error {
	if details := utils.ValidateVar("appId", appID, "gt=0"); len(details) > 0 {
		return utils.ErrValidation("Invalid appId", details)
	}

	current, err := gs.games.FindByAppID(ctx, appID)
	if err != nil {
		return err
	}

	deleted, err := gs.games.DeleteByAppID(ctx, appID)
	if err != nil {
		return err
	}

	if current != nil {
		gs.cache.Invalidate(ctx, current)
	} else {
		gs.cache.InvalidateAppID(ctx, appID)
	}
	gs.log.Info("Games deleted by appId", zap.Int64("app_id", appID), zap.Int64("deleted", deleted))
	return nil
}
