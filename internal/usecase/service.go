package usecase

import (
	"time"

	"game-platform/internal/data/repository"
	"game-platform/pkg/database"
	"game-platform/pkg/token"

	"go.uber.org/zap"
)

// TokenIssuer is satisfied by *token.Service
type TokenIssuer interface {
	IssueAccessToken(username, userID string, roles []string) (string, error)
	IssueRefreshToken(username, userID string, roles []string) (string, error)
	Verify(tokenString string) (*token.Claims, error)
	AccessTTL() time.Duration
	RefreshTTL() time.Duration
}

type Service struct {
	Auth AuthService
	User UserService
	Game GameService
}

// NewAccountService wires the user-service usecases
func NewAccountService(repo *repository.Repository, tx database.Transactor, tokens TokenIssuer, log *zap.Logger) *Service {
	return &Service{
		Auth: NewAuthService(repo, tx, tokens, log),
		User: NewUserService(repo, log),
	}
}

// NewCatalogService wires the game-service usecases
func NewCatalogService(games repository.GameRepository, cache repository.GameCache, log *zap.Logger) *Service {
	return &Service{
		Game: NewGameService(games, cache, log),
	}
}
