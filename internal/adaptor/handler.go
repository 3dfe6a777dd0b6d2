package adaptor

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"game-platform/internal/usecase"
	"game-platform/pkg/utils"

	"go.uber.org/zap"
)

// maxBodyBytes caps request bodies; bulk game imports are the largest payloads
const maxBodyBytes = 16 << 20

type Handler struct {
	Auth *AuthHandler
	User *UserHandler
	Game *GameHandler
}

// NewAccountHandler builds the user-service handlers
func NewAccountHandler(service *usecase.Service, cookie utils.CookieConfig, refreshTTL time.Duration, log *zap.Logger) *Handler {
	return &Handler{
		Auth: NewAuthHandler(service.Auth, cookie, refreshTTL, log),
		User: NewUserHandler(service.User, log),
	}
}

// NewCatalogHandler builds the game-service handlers
func NewCatalogHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Game: NewGameHandler(service.Game, log),
	}
}

// decodeJSON reads the body into dst and writes a 400 envelope on failure
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
	if err == nil {
		return true
	}

	var maxErr *http.MaxBytesError
	switch {
	case errors.Is(err, io.EOF):
		utils.ResponseBadRequest(w, r, "Request body is required", nil)
	case errors.As(err, &maxErr):
		utils.ResponseBadRequest(w, r, "Request body is too large", nil)
	default:
		utils.ResponseBadRequest(w, r, "Invalid request body", nil)
	}
	return false
}
