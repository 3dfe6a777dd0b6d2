package adaptor

import (
	"fmt"
	"net/http"
	"strconv"

	"game-platform/internal/dto/request"
	"game-platform/internal/usecase"
	"game-platform/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type GameHandler struct {
	service usecase.GameService
	log     *zap.Logger
}

func NewGameHandler(service usecase.GameService, log *zap.Logger) *GameHandler {
	return &GameHandler{
		service: service,
		log:     log.With(zap.String("handler", "game")),
	}
}

// Create handles POST /games (admin only)
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.GameRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	game, err := h.service.Create(r.Context(), &req)
	if err != nil {
		utils.ResponseError(w, r, h.log, err)
		return
	}

	utils.ResponseCreated(w, r, "Game created successfully", game)
}

// CreateBulk handles POST /games/bulk with a JSON array body (admin only)
func (h *GameHandler) CreateBulk(w http.ResponseWriter, r *http.Request) {
	var req request.BulkGameRequest
	if !decodeJSON(w, r, &req.Games) {
		return
	}
	if details := utils.ValidateStruct(&req); len(details) > 0 {
		utils.ResponseBadRequest(w, r, "Request must contain between 1 and 500 games", details)
		return
	}

	result, err := h.service.CreateBulk(r.Context(), req.Games)
	if err != nil {
		utils.ResponseError(w, r, h.log, err)
		return
	}

	message := fmt.Sprintf("%d games created successfully", len(result.Created))
	if len(result.Skipped) > 0 {
		message = fmt.Sprintf("%d games created successfully, %d skipped as duplicates: %v",
			len(result.Created), len(result.Skipped), result.Skipped)
	}
	utils.ResponseCreated(w, r, message, result.Created)
}

// List handles GET /games?page=1&size=20
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	page, size := utils.ParsePageParams(r)

	games, err := h.service.List(r.Context(), page, size)
	if err != nil {
		utils.ResponseError(w, r, h.log, err)
		return
	}

	utils.ResponsePaginated(w, r, "Games retrieved successfully", games)
}

// Count handles GET /games/count
func (h *GameHandler) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.Count(r.Context())
	if err != nil {
		utils.ResponseError(w, r, h.log, err)
		return
	}

	utils.ResponseSuccess(w, r, "Games counted successfully", count)
}

// Get handles GET /games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	game, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseError(w, r, h.log, err)
		return
	}

	utils.ResponseSuccess(w, r, "Game retrieved successfully", game)
}

// GetByAppID handles GET /games/appid/{appId}
func (h *GameHandler) GetByAppID(w http.ResponseWriter, r *http.Request) {
	appID, ok := parseAppID(w, r)
	if !ok {
		return
	}

	game, err := h.service.GetByAppID(r.Context(), appID)
	if err != nil {
		utils.ResponseError(w, r, h.log, err)
		return
	}

	utils.ResponseSuccess(w, r, "Game retrieved successfully", game)
}

// Update handles PUT /games/{id} (admin only)
func (h *GameHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req request.GameRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	game, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		utils.ResponseError(w, r, h.log, err)
		return
	}

	utils.ResponseSuccess(w, r, "Game updated successfully", game)
}

// Delete handles DELETE /games/{id} (admin only)
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		utils.ResponseError(w, r, h.log, err)
		return
	}

	utils.ResponseSuccess(w, r, "Game deleted successfully", nil)
}

// DeleteByAppID handles DELETE /games/appid/{appId} (admin only)
func (h *GameHandler) DeleteByAppID(w http.ResponseWriter, r *http.Request) {
	appID, ok := parseAppID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteByAppID(r.Context(), appID); err != nil {
		utils.ResponseError(w, r, h.log, err)
		return
	}

	utils.ResponseSuccess(w, r, "Game deleted successfully", nil)
}

func parseAppID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "appId")
	appID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || appID <= 0 {
		utils.ResponseBadRequest(w, r, "Invalid appId", []utils.FieldError{
			{Field: "appId", Message: "Must be a positive integer", RejectedValue: raw},
		})
		return 0, false
	}
	return appID, true
}
