package adaptor

import (
	"net/http"

	"game-platform/internal/dto/request"
	"game-platform/internal/usecase"
	"game-platform/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type UserHandler struct {
	service usecase.UserService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log.With(zap.String("handler", "user")),
	}
}

// List handles GET /users?page=1&size=20&sort=createdAt&direction=DESC (admin only)
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.List(r.Context(), request.ParseUserListRequest(r))
	if err != nil {
		utils.ResponseError(w, r, h.log, err)
		return
	}

	utils.ResponsePaginated(w, r, "Users retrieved successfully", page)
}

// Me handles GET /users/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := utils.PrincipalFromContext(r.Context())
	if !ok {
		utils.ResponseError(w, r, h.log, utils.NewAppError(utils.KindMissingToken, "", "Authentication required"))
		return
	}

	user, err := h.service.Get(r.Context(), principal.UserID)
	if err != nil {
		utils.ResponseError(w, r, h.log, err)
		return
	}

	utils.ResponseSuccess(w, r, "User retrieved successfully", user)
}

// UpdateMe handles PUT /users/me
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	principal, ok := utils.PrincipalFromContext(r.Context())
	if !ok {
		utils.ResponseError(w, r, h.log, utils.NewAppError(utils.KindMissingToken, "", "Authentication required"))
		return
	}

	var req request.UpdateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), principal.UserID, &req)
	if err != nil {
		utils.ResponseError(w, r, h.log, err)
		return
	}

	utils.ResponseSuccess(w, r, "Profile updated successfully", user)
}

// Get handles GET /users/{id}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseError(w, r, h.log, err)
		return
	}

	utils.ResponseSuccess(w, r, "User retrieved successfully", user)
}

// Delete handles DELETE /users/{id} (admin only)
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Delete(r.Context(), id); err != nil {
		utils.ResponseError(w, r, h.log, err)
		return
	}

	h.log.Info("User deleted", zap.String("user_id", id))
	utils.ResponseSuccess(w, r, "User deleted successfully", nil)
}
