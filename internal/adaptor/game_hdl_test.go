package adaptor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"game-platform/internal/data/entity"
	"game-platform/internal/dto/request"
	"game-platform/internal/usecase"
	"game-platform/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubGameService embeds the interface so tests only implement what they call
type stubGameService struct {
	usecase.GameService
	bulkIn      []request.GameRequest
	lookedUp    int64
	deletedApp  int64
	bulkSkipped []int64
}

func (s *stubGameService) CreateBulk(_ context.Context, reqs []request.GameRequest) (*usecase.BulkResult, error) {
	s.bulkIn = reqs
	created := make([]*entity.Game, 0, len(reqs))
	for i := range reqs {
		created = append(created, &entity.Game{GameData: reqs[i]})
	}
	return &usecase.BulkResult{Created: created, Skipped: s.bulkSkipped}, nil
}

func (s *stubGameService) GetByAppID(_ context.Context, appID int64) (*entity.Game, error) {
	s.lookedUp = appID
	if appID == 404 {
		return nil, utils.ErrNotFound(utils.CodeGameNotFound, "Game not found with appId: 404")
	}
	return &entity.Game{GameData: entity.GameData{AppID: appID, Name: "Found"}}, nil
}

func (s *stubGameService) DeleteByAppID(_ context.Context, appID int64) error {
	s.deletedApp = appID
	return nil
}

func gameRouter(h *GameHandler) http.Handler {
	r := chi.NewRouter()
	r.Post("/games/bulk", h.CreateBulk)
	r.Get("/games/appid/{appId}", h.GetByAppID)
	r.Delete("/games/appid/{appId}", h.DeleteByAppID)
	return r
}

func TestCreateBulkDecodesArray(t *testing.T) {
	svc := &stubGameService{bulkSkipped: []int64{10}}
	router := gameRouter(NewGameHandler(svc, zap.NewNop()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/games/bulk",
		strings.NewReader(`[{"appId":20,"name":"A"},{"appId":30,"name":"B"}]`)))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, svc.bulkIn, 2)
	assert.Equal(t, int64(30), svc.bulkIn[1].AppID)

	body := decodeEnvelope(t, rec)
	assert.Equal(t, "2 games created successfully, 1 skipped as duplicates: [10]", body["message"])
	assert.Len(t, body["data"], 2)
}

func TestCreateBulkRejectsEmptyArray(t *testing.T) {
	svc := &stubGameService{}
	router := gameRouter(NewGameHandler(svc, zap.NewNop()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/games/bulk", strings.NewReader(`[]`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.bulkIn)
}

func TestGetByAppID(t *testing.T) {
	svc := &stubGameService{}
	router := gameRouter(NewGameHandler(svc, zap.NewNop()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/games/appid/570", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(570), svc.lookedUp)
	assert.Equal(t, "Found", decodeEnvelope(t, rec)["data"].(map[string]any)["name"])

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/games/appid/404", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, utils.CodeGameNotFound, decodeEnvelope(t, rec)["error"].(map[string]any)["code"])

	for _, bad := range []string{"abc", "0", "-5"} {
		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/games/appid/"+bad, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, bad)
	}
}

func TestDeleteByAppID(t *testing.T) {
	svc := &stubGameService{}
	router := gameRouter(NewGameHandler(svc, zap.NewNop()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/games/appid/620", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(620), svc.deletedApp)
}
