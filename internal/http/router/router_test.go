package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/freelance-lifecycle/internal/config"
	"github.com/ignatzorin/freelance-lifecycle/internal/domain/valueobject"
	"github.com/ignatzorin/freelance-lifecycle/internal/http/middleware"
	"github.com/ignatzorin/freelance-lifecycle/internal/interface/http/handler"
	"github.com/ignatzorin/freelance-lifecycle/internal/service"
)

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

func newTestRouter(t *testing.T) (*gin.Engine, *service.TokenManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := service.NewTokenManager("router-test-secret-long-enough-for-hs256")
	store, err := middleware.NewRateLimitStore("")
	require.NoError(t, err)

	cfg := &config.Config{Env: "test", RateLimitLimit: 1000, RateLimitPeriod: time.Minute}
	// Хэндлеры без use case: проверяются только маршруты и middleware до вызова хэндлера.
	engine, err := SetupRouter(cfg, Handlers{
		Health:    handler.NewHealthHandler(okPinger{}),
		Jobs:      &handler.JobHandler{},
		Proposals: &handler.ProposalHandler{},
		Orders:    &handler.OrderHandler{},
		Disputes:  &handler.DisputeHandler{},
		Messages:  &handler.MessageHandler{},
		Wallet:    &handler.WalletHandler{},
		Admin:     &handler.AdminHandler{},
		WS:        handler.NewWSHandler(nil, tokens, nil),
	}, tokens, store)
	require.NoError(t, err)
	return engine, tokens
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var env struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	assert.False(t, env.Success)
	return env.Error.Code
}

func serve(engine *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRouter_Health(t *testing.T) {
	engine, _ := newTestRouter(t)
	w := serve(engine, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_NotFoundAndMethodNotAllowed(t *testing.T) {
	engine, _ := newTestRouter(t)

	w := serve(engine, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, w))

	w = serve(engine, httptest.NewRequest(http.MethodDelete, "/api/wallet", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "METHOD_NOT_ALLOWED", errorCode(t, w))
}

func TestRouter_RequiresToken(t *testing.T) {
	engine, _ := newTestRouter(t)

	w := serve(engine, httptest.NewRequest(http.MethodGet, "/api/orders", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, w))

	w = serve(engine, httptest.NewRequest(http.MethodGet, "/api/ws", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(engine, httptest.NewRequest(http.MethodGet, "/api/ws?token=garbage", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_AdminGroupRequiresAdmin(t *testing.T) {
	engine, tokens := newTestRouter(t)
	token, err := tokens.Issue(uuid.New(), valueobject.RoleClient, time.Hour)
	require.NoError(t, err)

	for _, target := range []struct{ method, path string }{
		{http.MethodGet, "/api/admin/stats"},
		{http.MethodGet, "/api/admin/skills"},
		{http.MethodPut, "/api/admin/skills/go"},
		{http.MethodDelete, "/api/admin/skills/go"},
	} {
		req := httptest.NewRequest(target.method, target.path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := serve(engine, req)
		assert.Equal(t, http.StatusForbidden, w.Code, target.path)
		assert.Equal(t, "FORBIDDEN", errorCode(t, w), target.path)
	}
}

func TestRouter_RejectsMalformedID(t *testing.T) {
	engine, tokens := newTestRouter(t)
	token, err := tokens.Issue(uuid.New(), valueobject.RoleClient, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/orders/123", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := serve(engine, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "BAD_REQUEST", errorCode(t, w))
}
