package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"backend/internal/middleware"
	"backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDashboardService struct {
	payload []byte
	err     error
}

func (s *stubDashboardService) Stats(ctx context.Context, tenantID uuid.UUID) ([]byte, error) {
	return s.payload, s.err
}

func (s *stubDashboardService) Invalidate(ctx context.Context, tenantID uuid.UUID) {}

func signTestToken(t *testing.T, tenantID uuid.UUID) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":       uuid.New().String(),
		"tenant_id": tenantID.String(),
		"role":      "owner",
		"exp":       time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(middleware.GetJWTSecret())
	require.NoError(t, err)
	return signed
}

func newDashboardRouter(svc service.DashboardService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewDashboardHandler(svc).RegisterRoutes(router.Group(""))
	return router
}

func TestDashboardStatsEndpoint(t *testing.T) {
	tenantID := uuid.New()
	payload := []byte(`{"piece_count":42}`)
	router := newDashboardRouter(&stubDashboardService{payload: payload})

	t.Run("requires authentication", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/dashboard/stats", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "error", body["status"])
		assert.Equal(t, "Unauthorized", body["error"])
	})

	t.Run("rejects a garbage bearer token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/dashboard/stats", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("serves the cached payload verbatim", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/dashboard/stats", nil)
		req.Header.Set("Authorization", "Bearer "+signTestToken(t, tenantID))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, payload, w.Body.Bytes())
		assert.Equal(t, "private, max-age=60, stale-while-revalidate=120", w.Header().Get("Cache-Control"))
	})

	t.Run("masks internal errors", func(t *testing.T) {
		failing := newDashboardRouter(&stubDashboardService{err: assert.AnError})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/dashboard/stats", nil)
		req.Header.Set("Authorization", "Bearer "+signTestToken(t, tenantID))
		failing.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "Internal server error")
		assert.NotContains(t, w.Body.String(), assert.AnError.Error())
	})
}
