package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"backend/internal/model"
	"backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReportService struct {
	report model.QuarterlyGSTReport
	data   []byte
	err    error
}

func (s *stubReportService) QuarterlyGST(ctx context.Context, tenantID uuid.UUID, quarter string) (model.QuarterlyGSTReport, error) {
	return s.report, s.err
}

func (s *stubReportService) ExportGSTXLSX(ctx context.Context, tenantID uuid.UUID, quarter string) ([]byte, error) {
	return s.data, s.err
}

func newReportRouter(svc service.ReportService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewReportHandler(svc).RegisterRoutes(router.Group(""))
	return router
}

func TestGSTReportEndpoint(t *testing.T) {
	tenantID := uuid.New()
	token := signTestToken(t, tenantID)

	t.Run("returns the report", func(t *testing.T) {
		router := newReportRouter(&stubReportService{
			report: model.QuarterlyGSTReport{Quarter: "2026-Q1", NetGST: "80.00"},
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/reports/gst?quarter=2026-Q1", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"net_gst":"80.00"`)
	})

	t.Run("missing quarter is a validation error", func(t *testing.T) {
		router := newReportRouter(&stubReportService{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/reports/gst", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), CodeValidation)
	})

	t.Run("unregistered tenant gets the GST_NOT_REGISTERED code", func(t *testing.T) {
		router := newReportRouter(&stubReportService{err: service.ErrGSTNotRegistered})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/reports/gst?quarter=2026-Q1", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, CodeGSTNotRegistered, body["code"])
		assert.Equal(t, "GST Not Registered", body["error"])
	})

	t.Run("export sets a download disposition", func(t *testing.T) {
		router := newReportRouter(&stubReportService{data: []byte("PK-workbook")})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/reports/gst/export?quarter=2026-Q2", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, `attachment; filename="gst-report-2026-Q2.xlsx"`, w.Header().Get("Content-Disposition"))
	})
}
