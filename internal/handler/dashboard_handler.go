package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
}

func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	dashboard := router.Group("/api/dashboard")
	{
		dashboard.GET("/stats", middleware.RequireTenant(), h.GetStats)
	}
}

// GetStats returns the merged dashboard payload
// @Summary      Dashboard statistics
// @Description  Counts, sales summaries, balance, profitability and conversion funnel for the tenant
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  model.DashboardStats
// @Failure      401  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *gin.Context) {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Unauthorized"))
		return
	}

	payload, err := h.dashboardService.Stats(c.Request.Context(), tenantID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	// The payload is served verbatim from the cache so repeated reads
	// within the TTL are byte-identical
	c.Header("Cache-Control", "private, max-age=60, stale-while-revalidate=120")
	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}
