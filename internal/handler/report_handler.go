package handler

import (
	"fmt"
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	reports := router.Group("/api/reports")
	{
		reports.GET("/gst", middleware.RequireTenant(), h.GetGSTReport)
		reports.GET("/gst/export", middleware.RequireTenant(), h.ExportGSTReport)
	}
}

// GetGSTReport builds the quarterly GST/BAS figures
// @Summary      Quarterly GST report
// @Description  GST collected/paid and net payable for one financial-year quarter (quarter id like 2026-Q1)
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        quarter  query     string  true  "Quarter identifier, YYYY-Qn"
// @Success      200      {object}  response.Response{data=model.QuarterlyGSTReport}
// @Failure      400      {object}  response.Response "VALIDATION_ERROR or GST_NOT_REGISTERED"
// @Failure      401      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /api/reports/gst [get]
func (h *ReportHandler) GetGSTReport(c *gin.Context) {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Unauthorized"))
		return
	}

	quarter := c.Query("quarter")
	if quarter == "" {
		c.JSON(http.StatusBadRequest, response.ErrorWithCode(http.StatusBadRequest, "quarter query parameter is required", CodeValidation))
		return
	}

	report, err := h.reportService.QuarterlyGST(c.Request.Context(), tenantID, quarter)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, report))
}

// ExportGSTReport downloads the quarterly report as a workbook
// @Summary      Export GST report
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        quarter  query  string  true  "Quarter identifier, YYYY-Qn"
// @Success      200
// @Failure      400  {object}  response.Response
// @Router       /api/reports/gst/export [get]
func (h *ReportHandler) ExportGSTReport(c *gin.Context) {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Unauthorized"))
		return
	}

	quarter := c.Query("quarter")
	if quarter == "" {
		c.JSON(http.StatusBadRequest, response.ErrorWithCode(http.StatusBadRequest, "quarter query parameter is required", CodeValidation))
		return
	}

	workbook, err := h.reportService.ExportGSTXLSX(c.Request.Context(), tenantID, quarter)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="gst-report-%s.xlsx"`, quarter))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", workbook)
}
