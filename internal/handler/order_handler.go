package handler

import (
	"fmt"
	"net/http"
	"time"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/pagination"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup) {
	orders := router.Group("/api/orders", middleware.RequireTenant())
	{
		orders.GET("", h.List)
		orders.GET("/export", h.ExportCSV)
		orders.GET("/:id", h.Get)
		orders.PUT("/:id/status", h.UpdateStatus)
		orders.POST("/bulk-status", h.BulkStatus)
	}
}

// List returns the tenant's orders with optional status filter
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        status  query  string  false  "Filter by status"
// @Param        page    query  int     false  "Page"
// @Param        limit   query  int     false  "Page size"
// @Success      200  {object}  response.Response
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	tenantID, _ := middleware.TenantID(c)
	params := pagination.Parse(c)

	orders, total, err := h.orderService.List(c.Request.Context(), tenantID, service.OrderListFilter{
		Status: c.Query("status"),
		Page:   params.Page,
		Limit:  params.Limit,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{
		"orders": orders,
		"total":  total,
		"page":   params.Page,
		"limit":  params.Limit,
	}))
}

func (h *OrderHandler) Get(c *gin.Context) {
	tenantID, _ := middleware.TenantID(c)

	order, err := h.orderService.Get(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, order))
}

// UpdateStatus transitions one order
// @Summary      Update order status
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string  true  "Order id"
// @Param        payload  body      service.UpdateOrderStatusRequest  true  "Target status"
// @Success      200      {object}  response.Response{data=model.Order}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	tenantID, _ := middleware.TenantID(c)

	var req service.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), tenantID, c.Param("id"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, order))
}

// BulkStatus transitions up to 100 orders in one transaction
// @Summary      Bulk order status update
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.BulkStatusRequest  true  "Order ids and target status"
// @Success      200      {object}  response.Response{data=service.BulkStatusResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/orders/bulk-status [post]
func (h *OrderHandler) BulkStatus(c *gin.Context) {
	tenantID, _ := middleware.TenantID(c)

	var req service.BulkStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, err := h.orderService.BulkStatus(c.Request.Context(), tenantID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// ExportCSV downloads paid orders in range as line-item CSV
// @Summary      Export orders
// @Tags         orders
// @Produce      text/csv
// @Security     BearerAuth
// @Param        start_date  query  string  false  "Start Date (RFC3339), defaults to start of current month"
// @Param        end_date    query  string  false  "End Date (RFC3339), defaults to now"
// @Success      200
// @Failure      400  {object}  response.Response
// @Router       /api/orders/export [get]
func (h *OrderHandler) ExportCSV(c *gin.Context) {
	tenantID, _ := middleware.TenantID(c)

	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := now

	if raw := c.Query("start_date"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorWithCode(http.StatusBadRequest, "invalid start_date format, expected RFC3339", CodeValidation))
			return
		}
		start = parsed
	}
	if raw := c.Query("end_date"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorWithCode(http.StatusBadRequest, "invalid end_date format, expected RFC3339", CodeValidation))
			return
		}
		end = parsed
	}

	data, err := h.orderService.ExportCSV(c.Request.Context(), tenantID, start, end)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="orders-%s.csv"`, now.Format("2006-01-02")))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
