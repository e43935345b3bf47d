package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/pagination"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type DiscountHandler struct {
	discountService service.DiscountService
}

func NewDiscountHandler(discountService service.DiscountService) *DiscountHandler {
	return &DiscountHandler{discountService: discountService}
}

func (h *DiscountHandler) RegisterRoutes(router *gin.RouterGroup) {
	discounts := router.Group("/api/discounts", middleware.RequireTenant())
	{
		discounts.GET("", h.List)
		discounts.POST("", h.Create)
		discounts.PUT("/:id", h.Update)
		discounts.DELETE("/:id", h.Delete)
	}
}

func (h *DiscountHandler) List(c *gin.Context) {
	tenantID, _ := middleware.TenantID(c)
	params := pagination.Parse(c)

	discounts, total, err := h.discountService.List(c.Request.Context(), tenantID, params.Page, params.Limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{
		"discounts": discounts,
		"total":     total,
		"page":      params.Page,
		"limit":     params.Limit,
	}))
}

// Create adds a promo code, enforcing the free-plan active-discount cap
// @Summary      Create discount
// @Tags         discounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateDiscountRequest  true  "Discount"
// @Success      201      {object}  response.Response{data=model.Discount}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response "SUBSCRIPTION_LIMIT"
// @Router       /api/discounts [post]
func (h *DiscountHandler) Create(c *gin.Context) {
	tenantID, _ := middleware.TenantID(c)

	var req service.CreateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	discount, err := h.discountService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, discount))
}

func (h *DiscountHandler) Update(c *gin.Context) {
	tenantID, _ := middleware.TenantID(c)

	var req service.UpdateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	discount, err := h.discountService.Update(c.Request.Context(), tenantID, c.Param("id"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, discount))
}

func (h *DiscountHandler) Delete(c *gin.Context) {
	tenantID, _ := middleware.TenantID(c)

	if err := h.discountService.Delete(c.Request.Context(), tenantID, c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "discount deleted"}))
}
