package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/pagination"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type EnquiryHandler struct {
	enquiryService service.EnquiryService
}

func NewEnquiryHandler(enquiryService service.EnquiryService) *EnquiryHandler {
	return &EnquiryHandler{enquiryService: enquiryService}
}

func (h *EnquiryHandler) RegisterRoutes(router *gin.RouterGroup) {
	// Storefront visitors submit enquiries without a session
	router.POST("/api/storefront/:slug/enquiries", h.Create)

	enquiries := router.Group("/api/enquiries", middleware.RequireTenant())
	{
		enquiries.GET("", h.List)
		enquiries.PUT("/:id/status", h.UpdateStatus)
	}
}

// Create records a visitor enquiry for the store identified by slug
// @Summary      Submit enquiry
// @Tags         enquiries
// @Accept       json
// @Produce      json
// @Param        slug     path      string  true  "Store slug"
// @Param        payload  body      service.CreateEnquiryRequest  true  "Enquiry"
// @Success      201      {object}  response.Response{data=model.Enquiry}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/storefront/{slug}/enquiries [post]
func (h *EnquiryHandler) Create(c *gin.Context) {
	var req service.CreateEnquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	enquiry, err := h.enquiryService.Create(c.Request.Context(), c.Param("slug"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, enquiry))
}

func (h *EnquiryHandler) List(c *gin.Context) {
	tenantID, _ := middleware.TenantID(c)
	params := pagination.Parse(c)

	enquiries, total, err := h.enquiryService.List(c.Request.Context(), tenantID, service.EnquiryListFilter{
		Status: c.Query("status"),
		Page:   params.Page,
		Limit:  params.Limit,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{
		"enquiries": enquiries,
		"total":     total,
		"page":      params.Page,
		"limit":     params.Limit,
	}))
}

func (h *EnquiryHandler) UpdateStatus(c *gin.Context) {
	tenantID, _ := middleware.TenantID(c)

	var req service.UpdateEnquiryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	if err := h.enquiryService.UpdateStatus(c.Request.Context(), tenantID, c.Param("id"), req); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "enquiry updated"}))
}
