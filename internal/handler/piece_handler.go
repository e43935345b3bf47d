package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/pagination"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type PieceHandler struct {
	pieceService service.PieceService
}

func NewPieceHandler(pieceService service.PieceService) *PieceHandler {
	return &PieceHandler{pieceService: pieceService}
}

func (h *PieceHandler) RegisterRoutes(router *gin.RouterGroup) {
	pieces := router.Group("/api/pieces", middleware.RequireTenant())
	{
		pieces.GET("", h.List)
		pieces.POST("", h.Create)
		pieces.GET("/:id", h.Get)
		pieces.PUT("/:id", h.Update)
		pieces.DELETE("/:id", middleware.RequireTenant("owner"), h.Delete)
		pieces.POST("/bulk-status", h.BulkStatus)
	}
}

// List returns the tenant's pieces with optional status filter
// @Summary      List pieces
// @Tags         pieces
// @Produce      json
// @Security     BearerAuth
// @Param        status  query  string  false  "Filter by status"
// @Param        page    query  int     false  "Page"
// @Param        limit   query  int     false  "Page size"
// @Success      200  {object}  response.Response
// @Router       /api/pieces [get]
func (h *PieceHandler) List(c *gin.Context) {
	tenantID, _ := middleware.TenantID(c)
	params := pagination.Parse(c)

	pieces, total, err := h.pieceService.List(c.Request.Context(), tenantID, service.PieceListFilter{
		Status: c.Query("status"),
		Page:   params.Page,
		Limit:  params.Limit,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{
		"pieces":      pieces,
		"total":       total,
		"total_pages": pagination.TotalPages(total, params.Limit),
		"page":        params.Page,
		"limit":       params.Limit,
	}))
}

// Create adds a new piece to the storefront
// @Summary      Create piece
// @Tags         pieces
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreatePieceRequest  true  "Piece"
// @Success      201      {object}  response.Response{data=model.Piece}
// @Failure      400      {object}  response.Response
// @Router       /api/pieces [post]
func (h *PieceHandler) Create(c *gin.Context) {
	tenantID, _ := middleware.TenantID(c)

	var req service.CreatePieceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	piece, err := h.pieceService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, piece))
}

func (h *PieceHandler) Get(c *gin.Context) {
	tenantID, _ := middleware.TenantID(c)

	piece, err := h.pieceService.Get(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, piece))
}

func (h *PieceHandler) Update(c *gin.Context) {
	tenantID, _ := middleware.TenantID(c)

	var req service.UpdatePieceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	piece, err := h.pieceService.Update(c.Request.Context(), tenantID, c.Param("id"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, piece))
}

func (h *PieceHandler) Delete(c *gin.Context) {
	tenantID, _ := middleware.TenantID(c)

	if err := h.pieceService.Delete(c.Request.Context(), tenantID, c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "piece deleted"}))
}

// BulkStatus updates the status of up to 100 pieces at once
// @Summary      Bulk piece status update
// @Tags         pieces
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.BulkStatusRequest  true  "Piece ids and target status"
// @Success      200      {object}  response.Response{data=service.BulkStatusResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/pieces/bulk-status [post]
func (h *PieceHandler) BulkStatus(c *gin.Context) {
	tenantID, _ := middleware.TenantID(c)

	var req service.BulkStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, err := h.pieceService.BulkStatus(c.Request.Context(), tenantID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}
