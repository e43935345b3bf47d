package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/pagination"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type TransactionHandler struct {
	transactionService service.TransactionService
}

func NewTransactionHandler(transactionService service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

func (h *TransactionHandler) RegisterRoutes(router *gin.RouterGroup) {
	txns := router.Group("/api/transactions", middleware.RequireTenant())
	{
		txns.GET("", h.List)
	}
}

// List returns ledger entries with optional type/status filters
// @Summary      List transactions
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Param        type    query  string  false  "Filter by type"
// @Param        status  query  string  false  "Filter by status"
// @Param        page    query  int     false  "Page"
// @Param        limit   query  int     false  "Page size"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	tenantID, _ := middleware.TenantID(c)
	params := pagination.Parse(c)

	txns, total, err := h.transactionService.List(c.Request.Context(), tenantID, service.TransactionListFilter{
		Type:   c.Query("type"),
		Status: c.Query("status"),
		Page:   params.Page,
		Limit:  params.Limit,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{
		"transactions": txns,
		"total":        total,
		"page":         params.Page,
		"limit":        params.Limit,
	}))
}
