package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/familybank/allowance/internal/domain/model"
	"github.com/familybank/allowance/internal/server/http/dto"
	"github.com/familybank/allowance/internal/server/http/middleware"
)

// LedgerHandler serves the dashboard and posting history.
type LedgerHandler struct {
	facade LedgerFacade
}

// NewLedgerHandler creates LedgerHandler instance.
func NewLedgerHandler(facade LedgerFacade) *LedgerHandler {
	return &LedgerHandler{facade: facade}
}

// Dashboard handles GET /api/dashboard.
func (h *LedgerHandler) Dashboard(c *gin.Context) {
	usr := middleware.CurrentUser(c)

	dashboard, err := h.facade.Dashboard(c.Request.Context(), usr)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, dto.NewDashboardResponse(dashboard))
}

// Transactions handles GET /api/transactions.
func (h *LedgerHandler) Transactions(c *gin.Context) {
	usr := middleware.CurrentUser(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	var typ *model.TransactionType
	if raw := c.Query("type"); raw != "" {
		candidate := model.TransactionType(raw)
		if !candidate.Valid() {
			c.Status(http.StatusBadRequest)
			return
		}
		typ = &candidate
	}

	result, err := h.facade.Transactions(c.Request.Context(), usr, page, perPage, typ)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, dto.TransactionsPageResponse{
		Transactions: dto.NewTransactionResponses(result.Items),
		Total:        result.Total,
		Page:         result.Page,
		Pages:        result.Pages,
	})
}
