package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/familybank/allowance/internal/domain/errors"
	"github.com/familybank/allowance/internal/server/http/dto"
	"github.com/familybank/allowance/internal/server/http/middleware"
)

// WithdrawalHandler serves the child-facing withdrawal request operations.
type WithdrawalHandler struct {
	facade WithdrawalFacade
}

// NewWithdrawalHandler creates WithdrawalHandler instance.
func NewWithdrawalHandler(facade WithdrawalFacade) *WithdrawalHandler {
	return &WithdrawalHandler{facade: facade}
}

// Create handles POST /api/withdrawals.
func (h *WithdrawalHandler) Create(c *gin.Context) {
	var req dto.CreateWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	usr := middleware.CurrentUser(c)
	request, err := h.facade.RequestWithdrawal(c.Request.Context(), usr, req.Amount, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidAmount):
			c.Status(http.StatusBadRequest)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, dto.NewWithdrawalResponse(request))
}

// List handles GET /api/withdrawals.
func (h *WithdrawalHandler) List(c *gin.Context) {
	usr := middleware.CurrentUser(c)

	requests, err := h.facade.MyWithdrawals(c.Request.Context(), usr.ID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, dto.NewWithdrawalResponses(requests))
}
