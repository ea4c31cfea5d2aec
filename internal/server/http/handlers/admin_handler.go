package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/familybank/allowance/internal/domain/errors"
	"github.com/familybank/allowance/internal/domain/model"
	"github.com/familybank/allowance/internal/server/http/dto"
	"github.com/familybank/allowance/internal/server/http/middleware"
	"github.com/familybank/allowance/internal/usecase"
)

// AdminHandler serves account management and withdrawal resolution.
type AdminHandler struct {
	facade AdminFacade
}

// NewAdminHandler creates AdminHandler instance.
func NewAdminHandler(facade AdminFacade) *AdminHandler {
	return &AdminHandler{facade: facade}
}

// ListUsers handles GET /api/admin/users.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	overviews, err := h.facade.ChildrenOverview(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	result := make([]dto.ChildResponse, 0, len(overviews))
	for i := range overviews {
		result = append(result, dto.ChildResponse{
			UserResponse: dto.NewUserResponse(&overviews[i].User),
			Balance:      overviews[i].Balance,
		})
	}
	c.JSON(http.StatusOK, result)
}

// CreateUser handles POST /api/admin/users.
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	input := usecase.CreateChildInput{
		Username:         req.Username,
		Password:         req.Password,
		DisplayName:      req.DisplayName,
		MonthlyAllowance: req.MonthlyAllowance,
		StartingBalance:  req.StartingBalance,
	}
	if req.AllowanceStartDate != nil && *req.AllowanceStartDate != "" {
		date, err := parseDate(*req.AllowanceStartDate)
		if err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		input.AllowanceStartDate = &date
	}

	overview, err := h.facade.CreateChild(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrMissingField), errors.Is(err, domainErrors.ErrInvalidAmount):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrAlreadyExists):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ChildResponse{
		UserResponse: dto.NewUserResponse(&overview.User),
		Balance:      overview.Balance,
	})
}

// UpdateUser handles PUT /api/admin/users/:id.
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	input := usecase.UpdateChildInput{
		DisplayName:      req.DisplayName,
		Password:         req.Password,
		MonthlyAllowance: req.MonthlyAllowance,
		StartingBalance:  req.StartingBalance,
	}
	if req.AllowanceStartDate != nil {
		input.SetAllowanceStartDate = true
		if *req.AllowanceStartDate != "" {
			var date time.Time
			date, err = parseDate(*req.AllowanceStartDate)
			if err != nil {
				c.Status(http.StatusBadRequest)
				return
			}
			input.AllowanceStartDate = &date
		}
	}

	usr, err := h.facade.UpdateChild(c.Request.Context(), id, input)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrInvalidAmount):
			c.Status(http.StatusBadRequest)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(usr))
}

// AdjustBalance handles POST /api/admin/users/:id/adjust.
func (h *AdminHandler) AdjustBalance(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.AdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	balance, err := h.facade.Adjust(c.Request.Context(), id, req.Amount, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrInvalidAmount):
			c.Status(http.StatusBadRequest)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{Balance: balance})
}

// ListRequests handles GET /api/admin/requests. Pending requests are the
// default view; "all" lifts the filter.
func (h *AdminHandler) ListRequests(c *gin.Context) {
	var status *model.WithdrawalStatus
	raw := c.DefaultQuery("status", string(model.WithdrawalPending))
	if raw != "all" {
		candidate := model.WithdrawalStatus(raw)
		switch candidate {
		case model.WithdrawalPending, model.WithdrawalApproved, model.WithdrawalDenied:
			status = &candidate
		default:
			c.Status(http.StatusBadRequest)
			return
		}
	}

	requests, err := h.facade.Requests(c.Request.Context(), status)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, dto.NewAdminWithdrawalResponses(requests))
}

// ResolveRequest handles PUT /api/admin/requests/:id.
func (h *AdminHandler) ResolveRequest(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.ResolveWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	admin := middleware.CurrentUser(c)
	request, err := h.facade.ResolveRequest(c.Request.Context(), admin.ID, id, model.WithdrawalStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidStatus):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrAlreadyResolved):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, dto.NewWithdrawalResponse(request))
}
