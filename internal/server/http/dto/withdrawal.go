package dto

import (
	"time"

	"github.com/familybank/allowance/internal/domain/model"
)

// CreateWithdrawalRequest describes a child's withdrawal ask.
type CreateWithdrawalRequest struct {
	Amount float64 `json:"amount"`
	Reason string  `json:"reason"`
}

// ResolveWithdrawalRequest carries the admin's decision.
type ResolveWithdrawalRequest struct {
	Status string `json:"status"`
}

// WithdrawalResponse describes one request in any state.
type WithdrawalResponse struct {
	ID         int64      `json:"id"`
	UserID     int64      `json:"user_id"`
	Amount     float64    `json:"amount"`
	Reason     string     `json:"reason"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	ResolvedAt *time.Time `json:"resolved_at"`
	ResolvedBy *int64     `json:"resolved_by"`
}

// NewWithdrawalResponse maps a domain request onto the wire shape.
func NewWithdrawalResponse(r *model.WithdrawalRequest) WithdrawalResponse {
	return WithdrawalResponse{
		ID:         r.ID,
		UserID:     r.UserID,
		Amount:     r.Amount,
		Reason:     r.Reason,
		Status:     string(r.Status),
		CreatedAt:  r.CreatedAt,
		ResolvedAt: r.ResolvedAt,
		ResolvedBy: r.ResolvedBy,
	}
}

// NewWithdrawalResponses maps a request listing onto the wire shape.
func NewWithdrawalResponses(requests []model.WithdrawalRequest) []WithdrawalResponse {
	result := make([]WithdrawalResponse, 0, len(requests))
	for i := range requests {
		result = append(result, NewWithdrawalResponse(&requests[i]))
	}
	return result
}

// AdminWithdrawalResponse adds the requester's name for the admin listing.
type AdminWithdrawalResponse struct {
	WithdrawalResponse
	ChildName string `json:"child_name"`
}

// NewAdminWithdrawalResponses maps the admin request listing onto the wire shape.
func NewAdminWithdrawalResponses(requests []model.WithdrawalRequest) []AdminWithdrawalResponse {
	result := make([]AdminWithdrawalResponse, 0, len(requests))
	for i := range requests {
		result = append(result, AdminWithdrawalResponse{
			WithdrawalResponse: NewWithdrawalResponse(&requests[i]),
			ChildName:          requests[i].ChildName,
		})
	}
	return result
}
