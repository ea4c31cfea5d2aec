package dto

import (
	"time"

	"github.com/familybank/allowance/internal/domain/model"
)

// LoginRequest describes login payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserResponse describes an account profile.
type UserResponse struct {
	ID                 int64     `json:"id"`
	Username           string    `json:"username"`
	DisplayName        string    `json:"display_name"`
	IsAdmin            bool      `json:"is_admin"`
	MonthlyAllowance   float64   `json:"monthly_allowance"`
	StartingBalance    float64   `json:"starting_balance"`
	AllowanceStartDate *string   `json:"allowance_start_date"`
	CreatedAt          time.Time `json:"created_at"`
}

// NewUserResponse maps a domain user onto the wire shape.
func NewUserResponse(u *model.User) UserResponse {
	resp := UserResponse{
		ID:               u.ID,
		Username:         u.Username,
		DisplayName:      u.DisplayName,
		IsAdmin:          u.IsAdmin,
		MonthlyAllowance: u.MonthlyAllowance,
		StartingBalance:  u.StartingBalance,
		CreatedAt:        u.CreatedAt,
	}
	if u.AllowanceStartDate != nil {
		date := u.AllowanceStartDate.Format("2006-01-02")
		resp.AllowanceStartDate = &date
	}
	return resp
}
