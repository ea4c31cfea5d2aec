package repository

import (
	"context"
	"time"

	"github.com/familybank/allowance/internal/domain/model"
)

// CreateUserInput carries the full profile for a new account.
type CreateUserInput struct {
	Username           string
	PasswordHash       string
	DisplayName        string
	IsAdmin            bool
	MonthlyAllowance   float64
	StartingBalance    float64
	AllowanceStartDate *time.Time
}

// UpdateUserInput applies a partial update; nil fields are left untouched.
// SetAllowanceStartDate distinguishes "clear the date" from "leave it alone".
type UpdateUserInput struct {
	DisplayName           *string
	PasswordHash          *string
	MonthlyAllowance      *float64
	StartingBalance       *float64
	AllowanceStartDate    *time.Time
	SetAllowanceStartDate bool
}

// UserRepository describes persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, input CreateUserInput) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	Update(ctx context.Context, id int64, input UpdateUserInput) (*model.User, error)
	ListChildren(ctx context.Context) ([]model.User, error)
}
