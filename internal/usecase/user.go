package usecase

import (
	"context"
	"strings"
	"time"

	domainErrors "github.com/familybank/allowance/internal/domain/errors"
	"github.com/familybank/allowance/internal/domain/model"
	"github.com/familybank/allowance/internal/domain/repository"
	pkgAuth "github.com/familybank/allowance/internal/pkg/auth"
)

// CreateChildInput carries a new child account profile.
type CreateChildInput struct {
	Username           string
	Password           string
	DisplayName        string
	MonthlyAllowance   float64
	StartingBalance    float64
	AllowanceStartDate *time.Time
}

// UpdateChildInput applies a partial profile update; nil fields stay as-is.
type UpdateChildInput struct {
	DisplayName           *string
	Password              *string
	MonthlyAllowance      *float64
	StartingBalance       *float64
	AllowanceStartDate    *time.Time
	SetAllowanceStartDate bool
}

// UserUseCase manages child accounts on behalf of the admin.
type UserUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
}

// NewUserUseCase constructs UserUseCase.
func NewUserUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher) *UserUseCase {
	return &UserUseCase{users: users, hasher: hasher}
}

// CreateChild registers a non-admin account.
func (u *UserUseCase) CreateChild(ctx context.Context, input CreateChildInput) (*model.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	if input.Username == "" || input.Password == "" || input.DisplayName == "" {
		return nil, domainErrors.ErrMissingField
	}
	if input.MonthlyAllowance < 0 {
		return nil, domainErrors.ErrInvalidAmount
	}

	hash, err := u.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	return u.users.Create(ctx, repository.CreateUserInput{
		Username:           input.Username,
		PasswordHash:       hash,
		DisplayName:        input.DisplayName,
		IsAdmin:            false,
		MonthlyAllowance:   input.MonthlyAllowance,
		StartingBalance:    input.StartingBalance,
		AllowanceStartDate: input.AllowanceStartDate,
	})
}

// UpdateChild modifies a child profile. Admin accounts are invisible here and
// report not-found, matching the admin API contract.
func (u *UserUseCase) UpdateChild(ctx context.Context, id int64, input UpdateChildInput) (*model.User, error) {
	existing, err := u.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.IsAdmin {
		return nil, domainErrors.ErrNotFound
	}
	if input.MonthlyAllowance != nil && *input.MonthlyAllowance < 0 {
		return nil, domainErrors.ErrInvalidAmount
	}

	update := repository.UpdateUserInput{
		DisplayName:           input.DisplayName,
		MonthlyAllowance:      input.MonthlyAllowance,
		StartingBalance:       input.StartingBalance,
		AllowanceStartDate:    input.AllowanceStartDate,
		SetAllowanceStartDate: input.SetAllowanceStartDate,
	}

	if input.Password != nil && *input.Password != "" {
		hash, err := u.hasher.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		update.PasswordHash = &hash
	}

	return u.users.Update(ctx, id, update)
}

// GetChild fetches a child account; admins report not-found.
func (u *UserUseCase) GetChild(ctx context.Context, id int64) (*model.User, error) {
	usr, err := u.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if usr.IsAdmin {
		return nil, domainErrors.ErrNotFound
	}
	return usr, nil
}

// ListChildren returns every non-admin account.
func (u *UserUseCase) ListChildren(ctx context.Context) ([]model.User, error) {
	return u.users.ListChildren(ctx)
}
