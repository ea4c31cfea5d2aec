package handlers

import (
	"context"

	"github.com/familybank/allowance/internal/domain/model"
	"github.com/familybank/allowance/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Authenticate(ctx context.Context, username, password string) (*model.User, string, error)
}

// LedgerFacade provides balance and history operations. Both run the accrual
// catchup before reading, so every page load sees an up-to-date ledger.
type LedgerFacade interface {
	Dashboard(ctx context.Context, usr *model.User) (*model.Dashboard, error)
	Transactions(ctx context.Context, usr *model.User, page, perPage int, typ *model.TransactionType) (*usecase.TransactionPage, error)
}

// WithdrawalFacade provides the child-facing request operations.
type WithdrawalFacade interface {
	RequestWithdrawal(ctx context.Context, usr *model.User, amount float64, reason string) (*model.WithdrawalRequest, error)
	MyWithdrawals(ctx context.Context, userID int64) ([]model.WithdrawalRequest, error)
}

// AdminFacade provides account management and request resolution.
type AdminFacade interface {
	ChildrenOverview(ctx context.Context) ([]model.ChildOverview, error)
	CreateChild(ctx context.Context, input usecase.CreateChildInput) (*model.ChildOverview, error)
	UpdateChild(ctx context.Context, id int64, input usecase.UpdateChildInput) (*model.User, error)
	Adjust(ctx context.Context, childID int64, amount float64, description string) (float64, error)
	Requests(ctx context.Context, status *model.WithdrawalStatus) ([]model.WithdrawalRequest, error)
	ResolveRequest(ctx context.Context, adminID, requestID int64, status model.WithdrawalStatus) (*model.WithdrawalRequest, error)
}

// AllowanceFacade aggregates the full set of operations used across handlers.
type AllowanceFacade interface {
	AuthFacade
	LedgerFacade
	WithdrawalFacade
	AdminFacade
}
