package app

import (
	"context"

	"github.com/familybank/allowance/internal/domain/model"
	"github.com/familybank/allowance/internal/usecase"
)

// AllowanceFacade aggregates the use cases behind the surfaces that consume
// them: HTTP handlers, auth middleware and the catchup sweeper.
type AllowanceFacade struct {
	auth        *usecase.AuthUseCase
	users       *usecase.UserUseCase
	ledger      *usecase.LedgerUseCase
	withdrawals *usecase.WithdrawalUseCase
}

// NewAllowanceFacade constructs AllowanceFacade.
func NewAllowanceFacade(auth *usecase.AuthUseCase, users *usecase.UserUseCase, ledger *usecase.LedgerUseCase, withdrawals *usecase.WithdrawalUseCase) *AllowanceFacade {
	return &AllowanceFacade{auth: auth, users: users, ledger: ledger, withdrawals: withdrawals}
}

func (f *AllowanceFacade) Authenticate(ctx context.Context, username, password string) (*model.User, string, error) {
	return f.auth.Authenticate(ctx, username, password)
}

func (f *AllowanceFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *AllowanceFacade) UserByID(ctx context.Context, id int64) (*model.User, error) {
	return f.auth.GetByID(ctx, id)
}

// Dashboard runs the accrual catchup for the user and assembles the overview.
// Every dashboard load doubles as the lazy accrual trigger.
func (f *AllowanceFacade) Dashboard(ctx context.Context, usr *model.User) (*model.Dashboard, error) {
	if err := f.ledger.RunCatchup(ctx, usr); err != nil {
		return nil, err
	}
	return f.ledger.Overview(ctx, usr.ID)
}

// Transactions runs the catchup and returns one annotated history page.
func (f *AllowanceFacade) Transactions(ctx context.Context, usr *model.User, page, perPage int, typ *model.TransactionType) (*usecase.TransactionPage, error) {
	if err := f.ledger.RunCatchup(ctx, usr); err != nil {
		return nil, err
	}
	return f.ledger.History(ctx, usr.ID, page, perPage, typ)
}

func (f *AllowanceFacade) RequestWithdrawal(ctx context.Context, usr *model.User, amount float64, reason string) (*model.WithdrawalRequest, error) {
	return f.withdrawals.Create(ctx, usr, amount, reason)
}

func (f *AllowanceFacade) MyWithdrawals(ctx context.Context, userID int64) ([]model.WithdrawalRequest, error) {
	return f.withdrawals.ListByUser(ctx, userID)
}

// ChildrenOverview catches every child up and reports current balances.
func (f *AllowanceFacade) ChildrenOverview(ctx context.Context) ([]model.ChildOverview, error) {
	children, err := f.users.ListChildren(ctx)
	if err != nil {
		return nil, err
	}

	overviews := make([]model.ChildOverview, 0, len(children))
	for i := range children {
		child := children[i]
		if err := f.ledger.RunCatchup(ctx, &child); err != nil {
			return nil, err
		}
		balance, err := f.ledger.Balance(ctx, child.ID, nil)
		if err != nil {
			return nil, err
		}
		overviews = append(overviews, model.ChildOverview{User: child, Balance: balance})
	}
	return overviews, nil
}

func (f *AllowanceFacade) CreateChild(ctx context.Context, input usecase.CreateChildInput) (*model.ChildOverview, error) {
	child, err := f.users.CreateChild(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := f.ledger.RunCatchup(ctx, child); err != nil {
		return nil, err
	}
	balance, err := f.ledger.Balance(ctx, child.ID, nil)
	if err != nil {
		return nil, err
	}
	return &model.ChildOverview{User: *child, Balance: balance}, nil
}

func (f *AllowanceFacade) UpdateChild(ctx context.Context, id int64, input usecase.UpdateChildInput) (*model.User, error) {
	return f.users.UpdateChild(ctx, id, input)
}

// Adjust posts a manual adjustment to a child's ledger and returns the new
// balance.
func (f *AllowanceFacade) Adjust(ctx context.Context, childID int64, amount float64, description string) (float64, error) {
	child, err := f.users.GetChild(ctx, childID)
	if err != nil {
		return 0, err
	}
	if err := f.ledger.RunCatchup(ctx, child); err != nil {
		return 0, err
	}
	return f.ledger.Adjust(ctx, child.ID, amount, description)
}

func (f *AllowanceFacade) Requests(ctx context.Context, status *model.WithdrawalStatus) ([]model.WithdrawalRequest, error) {
	return f.withdrawals.List(ctx, status)
}

func (f *AllowanceFacade) ResolveRequest(ctx context.Context, adminID, requestID int64, status model.WithdrawalStatus) (*model.WithdrawalRequest, error) {
	return f.withdrawals.Resolve(ctx, adminID, requestID, status)
}

// Children exposes the child accounts to the catchup sweeper.
func (f *AllowanceFacade) Children(ctx context.Context) ([]model.User, error) {
	return f.users.ListChildren(ctx)
}

// CatchupChild runs the accrual catchup for one child.
func (f *AllowanceFacade) CatchupChild(ctx context.Context, usr *model.User) error {
	return f.ledger.RunCatchup(ctx, usr)
}
