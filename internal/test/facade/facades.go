package facade

import (
	"context"
	"sync"

	"go.uber.org/fx"

	domainErrors "github.com/familybank/allowance/internal/domain/errors"
	"github.com/familybank/allowance/internal/domain/model"
	"github.com/familybank/allowance/internal/usecase"
)

// FacadeStub provides controllable application facade behaviour for handler
// and router tests. Unset functions fall back to harmless defaults.
type FacadeStub struct {
	AuthenticateFn      func(context.Context, string, string) (*model.User, string, error)
	ParseTokenFn        func(string) (int64, error)
	UserByIDFn          func(context.Context, int64) (*model.User, error)
	DashboardFn         func(context.Context, *model.User) (*model.Dashboard, error)
	TransactionsFn      func(context.Context, *model.User, int, int, *model.TransactionType) (*usecase.TransactionPage, error)
	RequestWithdrawalFn func(context.Context, *model.User, float64, string) (*model.WithdrawalRequest, error)
	MyWithdrawalsFn     func(context.Context, int64) ([]model.WithdrawalRequest, error)
	ChildrenOverviewFn  func(context.Context) ([]model.ChildOverview, error)
	CreateChildFn       func(context.Context, usecase.CreateChildInput) (*model.ChildOverview, error)
	UpdateChildFn       func(context.Context, int64, usecase.UpdateChildInput) (*model.User, error)
	AdjustFn            func(context.Context, int64, float64, string) (float64, error)
	RequestsFn          func(context.Context, *model.WithdrawalStatus) ([]model.WithdrawalRequest, error)
	ResolveRequestFn    func(context.Context, int64, int64, model.WithdrawalStatus) (*model.WithdrawalRequest, error)
}

func (s *FacadeStub) Authenticate(ctx context.Context, username, password string) (*model.User, string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, username, password)
	}
	return nil, "", domainErrors.ErrInvalidCredentials
}

func (s *FacadeStub) ParseToken(token string) (int64, error) {
	if s.ParseTokenFn != nil {
		return s.ParseTokenFn(token)
	}
	return 0, domainErrors.ErrNotFound
}

func (s *FacadeStub) UserByID(ctx context.Context, id int64) (*model.User, error) {
	if s.UserByIDFn != nil {
		return s.UserByIDFn(ctx, id)
	}
	return nil, domainErrors.ErrNotFound
}

func (s *FacadeStub) Dashboard(ctx context.Context, usr *model.User) (*model.Dashboard, error) {
	if s.DashboardFn != nil {
		return s.DashboardFn(ctx, usr)
	}
	return &model.Dashboard{}, nil
}

func (s *FacadeStub) Transactions(ctx context.Context, usr *model.User, page, perPage int, typ *model.TransactionType) (*usecase.TransactionPage, error) {
	if s.TransactionsFn != nil {
		return s.TransactionsFn(ctx, usr, page, perPage, typ)
	}
	return &usecase.TransactionPage{Page: page}, nil
}

func (s *FacadeStub) RequestWithdrawal(ctx context.Context, usr *model.User, amount float64, reason string) (*model.WithdrawalRequest, error) {
	if s.RequestWithdrawalFn != nil {
		return s.RequestWithdrawalFn(ctx, usr, amount, reason)
	}
	return &model.WithdrawalRequest{UserID: usr.ID, Amount: amount, Reason: reason, Status: model.WithdrawalPending}, nil
}

func (s *FacadeStub) MyWithdrawals(ctx context.Context, userID int64) ([]model.WithdrawalRequest, error) {
	if s.MyWithdrawalsFn != nil {
		return s.MyWithdrawalsFn(ctx, userID)
	}
	return nil, nil
}

func (s *FacadeStub) ChildrenOverview(ctx context.Context) ([]model.ChildOverview, error) {
	if s.ChildrenOverviewFn != nil {
		return s.ChildrenOverviewFn(ctx)
	}
	return nil, nil
}

func (s *FacadeStub) CreateChild(ctx context.Context, input usecase.CreateChildInput) (*model.ChildOverview, error) {
	if s.CreateChildFn != nil {
		return s.CreateChildFn(ctx, input)
	}
	return &model.ChildOverview{User: model.User{ID: 1, Username: input.Username, DisplayName: input.DisplayName}}, nil
}

func (s *FacadeStub) UpdateChild(ctx context.Context, id int64, input usecase.UpdateChildInput) (*model.User, error) {
	if s.UpdateChildFn != nil {
		return s.UpdateChildFn(ctx, id, input)
	}
	return nil, domainErrors.ErrNotFound
}

func (s *FacadeStub) Adjust(ctx context.Context, childID int64, amount float64, description string) (float64, error) {
	if s.AdjustFn != nil {
		return s.AdjustFn(ctx, childID, amount, description)
	}
	return 0, domainErrors.ErrNotFound
}

func (s *FacadeStub) Requests(ctx context.Context, status *model.WithdrawalStatus) ([]model.WithdrawalRequest, error) {
	if s.RequestsFn != nil {
		return s.RequestsFn(ctx, status)
	}
	return nil, nil
}

func (s *FacadeStub) ResolveRequest(ctx context.Context, adminID, requestID int64, status model.WithdrawalStatus) (*model.WithdrawalRequest, error) {
	if s.ResolveRequestFn != nil {
		return s.ResolveRequestFn(ctx, adminID, requestID, status)
	}
	return nil, domainErrors.ErrNotFound
}

// SweeperFacadeStub records catchup runs for worker tests.
type SweeperFacadeStub struct {
	mu          sync.Mutex
	ChildrenFn  func(context.Context) ([]model.User, error)
	CatchupErrs map[int64]error
	Catchups    []int64
}

func (s *SweeperFacadeStub) Children(ctx context.Context) ([]model.User, error) {
	if s.ChildrenFn != nil {
		return s.ChildrenFn(ctx)
	}
	return nil, nil
}

func (s *SweeperFacadeStub) CatchupChild(_ context.Context, usr *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Catchups = append(s.Catchups, usr.ID)
	if s.CatchupErrs != nil {
		return s.CatchupErrs[usr.ID]
	}
	return nil
}

// CatchupCount returns how many catchups ran so far.
func (s *SweeperFacadeStub) CatchupCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Catchups)
}

// LifecycleRecorder captures fx hooks without running an fx app.
type LifecycleRecorder struct {
	Hooks []fx.Hook
}

func (r *LifecycleRecorder) Append(hook fx.Hook) {
	r.Hooks = append(r.Hooks, hook)
}

// ShutdownerStub signals on Shutdown.
type ShutdownerStub struct {
	Called chan struct{}
}

func (s *ShutdownerStub) Shutdown(...fx.ShutdownOption) error {
	select {
	case s.Called <- struct{}{}:
	default:
	}
	return nil
}
