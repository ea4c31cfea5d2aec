package usecase

import (
	"context"
	"fmt"

	domainErrors "github.com/familybank/allowance/internal/domain/errors"
	"github.com/familybank/allowance/internal/domain/model"
	"github.com/familybank/allowance/internal/domain/repository"
	"github.com/familybank/allowance/internal/pkg/clock"
	"github.com/familybank/allowance/internal/pkg/money"
)

// Notifier delivers parent alerts. Delivery is best-effort: implementations
// swallow failures, the ledger never depends on them.
type Notifier interface {
	Notify(ctx context.Context, title, message string)
}

// WithdrawalUseCase manages the request lifecycle around the ledger.
type WithdrawalUseCase struct {
	requests repository.WithdrawalRequestRepository
	clock    clock.Clock
	notifier Notifier
}

// NewWithdrawalUseCase constructs WithdrawalUseCase.
func NewWithdrawalUseCase(requests repository.WithdrawalRequestRepository, clk clock.Clock, notifier Notifier) *WithdrawalUseCase {
	return &WithdrawalUseCase{requests: requests, clock: clk, notifier: notifier}
}

// Create files a pending request and pings the parent.
func (u *WithdrawalUseCase) Create(ctx context.Context, usr *model.User, amount float64, reason string) (*model.WithdrawalRequest, error) {
	if !ValidAmount(amount) {
		return nil, domainErrors.ErrInvalidAmount
	}

	request, err := u.requests.Create(ctx, usr.ID, money.Round2(amount), reason)
	if err != nil {
		return nil, err
	}

	u.notifier.Notify(ctx, "Withdrawal Request",
		fmt.Sprintf("%s requested $%.2f: %s", usr.DisplayName, request.Amount, request.Reason))

	return request, nil
}

// ListByUser returns the user's own requests, newest first.
func (u *WithdrawalUseCase) ListByUser(ctx context.Context, userID int64) ([]model.WithdrawalRequest, error) {
	return u.requests.ListByUser(ctx, userID)
}

// List returns requests for the admin view, optionally filtered by status.
func (u *WithdrawalUseCase) List(ctx context.Context, status *model.WithdrawalStatus) ([]model.WithdrawalRequest, error) {
	return u.requests.List(ctx, status)
}

// Resolve approves or denies a pending request on behalf of an admin. Approval
// creates the withdrawal posting atomically with the state change; resolving a
// request twice reports a conflict.
func (u *WithdrawalUseCase) Resolve(ctx context.Context, adminID, requestID int64, status model.WithdrawalStatus) (*model.WithdrawalRequest, error) {
	if status != model.WithdrawalApproved && status != model.WithdrawalDenied {
		return nil, domainErrors.ErrInvalidStatus
	}
	return u.requests.Resolve(ctx, requestID, status, adminID, u.clock.Now())
}
