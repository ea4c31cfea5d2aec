package repository

import (
	"context"
	"time"

	"github.com/familybank/allowance/internal/domain/model"
)

// WithdrawalRequestRepository manages withdrawal request lifecycle.
type WithdrawalRequestRepository interface {
	Create(ctx context.Context, userID int64, amount float64, reason string) (*model.WithdrawalRequest, error)
	GetByID(ctx context.Context, id int64) (*model.WithdrawalRequest, error)
	ListByUser(ctx context.Context, userID int64) ([]model.WithdrawalRequest, error)
	// List returns requests newest-first, optionally restricted to one status.
	List(ctx context.Context, status *model.WithdrawalStatus) ([]model.WithdrawalRequest, error)
	// Resolve transitions a pending request and, on approval, creates the
	// withdrawal posting atomically with the state change. Returns
	// ErrAlreadyResolved when the request is no longer pending.
	Resolve(ctx context.Context, id int64, status model.WithdrawalStatus, resolvedBy int64, now time.Time) (*model.WithdrawalRequest, error)
}
