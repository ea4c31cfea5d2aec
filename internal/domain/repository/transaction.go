package repository

import (
	"context"
	"time"

	"github.com/familybank/allowance/internal/domain/model"
)

// TransactionFilter restricts and pages a posting listing.
type TransactionFilter struct {
	Type   *model.TransactionType
	Limit  int
	Offset int
	Desc   bool
}

// LedgerStore is the minimal posting store the accrual engine works against.
// Inside Transact it is backed by a single database transaction, so postings
// inserted during a catchup run are visible to the balance queries that follow.
type LedgerStore interface {
	Insert(ctx context.Context, txn *model.Transaction) error
	// LastByType returns the most recent posting of a type by (created_at, id),
	// or ErrNotFound when the user has none.
	LastByType(ctx context.Context, userID int64, typ model.TransactionType) (*model.Transaction, error)
	HasType(ctx context.Context, userID int64, typ model.TransactionType) (bool, error)
	HasAnyInRange(ctx context.Context, userID int64, types []model.TransactionType, from, to time.Time) (bool, error)
	// SumByTypes totals posting amounts of the given types, restricted to
	// created_at <= asOf when asOf is non-nil (inclusive bound).
	SumByTypes(ctx context.Context, userID int64, types []model.TransactionType, asOf *time.Time) (float64, error)
}

// TransactionRepository provides pool-backed ledger access plus the atomic
// transaction boundary the catchup run requires.
type TransactionRepository interface {
	LedgerStore

	// Transact runs fn against a transaction-scoped LedgerStore; either every
	// posting fn inserts commits or none do.
	Transact(ctx context.Context, fn func(LedgerStore) error) error

	List(ctx context.Context, userID int64, filter TransactionFilter) ([]model.Transaction, error)
	Count(ctx context.Context, userID int64, typ *model.TransactionType) (int64, error)
	// SumPreceding totals postings strictly before (before, beforeID) in the
	// (created_at, id) order: created_at < before, or created_at = before with
	// a smaller id.
	SumPreceding(ctx context.Context, userID int64, types []model.TransactionType, before time.Time, beforeID int64) (float64, error)
}
