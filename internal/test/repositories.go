package test

import (
	"context"
	"sort"
	"sync"
	"time"

	domainErrors "github.com/familybank/allowance/internal/domain/errors"
	"github.com/familybank/allowance/internal/domain/model"
	"github.com/familybank/allowance/internal/domain/repository"
)

// LedgerFake is an in-memory TransactionRepository with the same ordering and
// transactional semantics as the postgres implementation: (created_at, id)
// total order, rollback of everything inserted inside a failed Transact.
type LedgerFake struct {
	mu     sync.Mutex
	nextID int64
	items  []model.Transaction

	// InsertHook, when set, runs before every insert; returning an error
	// simulates a store failure at that point.
	InsertHook func(*model.Transaction) error
}

// NewLedgerFake constructs an empty fake ledger.
func NewLedgerFake() *LedgerFake {
	return &LedgerFake{}
}

// Transactions returns a snapshot of all stored postings in insertion order.
func (f *LedgerFake) Transactions() []model.Transaction {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Transaction, len(f.items))
	copy(out, f.items)
	return out
}

func (f *LedgerFake) Insert(_ context.Context, txn *model.Transaction) error {
	if f.InsertHook != nil {
		if err := f.InsertHook(txn); err != nil {
			return err
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	txn.ID = f.nextID
	f.items = append(f.items, *txn)
	return nil
}

func (f *LedgerFake) LastByType(_ context.Context, userID int64, typ model.TransactionType) (*model.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var last *model.Transaction
	for i := range f.items {
		txn := &f.items[i]
		if txn.UserID != userID || txn.Type != typ {
			continue
		}
		if last == nil || txn.CreatedAt.After(last.CreatedAt) ||
			(txn.CreatedAt.Equal(last.CreatedAt) && txn.ID > last.ID) {
			last = txn
		}
	}
	if last == nil {
		return nil, domainErrors.ErrNotFound
	}
	out := *last
	return &out, nil
}

func (f *LedgerFake) HasType(_ context.Context, userID int64, typ model.TransactionType) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].UserID == userID && f.items[i].Type == typ {
			return true, nil
		}
	}
	return false, nil
}

func (f *LedgerFake) HasAnyInRange(_ context.Context, userID int64, types []model.TransactionType, from, to time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		txn := &f.items[i]
		if txn.UserID != userID || !typeIn(txn.Type, types) {
			continue
		}
		if !txn.CreatedAt.Before(from) && !txn.CreatedAt.After(to) {
			return true, nil
		}
	}
	return false, nil
}

func (f *LedgerFake) SumByTypes(_ context.Context, userID int64, types []model.TransactionType, asOf *time.Time) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sum := 0.0
	for i := range f.items {
		txn := &f.items[i]
		if txn.UserID != userID || !typeIn(txn.Type, types) {
			continue
		}
		if asOf != nil && txn.CreatedAt.After(*asOf) {
			continue
		}
		sum += txn.Amount
	}
	return sum, nil
}

func (f *LedgerFake) SumPreceding(_ context.Context, userID int64, types []model.TransactionType, before time.Time, beforeID int64) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sum := 0.0
	for i := range f.items {
		txn := &f.items[i]
		if txn.UserID != userID || !typeIn(txn.Type, types) {
			continue
		}
		if txn.CreatedAt.Before(before) || (txn.CreatedAt.Equal(before) && txn.ID < beforeID) {
			sum += txn.Amount
		}
	}
	return sum, nil
}

func (f *LedgerFake) Transact(ctx context.Context, fn func(repository.LedgerStore) error) error {
	f.mu.Lock()
	checkpoint := len(f.items)
	checkpointID := f.nextID
	f.mu.Unlock()

	if err := fn(f); err != nil {
		f.mu.Lock()
		f.items = f.items[:checkpoint]
		f.nextID = checkpointID
		f.mu.Unlock()
		return err
	}
	return nil
}

func (f *LedgerFake) List(_ context.Context, userID int64, filter repository.TransactionFilter) ([]model.Transaction, error) {
	f.mu.Lock()
	matched := make([]model.Transaction, 0, len(f.items))
	for i := range f.items {
		txn := f.items[i]
		if txn.UserID != userID {
			continue
		}
		if filter.Type != nil && txn.Type != *filter.Type {
			continue
		}
		matched = append(matched, txn)
	}
	f.mu.Unlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			if filter.Desc {
				return matched[i].ID > matched[j].ID
			}
			return matched[i].ID < matched[j].ID
		}
		if filter.Desc {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return nil, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

func (f *LedgerFake) Count(_ context.Context, userID int64, typ *model.TransactionType) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for i := range f.items {
		if f.items[i].UserID != userID {
			continue
		}
		if typ != nil && f.items[i].Type != *typ {
			continue
		}
		n++
	}
	return n, nil
}

func typeIn(t model.TransactionType, types []model.TransactionType) bool {
	for _, candidate := range types {
		if t == candidate {
			return true
		}
	}
	return false
}

// UserRepositoryStub provides controllable user persistence behaviour.
type UserRepositoryStub struct {
	CreateFn        func(context.Context, repository.CreateUserInput) (*model.User, error)
	GetByUsernameFn func(context.Context, string) (*model.User, error)
	GetByIDFn       func(context.Context, int64) (*model.User, error)
	UpdateFn        func(context.Context, int64, repository.UpdateUserInput) (*model.User, error)
	ListChildrenFn  func(context.Context) ([]model.User, error)
}

func (s *UserRepositoryStub) Create(ctx context.Context, input repository.CreateUserInput) (*model.User, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, input)
	}
	return &model.User{ID: 1, Username: input.Username, DisplayName: input.DisplayName}, nil
}

func (s *UserRepositoryStub) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if s.GetByUsernameFn != nil {
		return s.GetByUsernameFn(ctx, username)
	}
	return nil, domainErrors.ErrNotFound
}

func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	return nil, domainErrors.ErrNotFound
}

func (s *UserRepositoryStub) Update(ctx context.Context, id int64, input repository.UpdateUserInput) (*model.User, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, input)
	}
	return nil, domainErrors.ErrNotFound
}

func (s *UserRepositoryStub) ListChildren(ctx context.Context) ([]model.User, error) {
	if s.ListChildrenFn != nil {
		return s.ListChildrenFn(ctx)
	}
	return nil, nil
}

// WithdrawalRepositoryStub provides controllable request persistence behaviour.
type WithdrawalRepositoryStub struct {
	CreateFn     func(context.Context, int64, float64, string) (*model.WithdrawalRequest, error)
	GetByIDFn    func(context.Context, int64) (*model.WithdrawalRequest, error)
	ListByUserFn func(context.Context, int64) ([]model.WithdrawalRequest, error)
	ListFn       func(context.Context, *model.WithdrawalStatus) ([]model.WithdrawalRequest, error)
	ResolveFn    func(context.Context, int64, model.WithdrawalStatus, int64, time.Time) (*model.WithdrawalRequest, error)
}

func (s *WithdrawalRepositoryStub) Create(ctx context.Context, userID int64, amount float64, reason string) (*model.WithdrawalRequest, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, userID, amount, reason)
	}
	return &model.WithdrawalRequest{ID: 1, UserID: userID, Amount: amount, Reason: reason, Status: model.WithdrawalPending}, nil
}

func (s *WithdrawalRepositoryStub) GetByID(ctx context.Context, id int64) (*model.WithdrawalRequest, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	return nil, domainErrors.ErrNotFound
}

func (s *WithdrawalRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.WithdrawalRequest, error) {
	if s.ListByUserFn != nil {
		return s.ListByUserFn(ctx, userID)
	}
	return nil, nil
}

func (s *WithdrawalRepositoryStub) List(ctx context.Context, status *model.WithdrawalStatus) ([]model.WithdrawalRequest, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, status)
	}
	return nil, nil
}

func (s *WithdrawalRepositoryStub) Resolve(ctx context.Context, id int64, status model.WithdrawalStatus, resolvedBy int64, now time.Time) (*model.WithdrawalRequest, error) {
	if s.ResolveFn != nil {
		return s.ResolveFn(ctx, id, status, resolvedBy, now)
	}
	return nil, domainErrors.ErrNotFound
}

// NotifierSpy records notifications for assertions.
type NotifierSpy struct {
	mu       sync.Mutex
	Messages []string
}

func (n *NotifierSpy) Notify(_ context.Context, title, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Messages = append(n.Messages, title+": "+message)
}
