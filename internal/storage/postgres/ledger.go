package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/familybank/allowance/internal/domain/errors"
	"github.com/familybank/allowance/internal/domain/model"
	"github.com/familybank/allowance/internal/domain/repository"
)

// querier is the query surface shared by the pool and pgx.Tx, letting the same
// ledger queries run both directly and inside a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ledgerStore implements repository.LedgerStore over a querier.
type ledgerStore struct {
	q querier
}

type transactionRepository struct {
	ledgerStore
	storage *Storage
}

func (s *Storage) newTransactionRepository() *transactionRepository {
	return &transactionRepository{ledgerStore: ledgerStore{q: s.pool}, storage: s}
}

const transactionColumns = `id, user_id, type, amount, description, created_at`

func (l ledgerStore) Insert(ctx context.Context, txn *model.Transaction) error {
	const query = `INSERT INTO transactions (user_id, type, amount, description, created_at)
                   VALUES ($1, $2, $3, $4, $5)
                   RETURNING id`
	return l.q.QueryRow(ctx, query,
		txn.UserID, string(txn.Type), txn.Amount, txn.Description, txn.CreatedAt,
	).Scan(&txn.ID)
}

func (l ledgerStore) LastByType(ctx context.Context, userID int64, typ model.TransactionType) (*model.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
              FROM transactions WHERE user_id=$1 AND type=$2
              ORDER BY created_at DESC, id DESC LIMIT 1`
	var txn model.Transaction
	err := l.q.QueryRow(ctx, query, userID, string(typ)).Scan(
		&txn.ID, &txn.UserID, &txn.Type, &txn.Amount, &txn.Description, &txn.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &txn, nil
}

func (l ledgerStore) HasType(ctx context.Context, userID int64, typ model.TransactionType) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM transactions WHERE user_id=$1 AND type=$2)`
	var exists bool
	err := l.q.QueryRow(ctx, query, userID, string(typ)).Scan(&exists)
	return exists, err
}

func (l ledgerStore) HasAnyInRange(ctx context.Context, userID int64, types []model.TransactionType, from, to time.Time) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM transactions
                   WHERE user_id=$1 AND type = ANY($2) AND created_at BETWEEN $3 AND $4)`
	var exists bool
	err := l.q.QueryRow(ctx, query, userID, typeStrings(types), from, to).Scan(&exists)
	return exists, err
}

func (l ledgerStore) SumByTypes(ctx context.Context, userID int64, types []model.TransactionType, asOf *time.Time) (float64, error) {
	var sum float64
	if asOf != nil {
		const query = `SELECT COALESCE(SUM(amount), 0) FROM transactions
                       WHERE user_id=$1 AND type = ANY($2) AND created_at <= $3`
		err := l.q.QueryRow(ctx, query, userID, typeStrings(types), *asOf).Scan(&sum)
		return sum, err
	}
	const query = `SELECT COALESCE(SUM(amount), 0) FROM transactions
                   WHERE user_id=$1 AND type = ANY($2)`
	err := l.q.QueryRow(ctx, query, userID, typeStrings(types)).Scan(&sum)
	return sum, err
}

// Transact runs fn against a transaction-scoped store, committing only when fn
// returns nil.
func (r *transactionRepository) Transact(ctx context.Context, fn func(repository.LedgerStore) error) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		return fn(ledgerStore{q: tx})
	})
}

func (r *transactionRepository) List(ctx context.Context, userID int64, filter repository.TransactionFilter) ([]model.Transaction, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + transactionColumns + ` FROM transactions WHERE user_id=$1`)
	args := []any{userID}

	if filter.Type != nil {
		args = append(args, string(*filter.Type))
		fmt.Fprintf(&sb, ` AND type=$%d`, len(args))
	}
	if filter.Desc {
		sb.WriteString(` ORDER BY created_at DESC, id DESC`)
	} else {
		sb.WriteString(` ORDER BY created_at, id`)
	}
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		fmt.Fprintf(&sb, ` LIMIT $%d`, len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		fmt.Fprintf(&sb, ` OFFSET $%d`, len(args))
	}

	rows, err := r.storage.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Transaction
	for rows.Next() {
		var txn model.Transaction
		if err := rows.Scan(&txn.ID, &txn.UserID, &txn.Type, &txn.Amount, &txn.Description, &txn.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *transactionRepository) Count(ctx context.Context, userID int64, typ *model.TransactionType) (int64, error) {
	var count int64
	if typ != nil {
		const query = `SELECT COUNT(*) FROM transactions WHERE user_id=$1 AND type=$2`
		err := r.storage.pool.QueryRow(ctx, query, userID, string(*typ)).Scan(&count)
		return count, err
	}
	const query = `SELECT COUNT(*) FROM transactions WHERE user_id=$1`
	err := r.storage.pool.QueryRow(ctx, query, userID).Scan(&count)
	return count, err
}

func (r *transactionRepository) SumPreceding(ctx context.Context, userID int64, types []model.TransactionType, before time.Time, beforeID int64) (float64, error) {
	const query = `SELECT COALESCE(SUM(amount), 0) FROM transactions
                   WHERE user_id=$1 AND type = ANY($2)
                     AND (created_at < $3 OR (created_at = $3 AND id < $4))`
	var sum float64
	err := r.storage.pool.QueryRow(ctx, query, userID, typeStrings(types), before, beforeID).Scan(&sum)
	return sum, err
}

func typeStrings(types []model.TransactionType) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}
