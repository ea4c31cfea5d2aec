package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/familybank/allowance/internal/domain/errors"
	"github.com/familybank/allowance/internal/domain/model"
)

type withdrawalRepository struct {
	storage *Storage
}

const withdrawalColumns = `id, user_id, amount, reason, status, created_at, resolved_at, resolved_by`

func scanWithdrawal(row pgx.Row) (*model.WithdrawalRequest, error) {
	var req model.WithdrawalRequest
	err := row.Scan(&req.ID, &req.UserID, &req.Amount, &req.Reason, &req.Status,
		&req.CreatedAt, &req.ResolvedAt, &req.ResolvedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *withdrawalRepository) Create(ctx context.Context, userID int64, amount float64, reason string) (*model.WithdrawalRequest, error) {
	const query = `INSERT INTO withdrawal_requests (user_id, amount, reason)
                   VALUES ($1, $2, $3)
                   RETURNING id, status, created_at`
	req := model.WithdrawalRequest{UserID: userID, Amount: amount, Reason: reason}
	err := r.storage.pool.QueryRow(ctx, query, userID, amount, reason).Scan(&req.ID, &req.Status, &req.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *withdrawalRepository) GetByID(ctx context.Context, id int64) (*model.WithdrawalRequest, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawal_requests WHERE id=$1`
	return scanWithdrawal(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *withdrawalRepository) ListByUser(ctx context.Context, userID int64) ([]model.WithdrawalRequest, error) {
	query := `SELECT ` + withdrawalColumns + `
              FROM withdrawal_requests WHERE user_id=$1 ORDER BY created_at DESC, id DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectWithdrawals(rows)
}

// List serves the admin view, so every row carries the requester's display
// name via a join.
func (r *withdrawalRepository) List(ctx context.Context, status *model.WithdrawalStatus) ([]model.WithdrawalRequest, error) {
	const adminColumns = `w.id, w.user_id, w.amount, w.reason, w.status, w.created_at, w.resolved_at, w.resolved_by,
                          COALESCE(u.display_name, 'Unknown')`

	var (
		rows pgx.Rows
		err  error
	)
	if status != nil {
		query := `SELECT ` + adminColumns + `
                  FROM withdrawal_requests w
                  LEFT JOIN users u ON u.id = w.user_id
                  WHERE w.status=$1 ORDER BY w.created_at DESC, w.id DESC`
		rows, err = r.storage.pool.Query(ctx, query, string(*status))
	} else {
		query := `SELECT ` + adminColumns + `
                  FROM withdrawal_requests w
                  LEFT JOIN users u ON u.id = w.user_id
                  ORDER BY w.created_at DESC, w.id DESC`
		rows, err = r.storage.pool.Query(ctx, query)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.WithdrawalRequest
	for rows.Next() {
		var req model.WithdrawalRequest
		if err := rows.Scan(&req.ID, &req.UserID, &req.Amount, &req.Reason, &req.Status,
			&req.CreatedAt, &req.ResolvedAt, &req.ResolvedBy, &req.ChildName); err != nil {
			return nil, err
		}
		result = append(result, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Resolve transitions a pending request and, on approval, posts the matching
// withdrawal to the ledger in the same transaction.
func (r *withdrawalRepository) Resolve(ctx context.Context, id int64, status model.WithdrawalStatus, resolvedBy int64, now time.Time) (*model.WithdrawalRequest, error) {
	var resolved *model.WithdrawalRequest

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		query := `SELECT ` + withdrawalColumns + ` FROM withdrawal_requests WHERE id=$1 FOR UPDATE`
		req, err := scanWithdrawal(tx.QueryRow(ctx, query, id))
		if err != nil {
			return err
		}
		if req.Resolved() {
			return domainErrors.ErrAlreadyResolved
		}

		const update = `UPDATE withdrawal_requests SET status=$1, resolved_at=$2, resolved_by=$3 WHERE id=$4`
		if _, err := tx.Exec(ctx, update, string(status), now, resolvedBy, id); err != nil {
			return err
		}

		if status == model.WithdrawalApproved {
			description := "Withdrawal"
			if req.Reason != "" {
				description = "Withdrawal: " + req.Reason
			}
			if err := (ledgerStore{q: tx}).Insert(ctx, &model.Transaction{
				UserID:      req.UserID,
				Type:        model.TransactionWithdrawal,
				Amount:      req.Amount,
				Description: description,
				CreatedAt:   now,
			}); err != nil {
				return err
			}
		}

		req.Status = status
		req.ResolvedAt = &now
		req.ResolvedBy = &resolvedBy
		resolved = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resolved, nil
}

func collectWithdrawals(rows pgx.Rows) ([]model.WithdrawalRequest, error) {
	var result []model.WithdrawalRequest
	for rows.Next() {
		var req model.WithdrawalRequest
		if err := rows.Scan(&req.ID, &req.UserID, &req.Amount, &req.Reason, &req.Status,
			&req.CreatedAt, &req.ResolvedAt, &req.ResolvedBy); err != nil {
			return nil, err
		}
		result = append(result, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
