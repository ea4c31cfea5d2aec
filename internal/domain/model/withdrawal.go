package model

import "time"

// WithdrawalStatus describes the request lifecycle. Pending is the only state
// that may transition; approved and denied are terminal.
type WithdrawalStatus string

const (
	WithdrawalPending  WithdrawalStatus = "pending"
	WithdrawalApproved WithdrawalStatus = "approved"
	WithdrawalDenied   WithdrawalStatus = "denied"
)

// WithdrawalRequest is a child's ask to withdraw money, resolved by an admin.
type WithdrawalRequest struct {
	ID         int64
	UserID     int64
	Amount     float64
	Reason     string
	Status     WithdrawalStatus
	CreatedAt  time.Time
	ResolvedAt *time.Time
	ResolvedBy *int64
	// ChildName is the requester's display name. Only the admin-side listing
	// populates it.
	ChildName string
}

// Resolved reports whether the request reached a terminal state.
func (r *WithdrawalRequest) Resolved() bool {
	return r.Status != WithdrawalPending
}
