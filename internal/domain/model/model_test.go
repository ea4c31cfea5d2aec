package model

import (
	"testing"
	"time"
)

func TestTransactionTypeSign(t *testing.T) {
	cases := []struct {
		name string
		typ  TransactionType
		sign int
	}{
		{"income", TransactionIncome, 1},
		{"interest", TransactionInterest, 1},
		{"adjustment", TransactionAdjustment, 1},
		{"withdrawal", TransactionWithdrawal, -1},
		{"penalty", TransactionPenalty, -1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.typ.Sign(); got != tc.sign {
				t.Fatalf("expected sign %d, got %d", tc.sign, got)
			}
		})
	}
}

func TestTransactionTypeValid(t *testing.T) {
	for _, typ := range append(CreditTypes, DebitTypes...) {
		if !typ.Valid() {
			t.Fatalf("expected %s to be valid", typ)
		}
	}
	if TransactionType("refund").Valid() {
		t.Fatal("expected unknown type to be invalid")
	}
}

func TestUserAccrualStart(t *testing.T) {
	created := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	u := &User{CreatedAt: created}
	if got := u.AccrualStart(); !got.Equal(created) {
		t.Fatalf("expected creation date, got %s", got)
	}

	override := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	u.AllowanceStartDate = &override
	if got := u.AccrualStart(); !got.Equal(override) {
		t.Fatalf("expected override date, got %s", got)
	}
}

func TestWithdrawalResolved(t *testing.T) {
	r := &WithdrawalRequest{Status: WithdrawalPending}
	if r.Resolved() {
		t.Fatal("pending request must not be resolved")
	}
	r.Status = WithdrawalApproved
	if !r.Resolved() {
		t.Fatal("approved request must be resolved")
	}
}
