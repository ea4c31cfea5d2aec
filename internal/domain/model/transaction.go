package model

import "time"

// TransactionType classifies a ledger posting.
type TransactionType string

const (
	TransactionIncome     TransactionType = "income"
	TransactionInterest   TransactionType = "interest"
	TransactionAdjustment TransactionType = "adjustment"
	TransactionWithdrawal TransactionType = "withdrawal"
	TransactionPenalty    TransactionType = "penalty"
)

// CreditTypes increase the balance, DebitTypes decrease it. Adjustment is the
// only type whose stored amount may be negative; a negative adjustment acts as
// a debit without being listed as one.
var (
	CreditTypes = []TransactionType{TransactionIncome, TransactionInterest, TransactionAdjustment}
	DebitTypes  = []TransactionType{TransactionWithdrawal, TransactionPenalty}
)

var polarity = map[TransactionType]int{
	TransactionIncome:     1,
	TransactionInterest:   1,
	TransactionAdjustment: 1,
	TransactionWithdrawal: -1,
	TransactionPenalty:    -1,
}

// Sign returns +1 for credit types and -1 for debit types.
func (t TransactionType) Sign() int {
	return polarity[t]
}

// Valid reports whether the type is a known posting type.
func (t TransactionType) Valid() bool {
	_, ok := polarity[t]
	return ok
}

// Transaction is an immutable dated ledger posting. Postings are never updated
// or deleted; corrections are made with offsetting postings. The serial ID is
// the tie-breaker for postings sharing the same CreatedAt.
type Transaction struct {
	ID          int64
	UserID      int64
	Type        TransactionType
	Amount      float64
	Description string
	CreatedAt   time.Time
}

// AnnotatedTransaction pairs a posting with the balance right after it applied.
type AnnotatedTransaction struct {
	Transaction
	BalanceAfter float64
}
