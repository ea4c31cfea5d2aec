package dto

import (
	"time"

	"github.com/familybank/allowance/internal/domain/model"
)

// TransactionResponse describes one ledger posting with its running balance.
type TransactionResponse struct {
	ID           int64     `json:"id"`
	Type         string    `json:"type"`
	Amount       float64   `json:"amount"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
	BalanceAfter float64   `json:"balance_after"`
}

// TransactionsPageResponse is one page of posting history.
type TransactionsPageResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int64                 `json:"total"`
	Page         int                   `json:"page"`
	Pages        int                   `json:"pages"`
}

// NewTransactionResponses maps annotated postings onto the wire shape.
func NewTransactionResponses(txns []model.AnnotatedTransaction) []TransactionResponse {
	result := make([]TransactionResponse, 0, len(txns))
	for _, txn := range txns {
		result = append(result, TransactionResponse{
			ID:           txn.ID,
			Type:         string(txn.Type),
			Amount:       txn.Amount,
			Description:  txn.Description,
			CreatedAt:    txn.CreatedAt,
			BalanceAfter: txn.BalanceAfter,
		})
	}
	return result
}
