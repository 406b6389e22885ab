package dto

import (
	"time"

	"bankledger/internal/models"
)

// TransactionResponse represents one ledger entry in API responses
type TransactionResponse struct {
	ID           string    `json:"id"`
	Date         time.Time `json:"date"`
	Kind         string    `json:"kind"`
	Amount       string    `json:"amount"`
	SignedAmount string    `json:"signed_amount"`
	Description  string    `json:"description,omitempty"`
}

// NewTransactionResponse maps a ledger entry onto its API shape
func NewTransactionResponse(tx models.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:           tx.ID,
		Date:         tx.Date,
		Kind:         tx.Kind,
		Amount:       tx.Amount.String(),
		SignedAmount: tx.SignedAmount().String(),
		Description:  tx.Description,
	}
}

// TransactionListResponse represents an account's full ledger, oldest first
type TransactionListResponse struct {
	AccountNumber string                `json:"account_number"`
	Transactions  []TransactionResponse `json:"transactions"`
	Total         int                   `json:"total"`
}

// NewTransactionListResponse maps a ledger copy onto the list shape
func NewTransactionListResponse(number string, history []models.Transaction) TransactionListResponse {
	out := make([]TransactionResponse, len(history))
	for i, tx := range history {
		out[i] = NewTransactionResponse(tx)
	}
	return TransactionListResponse{AccountNumber: number, Transactions: out, Total: len(out)}
}
