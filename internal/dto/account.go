package dto

import (
	"bankledger/internal/models"
)

// Account Request DTOs

// OpenAccountRequest represents the request payload for opening a new account.
// Monetary fields travel as strings so the API never round-trips floats.
type OpenAccountRequest struct {
	Kind           string `json:"kind" validate:"required,account_kind"`
	HolderName     string `json:"holder_name" validate:"required,min=1,max=100"`
	PIN            string `json:"pin" validate:"required,len=4,numeric"`
	OpeningBalance string `json:"opening_balance" validate:"omitempty,money_amount"`

	// savings family. MaxWithdrawalsPerPeriod is a pointer so an explicit
	// zero (every withdrawal incurs the fee) is distinct from absent.
	InterestRate            string `json:"interest_rate,omitempty" validate:"omitempty,money_amount"`
	MaxWithdrawalsPerPeriod *int   `json:"max_withdrawals_per_period,omitempty" validate:"omitempty,gte=0"`
	WithdrawalFee           string `json:"withdrawal_fee,omitempty" validate:"omitempty,money_amount"`
	MinimumBalance          string `json:"minimum_balance,omitempty" validate:"omitempty,money_amount"`

	// overdraft facility
	OverdraftLimit string `json:"overdraft_limit,omitempty" validate:"omitempty,money_amount"`
	OverdraftFee   string `json:"overdraft_fee,omitempty" validate:"omitempty,money_amount"`

	// fixed deposit
	DurationDays int `json:"duration_days,omitempty" validate:"omitempty,min=1"`

	// non-resident external
	TaxRate string `json:"tax_rate,omitempty" validate:"omitempty,money_amount"`
}

// AmountRequest represents the request payload for deposits and withdrawals
type AmountRequest struct {
	Amount string `json:"amount" validate:"required,money_amount"`
}

// RevealHolderRequest carries the PIN guarding holder details
type RevealHolderRequest struct {
	PIN string `json:"pin" validate:"required,len=4,numeric"`
}

// Account Response DTOs

// AccountResponse represents a single account in API responses
type AccountResponse struct {
	Number          string   `json:"number"`
	HolderName      string   `json:"holder_name"`
	Kind            string   `json:"kind"`
	Balance         string   `json:"balance"`
	OpeningBalance  string   `json:"opening_balance"`
	WithdrawalCount int      `json:"withdrawal_count,omitempty"`
	Benefits        []string `json:"benefits,omitempty"`
}

// NewAccountResponse maps an account aggregate onto its API shape
func NewAccountResponse(account *models.Account) AccountResponse {
	return AccountResponse{
		Number:          account.Number(),
		HolderName:      account.HolderName(),
		Kind:            account.Kind(),
		Balance:         account.Balance().String(),
		OpeningBalance:  account.OpeningBalance().String(),
		WithdrawalCount: account.WithdrawalCount(),
		Benefits:        account.Benefits(),
	}
}

// OpenAccountResponse represents the response after opening an account
type OpenAccountResponse struct {
	Account AccountResponse `json:"account"`
	Message string          `json:"message"`
}

// AccountListResponse represents the full list of open accounts
type AccountListResponse struct {
	Accounts []AccountResponse `json:"accounts"`
	Total    int               `json:"total"`
}

// NewAccountListResponse maps a slice of accounts onto the list shape
func NewAccountListResponse(accounts []*models.Account) AccountListResponse {
	out := make([]AccountResponse, len(accounts))
	for i, account := range accounts {
		out[i] = NewAccountResponse(account)
	}
	return AccountListResponse{Accounts: out, Total: len(out)}
}

// HolderResponse represents the PIN-gated holder details
type HolderResponse struct {
	Details string `json:"details"`
}

// MessageResponse represents a simple message response
type MessageResponse struct {
	Message string `json:"message"`
}
