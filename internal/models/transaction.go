package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TransactionKindDeposit      = "deposit"
	TransactionKindWithdrawal   = "withdrawal"
	TransactionKindFee          = "fee"
	TransactionKindInterest     = "interest"
	TransactionKindOverdraft    = "overdraft"
	TransactionKindOverdraftFee = "overdraft_fee"
)

var (
	ErrInvalidTransactionKind = errors.New("invalid transaction kind")
	ErrNegativeTransaction    = errors.New("transaction amount cannot be negative")
)

// Transaction is a single immutable ledger entry. It is created exactly once
// per balance-affecting event and owned by the account that recorded it.
// Amount is always a non-negative magnitude; the balance effect is implied
// by the kind.
type Transaction struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Kind        string          `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// NewTransaction builds a validated ledger entry stamped at the given time.
func NewTransaction(id string, date time.Time, kind string, amount decimal.Decimal, description string) (Transaction, error) {
	if !IsValidTransactionKind(kind) {
		return Transaction{}, ErrInvalidTransactionKind
	}

	if amount.LessThan(decimal.Zero) {
		return Transaction{}, ErrNegativeTransaction
	}

	return Transaction{
		ID:          id,
		Date:        date,
		Kind:        kind,
		Amount:      amount,
		Description: description,
	}, nil
}

// SignedAmount returns the effect of the entry on the account balance:
// positive for credits (deposits, interest), negative for debits. An
// overdraft draw is the debit of the shortfall pulled from the facility;
// the portion of an overdraft withdrawal covered by the balance itself has
// no entry of its own, so ledgers that contain draws do not reconcile to
// the balance by signed sums alone.
func (t Transaction) SignedAmount() decimal.Decimal {
	switch t.Kind {
	case TransactionKindDeposit, TransactionKindInterest:
		return t.Amount
	case TransactionKindWithdrawal, TransactionKindFee,
		TransactionKindOverdraft, TransactionKindOverdraftFee:
		return t.Amount.Neg()
	default:
		return decimal.Zero
	}
}

// IsCredit reports whether the entry increases the balance.
func (t Transaction) IsCredit() bool {
	return t.SignedAmount().GreaterThan(decimal.Zero)
}

// Details renders the entry for the presentation boundary.
func (t Transaction) Details() string {
	return fmt.Sprintf("Transaction ID: %s\nDate: %s\nKind: %s\nAmount: %s\nDescription: %s",
		t.ID, t.Date.Format(time.RFC3339), t.Kind, t.Amount.StringFixed(2), t.Description)
}

// IsValidTransactionKind checks if the transaction kind is valid
func IsValidTransactionKind(kind string) bool {
	switch kind {
	case TransactionKindDeposit, TransactionKindWithdrawal, TransactionKindFee,
		TransactionKindInterest, TransactionKindOverdraft, TransactionKindOverdraftFee:
		return true
	default:
		return false
	}
}
