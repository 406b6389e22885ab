package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransaction(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		kind    string
		amount  decimal.Decimal
		wantErr error
	}{
		{name: "valid deposit", kind: TransactionKindDeposit, amount: decimal.NewFromInt(10)},
		{name: "valid overdraft fee", kind: TransactionKindOverdraftFee, amount: decimal.NewFromInt(5)},
		{name: "zero magnitude is valid", kind: TransactionKindInterest, amount: decimal.Zero},
		{name: "unknown kind", kind: "refund", amount: decimal.NewFromInt(10), wantErr: ErrInvalidTransactionKind},
		{name: "negative magnitude", kind: TransactionKindDeposit, amount: decimal.NewFromInt(-10), wantErr: ErrNegativeTransaction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn, err := NewTransaction("1700000000000-1234", now, tt.kind, tt.amount, "note")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.kind, txn.Kind)
			assert.Equal(t, now, txn.Date)
		})
	}
}

func TestTransaction_SignedAmount(t *testing.T) {
	ten := decimal.NewFromInt(10)

	tests := []struct {
		kind string
		want decimal.Decimal
	}{
		{TransactionKindDeposit, ten},
		{TransactionKindInterest, ten},
		{TransactionKindWithdrawal, ten.Neg()},
		{TransactionKindFee, ten.Neg()},
		{TransactionKindOverdraft, ten.Neg()},
		{TransactionKindOverdraftFee, ten.Neg()},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			txn, err := NewTransaction("id", time.Now(), tt.kind, ten, "")
			require.NoError(t, err)
			assert.True(t, txn.SignedAmount().Equal(tt.want))
			assert.Equal(t, tt.want.GreaterThan(decimal.Zero), txn.IsCredit())
		})
	}
}

func TestTransaction_Details(t *testing.T) {
	date := time.Date(2026, time.February, 3, 12, 0, 0, 0, time.UTC)
	txn, err := NewTransaction("1700000000000-4321", date, TransactionKindWithdrawal, decimal.NewFromFloat(99.5), "Withdrawn amount")
	require.NoError(t, err)

	details := txn.Details()
	assert.Contains(t, details, "1700000000000-4321")
	assert.Contains(t, details, "withdrawal")
	assert.Contains(t, details, "99.50")
	assert.Contains(t, details, "Withdrawn amount")
	assert.Contains(t, details, "2026-02-03T12:00:00Z")
}
