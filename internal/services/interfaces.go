package services

import (
	"context"

	"bankledger/internal/models"

	"github.com/shopspring/decimal"
)

// AccountServiceInterface defines the contract for account orchestration.
// Policy decisions live on the account aggregate; the service locates
// accounts, wires ids, and records audit/metrics around every operation.
type AccountServiceInterface interface {
	OpenAccount(ctx context.Context, params OpenAccountParams) (*models.Account, error)
	GetAccount(ctx context.Context, number string) (*models.Account, error)
	ListAccounts(ctx context.Context) []*models.Account
	CloseAccount(ctx context.Context, number string) error
	Deposit(ctx context.Context, number string, amount decimal.Decimal) (*models.Account, error)
	Withdraw(ctx context.Context, number string, amount decimal.Decimal) (*models.Account, error)
	AddInterest(ctx context.Context, number string) (*models.Account, error)
	History(ctx context.Context, number string) ([]models.Transaction, error)
	RevealHolder(ctx context.Context, number, pin string) (string, error)
}

// MetricsRecorderInterface defines the contract for operation metrics
type MetricsRecorderInterface interface {
	RecordOperation(operation, status string)
	ObserveAmount(operation string, amount decimal.Decimal)
	SetOpenAccounts(count int)
}

// AuditLoggerInterface emits structured audit events alongside the
// persisted audit trail
type AuditLoggerInterface interface {
	LogAccountOpened(ctx context.Context, number, kind string)
	LogAccountClosed(ctx context.Context, number string)
	LogOperation(ctx context.Context, number, action, outcome string, amount decimal.Decimal)
}
