package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"bankledger/internal/models"
	"bankledger/internal/repositories"

	"github.com/shopspring/decimal"
)

var (
	ErrAccountNotFound      = errors.New("account not found")
	ErrAccountAlreadyExists = errors.New("account number already in use")
	ErrInvalidPIN           = errors.New("invalid pin")
	ErrInvalidAmount        = errors.New("invalid amount")
)

const (
	operationDeposit  = "deposit"
	operationWithdraw = "withdraw"
	operationInterest = "interest"

	outcomeOK     = "ok"
	outcomeDenied = "denied"
)

// OpenAccountParams collects everything needed to open an account of any
// kind. Fields that do not apply to the requested kind are ignored.
type OpenAccountParams struct {
	Kind           string
	HolderName     string
	PIN            string
	OpeningBalance decimal.Decimal

	// savings family
	InterestRate            decimal.Decimal
	MaxWithdrawalsPerPeriod int
	WithdrawalFee           decimal.Decimal
	MinimumBalance          decimal.Decimal

	// overdraft facility
	OverdraftLimit decimal.Decimal
	OverdraftFee   decimal.Decimal

	// fixed deposit
	DurationDays int

	// non-resident external
	TaxRate decimal.Decimal
}

// accountService implements AccountServiceInterface
type accountService struct {
	registry    repositories.AccountRegistryInterface
	auditRepo   repositories.AuditLogRepositoryInterface
	auditLogger AuditLoggerInterface
	metrics     MetricsRecorderInterface
	ids         *models.TransactionIDGenerator
	logger      *slog.Logger
}

// NewAccountService creates the account orchestration service. All accounts
// opened through it share one transaction id generator, which keeps ids
// unique across the whole process.
func NewAccountService(
	registry repositories.AccountRegistryInterface,
	auditRepo repositories.AuditLogRepositoryInterface,
	auditLogger AuditLoggerInterface,
	metrics MetricsRecorderInterface,
	ids *models.TransactionIDGenerator,
	logger *slog.Logger,
) AccountServiceInterface {
	return &accountService{
		registry:    registry,
		auditRepo:   auditRepo,
		auditLogger: auditLogger,
		metrics:     metrics,
		ids:         ids,
		logger:      logger,
	}
}

// OpenAccount creates an account of the requested kind, assigns it a unique
// kind-prefixed number and registers it.
func (s *accountService) OpenAccount(ctx context.Context, params OpenAccountParams) (*models.Account, error) {
	if !models.IsValidAccountKind(params.Kind) {
		return nil, models.ErrInvalidAccountKind
	}

	number, err := s.generateUniqueNumber(params.Kind)
	if err != nil {
		return nil, err
	}

	account, err := s.buildAccount(number, params)
	if err != nil {
		return nil, err
	}

	if err := s.registry.Add(account); err != nil {
		if errors.Is(err, repositories.ErrDuplicateAccount) {
			return nil, ErrAccountAlreadyExists
		}
		return nil, fmt.Errorf("failed to register account: %w", err)
	}

	s.metrics.SetOpenAccounts(s.registry.Len())
	s.auditLogger.LogAccountOpened(ctx, number, params.Kind)
	s.persistAudit(number, models.AuditActionAccountOpened, outcomeOK, map[string]interface{}{
		"kind":            params.Kind,
		"opening_balance": params.OpeningBalance.String(),
	})

	s.logger.InfoContext(ctx, "account opened",
		slog.String("account_number", number),
		slog.String("kind", params.Kind),
	)

	return account, nil
}

// GetAccount looks up an account by number.
func (s *accountService) GetAccount(ctx context.Context, number string) (*models.Account, error) {
	account, ok := s.registry.Find(number)
	if !ok {
		return nil, ErrAccountNotFound
	}
	return account, nil
}

// ListAccounts returns every open account in insertion order.
func (s *accountService) ListAccounts(ctx context.Context) []*models.Account {
	return s.registry.List()
}

// CloseAccount removes the account from the registry.
func (s *accountService) CloseAccount(ctx context.Context, number string) error {
	if !s.registry.Remove(number) {
		return ErrAccountNotFound
	}

	s.metrics.SetOpenAccounts(s.registry.Len())
	s.auditLogger.LogAccountClosed(ctx, number)
	s.persistAudit(number, models.AuditActionAccountClosed, outcomeOK, nil)

	s.logger.InfoContext(ctx, "account closed", slog.String("account_number", number))
	return nil
}

// Deposit credits the account and records the operation.
func (s *accountService) Deposit(ctx context.Context, number string, amount decimal.Decimal) (*models.Account, error) {
	account, ok := s.registry.Find(number)
	if !ok {
		return nil, ErrAccountNotFound
	}

	err := account.Deposit(amount)
	s.recordOperation(ctx, account, operationDeposit, models.AuditActionDeposit, amount, err)
	if err != nil {
		return nil, err
	}

	return account, nil
}

// Withdraw debits the account under its kind's rules and records the
// operation, whichever way it goes.
func (s *accountService) Withdraw(ctx context.Context, number string, amount decimal.Decimal) (*models.Account, error) {
	account, ok := s.registry.Find(number)
	if !ok {
		return nil, ErrAccountNotFound
	}

	err := account.Withdraw(amount)
	s.recordOperation(ctx, account, operationWithdraw, models.AuditActionWithdrawal, amount, err)
	if err != nil {
		return nil, err
	}

	return account, nil
}

// AddInterest applies one flat interest accrual to a savings-family account.
func (s *accountService) AddInterest(ctx context.Context, number string) (*models.Account, error) {
	account, ok := s.registry.Find(number)
	if !ok {
		return nil, ErrAccountNotFound
	}

	err := account.AddInterest()
	s.recordOperation(ctx, account, operationInterest, models.AuditActionInterestApplied, decimal.Zero, err)
	if err != nil {
		return nil, err
	}

	return account, nil
}

// History returns a copy of the account's ledger.
func (s *accountService) History(ctx context.Context, number string) ([]models.Transaction, error) {
	account, ok := s.registry.Find(number)
	if !ok {
		return nil, ErrAccountNotFound
	}

	s.persistAudit(number, models.AuditActionHistoryViewed, outcomeOK, nil)
	return account.History(), nil
}

// RevealHolder discloses holder details behind the PIN display gate. The
// gate protects the display only; it is not access control.
func (s *accountService) RevealHolder(ctx context.Context, number, pin string) (string, error) {
	account, ok := s.registry.Find(number)
	if !ok {
		return "", ErrAccountNotFound
	}

	if !account.VerifyPIN(pin) {
		s.persistAudit(number, models.AuditActionHolderViewed, outcomeDenied, nil)
		return "", ErrInvalidPIN
	}

	s.persistAudit(number, models.AuditActionHolderViewed, outcomeOK, nil)
	return fmt.Sprintf("Account Holder Name: %s\nAccount Number: %s", account.HolderName(), account.Number()), nil
}

func (s *accountService) buildAccount(number string, params OpenAccountParams) (*models.Account, error) {
	savingsTerms := models.SavingsTerms{
		InterestRate:            params.InterestRate,
		MaxWithdrawalsPerPeriod: params.MaxWithdrawalsPerPeriod,
		WithdrawalFee:           params.WithdrawalFee,
		MinimumBalance:          params.MinimumBalance,
	}

	switch params.Kind {
	case models.AccountKindCurrent:
		return models.NewCurrentAccount(number, params.HolderName, params.PIN, params.OpeningBalance, s.ids)
	case models.AccountKindOverdraft:
		return models.NewOverdraftAccount(number, params.HolderName, params.PIN, params.OpeningBalance,
			params.OverdraftLimit, params.OverdraftFee, s.ids)
	case models.AccountKindSavings:
		return models.NewSavingsAccount(number, params.HolderName, params.PIN, params.OpeningBalance, savingsTerms, s.ids)
	case models.AccountKindZeroBalanceSavings:
		return models.NewZeroBalanceSavingsAccount(number, params.HolderName, params.PIN, params.OpeningBalance, savingsTerms, s.ids)
	case models.AccountKindWomenSavings:
		return models.NewWomenSavingsAccount(number, params.HolderName, params.PIN, params.OpeningBalance, savingsTerms, s.ids)
	case models.AccountKindKidsSavings:
		return models.NewKidsSavingsAccount(number, params.HolderName, params.PIN, params.OpeningBalance, savingsTerms, s.ids)
	case models.AccountKindSeniorSavings:
		return models.NewSeniorSavingsAccount(number, params.HolderName, params.PIN, params.OpeningBalance, savingsTerms, s.ids)
	case models.AccountKindFixedDeposit:
		maturity := time.Now().AddDate(0, 0, params.DurationDays)
		return models.NewFixedDepositAccount(number, params.HolderName, params.PIN, params.OpeningBalance,
			models.FixedDepositTerms{InterestRate: params.InterestRate, MaturityDate: maturity}, s.ids)
	case models.AccountKindNRI:
		return models.NewNRIAccount(number, params.HolderName, params.PIN, params.OpeningBalance, s.ids)
	case models.AccountKindNRE:
		return models.NewNREAccount(number, params.HolderName, params.PIN, params.OpeningBalance, params.TaxRate, s.ids)
	default:
		return nil, models.ErrInvalidAccountKind
	}
}

func (s *accountService) generateUniqueNumber(kind string) (string, error) {
	for attempt := 0; attempt < 10; attempt++ {
		number := models.GenerateAccountNumber(kind)
		if number == "" {
			return "", models.ErrInvalidAccountKind
		}
		if !s.registry.Exists(number) {
			return number, nil
		}
	}

	return "", errors.New("failed to generate a unique account number")
}

// recordOperation funnels audit, metrics and logging for one money
// operation. The domain error, if any, passes through untouched.
func (s *accountService) recordOperation(ctx context.Context, account *models.Account, operation, action string, amount decimal.Decimal, opErr error) {
	outcome := outcomeOK
	if opErr != nil {
		outcome = outcomeDenied
	}

	s.metrics.RecordOperation(operation, outcome)
	if opErr == nil && amount.GreaterThan(decimal.Zero) {
		s.metrics.ObserveAmount(operation, amount)
	}

	s.auditLogger.LogOperation(ctx, account.Number(), action, outcome, amount)

	metadata := map[string]interface{}{
		"amount":  amount.String(),
		"balance": account.Balance().String(),
	}
	if opErr != nil {
		metadata["reason"] = opErr.Error()
	}
	s.persistAudit(account.Number(), action, outcome, metadata)

	if opErr != nil {
		s.logger.WarnContext(ctx, "operation denied",
			slog.String("account_number", account.Number()),
			slog.String("operation", operation),
			slog.String("reason", opErr.Error()),
		)
		return
	}

	s.logger.InfoContext(ctx, "operation applied",
		slog.String("account_number", account.Number()),
		slog.String("operation", operation),
		slog.String("amount", amount.String()),
	)
}

// persistAudit writes the durable audit row. A failed write never fails the
// money operation; it is logged and dropped.
func (s *accountService) persistAudit(number, action, outcome string, metadata map[string]interface{}) {
	log := &models.AuditLog{
		AccountNumber: number,
		Action:        action,
		Outcome:       outcome,
		Metadata:      metadata,
	}

	if err := s.auditRepo.Create(log); err != nil {
		s.logger.Warn("failed to persist audit log",
			slog.String("account_number", number),
			slog.String("action", action),
			slog.String("error", err.Error()),
		)
	}
}
