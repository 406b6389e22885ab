package handlers

import (
	"net/http"

	"bankledger/internal/config"
	"bankledger/internal/dto"
	"bankledger/internal/errors"
	"bankledger/internal/models"
	"bankledger/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// AccountHandler handles account-related HTTP requests
type AccountHandler struct {
	accountService services.AccountServiceInterface
	defaults       config.BankConfig
}

// NewAccountHandler creates a new account handler. The bank defaults fill in
// terms an opening request leaves blank.
func NewAccountHandler(accountService services.AccountServiceInterface, defaults config.BankConfig) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		defaults:       defaults,
	}
}

// OpenAccount opens a new bank account of the requested kind
// @Summary Open a new account
// @Description Open a new account of any supported kind with an optional opening balance
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body dto.OpenAccountRequest true "Account opening details"
// @Success 201 {object} dto.OpenAccountResponse "Account opened successfully"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request body or validation error"
// @Failure 422 {object} errors.ErrorResponse "TRANSACTION_002 - Negative opening balance"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /accounts [post]
func (h *AccountHandler) OpenAccount(c echo.Context) error {
	var req dto.OpenAccountRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	params, err := h.buildOpenParams(req)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(err.Error()))
	}

	account, err := h.accountService.OpenAccount(c.Request().Context(), params)
	if err != nil {
		if err == models.ErrInvalidAccountKind {
			return SendError(c, errors.AccountInvalidKind)
		}
		if err == models.ErrNegativeOpeningBalance {
			return SendError(c, errors.TransactionNegativeDeposit, errors.WithDetails("Opening balance must not be negative"))
		}
		if err == services.ErrAccountAlreadyExists {
			return SendError(c, errors.AccountDuplicate)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.OpenAccountResponse{
		Account: dto.NewAccountResponse(account),
		Message: "Account opened successfully",
	})
}

// ListAccounts returns every open account in opening order
// @Summary List accounts
// @Description Retrieve all open accounts in the order they were opened
// @Tags Accounts
// @Produce json
// @Success 200 {object} dto.AccountListResponse "List of open accounts"
// @Router /accounts [get]
func (h *AccountHandler) ListAccounts(c echo.Context) error {
	accounts := h.accountService.ListAccounts(c.Request().Context())
	return c.JSON(http.StatusOK, dto.NewAccountListResponse(accounts))
}

// GetAccount retrieves a specific account by number
// @Summary Get account by number
// @Description Retrieve one account by its kind-prefixed 10-digit number
// @Tags Accounts
// @Produce json
// @Param accountNumber path string true "Account number"
// @Success 200 {object} dto.AccountResponse "Account details"
// @Failure 400 {object} errors.ErrorResponse "ACCOUNT_004 - Invalid account number format"
// @Failure 404 {object} errors.ErrorResponse "ACCOUNT_001 - Account not found"
// @Router /accounts/{accountNumber} [get]
func (h *AccountHandler) GetAccount(c echo.Context) error {
	number, err := h.accountNumberParam(c)
	if err != nil {
		return err
	}

	account, err := h.accountService.GetAccount(c.Request().Context(), number)
	if err != nil {
		if err == services.ErrAccountNotFound {
			return SendError(c, errors.AccountNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewAccountResponse(account))
}

// CloseAccount removes an account from the registry
// @Summary Close account
// @Description Close an account. Its in-memory ledger is discarded; the audit trail survives.
// @Tags Accounts
// @Produce json
// @Param accountNumber path string true "Account number"
// @Success 200 {object} dto.MessageResponse "Account closed successfully"
// @Failure 400 {object} errors.ErrorResponse "ACCOUNT_004 - Invalid account number format"
// @Failure 404 {object} errors.ErrorResponse "ACCOUNT_001 - Account not found"
// @Router /accounts/{accountNumber} [delete]
func (h *AccountHandler) CloseAccount(c echo.Context) error {
	number, err := h.accountNumberParam(c)
	if err != nil {
		return err
	}

	if err := h.accountService.CloseAccount(c.Request().Context(), number); err != nil {
		if err == services.ErrAccountNotFound {
			return SendError(c, errors.AccountNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Account closed successfully"})
}

// Deposit credits an account
// @Summary Deposit
// @Description Credit the account with the given amount
// @Tags Transactions
// @Accept json
// @Produce json
// @Param accountNumber path string true "Account number"
// @Param request body dto.AmountRequest true "Deposit amount"
// @Success 200 {object} dto.AccountResponse "Updated account"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request body or negative amount"
// @Failure 404 {object} errors.ErrorResponse "ACCOUNT_001 - Account not found"
// @Router /accounts/{accountNumber}/deposits [post]
func (h *AccountHandler) Deposit(c echo.Context) error {
	number, amount, err := h.amountRequest(c)
	if err != nil {
		return err
	}

	account, err := h.accountService.Deposit(c.Request().Context(), number, amount)
	if err != nil {
		return h.mapOperationErr(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewAccountResponse(account))
}

// Withdraw debits an account under its kind's rules
// @Summary Withdraw
// @Description Debit the account. The account's kind decides fees, limits and whether the withdrawal is allowed.
// @Tags Transactions
// @Accept json
// @Produce json
// @Param accountNumber path string true "Account number"
// @Param request body dto.AmountRequest true "Withdrawal amount"
// @Success 200 {object} dto.AccountResponse "Updated account"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request body"
// @Failure 404 {object} errors.ErrorResponse "ACCOUNT_001 - Account not found"
// @Failure 422 {object} errors.ErrorResponse "TRANSACTION_003 - Insufficient funds, TRANSACTION_004 - Overdraft limit exceeded"
// @Router /accounts/{accountNumber}/withdrawals [post]
func (h *AccountHandler) Withdraw(c echo.Context) error {
	number, amount, err := h.amountRequest(c)
	if err != nil {
		return err
	}

	account, err := h.accountService.Withdraw(c.Request().Context(), number, amount)
	if err != nil {
		return h.mapOperationErr(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewAccountResponse(account))
}

// AddInterest applies one interest accrual to a savings-family account
// @Summary Apply interest
// @Description Apply one flat interest accrual at the account's configured rate
// @Tags Transactions
// @Produce json
// @Param accountNumber path string true "Account number"
// @Success 200 {object} dto.AccountResponse "Updated account"
// @Failure 404 {object} errors.ErrorResponse "ACCOUNT_001 - Account not found"
// @Failure 422 {object} errors.ErrorResponse "ACCOUNT_006 - Kind does not accrue on-demand interest"
// @Router /accounts/{accountNumber}/interest [post]
func (h *AccountHandler) AddInterest(c echo.Context) error {
	number, err := h.accountNumberParam(c)
	if err != nil {
		return err
	}

	account, err := h.accountService.AddInterest(c.Request().Context(), number)
	if err != nil {
		return h.mapOperationErr(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewAccountResponse(account))
}

// GetTransactions returns the account's full ledger, oldest first
// @Summary Get transaction history
// @Description Retrieve the account's immutable ledger in chronological order
// @Tags Transactions
// @Produce json
// @Param accountNumber path string true "Account number"
// @Success 200 {object} dto.TransactionListResponse "Ledger entries"
// @Failure 404 {object} errors.ErrorResponse "ACCOUNT_001 - Account not found"
// @Router /accounts/{accountNumber}/transactions [get]
func (h *AccountHandler) GetTransactions(c echo.Context) error {
	number, err := h.accountNumberParam(c)
	if err != nil {
		return err
	}

	history, err := h.accountService.History(c.Request().Context(), number)
	if err != nil {
		if err == services.ErrAccountNotFound {
			return SendError(c, errors.AccountNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewTransactionListResponse(number, history))
}

// RevealHolder discloses holder details behind the PIN display gate
// @Summary Reveal holder details
// @Description Show the holder's name and number when the correct PIN is supplied
// @Tags Accounts
// @Accept json
// @Produce json
// @Param accountNumber path string true "Account number"
// @Param request body dto.RevealHolderRequest true "Account PIN"
// @Success 200 {object} dto.HolderResponse "Holder details"
// @Failure 401 {object} errors.ErrorResponse "ACCOUNT_005 - Invalid PIN"
// @Failure 404 {object} errors.ErrorResponse "ACCOUNT_001 - Account not found"
// @Router /accounts/{accountNumber}/holder [post]
func (h *AccountHandler) RevealHolder(c echo.Context) error {
	number, err := h.accountNumberParam(c)
	if err != nil {
		return err
	}

	var req dto.RevealHolderRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	details, err := h.accountService.RevealHolder(c.Request().Context(), number, req.PIN)
	if err != nil {
		if err == services.ErrAccountNotFound {
			return SendError(c, errors.AccountNotFound)
		}
		if err == services.ErrInvalidPIN {
			return SendError(c, errors.AccountInvalidPIN)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.HolderResponse{Details: details})
}

// accountNumberParam reads and validates the path parameter shared by every
// per-account route.
func (h *AccountHandler) accountNumberParam(c echo.Context) (string, error) {
	number := c.Param("accountNumber")
	if !models.ValidateAccountNumber(number) {
		return "", SendError(c, errors.AccountInvalidNumber)
	}
	return number, nil
}

// amountRequest binds and validates the amount payload shared by deposit and
// withdrawal routes.
func (h *AccountHandler) amountRequest(c echo.Context) (string, decimal.Decimal, error) {
	number, err := h.accountNumberParam(c)
	if err != nil {
		return "", decimal.Zero, err
	}

	var req dto.AmountRequest
	if err := c.Bind(&req); err != nil {
		return "", decimal.Zero, SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return "", decimal.Zero, SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return "", decimal.Zero, SendError(c, errors.TransactionInvalidAmount, errors.WithDetails("Invalid amount"))
	}

	return number, amount, nil
}

// mapOperationErr translates domain denials into their error codes
func (h *AccountHandler) mapOperationErr(c echo.Context, err error) error {
	switch err {
	case services.ErrAccountNotFound:
		return SendError(c, errors.AccountNotFound)
	case models.ErrNegativeAmount:
		return SendError(c, errors.TransactionNegativeDeposit)
	case models.ErrInsufficientFunds:
		return SendError(c, errors.TransactionInsufficientFunds)
	case models.ErrWithdrawalLimitExceeded:
		return SendError(c, errors.TransactionOverdraftExceeded)
	case models.ErrInterestNotSupported:
		return SendError(c, errors.AccountInterestNotAvailable)
	default:
		return SendSystemError(c, err)
	}
}

// buildOpenParams converts the request's string amounts into decimals and
// applies the bank defaults where the request left terms blank.
func (h *AccountHandler) buildOpenParams(req dto.OpenAccountRequest) (services.OpenAccountParams, error) {
	params := services.OpenAccountParams{
		Kind:         req.Kind,
		HolderName:   req.HolderName,
		PIN:          req.PIN,
		DurationDays: req.DurationDays,
	}

	if req.MaxWithdrawalsPerPeriod != nil {
		params.MaxWithdrawalsPerPeriod = *req.MaxWithdrawalsPerPeriod
	} else {
		params.MaxWithdrawalsPerPeriod = h.defaults.SavingsMaxWithdrawals
	}

	var err error
	if params.OpeningBalance, err = parseAmount(req.OpeningBalance, decimal.Zero); err != nil {
		return params, err
	}
	if params.InterestRate, err = parseAmount(req.InterestRate, decimal.NewFromFloat(h.defaults.SavingsInterestRate)); err != nil {
		return params, err
	}
	if params.WithdrawalFee, err = parseAmount(req.WithdrawalFee, decimal.NewFromFloat(h.defaults.SavingsWithdrawalFee)); err != nil {
		return params, err
	}
	if params.MinimumBalance, err = parseAmount(req.MinimumBalance, models.DefaultSavingsMinimum); err != nil {
		return params, err
	}
	if params.OverdraftLimit, err = parseAmount(req.OverdraftLimit, decimal.NewFromFloat(h.defaults.OverdraftLimit)); err != nil {
		return params, err
	}
	if params.OverdraftFee, err = parseAmount(req.OverdraftFee, decimal.NewFromFloat(h.defaults.OverdraftFee)); err != nil {
		return params, err
	}
	if params.TaxRate, err = parseAmount(req.TaxRate, decimal.Zero); err != nil {
		return params, err
	}

	if params.DurationDays == 0 {
		params.DurationDays = h.defaults.FixedDepositDefaultDays
	}

	return params, nil
}

func parseAmount(raw string, fallback decimal.Decimal) (decimal.Decimal, error) {
	if raw == "" {
		return fallback, nil
	}
	return decimal.NewFromString(raw)
}
