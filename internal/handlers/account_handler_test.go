package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bankledger/internal/config"
	"bankledger/internal/dto"
	"bankledger/internal/models"
	"bankledger/internal/repositories"
	"bankledger/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// nopAuditRepo satisfies the audit repository without persistence. Handler
// tests exercise the HTTP surface; audit persistence has its own tests.
type nopAuditRepo struct{}

func (nopAuditRepo) Create(log *models.AuditLog) error { return nil }
func (nopAuditRepo) GetByID(id uuid.UUID) (*models.AuditLog, error) {
	return nil, services.ErrAccountNotFound
}
func (nopAuditRepo) GetByAccountNumber(number string, offset, limit int) ([]*models.AuditLog, int64, error) {
	return nil, 0, nil
}
func (nopAuditRepo) GetByAction(action string, offset, limit int) ([]*models.AuditLog, int64, error) {
	return nil, 0, nil
}
func (nopAuditRepo) DeleteOlderThan(duration time.Duration) (int64, error) { return 0, nil }

// nopMetrics satisfies the metrics recorder without a registry
type nopMetrics struct{}

func (nopMetrics) RecordOperation(operation, status string)          {}
func (nopMetrics) ObserveAmount(operation string, a decimal.Decimal) {}
func (nopMetrics) SetOpenAccounts(count int)                         {}

// AccountHandlerSuite defines the test suite for AccountHandler. It runs
// against the real service and registry; only audit persistence and metrics
// are stubbed out.
type AccountHandlerSuite struct {
	suite.Suite
	registry *repositories.AccountRegistry
	service  services.AccountServiceInterface
	handler  *AccountHandler
	echo     *echo.Echo
}

// SetupTest runs before each test in the suite
func (s *AccountHandlerSuite) SetupTest() {
	s.registry = repositories.NewAccountRegistry()
	s.service = services.NewAccountService(
		s.registry,
		nopAuditRepo{},
		services.NewAuditLogger(slog.Default()),
		nopMetrics{},
		models.NewTransactionIDGenerator(),
		slog.Default(),
	)
	s.handler = NewAccountHandler(s.service, config.Load().Bank)

	s.echo = echo.New()
	s.echo.Validator = NewValidator()
}

// TestAccountHandlerSuite runs the test suite
func TestAccountHandlerSuite(t *testing.T) {
	suite.Run(t, new(AccountHandlerSuite))
}

// createContext builds an echo context with an optional JSON body
func (s *AccountHandlerSuite) createContext(method, path string, body interface{}) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewBuffer(jsonBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	rec := httptest.NewRecorder()
	return s.echo.NewContext(req, rec), rec
}

func (s *AccountHandlerSuite) openSavings(opening string) dto.AccountResponse {
	c, rec := s.createContext("POST", "/accounts", dto.OpenAccountRequest{
		Kind:           models.AccountKindSavings,
		HolderName:     "Asha Rao",
		PIN:            "4321",
		OpeningBalance: opening,
		MinimumBalance: "100",
	})

	s.Require().NoError(s.handler.OpenAccount(c))
	s.Require().Equal(http.StatusCreated, rec.Code)

	var resp dto.OpenAccountResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Account
}

func (s *AccountHandlerSuite) TestOpenAccount() {
	account := s.openSavings("1000")

	s.Equal(models.AccountKindSavings, account.Kind)
	s.Equal("1000", account.Balance)
	s.Equal(models.SavingsPrefix, account.Number[:2])
}

func (s *AccountHandlerSuite) TestOpenAccount_InvalidKind() {
	c, rec := s.createContext("POST", "/accounts", dto.OpenAccountRequest{
		Kind:       "money_market",
		HolderName: "Asha Rao",
		PIN:        "4321",
	})

	s.Require().NoError(s.handler.OpenAccount(c))
	s.Equal(http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("VALIDATION_001", resp.Error.Code)
}

func (s *AccountHandlerSuite) TestOpenAccount_NegativeOpeningBalance() {
	c, rec := s.createContext("POST", "/accounts", dto.OpenAccountRequest{
		Kind:           models.AccountKindCurrent,
		HolderName:     "Asha Rao",
		PIN:            "4321",
		OpeningBalance: "-10",
	})

	s.Require().NoError(s.handler.OpenAccount(c))
	s.Equal(http.StatusBadRequest, rec.Code, "negative amounts fail the money_amount rule")
}

func (s *AccountHandlerSuite) TestOpenAccount_ExplicitZeroWithdrawalAllowance() {
	zero := 0
	c, rec := s.createContext("POST", "/accounts", dto.OpenAccountRequest{
		Kind:                    models.AccountKindSavings,
		HolderName:              "Asha Rao",
		PIN:                     "4321",
		OpeningBalance:          "1000",
		MinimumBalance:          "100",
		WithdrawalFee:           "20",
		MaxWithdrawalsPerPeriod: &zero,
	})

	s.Require().NoError(s.handler.OpenAccount(c))
	s.Require().Equal(http.StatusCreated, rec.Code)

	var opened dto.OpenAccountResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &opened))

	// With an allowance of zero, the very first withdrawal incurs the fee
	withdraw, wrec := s.createContext("POST", "/accounts/"+opened.Account.Number+"/withdrawals", dto.AmountRequest{Amount: "300"})
	withdraw.SetParamNames("accountNumber")
	withdraw.SetParamValues(opened.Account.Number)

	s.Require().NoError(s.handler.Withdraw(withdraw))
	s.Equal(http.StatusOK, wrec.Code)

	var resp dto.AccountResponse
	s.Require().NoError(json.Unmarshal(wrec.Body.Bytes(), &resp))
	s.Equal("680", resp.Balance, "fee of 20 debited before the 300 withdrawal")
}

func (s *AccountHandlerSuite) TestGetAccount() {
	opened := s.openSavings("1000")

	c, rec := s.createContext("GET", "/accounts/"+opened.Number, nil)
	c.SetParamNames("accountNumber")
	c.SetParamValues(opened.Number)

	s.Require().NoError(s.handler.GetAccount(c))
	s.Equal(http.StatusOK, rec.Code)

	var resp dto.AccountResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal(opened.Number, resp.Number)
}

func (s *AccountHandlerSuite) TestGetAccount_NotFound() {
	c, rec := s.createContext("GET", "/accounts/2099999999", nil)
	c.SetParamNames("accountNumber")
	c.SetParamValues("2099999999")

	s.Require().NoError(s.handler.GetAccount(c))
	s.Equal(http.StatusNotFound, rec.Code)

	var resp ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("ACCOUNT_001", resp.Error.Code)
}

func (s *AccountHandlerSuite) TestGetAccount_BadNumber() {
	c, rec := s.createContext("GET", "/accounts/abc", nil)
	c.SetParamNames("accountNumber")
	c.SetParamValues("abc")

	s.Require().NoError(s.handler.GetAccount(c))
	s.Equal(http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("ACCOUNT_004", resp.Error.Code)
}

func (s *AccountHandlerSuite) TestDeposit() {
	opened := s.openSavings("1000")

	c, rec := s.createContext("POST", "/accounts/"+opened.Number+"/deposits", dto.AmountRequest{Amount: "250"})
	c.SetParamNames("accountNumber")
	c.SetParamValues(opened.Number)

	s.Require().NoError(s.handler.Deposit(c))
	s.Equal(http.StatusOK, rec.Code)

	var resp dto.AccountResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("1250", resp.Balance)
}

func (s *AccountHandlerSuite) TestDeposit_NegativeAmountRejected() {
	opened := s.openSavings("1000")

	c, rec := s.createContext("POST", "/accounts/"+opened.Number+"/deposits", dto.AmountRequest{Amount: "-5"})
	c.SetParamNames("accountNumber")
	c.SetParamValues(opened.Number)

	s.Require().NoError(s.handler.Deposit(c))
	s.Equal(http.StatusBadRequest, rec.Code, "negative amounts fail the money_amount rule")
}

func (s *AccountHandlerSuite) TestWithdraw() {
	opened := s.openSavings("1000")

	c, rec := s.createContext("POST", "/accounts/"+opened.Number+"/withdrawals", dto.AmountRequest{Amount: "300"})
	c.SetParamNames("accountNumber")
	c.SetParamValues(opened.Number)

	s.Require().NoError(s.handler.Withdraw(c))
	s.Equal(http.StatusOK, rec.Code)

	var resp dto.AccountResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("700", resp.Balance)
	s.Equal(1, resp.WithdrawalCount)
}

func (s *AccountHandlerSuite) TestWithdraw_InsufficientFunds() {
	opened := s.openSavings("1000")

	c, rec := s.createContext("POST", "/accounts/"+opened.Number+"/withdrawals", dto.AmountRequest{Amount: "100000"})
	c.SetParamNames("accountNumber")
	c.SetParamValues(opened.Number)

	s.Require().NoError(s.handler.Withdraw(c))
	s.Equal(http.StatusUnprocessableEntity, rec.Code)

	var resp ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("TRANSACTION_003", resp.Error.Code)
}

func (s *AccountHandlerSuite) TestAddInterest() {
	opened := s.openSavings("1000")

	c, rec := s.createContext("POST", "/accounts/"+opened.Number+"/interest", nil)
	c.SetParamNames("accountNumber")
	c.SetParamValues(opened.Number)

	s.Require().NoError(s.handler.AddInterest(c))
	s.Equal(http.StatusOK, rec.Code)

	var resp dto.AccountResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("1040", resp.Balance, "default rate of 4 percent on 1000")
}

func (s *AccountHandlerSuite) TestGetTransactions() {
	opened := s.openSavings("1000")

	deposit, _ := s.createContext("POST", "/accounts/"+opened.Number+"/deposits", dto.AmountRequest{Amount: "10"})
	deposit.SetParamNames("accountNumber")
	deposit.SetParamValues(opened.Number)
	s.Require().NoError(s.handler.Deposit(deposit))

	c, rec := s.createContext("GET", "/accounts/"+opened.Number+"/transactions", nil)
	c.SetParamNames("accountNumber")
	c.SetParamValues(opened.Number)

	s.Require().NoError(s.handler.GetTransactions(c))
	s.Equal(http.StatusOK, rec.Code)

	var resp dto.TransactionListResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal(1, resp.Total)
	s.Equal(models.TransactionKindDeposit, resp.Transactions[0].Kind)
	s.Equal("10", resp.Transactions[0].SignedAmount)
}

func (s *AccountHandlerSuite) TestRevealHolder() {
	opened := s.openSavings("1000")

	c, rec := s.createContext("POST", "/accounts/"+opened.Number+"/holder", dto.RevealHolderRequest{PIN: "4321"})
	c.SetParamNames("accountNumber")
	c.SetParamValues(opened.Number)

	s.Require().NoError(s.handler.RevealHolder(c))
	s.Equal(http.StatusOK, rec.Code)

	var resp dto.HolderResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Contains(resp.Details, "Asha Rao")
}

func (s *AccountHandlerSuite) TestRevealHolder_WrongPIN() {
	opened := s.openSavings("1000")

	c, rec := s.createContext("POST", "/accounts/"+opened.Number+"/holder", dto.RevealHolderRequest{PIN: "0000"})
	c.SetParamNames("accountNumber")
	c.SetParamValues(opened.Number)

	s.Require().NoError(s.handler.RevealHolder(c))
	s.Equal(http.StatusUnauthorized, rec.Code)

	var resp ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("ACCOUNT_005", resp.Error.Code)
}

func (s *AccountHandlerSuite) TestCloseAccount() {
	opened := s.openSavings("1000")

	c, rec := s.createContext("DELETE", "/accounts/"+opened.Number, nil)
	c.SetParamNames("accountNumber")
	c.SetParamValues(opened.Number)

	s.Require().NoError(s.handler.CloseAccount(c))
	s.Equal(http.StatusOK, rec.Code)
	s.Equal(0, s.registry.Len())
}

func (s *AccountHandlerSuite) TestListAccounts() {
	first := s.openSavings("100")
	second := s.openSavings("200")

	c, rec := s.createContext("GET", "/accounts", nil)

	s.Require().NoError(s.handler.ListAccounts(c))
	s.Equal(http.StatusOK, rec.Code)

	var resp dto.AccountListResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Require().Equal(2, resp.Total)
	s.Equal(first.Number, resp.Accounts[0].Number)
	s.Equal(second.Number, resp.Accounts[1].Number)
}
