package models

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

const (
	AccountKindCurrent            = "current"
	AccountKindOverdraft          = "overdraft"
	AccountKindSavings            = "savings"
	AccountKindZeroBalanceSavings = "zero_balance_savings"
	AccountKindWomenSavings       = "women_savings"
	AccountKindKidsSavings        = "kids_savings"
	AccountKindSeniorSavings      = "senior_savings"
	AccountKindFixedDeposit       = "fixed_deposit"
	AccountKindNRI                = "nri"
	AccountKindNRE                = "nre"

	// Account number prefixes by kind
	CurrentPrefix      = "10"
	OverdraftPrefix    = "15"
	SavingsPrefix      = "20"
	ZeroBalancePrefix  = "25"
	FixedDepositPrefix = "30"
	NRIPrefix          = "40"
)

var (
	ErrInvalidAccountKind      = errors.New("invalid account kind")
	ErrNegativeAmount          = errors.New("deposit amount cannot be negative")
	ErrNegativeOpeningBalance  = errors.New("opening balance cannot be negative")
	ErrInsufficientFunds       = errors.New("insufficient funds for withdrawal")
	ErrWithdrawalLimitExceeded = errors.New("withdrawal amount exceeds overdraft limit")
	ErrInterestNotSupported    = errors.New("account kind does not accrue on-demand interest")
)

// DefaultCurrentFloor is the minimum-balance threshold for current accounts.
var DefaultCurrentFloor = decimal.NewFromInt(50000)

// DefaultSavingsMinimum is the balance a savings account must retain.
var DefaultSavingsMinimum = decimal.NewFromInt(1000)

// CurrentTerms parameterize current and overdraft accounts.
type CurrentTerms struct {
	MinBalance decimal.Decimal
}

// OverdraftTerms parameterize the overdraft facility on top of current terms.
type OverdraftTerms struct {
	Limit decimal.Decimal
	Fee   decimal.Decimal
}

// SavingsTerms parameterize the savings family of accounts.
type SavingsTerms struct {
	InterestRate            decimal.Decimal // percent, e.g. 4 means 4%
	MaxWithdrawalsPerPeriod int
	WithdrawalFee           decimal.Decimal
	MinimumBalance          decimal.Decimal
}

// FixedDepositTerms parameterize fixed-deposit accounts.
type FixedDepositTerms struct {
	InterestRate decimal.Decimal // percent
	MaturityDate time.Time
}

// NRITerms parameterize non-resident accounts. TaxRate is stored for NRE
// accounts but no withdrawal rule consumes it yet.
type NRITerms struct {
	TaxRate decimal.Decimal
}

// Account is the polymorphic aggregate at the heart of the rule engine. One
// struct carries every kind; Withdraw dispatches on the kind constant so
// each variant's rule table is explicit and testable in isolation.
//
// Balance and ledger are owned exclusively by the account and change only
// through Deposit, Withdraw and AddInterest. The ledger is append-only and
// its order is the order operations were applied. A single mutex serializes
// all operations on one account; distinct accounts never coordinate.
type Account struct {
	mu         sync.Mutex
	number     string
	holderName string
	pinHash    []byte
	kind       string

	balance        decimal.Decimal
	openingBalance decimal.Decimal
	ledger         []Transaction

	ids   *TransactionIDGenerator
	clock func() time.Time

	current      CurrentTerms
	overdraft    OverdraftTerms
	savings      SavingsTerms
	fixedDeposit FixedDepositTerms
	nri          NRITerms

	withdrawalCount int
	matured         bool
}

// AccountOption customizes account construction.
type AccountOption func(*Account)

// WithClock overrides the time source used to stamp ledger entries and to
// decide fixed-deposit maturity.
func WithClock(clock func() time.Time) AccountOption {
	return func(a *Account) {
		a.clock = clock
	}
}

func newAccount(kind, number, holderName, pin string, opening decimal.Decimal, ids *TransactionIDGenerator, opts ...AccountOption) (*Account, error) {
	if !IsValidAccountKind(kind) {
		return nil, ErrInvalidAccountKind
	}

	if opening.LessThan(decimal.Zero) {
		return nil, ErrNegativeOpeningBalance
	}

	if ids == nil {
		return nil, errors.New("transaction id generator is required")
	}

	pinHash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash pin: %w", err)
	}

	a := &Account{
		number:         number,
		holderName:     holderName,
		pinHash:        pinHash,
		kind:           kind,
		balance:        opening,
		openingBalance: opening,
		ids:            ids,
		clock:          time.Now,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a, nil
}

// NewCurrentAccount opens a current account with the default 50000 floor.
func NewCurrentAccount(number, holderName, pin string, opening decimal.Decimal, ids *TransactionIDGenerator, opts ...AccountOption) (*Account, error) {
	a, err := newAccount(AccountKindCurrent, number, holderName, pin, opening, ids, opts...)
	if err != nil {
		return nil, err
	}

	a.current = CurrentTerms{MinBalance: DefaultCurrentFloor}
	return a, nil
}

// NewOverdraftAccount opens a current account with an overdraft facility.
func NewOverdraftAccount(number, holderName, pin string, opening, limit, fee decimal.Decimal, ids *TransactionIDGenerator, opts ...AccountOption) (*Account, error) {
	a, err := newAccount(AccountKindOverdraft, number, holderName, pin, opening, ids, opts...)
	if err != nil {
		return nil, err
	}

	a.current = CurrentTerms{MinBalance: DefaultCurrentFloor}
	a.overdraft = OverdraftTerms{Limit: limit, Fee: fee}
	return a, nil
}

// NewSavingsAccount opens a savings account.
func NewSavingsAccount(number, holderName, pin string, opening decimal.Decimal, terms SavingsTerms, ids *TransactionIDGenerator, opts ...AccountOption) (*Account, error) {
	return newSavings(AccountKindSavings, number, holderName, pin, opening, terms, ids, opts...)
}

// NewZeroBalanceSavingsAccount opens a savings account with no minimum
// balance requirement; any other minimum passed in the terms is discarded.
func NewZeroBalanceSavingsAccount(number, holderName, pin string, opening decimal.Decimal, terms SavingsTerms, ids *TransactionIDGenerator, opts ...AccountOption) (*Account, error) {
	terms.MinimumBalance = decimal.Zero
	return newSavings(AccountKindZeroBalanceSavings, number, holderName, pin, opening, terms, ids, opts...)
}

// NewWomenSavingsAccount opens a savings account with women's benefits.
func NewWomenSavingsAccount(number, holderName, pin string, opening decimal.Decimal, terms SavingsTerms, ids *TransactionIDGenerator, opts ...AccountOption) (*Account, error) {
	return newSavings(AccountKindWomenSavings, number, holderName, pin, opening, terms, ids, opts...)
}

// NewKidsSavingsAccount opens a savings account with kids' benefits.
func NewKidsSavingsAccount(number, holderName, pin string, opening decimal.Decimal, terms SavingsTerms, ids *TransactionIDGenerator, opts ...AccountOption) (*Account, error) {
	return newSavings(AccountKindKidsSavings, number, holderName, pin, opening, terms, ids, opts...)
}

// NewSeniorSavingsAccount opens a savings account with senior-citizen benefits.
func NewSeniorSavingsAccount(number, holderName, pin string, opening decimal.Decimal, terms SavingsTerms, ids *TransactionIDGenerator, opts ...AccountOption) (*Account, error) {
	return newSavings(AccountKindSeniorSavings, number, holderName, pin, opening, terms, ids, opts...)
}

func newSavings(kind, number, holderName, pin string, opening decimal.Decimal, terms SavingsTerms, ids *TransactionIDGenerator, opts ...AccountOption) (*Account, error) {
	a, err := newAccount(kind, number, holderName, pin, opening, ids, opts...)
	if err != nil {
		return nil, err
	}

	a.savings = terms
	return a, nil
}

// NewFixedDepositAccount opens a fixed deposit maturing at the given time.
func NewFixedDepositAccount(number, holderName, pin string, opening decimal.Decimal, terms FixedDepositTerms, ids *TransactionIDGenerator, opts ...AccountOption) (*Account, error) {
	a, err := newAccount(AccountKindFixedDeposit, number, holderName, pin, opening, ids, opts...)
	if err != nil {
		return nil, err
	}

	a.fixedDeposit = terms
	return a, nil
}

// NewNRIAccount opens a non-resident account.
func NewNRIAccount(number, holderName, pin string, opening decimal.Decimal, ids *TransactionIDGenerator, opts ...AccountOption) (*Account, error) {
	return newAccount(AccountKindNRI, number, holderName, pin, opening, ids, opts...)
}

// NewNREAccount opens a non-resident external account carrying a tax rate.
func NewNREAccount(number, holderName, pin string, opening, taxRate decimal.Decimal, ids *TransactionIDGenerator, opts ...AccountOption) (*Account, error) {
	a, err := newAccount(AccountKindNRE, number, holderName, pin, opening, ids, opts...)
	if err != nil {
		return nil, err
	}

	a.nri = NRITerms{TaxRate: taxRate}
	return a, nil
}

// Number returns the immutable account number.
func (a *Account) Number() string {
	return a.number
}

// HolderName returns the immutable account holder name.
func (a *Account) HolderName() string {
	return a.holderName
}

// Kind returns the account kind constant.
func (a *Account) Kind() string {
	return a.kind
}

// Balance returns the current balance.
func (a *Account) Balance() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

// OpeningBalance returns the balance the account was created with.
func (a *Account) OpeningBalance() decimal.Decimal {
	return a.openingBalance
}

// WithdrawalCount returns how many withdrawals succeeded this period.
func (a *Account) WithdrawalCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.withdrawalCount
}

// Matured reports whether a fixed deposit has reached maturity.
func (a *Account) Matured() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.matured
}

// TaxRate returns the NRE tax rate (zero for every other kind).
func (a *Account) TaxRate() decimal.Decimal {
	return a.nri.TaxRate
}

// VerifyPIN checks the given pin against the stored hash. This is a display
// gate for revealing holder details, not access control: money operations
// never consult it.
func (a *Account) VerifyPIN(pin string) bool {
	return bcrypt.CompareHashAndPassword(a.pinHash, []byte(pin)) == nil
}

// Info renders the account summary for the presentation boundary.
func (a *Account) Info() string {
	return fmt.Sprintf("Account Number: %s\nAccount Holder: %s\nBalance: %s",
		a.number, a.holderName, a.Balance().StringFixed(2))
}

// History returns a copy of the ledger in the order entries were appended.
func (a *Account) History() []Transaction {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]Transaction, len(a.ledger))
	copy(out, a.ledger)
	return out
}

// Deposit credits the account. Negative amounts are rejected; there is no
// upper bound. The balance mutation and the ledger append happen together
// or not at all.
func (a *Account) Deposit(amount decimal.Decimal) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if amount.LessThan(decimal.Zero) {
		return ErrNegativeAmount
	}

	entry, err := a.newEntry(TransactionKindDeposit, amount, "Deposited amount")
	if err != nil {
		return err
	}

	a.balance = a.balance.Add(amount)
	a.ledger = append(a.ledger, entry)
	return nil
}

// Withdraw debits the account under the rules of its kind. The order of
// checks within each kind is part of the contract: it decides which error
// fires and which side effects land first.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch a.kind {
	case AccountKindCurrent:
		return a.withdrawCurrent(amount)
	case AccountKindOverdraft:
		return a.withdrawOverdraft(amount)
	case AccountKindSavings, AccountKindZeroBalanceSavings,
		AccountKindWomenSavings, AccountKindKidsSavings, AccountKindSeniorSavings:
		return a.withdrawSavings(amount)
	case AccountKindFixedDeposit:
		return a.withdrawFixedDeposit(amount)
	case AccountKindNRI, AccountKindNRE:
		return a.withdrawNRI(amount)
	default:
		return ErrInvalidAccountKind
	}
}

// withdrawCurrent permits a withdrawal only while the balance is already
// below the minimum-balance floor. The inverted gate is a preserved business
// rule: accounts at or above the floor refuse withdrawals outright.
func (a *Account) withdrawCurrent(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(a.balance) && a.balance.LessThan(a.current.MinBalance) {
		return a.debit(amount, TransactionKindWithdrawal, "Withdrawn amount")
	}

	return ErrInsufficientFunds
}

func (a *Account) withdrawOverdraft(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(a.balance) {
		return a.debit(amount, TransactionKindWithdrawal, "Withdrawn amount")
	}

	if amount.LessThanOrEqual(a.balance.Add(a.overdraft.Limit)) {
		shortfall := amount.Sub(a.balance)

		draw, err := a.newEntry(TransactionKindOverdraft, shortfall, "Overdraft used")
		if err != nil {
			return err
		}
		fee, err := a.newEntry(TransactionKindOverdraftFee, a.overdraft.Fee, "Overdraft fee applied")
		if err != nil {
			return err
		}

		a.balance = a.balance.Sub(amount).Sub(a.overdraft.Fee)
		a.ledger = append(a.ledger, draw, fee)
		return nil
	}

	return ErrWithdrawalLimitExceeded
}

// withdrawSavings charges the over-limit fee before attempting the
// withdrawal; the fee never blocks the attempt, so one call can produce a
// fee entry and then either a withdrawal entry or an error. The withdrawal
// check runs against the post-fee balance.
func (a *Account) withdrawSavings(amount decimal.Decimal) error {
	if a.withdrawalCount >= a.savings.MaxWithdrawalsPerPeriod {
		if err := a.debit(a.savings.WithdrawalFee, TransactionKindFee, "Withdrawal limit exceeded fee"); err != nil {
			return err
		}
	}

	if amount.LessThanOrEqual(a.balance.Sub(a.savings.MinimumBalance)) {
		if err := a.debit(amount, TransactionKindWithdrawal, "Withdrawn amount"); err != nil {
			return err
		}
		a.withdrawalCount++
		return nil
	}

	return ErrInsufficientFunds
}

// withdrawFixedDeposit checks maturity against the account clock first.
// Interest is applied exactly once, when the deposit crosses into maturity;
// the withdrawal itself is then an ordinary balance check.
func (a *Account) withdrawFixedDeposit(amount decimal.Decimal) error {
	if !a.matured && !a.clock().Before(a.fixedDeposit.MaturityDate) {
		a.matured = true

		interest := a.balance.Mul(a.fixedDeposit.InterestRate).Div(decimal.NewFromInt(100))
		entry, err := a.newEntry(TransactionKindInterest, interest, "Interest added on maturity")
		if err != nil {
			return err
		}

		a.balance = a.balance.Add(interest)
		a.ledger = append(a.ledger, entry)
	}

	if amount.LessThanOrEqual(a.balance) {
		return a.debit(amount, TransactionKindWithdrawal, "Withdrawn amount")
	}

	return ErrInsufficientFunds
}

func (a *Account) withdrawNRI(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(a.balance) {
		return a.debit(amount, TransactionKindWithdrawal, "Withdrawn amount")
	}

	return ErrInsufficientFunds
}

// AddInterest applies one flat interest accrual to a savings-family account
// and records it. There is no implicit schedule; callers decide when.
func (a *Account) AddInterest() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !IsSavingsKind(a.kind) {
		return ErrInterestNotSupported
	}

	interest := a.balance.Mul(a.savings.InterestRate).Div(decimal.NewFromInt(100))
	entry, err := a.newEntry(TransactionKindInterest, interest, "Interest added")
	if err != nil {
		return err
	}

	a.balance = a.balance.Add(interest)
	a.ledger = append(a.ledger, entry)
	return nil
}

// Benefits lists the announcements attached to specialized savings kinds.
// They are presentational only and carry no balance effect.
func (a *Account) Benefits() []string {
	switch a.kind {
	case AccountKindWomenSavings:
		return []string{"Health insurance benefit applied.", "Loan interest discount applied."}
	case AccountKindKidsSavings:
		return []string{"Educational bonus applied.", "Parental control activated."}
	case AccountKindSeniorSavings:
		return []string{"Higher interest rate applied.", "Medical benefit applied."}
	default:
		return nil
	}
}

// debit subtracts the amount and appends a single entry of the given kind.
// Callers hold the account mutex.
func (a *Account) debit(amount decimal.Decimal, kind, description string) error {
	entry, err := a.newEntry(kind, amount, description)
	if err != nil {
		return err
	}

	a.balance = a.balance.Sub(amount)
	a.ledger = append(a.ledger, entry)
	return nil
}

func (a *Account) newEntry(kind string, amount decimal.Decimal, description string) (Transaction, error) {
	id, err := a.ids.Generate()
	if err != nil {
		return Transaction{}, err
	}

	return NewTransaction(id, a.clock(), kind, amount, description)
}

// Helper functions

// IsValidAccountKind checks if the account kind is valid
func IsValidAccountKind(kind string) bool {
	switch kind {
	case AccountKindCurrent, AccountKindOverdraft, AccountKindSavings,
		AccountKindZeroBalanceSavings, AccountKindWomenSavings,
		AccountKindKidsSavings, AccountKindSeniorSavings,
		AccountKindFixedDeposit, AccountKindNRI, AccountKindNRE:
		return true
	default:
		return false
	}
}

// IsSavingsKind reports whether the kind belongs to the savings family.
func IsSavingsKind(kind string) bool {
	switch kind {
	case AccountKindSavings, AccountKindZeroBalanceSavings,
		AccountKindWomenSavings, AccountKindKidsSavings, AccountKindSeniorSavings:
		return true
	default:
		return false
	}
}

// AccountNumberPrefix returns the prefix for an account kind
func AccountNumberPrefix(kind string) string {
	switch kind {
	case AccountKindCurrent:
		return CurrentPrefix
	case AccountKindOverdraft:
		return OverdraftPrefix
	case AccountKindSavings, AccountKindWomenSavings, AccountKindKidsSavings, AccountKindSeniorSavings:
		return SavingsPrefix
	case AccountKindZeroBalanceSavings:
		return ZeroBalancePrefix
	case AccountKindFixedDeposit:
		return FixedDepositPrefix
	case AccountKindNRI, AccountKindNRE:
		return NRIPrefix
	default:
		return ""
	}
}

// GenerateAccountNumber generates a 10-digit account number for the kind.
// Uniqueness is the caller's job: the registry rechecks before inserting.
func GenerateAccountNumber(kind string) string {
	prefix := AccountNumberPrefix(kind)
	if prefix == "" {
		return ""
	}

	middle := fmt.Sprintf("%02d", rand.IntN(100))
	suffix := fmt.Sprintf("%06d", rand.IntN(1000000))

	return prefix + middle + suffix
}

// ValidateAccountNumber validates an account number format
func ValidateAccountNumber(number string) bool {
	if len(number) != 10 {
		return false
	}

	for _, char := range number {
		if char < '0' || char > '9' {
			return false
		}
	}

	switch number[:2] {
	case CurrentPrefix, OverdraftPrefix, SavingsPrefix, ZeroBalancePrefix, FixedDepositPrefix, NRIPrefix:
		return true
	default:
		return false
	}
}
