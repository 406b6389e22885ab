package repositories

import (
	"errors"
	"sync"

	"bankledger/internal/models"
)

var (
	ErrDuplicateAccount = errors.New("account number already registered")
	ErrAccountNotFound  = errors.New("account not found")
)

// AccountRegistry is the in-memory collection of live accounts, keyed by
// account number. It only locates accounts; every policy decision lives on
// the account itself. Listing preserves insertion order.
type AccountRegistry struct {
	mu       sync.RWMutex
	byNumber map[string]*models.Account
	ordered  []*models.Account
}

// NewAccountRegistry creates an empty registry.
func NewAccountRegistry() *AccountRegistry {
	return &AccountRegistry{
		byNumber: make(map[string]*models.Account),
	}
}

// Add inserts an account, refusing a second account with the same number.
func (r *AccountRegistry) Add(account *models.Account) error {
	if account == nil {
		return errors.New("account cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byNumber[account.Number()]; exists {
		return ErrDuplicateAccount
	}

	r.byNumber[account.Number()] = account
	r.ordered = append(r.ordered, account)
	return nil
}

// Remove deletes the account with the given number. It reports whether an
// account was actually removed; a miss is not an error.
func (r *AccountRegistry) Remove(number string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byNumber[number]; !exists {
		return false
	}

	delete(r.byNumber, number)
	for i, account := range r.ordered {
		if account.Number() == number {
			r.ordered = append(r.ordered[:i], r.ordered[i+1:]...)
			break
		}
	}
	return true
}

// Find looks up an account by number.
func (r *AccountRegistry) Find(number string) (*models.Account, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.byNumber[number]
	return account, ok
}

// List returns all registered accounts in insertion order.
func (r *AccountRegistry) List() []*models.Account {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Account, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Len returns the number of registered accounts.
func (r *AccountRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.ordered)
}

// Exists reports whether the number is already registered.
func (r *AccountRegistry) Exists(number string) bool {
	_, ok := r.Find(number)
	return ok
}
