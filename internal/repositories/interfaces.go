package repositories

import (
	"time"

	"bankledger/internal/models"

	"github.com/google/uuid"
)

// AccountRegistryInterface defines the contract for the in-memory account registry
type AccountRegistryInterface interface {
	Add(account *models.Account) error
	Remove(number string) bool
	Find(number string) (*models.Account, bool)
	List() []*models.Account
	Len() int
	Exists(number string) bool
}

// AuditLogRepositoryInterface defines the contract for audit log persistence
type AuditLogRepositoryInterface interface {
	Create(log *models.AuditLog) error
	GetByID(id uuid.UUID) (*models.AuditLog, error)
	GetByAccountNumber(accountNumber string, offset, limit int) ([]*models.AuditLog, int64, error)
	GetByAction(action string, offset, limit int) ([]*models.AuditLog, int64, error)
	DeleteOlderThan(duration time.Duration) (int64, error)
}
