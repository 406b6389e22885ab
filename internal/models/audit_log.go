package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AuditActionAccountOpened   = "account_opened"
	AuditActionAccountClosed   = "account_closed"
	AuditActionDeposit         = "deposit"
	AuditActionWithdrawal      = "withdrawal"
	AuditActionInterestApplied = "interest_applied"
	AuditActionHistoryViewed   = "history_viewed"
	AuditActionHolderViewed    = "holder_viewed"
)

// AuditLog is a persisted record of one account operation. The in-memory
// ledger is the source of truth for balances; the audit trail exists for
// operators and survives restarts.
type AuditLog struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	AccountNumber string    `gorm:"type:varchar(10);not null;index" json:"account_number"`
	Action        string    `gorm:"type:varchar(50);not null;index" json:"action"`
	Outcome       string    `gorm:"type:varchar(20);not null" json:"outcome"`
	Metadata      JSONBMap  `gorm:"type:text" json:"metadata,omitempty"`
	CreatedAt     time.Time `gorm:"not null;index" json:"created_at"`
}

// BeforeCreate hook for AuditLog
func (al *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if al.ID == uuid.Nil {
		al.ID = uuid.New()
	}

	if al.CreatedAt.IsZero() {
		al.CreatedAt = time.Now()
	}

	return nil
}

// SetMetadata attaches a key/value pair to the log entry.
func (al *AuditLog) SetMetadata(key string, value interface{}) {
	if al.Metadata == nil {
		al.Metadata = make(JSONBMap)
	}
	al.Metadata[key] = value
}

func (al *AuditLog) String() string {
	return fmt.Sprintf("[%s] %s %s (%s)", al.CreatedAt.Format(time.RFC3339), al.AccountNumber, al.Action, al.Outcome)
}

// TableName returns the table name for AuditLog
func (al *AuditLog) TableName() string {
	return "audit_logs"
}

// JSONBMap stores arbitrary metadata as serialized JSON.
type JSONBMap map[string]interface{}

// Value implements driver.Valuer interface
func (m JSONBMap) Value() (driver.Value, error) {
	if len(m) == 0 {
		return nil, nil
	}
	bytes, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	// Return string for SQLite compatibility
	return string(bytes), nil
}

// Scan implements sql.Scanner interface
func (m *JSONBMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into JSONBMap", value)
	}

	return json.Unmarshal(bytes, m)
}
