package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationOutOfRange    ErrorCode = "VALIDATION_004"
)

// Account error codes (ACCOUNT_*)
const (
	AccountNotFound             ErrorCode = "ACCOUNT_001"
	AccountDuplicate            ErrorCode = "ACCOUNT_002"
	AccountInvalidKind          ErrorCode = "ACCOUNT_003"
	AccountInvalidNumber        ErrorCode = "ACCOUNT_004"
	AccountInvalidPIN           ErrorCode = "ACCOUNT_005"
	AccountInterestNotAvailable ErrorCode = "ACCOUNT_006"
)

// Transaction error codes (TRANSACTION_*)
const (
	TransactionInvalidAmount     ErrorCode = "TRANSACTION_001"
	TransactionNegativeDeposit   ErrorCode = "TRANSACTION_002"
	TransactionInsufficientFunds ErrorCode = "TRANSACTION_003"
	TransactionOverdraftExceeded ErrorCode = "TRANSACTION_004"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemDatabaseError      ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_004"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Validation errors
	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Required field is missing",
	ValidationInvalidFormat: "Invalid field format",
	ValidationOutOfRange:    "Field value is out of allowed range",

	// Account errors
	AccountNotFound:             "Account not found",
	AccountDuplicate:            "An account with this number already exists",
	AccountInvalidKind:          "Invalid account kind",
	AccountInvalidNumber:        "Invalid account number format",
	AccountInvalidPIN:           "Invalid PIN",
	AccountInterestNotAvailable: "This account kind does not accrue on-demand interest",

	// Transaction errors
	TransactionInvalidAmount:     "Invalid transaction amount",
	TransactionNegativeDeposit:   "Deposit amount must not be negative",
	TransactionInsufficientFunds: "Insufficient funds for this withdrawal",
	TransactionOverdraftExceeded: "Withdrawal amount exceeds the overdraft limit",

	// System errors
	SystemInternalError:      "An unexpected error occurred. Please contact support with trace ID",
	SystemDatabaseError:      "Database connection error",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemRateLimitExceeded:  "Rate limit exceeded. Please try again later",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
