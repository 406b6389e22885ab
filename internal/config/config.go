package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Security SecurityConfig
	Bank     BankConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	// Path is the sqlite file backing the audit trail. Accounts and their
	// ledgers are in-memory only.
	Path           string
	AuditRetention time.Duration
}

type SecurityConfig struct {
	RateLimitPerSecond int
	RateLimitBurst     int
}

// BankConfig carries the policy defaults applied when an account-opening
// request does not spell out its own terms.
type BankConfig struct {
	SavingsInterestRate     float64
	SavingsMaxWithdrawals   int
	SavingsWithdrawalFee    float64
	OverdraftLimit          float64
	OverdraftFee            float64
	FixedDepositDefaultDays int
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			Environment:  getEnv("APP_ENV", "development"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
		},
		Database: DatabaseConfig{
			Path:           getEnv("DB_PATH", "bankledger_audit.db"),
			AuditRetention: getDurationEnv("AUDIT_RETENTION", 90*24*time.Hour),
		},
		Security: SecurityConfig{
			RateLimitPerSecond: getIntEnv("RATE_LIMIT_PER_SECOND", 5),
			RateLimitBurst:     getIntEnv("RATE_LIMIT_BURST", 10),
		},
		Bank: BankConfig{
			SavingsInterestRate:     getFloatEnv("BANK_SAVINGS_INTEREST_RATE", 4.0),
			SavingsMaxWithdrawals:   getIntEnv("BANK_SAVINGS_MAX_WITHDRAWALS", 3),
			SavingsWithdrawalFee:    getFloatEnv("BANK_SAVINGS_WITHDRAWAL_FEE", 100),
			OverdraftLimit:          getFloatEnv("BANK_OVERDRAFT_LIMIT", 10000),
			OverdraftFee:            getFloatEnv("BANK_OVERDRAFT_FEE", 250),
			FixedDepositDefaultDays: getIntEnv("BANK_FIXED_DEPOSIT_DAYS", 365),
		},
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
