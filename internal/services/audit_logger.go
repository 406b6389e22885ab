package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
)

type AuditLogger struct {
	logger *slog.Logger
}

func NewAuditLogger(logger *slog.Logger) AuditLoggerInterface {
	return &AuditLogger{
		logger: logger,
	}
}

func (al *AuditLogger) LogAccountOpened(ctx context.Context, number, kind string) {
	al.logger.InfoContext(ctx, "account opened",
		slog.String("event_type", "account_opened"),
		slog.String("account_number", number),
		slog.String("kind", kind),
		slog.Time("timestamp", time.Now()),
	)
}

func (al *AuditLogger) LogAccountClosed(ctx context.Context, number string) {
	al.logger.InfoContext(ctx, "account closed",
		slog.String("event_type", "account_closed"),
		slog.String("account_number", number),
		slog.Time("timestamp", time.Now()),
	)
}

func (al *AuditLogger) LogOperation(ctx context.Context, number, action, outcome string, amount decimal.Decimal) {
	al.logger.InfoContext(ctx, "account operation",
		slog.String("event_type", "account_operation"),
		slog.String("account_number", number),
		slog.String("action", action),
		slog.String("outcome", outcome),
		slog.String("amount", amount.String()),
		slog.Time("timestamp", time.Now()),
	)
}
