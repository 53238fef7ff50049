package logger

import (
	"context"

	"go.uber.org/zap"

	"github.com/you/coursefinder/domain"
)

// OperationCounter counts audit outcomes, typically backed by prometheus.
type OperationCounter interface {
	CountAuthEvent(eventType string, success bool)
}

// AuditLogger writes domain audit events as structured log entries
type AuditLogger struct {
	log     *zap.Logger
	counter OperationCounter
}

// NewAuditLogger creates an audit logger. counter may be nil.
func NewAuditLogger(log *zap.Logger, counter OperationCounter) *AuditLogger {
	return &AuditLogger{log: WithComponent(log, "audit"), counter: counter}
}

// LogEvent implements domain.AuditLogger
func (a *AuditLogger) LogEvent(ctx context.Context, event *domain.AuditEvent) {
	fields := []zap.Field{
		zap.String("event_type", string(event.EventType)),
		zap.Bool("success", event.Success),
		zap.Time("event_time", event.Timestamp),
	}
	if event.AccountID != "" {
		fields = append(fields, zap.String("account_id", event.AccountID))
	}
	if event.Email != "" {
		fields = append(fields, zap.String("email", event.Email))
	}
	if event.ErrorMsg != "" {
		fields = append(fields, zap.String("error", event.ErrorMsg))
	}
	for k, v := range event.Metadata {
		fields = append(fields, zap.String(k, v))
	}

	if event.Success {
		a.log.Info("audit", fields...)
	} else {
		a.log.Warn("audit", fields...)
	}

	if a.counter != nil {
		a.counter.CountAuthEvent(string(event.EventType), event.Success)
	}
}

var _ domain.AuditLogger = (*AuditLogger)(nil)
