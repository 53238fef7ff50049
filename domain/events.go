package domain

import (
	"context"
	"time"
)

// AuditEventType defines the type of audit event
type AuditEventType string

const (
	AccountRegisteredEvent   AuditEventType = "ACCOUNT_REGISTERED"
	RegistrationFailureEvent AuditEventType = "ACCOUNT_REGISTRATION_FAILED"

	EmailVerifiedEvent            AuditEventType = "EMAIL_VERIFIED"
	EmailVerificationFailureEvent AuditEventType = "EMAIL_VERIFICATION_FAILED"

	LoginEvent        AuditEventType = "ACCOUNT_LOGIN"
	LoginFailureEvent AuditEventType = "ACCOUNT_LOGIN_FAILED"

	PasswordResetRequestedEvent AuditEventType = "PASSWORD_RESET_REQUESTED"
	PasswordResetEvent          AuditEventType = "PASSWORD_RESET"
	PasswordResetFailureEvent   AuditEventType = "PASSWORD_RESET_FAILED"

	NotificationFailureEvent AuditEventType = "NOTIFICATION_FAILED"
)

// AuditEvent represents a business event that occurred in the system
type AuditEvent struct {
	EventType AuditEventType    `json:"event_type"`
	AccountID string            `json:"account_id,omitempty"`
	Email     string            `json:"email,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	ErrorMsg  string            `json:"error_msg,omitempty"`
	Success   bool              `json:"success"`
}

// AuditLogger records audit events. Implementations must not fail the
// calling operation.
type AuditLogger interface {
	LogEvent(ctx context.Context, event *AuditEvent)
}

// NewAuditEvent creates a new audit event with common fields populated
func NewAuditEvent(eventType AuditEventType, accountID string) *AuditEvent {
	return &AuditEvent{
		EventType: eventType,
		AccountID: accountID,
		Timestamp: time.Now().UTC(),
		Metadata:  make(map[string]string),
		Success:   true,
	}
}

// WithError marks the event as failed
func (e *AuditEvent) WithError(err error) *AuditEvent {
	e.Success = false
	if err != nil {
		e.ErrorMsg = err.Error()
	}
	return e
}

// WithEmail sets the email field
func (e *AuditEvent) WithEmail(email string) *AuditEvent {
	e.Email = email
	return e
}

// WithMetadata adds metadata to the event
func (e *AuditEvent) WithMetadata(key, value string) *AuditEvent {
	e.Metadata[key] = value
	return e
}
