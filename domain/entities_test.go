package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPendingCode_Matches(t *testing.T) {
	tests := []struct {
		name     string
		pending  *PendingCode
		code     string
		expected bool
	}{
		{
			name:     "exact match",
			pending:  &PendingCode{Code: "482913"},
			code:     "482913",
			expected: true,
		},
		{
			name:     "different code",
			pending:  &PendingCode{Code: "482913"},
			code:     "482914",
			expected: false,
		},
		{
			name:     "surrounding whitespace is not trimmed",
			pending:  &PendingCode{Code: "482913"},
			code:     " 482913",
			expected: false,
		},
		{
			name:     "no pending code",
			pending:  nil,
			code:     "482913",
			expected: false,
		},
		{
			name:     "no pending code never matches empty input",
			pending:  nil,
			code:     "",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.pending.Matches(tt.code))
		})
	}
}

func TestPendingCode_ExpiredAt(t *testing.T) {
	expiresAt := time.Date(2026, 1, 1, 12, 10, 0, 0, time.UTC)
	pending := &PendingCode{Code: "123456", ExpiresAt: expiresAt}

	tests := []struct {
		name     string
		now      time.Time
		expected bool
	}{
		{name: "well before expiry", now: expiresAt.Add(-9 * time.Minute), expected: false},
		{name: "one nanosecond before expiry", now: expiresAt.Add(-time.Nanosecond), expected: false},
		{name: "exactly at expiry", now: expiresAt, expected: true},
		{name: "after expiry", now: expiresAt.Add(time.Second), expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, pending.ExpiredAt(tt.now))
		})
	}
}

func TestAuditEvent_Builders(t *testing.T) {
	event := NewAuditEvent(LoginFailureEvent, "acc-1").
		WithEmail("user@example.com").
		WithMetadata("reason", "email_not_verified").
		WithError(ErrUnauthorized)

	assert.Equal(t, LoginFailureEvent, event.EventType)
	assert.Equal(t, "acc-1", event.AccountID)
	assert.Equal(t, "user@example.com", event.Email)
	assert.Equal(t, "email_not_verified", event.Metadata["reason"])
	assert.False(t, event.Success)
	assert.Equal(t, "unauthorized", event.ErrorMsg)
	assert.False(t, event.Timestamp.IsZero())
	assert.Equal(t, time.UTC, event.Timestamp.Location())
}

func TestAuditEvent_WithNilError(t *testing.T) {
	event := NewAuditEvent(PasswordResetFailureEvent, "").WithError(nil)

	assert.False(t, event.Success)
	assert.Empty(t, event.ErrorMsg)
}
