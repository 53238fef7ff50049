package logger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/you/coursefinder/domain"
)

type countCall struct {
	eventType string
	success   bool
}

type recordingCounter struct {
	calls []countCall
}

func (r *recordingCounter) CountAuthEvent(eventType string, success bool) {
	r.calls = append(r.calls, countCall{eventType, success})
}

func TestAuditLogger_LogEvent(t *testing.T) {
	tests := []struct {
		name          string
		event         *domain.AuditEvent
		expectedLevel zapcore.Level
		expectedField map[string]interface{}
	}{
		{
			name:          "success event logged at info",
			event:         domain.NewAuditEvent(domain.AccountRegisteredEvent, "acc-1").WithEmail("a@example.com"),
			expectedLevel: zapcore.InfoLevel,
			expectedField: map[string]interface{}{
				"event_type": "ACCOUNT_REGISTERED",
				"account_id": "acc-1",
				"email":      "a@example.com",
				"success":    true,
			},
		},
		{
			name: "failure event logged at warn",
			event: domain.NewAuditEvent(domain.LoginFailureEvent, "").
				WithMetadata("reason", "unknown_identifier").
				WithError(errors.New("unauthorized")),
			expectedLevel: zapcore.WarnLevel,
			expectedField: map[string]interface{}{
				"event_type": "ACCOUNT_LOGIN_FAILED",
				"reason":     "unknown_identifier",
				"error":      "unauthorized",
				"success":    false,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			counter := &recordingCounter{}
			audit := NewAuditLogger(zap.New(core), counter)

			audit.LogEvent(context.Background(), tt.event)

			require.Equal(t, 1, logs.Len())
			entry := logs.All()[0]
			assert.Equal(t, tt.expectedLevel, entry.Level)
			fields := entry.ContextMap()
			assert.Equal(t, "audit", fields["component"])
			for k, v := range tt.expectedField {
				assert.Equal(t, v, fields[k], "field %s", k)
			}

			require.Len(t, counter.calls, 1)
			assert.Equal(t, string(tt.event.EventType), counter.calls[0].eventType)
			assert.Equal(t, tt.event.Success, counter.calls[0].success)
		})
	}
}

func TestAuditLogger_NilCounter(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	audit := NewAuditLogger(zap.New(core), nil)

	audit.LogEvent(context.Background(), domain.NewAuditEvent(domain.EmailVerifiedEvent, "acc-2"))

	assert.Equal(t, 1, logs.Len())
}

func TestNew_Levels(t *testing.T) {
	assert.True(t, New("debug", "development").Core().Enabled(zapcore.DebugLevel))
	assert.False(t, New("warn", "production").Core().Enabled(zapcore.InfoLevel))
	assert.True(t, New("unknown", "production").Core().Enabled(zapcore.InfoLevel))
}
