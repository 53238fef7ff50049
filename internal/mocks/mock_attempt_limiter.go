package mocks

import (
	"context"

	"github.com/you/coursefinder/domain"
)

// MockAttemptLimiter implements domain.AttemptLimiter interface for testing.
// The default behavior counts hits in memory and blocks once a scope's
// Limits entry is reached.
type MockAttemptLimiter struct {
	AllowFunc func(ctx context.Context, scope domain.AttemptScope, subject string) error
	HitFunc   func(ctx context.Context, scope domain.AttemptScope, subject string) error
	ResetFunc func(ctx context.Context, scope domain.AttemptScope, subject string) error

	Limits map[domain.AttemptScope]int
	counts map[string]int
}

// NewMockAttemptLimiter creates a new MockAttemptLimiter with the given limits
func NewMockAttemptLimiter(limits map[domain.AttemptScope]int) *MockAttemptLimiter {
	return &MockAttemptLimiter{Limits: limits, counts: make(map[string]int)}
}

// Allow checks the in-memory counter
func (m *MockAttemptLimiter) Allow(ctx context.Context, scope domain.AttemptScope, subject string) error {
	if m.AllowFunc != nil {
		return m.AllowFunc(ctx, scope, subject)
	}
	if limit, ok := m.Limits[scope]; ok && limit > 0 && m.counts[key(scope, subject)] >= limit {
		return domain.ErrTooManyAttempts
	}
	return nil
}

// Hit increments the in-memory counter
func (m *MockAttemptLimiter) Hit(ctx context.Context, scope domain.AttemptScope, subject string) error {
	if m.HitFunc != nil {
		return m.HitFunc(ctx, scope, subject)
	}
	m.counts[key(scope, subject)]++
	return nil
}

// Reset clears the in-memory counter
func (m *MockAttemptLimiter) Reset(ctx context.Context, scope domain.AttemptScope, subject string) error {
	if m.ResetFunc != nil {
		return m.ResetFunc(ctx, scope, subject)
	}
	delete(m.counts, key(scope, subject))
	return nil
}

// Count returns the recorded hits for scope and subject
func (m *MockAttemptLimiter) Count(scope domain.AttemptScope, subject string) int {
	return m.counts[key(scope, subject)]
}

func key(scope domain.AttemptScope, subject string) string {
	return string(scope) + ":" + subject
}

// Compile-time interface compliance verification
var _ domain.AttemptLimiter = (*MockAttemptLimiter)(nil)
