package mocks

import (
	"time"

	"github.com/you/coursefinder/domain"
)

// MockCodeGenerator implements domain.CodeGenerator interface for testing
type MockCodeGenerator struct {
	GenerateFunc func() (*domain.PendingCode, error)
	Codes        []string
	Now          func() time.Time
	calls        int
}

// NewMockCodeGenerator creates a generator that hands out codes in order,
// repeating the last one. Without codes it returns "123456".
func NewMockCodeGenerator(codes ...string) *MockCodeGenerator {
	return &MockCodeGenerator{Codes: codes, Now: time.Now}
}

// Generate returns the next configured code expiring domain.CodeTTL after Now
func (m *MockCodeGenerator) Generate() (*domain.PendingCode, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	code := "123456"
	if len(m.Codes) > 0 {
		i := m.calls
		if i >= len(m.Codes) {
			i = len(m.Codes) - 1
		}
		code = m.Codes[i]
	}
	m.calls++
	return &domain.PendingCode{Code: code, ExpiresAt: m.Now().UTC().Add(domain.CodeTTL)}, nil
}

// Calls returns how many codes were generated
func (m *MockCodeGenerator) Calls() int {
	return m.calls
}

// Compile-time interface compliance verification
var _ domain.CodeGenerator = (*MockCodeGenerator)(nil)
