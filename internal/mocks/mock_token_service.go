package mocks

import (
	"strings"
	"time"

	"github.com/you/coursefinder/domain"
)

// MockTokenService implements domain.TokenService interface for testing.
// By default tokens are "token_<accountID>".
type MockTokenService struct {
	IssueFunc    func(account *domain.Account) (string, time.Time, error)
	ValidateFunc func(token string) (string, error)
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// Issue issues a session token
func (m *MockTokenService) Issue(account *domain.Account) (string, time.Time, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(account)
	}
	return "token_" + account.ID, time.Now().Add(time.Hour), nil
}

// Validate validates a session token
func (m *MockTokenService) Validate(token string) (string, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(token)
	}
	if id, ok := strings.CutPrefix(token, "token_"); ok && id != "" {
		return id, nil
	}
	return "", domain.ErrTokenInvalid
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
