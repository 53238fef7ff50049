package mocks

import "github.com/you/coursefinder/domain"

// HashPrefix marks passwords "hashed" by the default MockPasswordService
const HashPrefix = "hashed_"

// MockPasswordService implements domain.PasswordService. By default it
// prefixes passwords with HashPrefix and enforces domain.MaxPasswordBytes
// the way the bcrypt hasher does.
type MockPasswordService struct {
	HashFunc   func(password string) (string, error)
	VerifyFunc func(hashedPassword, password string) bool
}

// NewMockPasswordService creates a new MockPasswordService with default behaviors
func NewMockPasswordService() *MockPasswordService {
	return &MockPasswordService{}
}

func (m *MockPasswordService) Hash(password string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	if len(password) > domain.MaxPasswordBytes {
		return "", domain.ErrPasswordTooLong
	}
	return HashPrefix + password, nil
}

func (m *MockPasswordService) Verify(hashedPassword, password string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(hashedPassword, password)
	}
	return hashedPassword == HashPrefix+password
}

var _ domain.PasswordService = (*MockPasswordService)(nil)
