package mocks

import (
	"context"

	"github.com/you/coursefinder/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	RegisterFunc       func(ctx context.Context, username, email, password string) (*domain.Account, error)
	VerifyEmailFunc    func(ctx context.Context, email, code string) error
	LoginFunc          func(ctx context.Context, identifier, password string) (*domain.LoginResult, error)
	ForgotPasswordFunc func(ctx context.Context, email string) error
	ResetPasswordFunc  func(ctx context.Context, email, code, newPassword string) error
	GetProfileFunc     func(ctx context.Context, accountID string) (*domain.Account, error)
	UpdateProfileFunc  func(ctx context.Context, accountID string, update domain.ProfileUpdate) (*domain.Account, error)
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

// Register registers an account
func (m *MockAuthService) Register(ctx context.Context, username, email, password string) (*domain.Account, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, username, email, password)
	}
	return &domain.Account{ID: "acc-1", Username: username, Email: email}, nil
}

// VerifyEmail verifies an email address
func (m *MockAuthService) VerifyEmail(ctx context.Context, email, code string) error {
	if m.VerifyEmailFunc != nil {
		return m.VerifyEmailFunc(ctx, email, code)
	}
	return nil
}

// Login authenticates an account
func (m *MockAuthService) Login(ctx context.Context, identifier, password string) (*domain.LoginResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, identifier, password)
	}
	return nil, domain.ErrInvalidCredentials
}

// ForgotPassword starts a password reset
func (m *MockAuthService) ForgotPassword(ctx context.Context, email string) error {
	if m.ForgotPasswordFunc != nil {
		return m.ForgotPasswordFunc(ctx, email)
	}
	return nil
}

// ResetPassword completes a password reset
func (m *MockAuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, email, code, newPassword)
	}
	return nil
}

// GetProfile returns an account profile
func (m *MockAuthService) GetProfile(ctx context.Context, accountID string) (*domain.Account, error) {
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(ctx, accountID)
	}
	return nil, domain.ErrAccountNotFound
}

// UpdateProfile updates an account profile
func (m *MockAuthService) UpdateProfile(ctx context.Context, accountID string, update domain.ProfileUpdate) (*domain.Account, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, accountID, update)
	}
	return nil, domain.ErrAccountNotFound
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
