package services

import (
	"context"
	"testing"
	"time"

	"github.com/you/coursefinder/domain"
	"github.com/you/coursefinder/internal/mocks"
)

// testClock is a settable time source shared by the service and its collaborators
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// authFixture bundles an AuthService with the mocks behind it
type authFixture struct {
	svc      domain.AuthService
	repo     *mocks.MockAccountRepository
	password *mocks.MockPasswordService
	tokens   *mocks.MockTokenService
	codes    *mocks.MockCodeGenerator
	email    *mocks.MockEmailSender
	limiter  *mocks.MockAttemptLimiter
	audit    *mocks.MockAuditLogger
	clock    *testClock
}

// newAuthFixture creates an AuthService with mock dependencies for testing.
// codes are handed out by the code generator in order.
func newAuthFixture(t *testing.T, codes ...string) *authFixture {
	t.Helper()

	clock := &testClock{now: time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)}
	f := &authFixture{
		repo:     mocks.NewMockAccountRepository(),
		password: mocks.NewMockPasswordService(),
		tokens:   mocks.NewMockTokenService(),
		codes:    mocks.NewMockCodeGenerator(codes...),
		email:    mocks.NewMockEmailSender(),
		limiter: mocks.NewMockAttemptLimiter(map[domain.AttemptScope]int{
			domain.ScopeVerifyEmail:    3,
			domain.ScopeResetPassword:  3,
			domain.ScopeLogin:          3,
			domain.ScopeForgotPassword: 3,
		}),
		audit: mocks.NewMockAuditLogger(),
		clock: clock,
	}
	f.codes.Now = clock.Now
	f.svc = NewAuthService(
		f.repo,
		f.password,
		f.tokens,
		f.codes,
		f.email,
		nil,
		WithAuthClock(clock.Now),
		WithAttemptLimiter(f.limiter),
		WithAuditLogger(f.audit),
	)
	return f
}

// createPendingAccount stores an unverified account with a pending verification code
func createPendingAccount(t *testing.T, f *authFixture, code string) *domain.Account {
	t.Helper()

	account := &domain.Account{
		ID:           "acc-ada",
		Username:     "ada",
		Email:        "ada@example.com",
		PasswordHash: mocks.HashPrefix+"password123",
		EmailVerification: &domain.PendingCode{
			Code:      code,
			ExpiresAt: f.clock.Now().Add(domain.CodeTTL),
		},
	}
	f.repo.Put(account)
	return account
}

// createVerifiedAccount stores a verified account with password "password123"
func createVerifiedAccount(t *testing.T, f *authFixture) *domain.Account {
	t.Helper()

	dark := true
	account := &domain.Account{
		ID:              "acc-ada",
		Username:        "ada",
		Email:           "ada@example.com",
		FullName:        "Ada Lovelace",
		PasswordHash:    mocks.HashPrefix+"password123",
		IsEmailVerified: true,
		PreferredDark:   &dark,
	}
	f.repo.Put(account)
	return account
}

func mustFindAccount(t *testing.T, f *authFixture, email string) *domain.Account {
	t.Helper()

	account, err := f.repo.FindByEmail(context.Background(), email)
	if err != nil {
		t.Fatalf("failed to load account %s: %v", email, err)
	}
	return account
}
