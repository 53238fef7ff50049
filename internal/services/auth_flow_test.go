package services

import (
	"context"
	"crypto/rand"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/you/coursefinder/domain"
	"github.com/you/coursefinder/internal/infrastructure/auth"
	"github.com/you/coursefinder/internal/mocks"
	"golang.org/x/crypto/bcrypt"
)

var codePattern = regexp.MustCompile(`\b\d{6}\b`)

// TestAuthFlow_EndToEnd drives register, verify, login, forgot and reset with
// real password hashing and token signing.
func TestAuthFlow_EndToEnd(t *testing.T) {
	ctx := context.Background()
	clock := &testClock{now: time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)}
	svc, repo, email, tokens := newFlowService(clock)

	account, err := svc.Register(ctx, "ada", "ada@example.com", "password123")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	stored, _ := repo.FindByEmail(ctx, "ada@example.com")
	if stored.PasswordHash == "password123" {
		t.Fatal("expected password to be stored hashed")
	}

	if _, err := svc.Login(ctx, "ada", "password123"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unverified login to fail, got %v", err)
	}

	verifyCode := lastCode(t, email)
	clock.Advance(5 * time.Minute)
	if err := svc.VerifyEmail(ctx, "ada@example.com", verifyCode); err != nil {
		t.Fatalf("verify failed: %v", err)
	}

	result, err := svc.Login(ctx, "ada@example.com", "password123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	accountID, err := tokens.Validate(result.Token)
	if err != nil {
		t.Fatalf("issued token did not validate: %v", err)
	}
	if accountID != account.ID {
		t.Errorf("expected token for %s, got %s", account.ID, accountID)
	}
	if !result.ExpiresAt.Equal(clock.Now().Add(time.Hour)) {
		t.Errorf("unexpected token expiry %v", result.ExpiresAt)
	}

	if err := svc.ForgotPassword(ctx, "ada@example.com"); err != nil {
		t.Fatalf("forgot password failed: %v", err)
	}
	if err := svc.ResetPassword(ctx, "ada@example.com", lastCode(t, email), "newpass1"); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	if _, err := svc.Login(ctx, "ada", "password123"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected old password to be rejected, got %v", err)
	}
	if _, err := svc.Login(ctx, "ada", "newpass1"); err != nil {
		t.Errorf("expected new password to work, got %v", err)
	}
}

func TestAuthFlow_OverlongPassword(t *testing.T) {
	ctx := context.Background()
	clock := &testClock{now: time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)}
	svc, repo, email, _ := newFlowService(clock)
	overlong := strings.Repeat("p", domain.MaxPasswordBytes+1)

	if _, err := svc.Register(ctx, "ada", "ada@example.com", overlong); !errors.Is(err, domain.ErrPasswordTooLong) {
		t.Fatalf("expected ErrPasswordTooLong, got %v", err)
	}
	if _, err := repo.FindByEmail(ctx, "ada@example.com"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("expected no account to be stored, got %v", err)
	}
	if len(email.Sent()) != 0 {
		t.Errorf("expected no email, got %d", len(email.Sent()))
	}

	if _, err := svc.Register(ctx, "ada", "ada@example.com", "password123"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := svc.VerifyEmail(ctx, "ada@example.com", lastCode(t, email)); err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if err := svc.ForgotPassword(ctx, "ada@example.com"); err != nil {
		t.Fatalf("forgot password failed: %v", err)
	}
	resetCode := lastCode(t, email)

	if err := svc.ResetPassword(ctx, "ada@example.com", resetCode, overlong); !errors.Is(err, domain.ErrPasswordTooLong) {
		t.Fatalf("expected ErrPasswordTooLong, got %v", err)
	}
	// the rejected attempt leaves the code pending
	if err := svc.ResetPassword(ctx, "ada@example.com", resetCode, "newpass1"); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if _, err := svc.Login(ctx, "ada", "newpass1"); err != nil {
		t.Errorf("expected new password to work, got %v", err)
	}
}

func newFlowService(clock *testClock) (domain.AuthService, *mocks.MockAccountRepository, *mocks.MockEmailSender, domain.TokenService) {
	repo := mocks.NewMockAccountRepository()
	email := mocks.NewMockEmailSender()
	tokens := auth.NewJWTService("0123456789abcdef0123456789abcdef", "coursefinder", "mobile", time.Hour,
		auth.WithClock(clock.Now))
	svc := NewAuthService(
		repo,
		auth.NewPasswordServiceWithCost(bcrypt.MinCost),
		tokens,
		NewCodeGeneratorWith(rand.Reader, clock.Now),
		email,
		nil,
		WithAuthClock(clock.Now),
	)
	return svc, repo, email, tokens
}

func lastCode(t *testing.T, sender *mocks.MockEmailSender) string {
	t.Helper()

	sent := sender.Sent()
	if len(sent) == 0 {
		t.Fatal("expected an email to have been sent")
	}
	code := codePattern.FindString(sent[len(sent)-1].Body)
	if code == "" {
		t.Fatalf("no code in email body: %s", sent[len(sent)-1].Body)
	}
	return code
}
