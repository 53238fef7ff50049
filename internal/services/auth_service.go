package services

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"time"

	"github.com/you/coursefinder/domain"
	"go.uber.org/zap"
)

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	accountRepo domain.AccountRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	codeGen     domain.CodeGenerator
	emailSender domain.EmailSender
	limiter     domain.AttemptLimiter
	audit       domain.AuditLogger
	logger      *zap.Logger
	now         func() time.Time
}

// AuthOption customises an AuthServiceImpl
type AuthOption func(*AuthServiceImpl)

// WithAuthClock overrides the time source used for code expiry checks
func WithAuthClock(now func() time.Time) AuthOption {
	return func(s *AuthServiceImpl) {
		s.now = now
	}
}

// WithAttemptLimiter bounds repeated code and login attempts
func WithAttemptLimiter(limiter domain.AttemptLimiter) AuthOption {
	return func(s *AuthServiceImpl) {
		s.limiter = limiter
	}
}

// WithAuditLogger records auth state transitions
func WithAuditLogger(audit domain.AuditLogger) AuthOption {
	return func(s *AuthServiceImpl) {
		s.audit = audit
	}
}

// NewAuthService creates a new auth service
func NewAuthService(
	accountRepo domain.AccountRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	codeGen domain.CodeGenerator,
	emailSender domain.EmailSender,
	logger *zap.Logger,
	opts ...AuthOption,
) domain.AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &AuthServiceImpl{
		accountRepo: accountRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		codeGen:     codeGen,
		emailSender: emailSender,
		logger:      logger.With(zap.String("component", "auth_service")),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register implements domain.AuthService
func (s *AuthServiceImpl) Register(ctx context.Context, username, email, password string) (*domain.Account, error) {
	if err := s.ensureAvailable(ctx, username, email); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			s.logEvent(ctx, domain.NewAuditEvent(domain.RegistrationFailureEvent, "").WithEmail(email).WithError(err))
		}
		return nil, err
	}

	hashedPassword, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	pending, err := s.codeGen.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification code: %w", err)
	}

	account := &domain.Account{
		Username:          username,
		Email:             email,
		PasswordHash:      hashedPassword,
		IsEmailVerified:   false,
		EmailVerification: pending,
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			s.logEvent(ctx, domain.NewAuditEvent(domain.RegistrationFailureEvent, "").WithEmail(email).WithError(err))
			return nil, err
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.notify(ctx, account, verificationSubject, verificationTemplate, pending.Code)
	s.logEvent(ctx, domain.NewAuditEvent(domain.AccountRegisteredEvent, account.ID).WithEmail(email))

	return account, nil
}

// VerifyEmail implements domain.AuthService
func (s *AuthServiceImpl) VerifyEmail(ctx context.Context, email, code string) error {
	account, err := s.findByEmail(ctx, email)
	if err != nil {
		return err
	}

	if err := s.allow(ctx, domain.ScopeVerifyEmail, email); err != nil {
		return err
	}

	if !account.EmailVerification.Matches(code) {
		s.hit(ctx, domain.ScopeVerifyEmail, email)
		s.logEvent(ctx, domain.NewAuditEvent(domain.EmailVerificationFailureEvent, account.ID).
			WithEmail(email).
			WithError(domain.ErrInvalidCode))
		return domain.ErrInvalidCode
	}
	if account.EmailVerification.ExpiredAt(s.now()) {
		s.logEvent(ctx, domain.NewAuditEvent(domain.EmailVerificationFailureEvent, account.ID).
			WithEmail(email).
			WithError(domain.ErrExpired))
		return domain.ErrExpired
	}

	account.IsEmailVerified = true
	account.EmailVerification = nil
	if err := s.accountRepo.Update(ctx, account); err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}

	s.reset(ctx, domain.ScopeVerifyEmail, email)
	s.logEvent(ctx, domain.NewAuditEvent(domain.EmailVerifiedEvent, account.ID).WithEmail(email))
	return nil
}

// Login implements domain.AuthService
func (s *AuthServiceImpl) Login(ctx context.Context, identifier, password string) (*domain.LoginResult, error) {
	account, err := s.findByIdentifier(ctx, identifier)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	// Failures count against the account, whichever identifier was typed
	subject := identifier
	if account != nil {
		subject = account.ID
	}
	if err := s.allow(ctx, domain.ScopeLogin, subject); err != nil {
		return nil, err
	}

	if account == nil {
		return nil, s.loginFailed(ctx, subject, identifier, "", "unknown_identifier")
	}
	if !account.IsEmailVerified {
		return nil, s.loginFailed(ctx, subject, identifier, account.ID, "email_not_verified")
	}
	if !s.passwordSvc.Verify(account.PasswordHash, password) {
		return nil, s.loginFailed(ctx, subject, identifier, account.ID, "invalid_password")
	}

	token, expiresAt, err := s.tokenSvc.Issue(account)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.reset(ctx, domain.ScopeLogin, subject)
	s.logEvent(ctx, domain.NewAuditEvent(domain.LoginEvent, account.ID).WithEmail(account.Email))

	return &domain.LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		Username:  account.Username,
		Email:     account.Email,
	}, nil
}

// ForgotPassword implements domain.AuthService. Unknown emails and throttled
// requests return nil so callers cannot tell them apart from a sent code.
func (s *AuthServiceImpl) ForgotPassword(ctx context.Context, email string) error {
	if err := s.allow(ctx, domain.ScopeForgotPassword, email); err != nil {
		if errors.Is(err, domain.ErrTooManyAttempts) {
			s.logger.Warn("password reset request throttled", zap.String("email", email))
			return nil
		}
		return err
	}
	s.hit(ctx, domain.ScopeForgotPassword, email)

	account, err := s.findByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Info("password reset requested for unknown email", zap.String("email", email))
			return nil
		}
		return err
	}

	pending, err := s.codeGen.Generate()
	if err != nil {
		return fmt.Errorf("failed to generate reset code: %w", err)
	}

	// Overwrites any code still pending
	account.PasswordReset = pending
	if err := s.accountRepo.Update(ctx, account); err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}

	s.notify(ctx, account, resetSubject, resetTemplate, pending.Code)
	s.logEvent(ctx, domain.NewAuditEvent(domain.PasswordResetRequestedEvent, account.ID).WithEmail(email))
	return nil
}

// ResetPassword implements domain.AuthService
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	account, err := s.findByEmail(ctx, email)
	if err != nil {
		return err
	}

	if err := s.allow(ctx, domain.ScopeResetPassword, email); err != nil {
		return err
	}

	if !account.PasswordReset.Matches(code) {
		s.hit(ctx, domain.ScopeResetPassword, email)
		s.logEvent(ctx, domain.NewAuditEvent(domain.PasswordResetFailureEvent, account.ID).
			WithEmail(email).
			WithError(domain.ErrInvalidCode))
		return domain.ErrInvalidCode
	}
	if account.PasswordReset.ExpiredAt(s.now()) {
		s.logEvent(ctx, domain.NewAuditEvent(domain.PasswordResetFailureEvent, account.ID).
			WithEmail(email).
			WithError(domain.ErrExpired))
		return domain.ErrExpired
	}

	hashedPassword, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	account.PasswordHash = hashedPassword
	account.PasswordReset = nil
	if err := s.accountRepo.Update(ctx, account); err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}

	s.reset(ctx, domain.ScopeResetPassword, email)
	s.reset(ctx, domain.ScopeLogin, account.ID)
	s.logEvent(ctx, domain.NewAuditEvent(domain.PasswordResetEvent, account.ID).WithEmail(email))
	return nil
}

// GetProfile implements domain.AuthService
func (s *AuthServiceImpl) GetProfile(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

// UpdateProfile implements domain.AuthService. Only profile fields are
// touched; credentials and pending codes are left as stored.
func (s *AuthServiceImpl) UpdateProfile(ctx context.Context, accountID string, update domain.ProfileUpdate) (*domain.Account, error) {
	account, err := s.GetProfile(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if update.FullName != nil {
		account.FullName = *update.FullName
	}
	if update.Username != nil {
		account.Username = *update.Username
	}
	if update.PreferredDark != nil {
		dark := *update.PreferredDark
		account.PreferredDark = &dark
	}

	if err := s.accountRepo.Update(ctx, account); err != nil {
		if errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return account, nil
}

// ensureAvailable checks email then username uniqueness
func (s *AuthServiceImpl) ensureAvailable(ctx context.Context, username, email string) error {
	if _, err := s.accountRepo.FindByEmail(ctx, email); err == nil {
		return domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("failed to check email: %w", err)
	}

	if _, err := s.accountRepo.FindByUsername(ctx, username); err == nil {
		return domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("failed to check username: %w", err)
	}
	return nil
}

func (s *AuthServiceImpl) findByEmail(ctx context.Context, email string) (*domain.Account, error) {
	account, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	return account, nil
}

// findByIdentifier looks up by email first, then by username
func (s *AuthServiceImpl) findByIdentifier(ctx context.Context, identifier string) (*domain.Account, error) {
	account, err := s.findByEmail(ctx, identifier)
	if err == nil || !errors.Is(err, domain.ErrNotFound) {
		return account, err
	}

	account, err = s.accountRepo.FindByUsername(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	return account, nil
}

// loginFailed records the internal reason and returns the generic error
func (s *AuthServiceImpl) loginFailed(ctx context.Context, subject, identifier, accountID, reason string) error {
	s.hit(ctx, domain.ScopeLogin, subject)
	s.logEvent(ctx, domain.NewAuditEvent(domain.LoginFailureEvent, accountID).
		WithMetadata("identifier", identifier).
		WithMetadata("reason", reason).
		WithError(domain.ErrInvalidCredentials))
	return domain.ErrInvalidCredentials
}

// notify sends a code email. Delivery is best effort.
func (s *AuthServiceImpl) notify(ctx context.Context, account *domain.Account, subject string, tpl *template.Template, code string) {
	if s.emailSender == nil {
		return
	}

	body, err := renderCodeEmail(tpl, code)
	if err == nil {
		err = s.emailSender.SendEmail(ctx, account.Email, subject, body)
	}
	if err != nil {
		s.logger.Warn("failed to send email",
			zap.String("account_id", account.ID),
			zap.String("subject", subject),
			zap.Error(err),
		)
		s.logEvent(ctx, domain.NewAuditEvent(domain.NotificationFailureEvent, account.ID).
			WithEmail(account.Email).
			WithMetadata("subject", subject).
			WithError(err))
	}
}

func (s *AuthServiceImpl) allow(ctx context.Context, scope domain.AttemptScope, subject string) error {
	if s.limiter == nil {
		return nil
	}
	if err := s.limiter.Allow(ctx, scope, subject); err != nil {
		if errors.Is(err, domain.ErrTooManyAttempts) {
			return err
		}
		return fmt.Errorf("failed to check attempts: %w", err)
	}
	return nil
}

func (s *AuthServiceImpl) hit(ctx context.Context, scope domain.AttemptScope, subject string) {
	if s.limiter == nil {
		return
	}
	if err := s.limiter.Hit(ctx, scope, subject); err != nil {
		s.logger.Warn("failed to record attempt", zap.String("scope", string(scope)), zap.Error(err))
	}
}

func (s *AuthServiceImpl) reset(ctx context.Context, scope domain.AttemptScope, subject string) {
	if s.limiter == nil || subject == "" {
		return
	}
	if err := s.limiter.Reset(ctx, scope, subject); err != nil {
		s.logger.Warn("failed to reset attempts", zap.String("scope", string(scope)), zap.Error(err))
	}
}

func (s *AuthServiceImpl) logEvent(ctx context.Context, event *domain.AuditEvent) {
	if s.audit == nil {
		return
	}
	s.audit.LogEvent(ctx, event)
}
