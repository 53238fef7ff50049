package domain

import (
	"context"
	"time"
)

// AccountRepository defines account data access operations
type AccountRepository interface {
	Create(ctx context.Context, account *Account) error
	FindByID(ctx context.Context, id string) (*Account, error)
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByUsername(ctx context.Context, username string) (*Account, error)
	Update(ctx context.Context, account *Account) error
}

// CourseRepository defines catalog access. Create is used for seeding only.
type CourseRepository interface {
	Create(ctx context.Context, course *Course) error
	List(ctx context.Context) ([]*Course, error)
	FindByID(ctx context.Context, id string) (*Course, error)
}

// EnrollmentRepository defines enrollment bookkeeping
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *Enrollment) error
	FindByAccountAndCourse(ctx context.Context, accountID, courseID string) (*Enrollment, error)
}

// AuthService defines authentication business logic
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*Account, error)
	VerifyEmail(ctx context.Context, email, code string) error
	Login(ctx context.Context, identifier, password string) (*LoginResult, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
	GetProfile(ctx context.Context, accountID string) (*Account, error)
	UpdateProfile(ctx context.Context, accountID string, update ProfileUpdate) (*Account, error)
}

// CatalogService defines course browsing and enrollment
type CatalogService interface {
	ListCourses(ctx context.Context) ([]*Course, error)
	GetCourse(ctx context.Context, id string) (*Course, error)
	Enroll(ctx context.Context, accountID, courseID string) (*Enrollment, error)
}

// CodeGenerator issues one-time codes
type CodeGenerator interface {
	Generate() (*PendingCode, error)
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService issues and validates session tokens
type TokenService interface {
	Issue(account *Account) (token string, expiresAt time.Time, err error)
	Validate(token string) (accountID string, err error)
}

// EmailSender delivers outbound email
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, htmlBody string) error
}

// AttemptScope namespaces attempt counters
type AttemptScope string

const (
	ScopeVerifyEmail    AttemptScope = "verify"
	ScopeResetPassword  AttemptScope = "reset"
	ScopeLogin          AttemptScope = "login"
	ScopeForgotPassword AttemptScope = "forgot"
)

// AttemptLimiter bounds repeated attempts per scope and subject
type AttemptLimiter interface {
	Allow(ctx context.Context, scope AttemptScope, subject string) error
	Hit(ctx context.Context, scope AttemptScope, subject string) error
	Reset(ctx context.Context, scope AttemptScope, subject string) error
}

// PolicyService defines route authorization policy operations
type PolicyService interface {
	AddPolicy(subject, object, action string) error
	RemovePolicy(subject, object, action string) error
	CheckPermission(subject, object, action string) (bool, error)
	GetPolicies() ([][]string, error)
}

// CasbinEnforcer interface defines the methods we need from Casbin enforcer
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
}

// Policy subjects. Requests without a valid bearer token are evaluated as
// SubjectAnonymous, authenticated requests as SubjectMember.
const (
	SubjectAnonymous = "anonymous"
	SubjectMember    = "member"
)
