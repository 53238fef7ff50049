package domain

import "time"

// CodeTTL is the validity window of every emailed one-time code
const CodeTTL = 10 * time.Minute

// PendingCode is a one-time code awaiting confirmation
type PendingCode struct {
	Code      string
	ExpiresAt time.Time
}

// Matches reports whether code equals the pending code exactly
func (p *PendingCode) Matches(code string) bool {
	return p != nil && p.Code == code
}

// ExpiredAt reports whether the code is no longer valid at now
func (p *PendingCode) ExpiredAt(now time.Time) bool {
	return !now.Before(p.ExpiresAt)
}

// Account represents a registered user in the system
type Account struct {
	ID                string
	Username          string
	Email             string
	FullName          string
	PasswordHash      string
	IsEmailVerified   bool
	EmailVerification *PendingCode
	PasswordReset     *PendingCode
	PreferredDark     *bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// LoginResult represents a successful login
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Username  string
	Email     string
}

// ProfileUpdate carries the optional profile fields a member may change.
// Nil fields are left untouched.
type ProfileUpdate struct {
	FullName      *string
	Username      *string
	PreferredDark *bool
}

// Course is a catalog entry
type Course struct {
	ID          string
	Title       string
	Description string
	ImageURL    string
	Department  string
}

// Enrollment links an account to a course
type Enrollment struct {
	ID         string
	AccountID  string
	CourseID   string
	EnrolledAt time.Time
}
