package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Handlers map these to HTTP statuses with errors.Is.
var (
	ErrConflict        = errors.New("conflict")
	ErrNotFound        = errors.New("not found")
	ErrInvalidCode     = errors.New("invalid code")
	ErrExpired         = errors.New("code expired")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrTooManyAttempts = errors.New("too many attempts")
	ErrInvalidInput    = errors.New("invalid input")
)

// MaxPasswordBytes is the longest password bcrypt accepts
const MaxPasswordBytes = 72

// Account errors
var (
	ErrAccountNotFound = fmt.Errorf("account %w", ErrNotFound)
	ErrEmailTaken      = fmt.Errorf("email already used: %w", ErrConflict)
	ErrUsernameTaken   = fmt.Errorf("username already used: %w", ErrConflict)
	ErrAccountExists   = fmt.Errorf("account already exists: %w", ErrConflict)

	// ErrInvalidCredentials covers unknown identifier, unverified account and
	// wrong password alike.
	ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", ErrUnauthorized)

	ErrPasswordTooLong = fmt.Errorf("password longer than %d bytes: %w", MaxPasswordBytes, ErrInvalidInput)
)

// Token errors
var (
	ErrTokenInvalid = fmt.Errorf("invalid token: %w", ErrUnauthorized)
	ErrTokenExpired = fmt.Errorf("token has expired: %w", ErrUnauthorized)
)

// Catalog errors
var (
	ErrCourseNotFound     = fmt.Errorf("course %w", ErrNotFound)
	ErrEnrollmentNotFound = fmt.Errorf("enrollment %w", ErrNotFound)
	ErrAlreadyEnrolled    = fmt.Errorf("already enrolled: %w", ErrConflict)
)
