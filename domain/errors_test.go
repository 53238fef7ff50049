package domain

import (
	"errors"
	"testing"
)

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		kind        error
		expectedMsg string
	}{
		{
			name:        "ErrAccountNotFound",
			err:         ErrAccountNotFound,
			kind:        ErrNotFound,
			expectedMsg: "account not found",
		},
		{
			name:        "ErrEmailTaken",
			err:         ErrEmailTaken,
			kind:        ErrConflict,
			expectedMsg: "email already used: conflict",
		},
		{
			name:        "ErrUsernameTaken",
			err:         ErrUsernameTaken,
			kind:        ErrConflict,
			expectedMsg: "username already used: conflict",
		},
		{
			name:        "ErrAccountExists",
			err:         ErrAccountExists,
			kind:        ErrConflict,
			expectedMsg: "account already exists: conflict",
		},
		{
			name:        "ErrInvalidCredentials",
			err:         ErrInvalidCredentials,
			kind:        ErrUnauthorized,
			expectedMsg: "invalid credentials: unauthorized",
		},
		{
			name:        "ErrPasswordTooLong",
			err:         ErrPasswordTooLong,
			kind:        ErrInvalidInput,
			expectedMsg: "password longer than 72 bytes: invalid input",
		},
		{
			name:        "ErrTokenInvalid",
			err:         ErrTokenInvalid,
			kind:        ErrUnauthorized,
			expectedMsg: "invalid token: unauthorized",
		},
		{
			name:        "ErrTokenExpired",
			err:         ErrTokenExpired,
			kind:        ErrUnauthorized,
			expectedMsg: "token has expired: unauthorized",
		},
		{
			name:        "ErrCourseNotFound",
			err:         ErrCourseNotFound,
			kind:        ErrNotFound,
			expectedMsg: "course not found",
		},
		{
			name:        "ErrEnrollmentNotFound",
			err:         ErrEnrollmentNotFound,
			kind:        ErrNotFound,
			expectedMsg: "enrollment not found",
		},
		{
			name:        "ErrAlreadyEnrolled",
			err:         ErrAlreadyEnrolled,
			kind:        ErrConflict,
			expectedMsg: "already enrolled: conflict",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.expectedMsg {
				t.Errorf("expected error message %q, got %q", tt.expectedMsg, tt.err.Error())
			}
			if !errors.Is(tt.err, tt.kind) {
				t.Errorf("expected %s to be classified as %v", tt.name, tt.kind)
			}
		})
	}
}

func TestErrorKinds_AreDistinct(t *testing.T) {
	kinds := []error{ErrConflict, ErrNotFound, ErrInvalidCode, ErrExpired, ErrUnauthorized, ErrForbidden, ErrTooManyAttempts, ErrInvalidInput}

	for i, a := range kinds {
		for j, b := range kinds {
			if i != j && errors.Is(a, b) {
				t.Errorf("error kind %v should not match %v", a, b)
			}
		}
	}
}

func TestSpecificErrors_DoNotCrossKinds(t *testing.T) {
	if errors.Is(ErrEmailTaken, ErrNotFound) {
		t.Error("conflict error should not be a not-found error")
	}
	if errors.Is(ErrAccountNotFound, ErrUnauthorized) {
		t.Error("not-found error should not be an unauthorized error")
	}
	if errors.Is(ErrTokenExpired, ErrExpired) {
		t.Error("token expiry is unauthorized, not a code expiry")
	}
}
