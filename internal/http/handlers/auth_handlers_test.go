package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/you/coursefinder/domain"
	"github.com/you/coursefinder/internal/mocks"
)

func performJSON(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func newAuthRouter(svc *mocks.MockAuthService) *gin.Engine {
	h := NewAuthHandlers(svc, nil)
	r := gin.New()
	r.POST("/register", h.Register)
	r.POST("/verify-email", h.VerifyEmail)
	r.POST("/login", h.Login)
	r.POST("/forgot-password", h.ForgotPassword)
	r.POST("/reset-password", h.ResetPassword)
	return r
}

func TestAuthHandlers_Register(t *testing.T) {
	gin.SetMode(gin.TestMode)

	valid := RegisterRequest{Username: "ada", Email: "ada@example.com", Password: "password123"}

	tests := []struct {
		name           string
		body           interface{}
		setupMocks     func(*mocks.MockAuthService)
		expectedStatus int
		expectedBody   map[string]interface{}
	}{
		{
			name: "success",
			body: valid,
			setupMocks: func(m *mocks.MockAuthService) {
				m.RegisterFunc = func(ctx context.Context, username, email, password string) (*domain.Account, error) {
					if username != "ada" || email != "ada@example.com" || password != "password123" {
						return nil, errors.New("unexpected arguments")
					}
					return &domain.Account{ID: "acc-1"}, nil
				}
			},
			expectedStatus: http.StatusOK,
			expectedBody:   map[string]interface{}{"message": "Verification code sent to your email."},
		},
		{
			name: "email taken",
			body: valid,
			setupMocks: func(m *mocks.MockAuthService) {
				m.RegisterFunc = func(ctx context.Context, username, email, password string) (*domain.Account, error) {
					return nil, domain.ErrEmailTaken
				}
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]interface{}{"error": "Email already used"},
		},
		{
			name: "username taken",
			body: valid,
			setupMocks: func(m *mocks.MockAuthService) {
				m.RegisterFunc = func(ctx context.Context, username, email, password string) (*domain.Account, error) {
					return nil, domain.ErrUsernameTaken
				}
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]interface{}{"error": "Username already used"},
		},
		{
			name: "infrastructure failure",
			body: valid,
			setupMocks: func(m *mocks.MockAuthService) {
				m.RegisterFunc = func(ctx context.Context, username, email, password string) (*domain.Account, error) {
					return nil, errors.New("failed to create account: connection refused")
				}
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   map[string]interface{}{"error": "Failed to register account"},
		},
		{
			name: "password over 72 bytes",
			body: RegisterRequest{Username: "ada", Email: "ada@example.com", Password: strings.Repeat("€", 30)},
			setupMocks: func(m *mocks.MockAuthService) {
				m.RegisterFunc = func(ctx context.Context, username, email, password string) (*domain.Account, error) {
					return nil, fmt.Errorf("failed to hash password: %w", domain.ErrPasswordTooLong)
				}
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]interface{}{"error": "Password must be at most 72 bytes"},
		},
		{
			name:           "invalid email",
			body:           RegisterRequest{Username: "ada", Email: "not-an-email", Password: "password123"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "short password",
			body:           RegisterRequest{Username: "ada", Email: "ada@example.com", Password: "123"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed json",
			body:           `{"username":`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockAuthService()
			if tt.setupMocks != nil {
				tt.setupMocks(svc)
			}

			w := performJSON(t, newAuthRouter(svc), http.MethodPost, "/register", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			body := decodeBody(t, w)
			if tt.expectedBody != nil {
				assert.Equal(t, tt.expectedBody, body)
			} else {
				assert.NotEmpty(t, body["error"])
			}
		})
	}
}

func TestAuthHandlers_VerifyEmail(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		serviceErr     error
		body           interface{}
		expectedStatus int
		expectedBody   map[string]interface{}
	}{
		{
			name:           "success",
			expectedStatus: http.StatusOK,
			expectedBody:   map[string]interface{}{"message": "Email verified successfully."},
		},
		{
			name:           "unknown email",
			serviceErr:     domain.ErrAccountNotFound,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]interface{}{"error": "Invalid email"},
		},
		{
			name:           "wrong code",
			serviceErr:     domain.ErrInvalidCode,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]interface{}{"error": "Invalid verification code"},
		},
		{
			name:           "expired code",
			serviceErr:     domain.ErrExpired,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]interface{}{"error": "Verification code expired"},
		},
		{
			name:           "too many attempts",
			serviceErr:     domain.ErrTooManyAttempts,
			expectedStatus: http.StatusTooManyRequests,
			expectedBody:   map[string]interface{}{"error": tooManyAttemptsMessage},
		},
		{
			name:           "code must be six characters",
			body:           VerifyEmailRequest{Email: "ada@example.com", Code: "123"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockAuthService()
			svc.VerifyEmailFunc = func(ctx context.Context, email, code string) error {
				return tt.serviceErr
			}
			body := tt.body
			if body == nil {
				body = VerifyEmailRequest{Email: "ada@example.com", Code: "482913"}
			}

			w := performJSON(t, newAuthRouter(svc), http.MethodPost, "/verify-email", body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != nil {
				assert.Equal(t, tt.expectedBody, decodeBody(t, w))
			}
		})
	}
}

func TestAuthHandlers_Login(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		body           interface{}
		setupMocks     func(*mocks.MockAuthService)
		expectedStatus int
		expectedBody   map[string]interface{}
	}{
		{
			name: "success",
			body: LoginRequest{EmailOrUsername: "ada", Password: "password123"},
			setupMocks: func(m *mocks.MockAuthService) {
				m.LoginFunc = func(ctx context.Context, identifier, password string) (*domain.LoginResult, error) {
					return &domain.LoginResult{
						Token:     "signed.jwt.token",
						ExpiresAt: time.Now().Add(time.Hour),
						Username:  "ada",
						Email:     "ada@example.com",
					}, nil
				}
			},
			expectedStatus: http.StatusOK,
			expectedBody: map[string]interface{}{
				"token":    "signed.jwt.token",
				"username": "ada",
				"email":    "ada@example.com",
			},
		},
		{
			name:           "invalid credentials",
			body:           LoginRequest{EmailOrUsername: "ada", Password: "wrong"},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   map[string]interface{}{"error": "Invalid credentials"},
		},
		{
			name: "too many attempts",
			body: LoginRequest{EmailOrUsername: "ada", Password: "wrong"},
			setupMocks: func(m *mocks.MockAuthService) {
				m.LoginFunc = func(ctx context.Context, identifier, password string) (*domain.LoginResult, error) {
					return nil, domain.ErrTooManyAttempts
				}
			},
			expectedStatus: http.StatusTooManyRequests,
			expectedBody:   map[string]interface{}{"error": tooManyAttemptsMessage},
		},
		{
			name: "infrastructure failure",
			body: LoginRequest{EmailOrUsername: "ada", Password: "password123"},
			setupMocks: func(m *mocks.MockAuthService) {
				m.LoginFunc = func(ctx context.Context, identifier, password string) (*domain.LoginResult, error) {
					return nil, errors.New("failed to find account: timeout")
				}
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   map[string]interface{}{"error": "Login failed"},
		},
		{
			name:           "missing identifier",
			body:           map[string]string{"password": "password123"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockAuthService()
			if tt.setupMocks != nil {
				tt.setupMocks(svc)
			}

			w := performJSON(t, newAuthRouter(svc), http.MethodPost, "/login", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != nil {
				assert.Equal(t, tt.expectedBody, decodeBody(t, w))
			}
		})
	}
}

func TestAuthHandlers_ForgotPassword(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("generic success", func(t *testing.T) {
		var got string
		svc := mocks.NewMockAuthService()
		svc.ForgotPasswordFunc = func(ctx context.Context, email string) error {
			got = email
			return nil
		}

		w := performJSON(t, newAuthRouter(svc), http.MethodPost, "/forgot-password", ForgotPasswordRequest{Email: "nobody@example.com"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "If the email exists, a reset code has been sent.", decodeBody(t, w)["message"])
		assert.Equal(t, "nobody@example.com", got)
	})

	t.Run("infrastructure failure", func(t *testing.T) {
		svc := mocks.NewMockAuthService()
		svc.ForgotPasswordFunc = func(ctx context.Context, email string) error {
			return errors.New("failed to update account: disk full")
		}

		w := performJSON(t, newAuthRouter(svc), http.MethodPost, "/forgot-password", ForgotPasswordRequest{Email: "ada@example.com"})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "disk full")
	})

	t.Run("invalid email", func(t *testing.T) {
		w := performJSON(t, newAuthRouter(mocks.NewMockAuthService()), http.MethodPost, "/forgot-password", ForgotPasswordRequest{Email: "nope"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandlers_ResetPassword(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		serviceErr     error
		expectedStatus int
		expectedBody   map[string]interface{}
	}{
		{
			name:           "success",
			expectedStatus: http.StatusOK,
			expectedBody:   map[string]interface{}{"message": "Password reset successfully."},
		},
		{
			name:           "unknown email",
			serviceErr:     domain.ErrAccountNotFound,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]interface{}{"error": "Invalid email"},
		},
		{
			name:           "wrong code",
			serviceErr:     domain.ErrInvalidCode,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]interface{}{"error": "Invalid reset code"},
		},
		{
			name:           "expired code",
			serviceErr:     domain.ErrExpired,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]interface{}{"error": "Reset code expired"},
		},
		{
			name:           "too many attempts",
			serviceErr:     domain.ErrTooManyAttempts,
			expectedStatus: http.StatusTooManyRequests,
			expectedBody:   map[string]interface{}{"error": tooManyAttemptsMessage},
		},
		{
			name:           "new password over 72 bytes",
			serviceErr:     fmt.Errorf("failed to hash password: %w", domain.ErrPasswordTooLong),
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]interface{}{"error": "Password must be at most 72 bytes"},
		},
		{
			name:           "infrastructure failure",
			serviceErr:     errors.New("failed to update account: timeout"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   map[string]interface{}{"error": "Password reset failed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockAuthService()
			svc.ResetPasswordFunc = func(ctx context.Context, email, code, newPassword string) error {
				return tt.serviceErr
			}

			w := performJSON(t, newAuthRouter(svc), http.MethodPost, "/reset-password", ResetPasswordRequest{
				Email:       "ada@example.com",
				Code:        "135790",
				NewPassword: "newpass1",
			})

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedBody, decodeBody(t, w))
		})
	}
}
