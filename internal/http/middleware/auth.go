package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/you/coursefinder/domain"
)

// AuthMW wraps the token service for middleware
type AuthMW struct {
	tokenSvc domain.TokenService
}

// NewAuthMW creates new auth middleware wrapper
func NewAuthMW(tokenSvc domain.TokenService) *AuthMW {
	return &AuthMW{tokenSvc: tokenSvc}
}

// WithJWT returns the required bearer token middleware
func (mw *AuthMW) WithJWT() gin.HandlerFunc {
	return AuthMiddleware(mw.tokenSvc)
}

// WithOptionalJWT returns the middleware that falls back to anonymous
func (mw *AuthMW) WithOptionalJWT() gin.HandlerFunc {
	return OptionalAuthMiddleware(mw.tokenSvc)
}
