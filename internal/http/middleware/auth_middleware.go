package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/you/coursefinder/domain"
)

// Context keys set by the auth middleware
const (
	ContextAccountID = "account_id"
	ContextSubject   = "subject"
)

// AuthMiddleware requires a valid bearer token
func AuthMiddleware(tokenSvc domain.TokenService) gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		authenticate(c, tokenSvc, authHeader)
	})
}

// OptionalAuthMiddleware authenticates when a bearer token is present and
// otherwise lets the request through as anonymous. A token that is present
// but invalid is still rejected.
func OptionalAuthMiddleware(tokenSvc domain.TokenService) gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Set(ContextSubject, domain.SubjectAnonymous)
			c.Next()
			return
		}

		authenticate(c, tokenSvc, authHeader)
	})
}

func authenticate(c *gin.Context, tokenSvc domain.TokenService, authHeader string) {
	token, ok := bearerToken(authHeader)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
		c.Abort()
		return
	}

	accountID, err := tokenSvc.Validate(token)
	if err != nil {
		if errors.Is(err, domain.ErrTokenExpired) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token expired"})
		} else {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		}
		c.Abort()
		return
	}

	c.Set(ContextAccountID, accountID)
	c.Set(ContextSubject, domain.SubjectMember)
	c.Next()
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
