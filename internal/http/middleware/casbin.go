package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/you/coursefinder/domain"
	"go.uber.org/zap"
)

// CasbinMiddleware defines the interface for policy enforcement middleware
type CasbinMiddleware interface {
	Enforce() gin.HandlerFunc
}

// CasbinMW checks the request subject, path and method against stored policies
type CasbinMW struct {
	policySvc domain.PolicyService
	logger    *zap.Logger
}

// NewCasbinMW creates new casbin middleware wrapper
func NewCasbinMW(policySvc domain.PolicyService, logger *zap.Logger) *CasbinMW {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CasbinMW{policySvc: policySvc, logger: logger}
}

// Enforce returns the casbin authorization middleware. Requests that did not
// pass an auth middleware are evaluated as anonymous.
func (mw *CasbinMW) Enforce() gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		subject := c.GetString(ContextSubject)
		if subject == "" {
			subject = domain.SubjectAnonymous
		}
		path := c.Request.URL.Path
		method := c.Request.Method

		allowed, err := mw.policySvc.CheckPermission(subject, path, method)
		if err != nil {
			mw.logger.Error("authorization check failed",
				zap.String("subject", subject),
				zap.String("path", path),
				zap.Error(err),
			)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Authorization check failed"})
			c.Abort()
			return
		}

		if !allowed {
			mw.logger.Warn("access denied",
				zap.String("subject", subject),
				zap.String("path", path),
				zap.String("method", method),
			)
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			c.Abort()
			return
		}

		c.Next()
	})
}
