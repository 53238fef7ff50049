package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/you/coursefinder/internal/http/handlers"
	"github.com/you/coursefinder/internal/http/middleware"
	"go.uber.org/zap"
)

// Handlers groups the route handlers
type Handlers struct {
	Auth    *handlers.AuthHandlers
	Profile *handlers.ProfileHandlers
	Courses *handlers.CourseHandlers
}

// BuildRouter wires routes to handlers. Member-only routes require a bearer
// token; course reads accept one and fall back to anonymous without it.
func BuildRouter(
	h Handlers,
	jwtmw *middleware.AuthMW,
	cb middleware.CasbinMiddleware,
	metricsHandler http.Handler,
	logger *zap.Logger,
	observer middleware.RequestObserver,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger, observer))

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	if metricsHandler != nil {
		r.GET("/metrics", gin.WrapH(metricsHandler))
	}

	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/verify-email", h.Auth.VerifyEmail)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/forgot-password", h.Auth.ForgotPassword)
	auth.POST("/reset-password", h.Auth.ResetPassword)

	courses := api.Group("/courses").Use(jwtmw.WithOptionalJWT(), cb.Enforce())
	courses.GET("", h.Courses.List)
	courses.GET("/:id", h.Courses.Get)

	member := api.Group("/").Use(jwtmw.WithJWT(), cb.Enforce())
	member.GET("/profile", h.Profile.Get)
	member.PUT("/profile", h.Profile.Update)
	member.POST("/enroll/:courseId", h.Courses.Enroll)

	return r
}
