package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/you/coursefinder/domain"
	"github.com/you/coursefinder/internal/config"
	httpx "github.com/you/coursefinder/internal/http"
	"github.com/you/coursefinder/internal/http/handlers"
	"github.com/you/coursefinder/internal/http/middleware"
	"github.com/you/coursefinder/internal/infrastructure/auth"
	"github.com/you/coursefinder/internal/infrastructure/database"
	"github.com/you/coursefinder/internal/infrastructure/notifications"
	"github.com/you/coursefinder/internal/infrastructure/repositories"
	"github.com/you/coursefinder/internal/logger"
	"github.com/you/coursefinder/internal/metrics"
	"github.com/you/coursefinder/internal/services"
)

// Container holds all dependencies
type Container struct {
	Config  *config.Config
	Logger  *zap.Logger
	Metrics *metrics.Metrics

	// Infrastructure
	DB          *gorm.DB
	RedisClient *redis.Client

	// Repositories
	AccountRepo    domain.AccountRepository
	CourseRepo     domain.CourseRepository
	EnrollmentRepo domain.EnrollmentRepository
	Limiter        domain.AttemptLimiter

	// Services
	PasswordSvc domain.PasswordService
	TokenSvc    domain.TokenService
	EmailSvc    domain.EmailSender
	AuthSvc     domain.AuthService
	CatalogSvc  domain.CatalogService
	PolicySvc   domain.PolicyService
}

// NewContainer connects to postgres and redis and initializes all dependencies
func NewContainer(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Container, error) {
	db, err := database.Open(cfg.DSN)
	if err != nil {
		return nil, err
	}

	rdb := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := rdb.Ping(ctx); err != nil {
		_ = database.Close(db)
		return nil, err
	}

	return newContainer(ctx, cfg, log, db, rdb.Client)
}

// newContainer wires everything on top of already opened connections
func newContainer(ctx context.Context, cfg *config.Config, log *zap.Logger, db *gorm.DB, rdb *redis.Client) (*Container, error) {
	c := &Container{
		Config:      cfg,
		Logger:      log,
		Metrics:     metrics.New(),
		DB:          db,
		RedisClient: rdb,
	}

	if err := database.AutoMigrate(c.DB); err != nil {
		c.Close()
		return nil, err
	}

	c.initRepositories()
	c.initServices()

	if err := c.initPolicies(); err != nil {
		c.Close()
		return nil, err
	}
	if err := c.seedCatalog(ctx); err != nil {
		c.Close()
		return nil, err
	}

	return c, nil
}

func (c *Container) initRepositories() {
	c.AccountRepo = repositories.NewAccountRepository(c.DB)
	c.CourseRepo = repositories.NewCourseRepository(c.DB)
	c.EnrollmentRepo = repositories.NewEnrollmentRepository(c.DB)
	c.Limiter = repositories.NewAttemptLimiter(c.RedisClient, c.Config.AttemptWindow, map[domain.AttemptScope]int{
		domain.ScopeVerifyEmail:    c.Config.MaxCodeAttempts,
		domain.ScopeResetPassword:  c.Config.MaxCodeAttempts,
		domain.ScopeLogin:          c.Config.MaxLoginAttempts,
		domain.ScopeForgotPassword: c.Config.MaxCodeRequests,
	})
}

func (c *Container) initServices() {
	c.PasswordSvc = auth.NewPasswordService()
	c.TokenSvc = auth.NewJWTService(
		c.Config.JWTSecret,
		c.Config.JWTIssuer,
		c.Config.JWTAudience,
		c.Config.TokenTTL,
	)
	c.EmailSvc = notifications.NewEmailService(notifications.EmailConfig{
		Host:      c.Config.SMTP.Host,
		Port:      c.Config.SMTP.Port,
		Username:  c.Config.SMTP.Username,
		Password:  c.Config.SMTP.Password,
		FromEmail: c.Config.SMTP.FromEmail,
		FromName:  c.Config.SMTP.FromName,
	}, c.Logger)

	c.AuthSvc = services.NewAuthService(
		c.AccountRepo,
		c.PasswordSvc,
		c.TokenSvc,
		services.NewCodeGenerator(),
		c.EmailSvc,
		c.Logger,
		services.WithAttemptLimiter(c.Limiter),
		services.WithAuditLogger(logger.NewAuditLogger(c.Logger, c.Metrics)),
	)
	c.CatalogSvc = services.NewCatalogService(c.CourseRepo, c.EnrollmentRepo, c.Logger)
}

func (c *Container) initPolicies() error {
	enforcer, err := auth.NewEnforcer(c.DB)
	if err != nil {
		return err
	}
	c.PolicySvc = services.NewPolicyService(enforcer)

	if !c.Config.SeedDefaultPolicies {
		return nil
	}
	seeded, err := services.SeedPolicies(c.PolicySvc, auth.DefaultPolicies)
	if err != nil {
		return fmt.Errorf("failed to seed policies: %w", err)
	}
	if seeded {
		c.Logger.Info("casbin: seeded default policies", zap.Int("count", len(auth.DefaultPolicies)))
	}
	return nil
}

func (c *Container) seedCatalog(ctx context.Context) error {
	if len(c.Config.SeedCourses) == 0 {
		return nil
	}
	courses := make([]*domain.Course, 0, len(c.Config.SeedCourses))
	for _, seed := range c.Config.SeedCourses {
		courses = append(courses, &domain.Course{
			ID:          seed.ID,
			Title:       seed.Title,
			Description: seed.Description,
			ImageURL:    seed.ImageURL,
			Department:  seed.Department,
		})
	}
	seeded, err := services.SeedCourses(ctx, c.CourseRepo, courses)
	if err != nil {
		return err
	}
	if seeded > 0 {
		c.Logger.Info("catalog: seeded courses", zap.Int("count", seeded))
	}
	return nil
}

// Router builds the HTTP handler tree
func (c *Container) Router() *gin.Engine {
	return httpx.BuildRouter(
		httpx.Handlers{
			Auth:    handlers.NewAuthHandlers(c.AuthSvc, c.Logger),
			Profile: handlers.NewProfileHandlers(c.AuthSvc, c.Logger),
			Courses: handlers.NewCourseHandlers(c.CatalogSvc, c.Logger),
		},
		middleware.NewAuthMW(c.TokenSvc),
		middleware.NewCasbinMW(c.PolicySvc, c.Logger),
		c.Metrics.Handler(),
		c.Logger,
		c.Metrics,
	)
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Warn("failed to close redis", zap.Error(err))
		}
	}
	if c.DB != nil {
		return database.Close(c.DB)
	}
	return nil
}
