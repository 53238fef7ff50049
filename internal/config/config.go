package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultConfigPath = "config/config.yml"
	minSecretLength   = 32
)

type AppConfig struct {
	Port        int    `yaml:"port"`
	GinMode     string `yaml:"gin_mode"`
	LogLevel    string `yaml:"log_level"`
	Environment string `yaml:"environment"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret           string `yaml:"secret"`
	Issuer           string `yaml:"issuer"`
	Audience         string `yaml:"audience"`
	ExpiresInMinutes int    `yaml:"expires_in_minutes"`
}

type LimitsConfig struct {
	MaxCodeAttempts  int    `yaml:"max_code_attempts"`
	MaxLoginAttempts int    `yaml:"max_login_attempts"`
	MaxCodeRequests  int    `yaml:"max_code_requests"`
	Window           string `yaml:"window"`
}

type SMTPConfig struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
}

type CasbinConfig struct {
	SeedDefaultPolicies bool `yaml:"seed_default_policies"`
}

// CourseSeed is a catalog entry inserted on startup when the catalog is empty
type CourseSeed struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	ImageURL    string `yaml:"image_url"`
	Department  string `yaml:"department"`
}

type CatalogConfig struct {
	SeedCourses []CourseSeed `yaml:"seed_courses"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	Limits   LimitsConfig   `yaml:"limits"`
	SMTP     SMTPConfig     `yaml:"smtp"`
	Casbin   CasbinConfig   `yaml:"casbin"`
	Catalog  CatalogConfig  `yaml:"catalog"`
}

// Config is the resolved, immutable runtime configuration.
type Config struct {
	Port                string
	GinMode             string
	LogLevel            string
	Environment         string
	DSN                 string
	RedisAddr           string
	RedisPassword       string
	RedisDB             int
	JWTSecret           string
	JWTIssuer           string
	JWTAudience         string
	TokenTTL            time.Duration
	MaxCodeAttempts     int
	MaxLoginAttempts    int
	MaxCodeRequests     int
	AttemptWindow       time.Duration
	SMTP                SMTPConfig
	SeedDefaultPolicies bool
	SeedCourses         []CourseSeed
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

// Load reads .env (if present), the YAML file at CONFIG_PATH (default
// config/config.yml) and applies environment overrides.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return LoadFile(env("CONFIG_PATH", defaultConfigPath))
}

// LoadFile builds a Config from the YAML file at path plus environment overrides.
func LoadFile(path string) (*Config, error) {
	configFile, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	applyDefaults(configFile)

	window, err := time.ParseDuration(configFile.Limits.Window)
	if err != nil {
		return nil, fmt.Errorf("invalid limits window: %w", err)
	}

	cfg := &Config{
		Port:                env("PORT", strconv.Itoa(configFile.App.Port)),
		GinMode:             env("GIN_MODE", configFile.App.GinMode),
		LogLevel:            env("LOG_LEVEL", configFile.App.LogLevel),
		Environment:         env("APP_ENV", configFile.App.Environment),
		DSN:                 env("DATABASE_DSN", configFile.Database.DSN),
		RedisAddr:           env("REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword:       env("REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:             envInt("REDIS_DB", configFile.Redis.DB),
		JWTSecret:           env("JWT_SECRET", configFile.JWT.Secret),
		JWTIssuer:           env("JWT_ISSUER", configFile.JWT.Issuer),
		JWTAudience:         env("JWT_AUDIENCE", configFile.JWT.Audience),
		TokenTTL:            time.Duration(envInt("JWT_EXPIRES_IN_MINUTES", configFile.JWT.ExpiresInMinutes)) * time.Minute,
		MaxCodeAttempts:     configFile.Limits.MaxCodeAttempts,
		MaxLoginAttempts:    configFile.Limits.MaxLoginAttempts,
		MaxCodeRequests:     configFile.Limits.MaxCodeRequests,
		AttemptWindow:       window,
		SMTP:                configFile.SMTP,
		SeedDefaultPolicies: configFile.Casbin.SeedDefaultPolicies,
		SeedCourses:         configFile.Catalog.SeedCourses,
	}
	cfg.SMTP.Host = env("SMTP_HOST", cfg.SMTP.Host)
	cfg.SMTP.Username = env("SMTP_USERNAME", cfg.SMTP.Username)
	cfg.SMTP.Password = env("SMTP_PASSWORD", cfg.SMTP.Password)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the service cannot run safely with.
func (c *Config) Validate() error {
	var errs []error
	if len(c.JWTSecret) < minSecretLength {
		errs = append(errs, fmt.Errorf("jwt secret must be at least %d bytes", minSecretLength))
	}
	if c.JWTIssuer == "" {
		errs = append(errs, errors.New("jwt issuer is required"))
	}
	if c.JWTAudience == "" {
		errs = append(errs, errors.New("jwt audience is required"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("jwt expires_in_minutes must be positive"))
	}
	if c.MaxCodeAttempts <= 0 || c.MaxLoginAttempts <= 0 || c.MaxCodeRequests <= 0 {
		errs = append(errs, errors.New("limits must be positive"))
	}
	if c.AttemptWindow <= 0 {
		errs = append(errs, errors.New("limits window must be positive"))
	}
	return errors.Join(errs...)
}

func applyDefaults(f *ConfigFile) {
	if f.App.Port == 0 {
		f.App.Port = 8080
	}
	if f.App.GinMode == "" {
		f.App.GinMode = "release"
	}
	if f.App.LogLevel == "" {
		f.App.LogLevel = "info"
	}
	if f.App.Environment == "" {
		f.App.Environment = "production"
	}
	if f.Redis.Addr == "" {
		f.Redis.Addr = "localhost:6379"
	}
	if f.JWT.ExpiresInMinutes == 0 {
		f.JWT.ExpiresInMinutes = 60
	}
	if f.Limits.MaxCodeAttempts == 0 {
		f.Limits.MaxCodeAttempts = 5
	}
	if f.Limits.MaxLoginAttempts == 0 {
		f.Limits.MaxLoginAttempts = 10
	}
	if f.Limits.MaxCodeRequests == 0 {
		f.Limits.MaxCodeRequests = 5
	}
	if f.Limits.Window == "" {
		f.Limits.Window = "15m"
	}
	if f.SMTP.Port == 0 {
		f.SMTP.Port = 587
	}
	if f.SMTP.FromName == "" {
		f.SMTP.FromName = "Course Finder"
	}
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}
