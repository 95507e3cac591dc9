package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Billing   BillingConfig
	Team      TeamConfig
	RateLimit RateLimitConfig
	Logging   LoggingConfig
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	// AppURL is the public origin used for checkout redirects and the
	// login/upgrade redirects issued by the feature gate.
	AppURL      string
	FrontendURL string
	Environment string
}

// DatabaseConfig contains database configuration
type DatabaseConfig struct {
	Driver string
	URL    string
	// ServiceURL is a privileged connection string used only by the billing
	// webhook path. Empty means the primary connection is reused.
	ServiceURL      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	// For SQLite
	Path string
}

// AuthConfig contains authentication configuration
type AuthConfig struct {
	JWTSecret          string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
	BCryptCost         int
}

// BillingConfig contains billing provider configuration
type BillingConfig struct {
	StripeSecretKey     string
	StripeWebhookSecret string
	ProviderTimeout     time.Duration
	TrialDays           int
	Currency            string
}

// TeamConfig contains team collaboration settings
type TeamConfig struct {
	InvitationTTL time.Duration
}

// RateLimitConfig contains the global per-IP rate limit
type RateLimitConfig struct {
	RequestsPerSecond int
	Burst             int
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level      string
	Format     string // json or console
	OutputPath string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore errors as it's optional)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			AppURL:          strings.TrimRight(getEnv("APP_URL", "http://localhost:5173"), "/"),
			FrontendURL:     getEnv("FRONTEND_URL", "http://localhost:5173"),
			Environment:     getEnv("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", "sqlite"),
			URL:             getEnv("DATABASE_URL", ""),
			ServiceURL:      getEnv("DB_SERVICE_URL", ""),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			Path:            getEnv("DB_PATH", "./hireloop.db"),
		},
		Auth: AuthConfig{
			JWTSecret:          getEnv("JWT_SECRET", "supersecretkey"),
			AccessTokenExpiry:  getEnvAsDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
			RefreshTokenExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRY", 7*24*time.Hour),
			BCryptCost:         getEnvAsInt("BCRYPT_COST", 12),
		},
		Billing: BillingConfig{
			StripeSecretKey:     getEnv("STRIPE_SECRET_KEY", ""),
			StripeWebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
			ProviderTimeout:     getEnvAsDuration("BILLING_PROVIDER_TIMEOUT", 10*time.Second),
			TrialDays:           getEnvAsInt("TRIAL_DAYS", 14),
			Currency:            getEnv("BILLING_CURRENCY", "usd"),
		},
		Team: TeamConfig{
			InvitationTTL: getEnvAsDuration("TEAM_INVITATION_TTL", 7*24*time.Hour),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getEnvAsInt("RATE_LIMIT_RPS", 100),
			Burst:             getEnvAsInt("RATE_LIMIT_BURST", 200),
		},
		Logging: LoggingConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			OutputPath: getEnv("LOG_OUTPUT", "stdout"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" || c.Auth.JWTSecret == "supersecretkey" {
		return fmt.Errorf("JWT_SECRET must be set and should not use default value in production")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Server.AppURL == "" {
		return fmt.Errorf("APP_URL must be set")
	}

	switch c.Database.Driver {
	case "sqlite":
	case "postgres":
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	if c.IsProduction() {
		if c.Billing.StripeSecretKey == "" {
			return fmt.Errorf("STRIPE_SECRET_KEY must be set in production")
		}
		if c.Billing.StripeWebhookSecret == "" {
			return fmt.Errorf("STRIPE_WEBHOOK_SECRET must be set in production")
		}
	}

	if c.Billing.ProviderTimeout <= 0 {
		return fmt.Errorf("BILLING_PROVIDER_TIMEOUT must be positive")
	}

	if c.Billing.TrialDays < 1 {
		return fmt.Errorf("TRIAL_DAYS must be at least 1")
	}

	return nil
}

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
