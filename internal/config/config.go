package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/welldanyogia/inboxzero/internal/validator"
)

// DevJWTSecret is the signing key used when JWT_SECRET is not set. It is rejected in production.
const DevJWTSecret = "inboxzero-development-secret-change-me"

// MinJWTSecretLength is the minimum HS256 key size accepted in production
const MinJWTSecretLength = 32

// Config holds all configuration for the server
type Config struct {
	// Database
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// Server
	APIPort int    `env:"API_PORT" envDefault:"8080"`
	AppEnv  string `env:"APP_ENV" envDefault:"development"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Auth
	JWTSecret  string        `env:"JWT_SECRET" envDefault:"inboxzero-development-secret-change-me"`
	JWTTTL     time.Duration `env:"JWT_TTL" envDefault:"1h"`
	BcryptCost int           `env:"BCRYPT_COST" envDefault:"10"`

	// Security
	AllowedOrigins string `env:"ALLOWED_ORIGINS"`

	// Rate Limiting
	RateLimitRequests float64 `env:"RATE_LIMIT_REQUESTS" envDefault:"10"`
	RateLimitBurst    int     `env:"RATE_LIMIT_BURST" envDefault:"20"`

	// SMTP ingestion
	SMTP SMTP `envPrefix:"SMTP_"`
}

// SMTP contains the optional inbound mail listener parameters
type SMTP struct {
	Enabled         bool          `env:"ENABLED" envDefault:"false"`
	Port            int           `env:"PORT" envDefault:"2525"`
	Domain          string        `env:"DOMAIN" envDefault:"localhost"`
	MaxMessageBytes int64         `env:"MAX_MESSAGE_SIZE" envDefault:"26214400"`
	MaxRecipients   int           `env:"MAX_RECIPIENTS" envDefault:"100"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"60s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"60s"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// LoadWithValidation loads and validates configuration, failing fast on errors
func LoadWithValidation() (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Production-specific validation
	if cfg.IsProduction() {
		if err := cfg.ValidateProduction(); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// IsProduction reports whether APP_ENV is production
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DatabaseURL cannot be empty")
	}
	if c.APIPort <= 0 || c.APIPort > 65535 {
		return fmt.Errorf("APIPort must be between 1 and 65535")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET cannot be empty")
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 31")
	}
	if c.RateLimitRequests <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS and RATE_LIMIT_BURST must be positive")
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or text")
	}
	if c.SMTP.Enabled {
		if c.SMTP.Port <= 0 || c.SMTP.Port > 65535 {
			return fmt.Errorf("SMTPPort must be between 1 and 65535")
		}
		if err := validator.ValidateDomain(c.SMTP.Domain); err != nil {
			return fmt.Errorf("SMTP_DOMAIN is invalid: %w", err)
		}
	}
	return nil
}

// ValidateProduction performs additional validation for production environment
func (c *Config) ValidateProduction() error {
	if c.JWTSecret == DevJWTSecret {
		return fmt.Errorf("JWT_SECRET is required in production")
	}
	if len(c.JWTSecret) < MinJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d bytes in production", MinJWTSecretLength)
	}

	if c.AllowedOrigins == "" {
		return fmt.Errorf("ALLOWED_ORIGINS is required in production")
	}

	// Check for wildcard in production
	if strings.Contains(c.AllowedOrigins, "*") {
		return fmt.Errorf("wildcard (*) origins are not allowed in production")
	}

	// Check for sslmode=disable in database URL
	if strings.Contains(c.DatabaseURL, "sslmode=disable") {
		return fmt.Errorf("sslmode=disable is not allowed in production")
	}

	return nil
}

// LogConfig logs configuration values (excluding secrets)
func (c *Config) LogConfig(logger *slog.Logger) {
	logger.Info("configuration loaded",
		slog.Int("api_port", c.APIPort),
		slog.String("log_level", c.LogLevel),
		slog.String("log_format", c.LogFormat),
		slog.String("app_env", c.AppEnv),
		slog.Bool("jwt_secret_set", c.JWTSecret != DevJWTSecret),
		slog.Duration("jwt_ttl", c.JWTTTL),
		slog.Int("bcrypt_cost", c.BcryptCost),
		slog.Bool("allowed_origins_set", c.AllowedOrigins != ""),
		slog.Float64("rate_limit_rps", c.RateLimitRequests),
		slog.Int("rate_limit_burst", c.RateLimitBurst),
		slog.Bool("smtp_enabled", c.SMTP.Enabled),
		slog.Int("smtp_port", c.SMTP.Port),
	)
}

// ClientConfig holds the settings of the terminal client
type ClientConfig struct {
	ServerURL   string `env:"INBOXZERO_SERVER" envDefault:"http://localhost:8080"`
	SessionPath string `env:"INBOXZERO_SESSION"`
}

// LoadClient reads client configuration from environment variables.
// An empty session path resolves to inboxzero/session.json under the user config directory.
func LoadClient() (*ClientConfig, error) {
	cfg := &ClientConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse client config: %w", err)
	}
	if cfg.SessionPath == "" {
		path, err := DefaultSessionPath()
		if err != nil {
			return nil, err
		}
		cfg.SessionPath = path
	}
	return cfg, nil
}

// DefaultSessionPath returns $XDG_CONFIG_HOME/inboxzero/session.json or the platform equivalent
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config directory: %w", err)
	}
	return filepath.Join(dir, "inboxzero", "session.json"), nil
}
