// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor principles.
// A .env file in the working directory, when present, is read first.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Shared holds settings common to the API and the web client.
type Shared struct {
	AppEnv string `env:"APP_ENV" envDefault:"development"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// IsDevelopment returns true if running in development mode.
func (s *Shared) IsDevelopment() bool {
	return s.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (s *Shared) IsProduction() bool {
	return s.AppEnv == "production"
}

// Config holds the words API configuration.
type Config struct {
	Shared

	AppPort int `env:"APP_PORT" envDefault:"5000"`

	// Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// Cache (Redis). Optional: rate limiting falls back to an in-process limiter.
	RedisURL string `env:"REDIS_URL" envDefault:""`

	// Token signing. The web client logs in once per process, so a non-zero
	// TTL makes its session expire; TOKEN_TTL=0 issues tokens without exp.
	JWTSecretKey string        `env:"JWT_SECRET_KEY,required"`
	TokenTTL     time.Duration `env:"TOKEN_TTL" envDefault:"15m"`

	// Comma-separated origins of the web client. Also the target of GET /.
	FrontendURL string `env:"FRONTEND_URL" envDefault:""`

	// Rate limiting (per client IP on /api)
	RateLimitEnabled bool `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	RateLimitRPS     int  `env:"RATE_LIMIT_RPS" envDefault:"20"`
	RateLimitBurst   int  `env:"RATE_LIMIT_BURST" envDefault:"40"`

	// Request body size limit in bytes (default 1MB)
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"1048576"`

	// Matches the VARCHAR size of words.text.
	WordMaxLength int `env:"WORD_MAX_LENGTH" envDefault:"120"`
}

// GetFrontendOrigins parses the comma-separated FRONTEND_URL into a slice.
func (c *Config) GetFrontendOrigins() []string {
	if c.FrontendURL == "" {
		return nil
	}

	origins := strings.Split(c.FrontendURL, ",")
	result := make([]string, 0, len(origins))

	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			result = append(result, strings.TrimSuffix(trimmed, "/"))
		}
	}

	return result
}

// HomeRedirect returns the URL GET / should redirect to, or "" when unset.
func (c *Config) HomeRedirect() string {
	origins := c.GetFrontendOrigins()
	if len(origins) == 0 {
		return ""
	}
	return origins[0]
}

// WebConfig holds the web client configuration.
type WebConfig struct {
	Shared

	WebPort int `env:"WEB_PORT" envDefault:"5173"`

	// Words API location
	APIBaseURL string `env:"API_BASE_URL" envDefault:"http://localhost:5000"`

	// Per-request timeout for API calls. Zero disables the timeout.
	APIRequestTimeout time.Duration `env:"API_REQUEST_TIMEOUT" envDefault:"10s"`
}

// Load parses environment variables and returns the API Config.
// Returns an error if required variables are missing.
func Load() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	// Without an origin every browser request fails CORS.
	if cfg.IsProduction() && len(cfg.GetFrontendOrigins()) == 0 {
		return nil, errors.New("failed to parse config: FRONTEND_URL is required in production")
	}
	return cfg, nil
}

// LoadWeb parses environment variables and returns the web client config.
//
// The client acquires its token once and never again. Once the API's
// TOKEN_TTL elapses every page action fails with status 401 until the web
// process restarts. Run the API with TOKEN_TTL=0 when the web client must
// outlive the TTL.
func LoadWeb() (*WebConfig, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	cfg := &WebConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.APIBaseURL == "" {
		return nil, errors.New("failed to parse config: API_BASE_URL must not be empty")
	}
	return cfg, nil
}

// loadDotEnv reads .env without overriding variables already set.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read .env: %w", err)
	}
	return nil
}
