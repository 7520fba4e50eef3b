// Package main is the entrypoint for the words API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/wordledger/wordledger/internal/auth"
	"github.com/wordledger/wordledger/internal/cache"
	"github.com/wordledger/wordledger/internal/config"
	"github.com/wordledger/wordledger/internal/handler"
	"github.com/wordledger/wordledger/internal/metrics"
	"github.com/wordledger/wordledger/internal/middleware"
	"github.com/wordledger/wordledger/internal/repository"
	"github.com/wordledger/wordledger/internal/server"
	"github.com/wordledger/wordledger/internal/service"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg.LogLevel, cfg.LogFormat)

	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	defer repo.Close()
	logger.Info("connected to database")

	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Error("failed to apply schema", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Redis is optional: without it the rate limiter is per process.
	var limiter middleware.IPLimiter = cache.NewLocalLimiter()
	var redisCheck handler.HealthChecker
	if cfg.RedisURL != "" {
		redisLimiter, err := cache.NewRedisLimiter(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error(
				"failed to connect to Redis",
				slog.String("error", sanitizeError(err, cfg.RedisURL)),
				slog.String("redis_url", redactURL(cfg.RedisURL)),
			)
			os.Exit(1)
		}
		defer redisLimiter.Close()
		limiter = redisLimiter
		redisCheck = redisLimiter
		logger.Info("connected to Redis")
	} else {
		logger.Info("REDIS_URL not set, using in-process rate limiter")
	}

	tokens, err := auth.NewTokenService(cfg.JWTSecretKey, cfg.TokenTTL)
	if err != nil {
		logger.Error("failed to create token service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	recorder := metrics.NewInMemory()

	r := setupRouter(routerDeps{
		cfg:        cfg,
		logger:     logger,
		tokens:     tokens,
		words:      service.NewWordService(repo, recorder, cfg.WordMaxLength),
		authSvc:    service.NewAuthService(tokens, recorder),
		limiter:    limiter,
		recorder:   recorder,
		dbCheck:    repo,
		redisCheck: redisCheck,
	})

	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"frontend_url", cfg.FrontendURL,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger from the configured level and format.
func initLogger(level, format string) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(level),
	}

	if format == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
