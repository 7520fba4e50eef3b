package main

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/wordledger/wordledger/internal/config"
	"github.com/wordledger/wordledger/internal/handler"
	"github.com/wordledger/wordledger/internal/metrics"
	"github.com/wordledger/wordledger/internal/middleware"
	"github.com/wordledger/wordledger/internal/service"
)

// routerDeps carries everything setupRouter wires together.
type routerDeps struct {
	cfg      *config.Config
	logger   *slog.Logger
	tokens   middleware.TokenVerifier
	words    *service.WordService
	authSvc  *service.AuthService
	limiter  middleware.IPLimiter
	recorder *metrics.InMemoryRecorder

	// Nil checks report "not configured" on /readyz.
	dbCheck    handler.HealthChecker
	redisCheck handler.HealthChecker
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(d routerDeps) *chi.Mux {
	h := handler.New(d.cfg.HomeRedirect())
	healthHandler := handler.NewHealthHandler(
		handler.Check{Name: "postgres", Checker: d.dbCheck},
		handler.Check{Name: "redis", Checker: d.redisCheck},
	)
	metricsHandler := handler.NewMetricsHandler(d.recorder)
	authHandler := handler.NewAuthHandler(d.authSvc, d.logger)
	wordHandler := handler.NewWordHandler(d.words, d.logger)

	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(d.logger))
	r.Use(middleware.Recoverer(d.logger))
	r.Use(middleware.Security(middleware.SecurityConfig{
		IsDevelopment: d.cfg.IsDevelopment(),
	}))

	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)
	r.Get("/metrics", metricsHandler.Metrics)
	r.Get("/", h.Home)

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = d.cfg.GetFrontendOrigins()

	rateLimitCfg := middleware.RateLimitConfig{
		Logger:    d.logger,
		Limiter:   d.limiter,
		Enabled:   d.cfg.RateLimitEnabled,
		RPS:       d.cfg.RateLimitRPS,
		Burst:     d.cfg.RateLimitBurst,
		OnLimited: d.recorder.IncRateLimited,
	}

	authCfg := middleware.AuthConfig{
		Logger:   d.logger,
		Verifier: d.tokens,
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.CORS(corsCfg))
		r.Use(middleware.MaxBodySize(d.cfg.MaxRequestBodySize))
		r.Use(middleware.RateLimitIP(rateLimitCfg))

		r.Post("/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(authCfg))

			r.Get("/time", wordHandler.Time)
			r.Get("/words", wordHandler.List)
			r.Post("/words", wordHandler.Create)
			r.Delete("/words/{id}", wordHandler.Delete)
		})
	})

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}
