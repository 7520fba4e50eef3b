package webui

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/wordledger/wordledger/internal/middleware"
)

// RouterConfig configures the web client router.
type RouterConfig struct {
	Logger        *slog.Logger
	IsDevelopment bool
	// MaxBodySize bounds form posts. Zero uses 64KB.
	MaxBodySize int64
}

// Probes are the liveness and readiness endpoints mounted next to the page.
type Probes interface {
	Healthz(w http.ResponseWriter, r *http.Request)
	Readyz(w http.ResponseWriter, r *http.Request)
}

// NewRouter configures the chi router for the words page.
func NewRouter(h *Handler, probes Probes, cfg RouterConfig) *chi.Mux {
	if cfg.MaxBodySize <= 0 {
		cfg.MaxBodySize = 64 << 10
	}

	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Recoverer(cfg.Logger))
	r.Use(middleware.Security(middleware.SecurityConfig{
		IsDevelopment:         cfg.IsDevelopment,
		ContentSecurityPolicy: middleware.PageContentSecurityPolicy,
	}))

	if probes != nil {
		r.Get("/healthz", probes.Healthz)
		r.Get("/readyz", probes.Readyz)
	}

	r.Get("/", h.Index)
	r.Group(func(r chi.Router) {
		r.Use(middleware.MaxBodySize(cfg.MaxBodySize))

		r.Post("/words", h.Submit)
		r.Get("/words/{id}/delete", h.ConfirmDelete)
		r.Post("/words/{id}/delete", h.Delete)
		r.Post("/refresh", h.Refresh)
	})

	return r
}
