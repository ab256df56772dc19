package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpmiddleware "github.com/wolfman30/cosmo-wb-landing/internal/http/middleware"
	"github.com/wolfman30/cosmo-wb-landing/internal/landing"
	"github.com/wolfman30/cosmo-wb-landing/internal/observability/metrics"
	"github.com/wolfman30/cosmo-wb-landing/internal/webchat"
	"github.com/wolfman30/cosmo-wb-landing/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	Landing            *landing.Handler
	Chat               *webchat.Handler
	Metrics            *metrics.LandingMetrics
	MetricsHandler     http.Handler
	RateLimiter        *httpmiddleware.RateLimiter
	CORSAllowedOrigins []string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5, "text/html", "text/css", "application/javascript", "application/json"))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	r.Use(httpmiddleware.RequestLogger(cfg.Logger, cfg.Metrics))

	// Infra endpoints
	r.Get("/health", healthCheck)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	// Page and its API. Page loads mount state and POSTs change it, so both
	// are rate limited; reads and static assets are not.
	r.Group(func(site chi.Router) {
		if cfg.RateLimiter != nil {
			site.Use(limitStateful(cfg.RateLimiter))
		}
		if cfg.Landing != nil {
			cfg.Landing.Register(site)
		}
		if cfg.Chat != nil {
			site.Post("/api/chat/open", cfg.Chat.HandleOpen)
			site.Post("/api/chat/close", cfg.Chat.HandleClose)
			site.Get("/api/chat/ws", cfg.Chat.HandleWebSocket)
		}
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "not found"})
	})

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// limitStateful applies the rate limiter to page mounts (GET /) and POSTs.
func limitStateful(rl *httpmiddleware.RateLimiter) func(http.Handler) http.Handler {
	limit := httpmiddleware.RateLimit(rl)
	return func(next http.Handler) http.Handler {
		limited := limit(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost || (r.Method == http.MethodGet && r.URL.Path == "/") {
				limited.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
