package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/arpanm/appointment-assistant/internal/auth"
	"github.com/arpanm/appointment-assistant/internal/chat"
	httpmiddleware "github.com/arpanm/appointment-assistant/internal/http/middleware"
	"github.com/arpanm/appointment-assistant/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	AuthHandler        *auth.Handler
	ChatHandler        *chat.Handler
	MetricsHandler     http.Handler
	SessionJWTSecret   string
	CORSAllowedOrigins []string
}

// New creates a Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints
	r.Get("/health", healthCheck)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}
	if cfg.AuthHandler != nil {
		r.Post("/auth/signin", cfg.AuthHandler.SignIn)
	}

	// Session-protected chat endpoints
	if cfg.ChatHandler != nil {
		r.Group(func(protected chi.Router) {
			protected.Use(httpmiddleware.SessionJWT(cfg.SessionJWTSecret))
			protected.Post("/chat/messages", cfg.ChatHandler.Message)
			protected.Get("/chat/history", cfg.ChatHandler.History)
		})
	}

	return r
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
