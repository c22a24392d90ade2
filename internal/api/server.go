package api

import (
	"encoding/json"
	"log"
	"net/http"

	"duck-royale/internal/game"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/pkg/errors"
)

// Config holds boundary-layer settings. The zero value plus a static
// dir is a working production configuration.
type Config struct {
	// StaticDir is served at /. Defaults to "./public".
	StaticDir string

	// RateLimit overrides the HTTP rate limiter configuration.
	// Tests raise it so httptest traffic is never throttled.
	RateLimit *RateLimitConfig

	// DisableLogging turns off the request logger middleware.
	DisableLogging bool
}

// Server ties the router, the WebSocket hub and the engine together.
// Constructing it opens no listeners and starts no goroutines beyond
// the rate limiter's cleanup loop; Start does the listening.
type Server struct {
	engine  *game.Engine
	hub     *Hub
	router  *chi.Mux
	limiter *IPRateLimiter
}

// NewServer builds the HTTP surface: real-time channel at /ws, a
// read-only REST view of the match, and the static client bundle.
func NewServer(engine *game.Engine, hub *Hub, cfg Config) *Server {
	s := &Server{engine: engine, hub: hub}

	rateCfg := DefaultRateLimitConfig
	if cfg.RateLimit != nil {
		rateCfg = *cfg.RateLimit
	}
	s.limiter = NewIPRateLimiter(rateCfg)

	r := chi.NewRouter()
	if !cfg.DisableLogging {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(s.limiter.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://*", "http://*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/ws", hub.HandleWS)
	r.Get("/healthz", s.handleHealthz)
	r.Route("/api", func(r chi.Router) {
		r.Get("/state", s.handleState)
	})

	staticDir := cfg.StaticDir
	if staticDir == "" {
		staticDir = "./public"
	}
	r.Handle("/*", http.FileServer(http.Dir(staticDir)))

	s.router = r
	return s
}

// Router returns the HTTP handler, for Start and for httptest.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start listens on addr and serves until the listener fails.
func (s *Server) Start(addr string) error {
	log.Printf("🌐 serving on %s", addr)
	return errors.Wrap(http.ListenAndServe(addr, s.router), "api server")
}

// Stop releases background resources.
func (s *Server) Stop() {
	s.limiter.Stop()
}

// handleState returns the current match snapshot. Read-only; the
// engine hands out a copy, never live state.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.engine.CurrentSnapshot()); err != nil {
		log.Printf("encode state: %v", err)
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
