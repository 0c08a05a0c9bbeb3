package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-chi/chi/v5"
)

// ServerConfig holds the server configuration. Fields are populated from
// the environment; binaries may override them with flags afterwards.
type ServerConfig struct {
	Host         string        `env:"MINIGAMMON_HOST" envDefault:"localhost"`
	Port         int           `env:"MINIGAMMON_PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"MINIGAMMON_READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout time.Duration `env:"MINIGAMMON_WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout  time.Duration `env:"MINIGAMMON_IDLE_TIMEOUT" envDefault:"60s"`
}

// ConfigFromEnv reads the server configuration from the environment.
func ConfigFromEnv() (ServerConfig, error) {
	var cfg ServerConfig
	if err := env.Parse(&cfg); err != nil {
		return ServerConfig{}, fmt.Errorf("parse server config: %w", err)
	}
	return cfg, nil
}

// Server is the HTTP API server.
type Server struct {
	config   ServerConfig
	manager  *Manager
	handlers *Handlers
	server   *http.Server
	version  string
}

// NewServer creates a new API server with a fresh session manager.
func NewServer(config ServerConfig, version string) *Server {
	manager := NewManager()
	pool := NewWorkerPool(DefaultPoolConfig())
	return &Server{
		config:   config,
		manager:  manager,
		handlers: NewHandlers(manager, pool, version),
		version:  version,
	}
}

// Manager returns the session manager (used by tests).
func (s *Server) Manager() *Manager {
	return s.manager
}

// corsMiddleware adds CORS headers for browser access.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs all requests.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// Routes configures the router for all API endpoints.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(corsMiddleware, loggingMiddleware)

	r.Get("/api/health", s.handlers.Health)
	r.Post("/api/games", s.handlers.CreateGame)
	r.Post("/api/simulate", s.handlers.Simulate)
	r.Get("/api/simulate/stream", s.handlers.SimulateSSE)
	r.Get("/api/positions/{id}", s.handlers.DecodePosition)
	r.Route("/api/games/{id}", func(r chi.Router) {
		r.Get("/", s.handlers.GetGame)
		r.Delete("/", s.handlers.DeleteGame)
		r.Post("/token", s.handlers.FeedToken)
		r.Post("/ai-turn", s.handlers.AITurn)
		r.Get("/export", s.handlers.ExportGame)
		r.Get("/ws", s.handlers.WatchGame)
	})

	return r
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.Routes(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	log.Printf("Starting minigammon server v%s on %s", s.version, addr)
	log.Printf("Endpoints:")
	log.Printf("  GET    /api/health            - Health check")
	log.Printf("  POST   /api/games             - Create a game session")
	log.Printf("  GET    /api/games/{id}        - Read session state")
	log.Printf("  DELETE /api/games/{id}        - Drop a session")
	log.Printf("  POST   /api/games/{id}/token  - Feed one input token")
	log.Printf("  POST   /api/games/{id}/ai-turn - Run the automated turn")
	log.Printf("  GET    /api/games/{id}/export - Export record for text boards")
	log.Printf("  WS     /api/games/{id}/ws     - State and announcement stream")
	log.Printf("  POST   /api/simulate          - Self-play statistics")
	log.Printf("  GET    /api/simulate/stream   - Self-play progress over SSE")
	log.Printf("  GET    /api/positions/{id}    - Expand a compact position ID")

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// ListenAndServeWithGracefulShutdown starts the server and handles shutdown signals.
func (s *Server) ListenAndServeWithGracefulShutdown() error {
	errChan := make(chan error, 1)

	go func() {
		if err := s.Start(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-quit:
		log.Printf("Received signal %v, shutting down...", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped gracefully")
	return nil
}
