// Package http implements the HTTP surface of the bot: health probes,
// runtime stats and the Telegram webhook receiver.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kayrademirkan/mebtg/internal/infrastructure/external/telegram"
)

// ══════════════════════════════════════════════════════════════════════════════
// SERVER CONFIGURATION
// ══════════════════════════════════════════════════════════════════════════════

// Config contains HTTP server configuration.
type Config struct {
	// Host is the address to bind.
	Host string

	// Port is the port to listen on.
	Port int

	// ReadTimeout is the maximum duration for reading the entire request.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum duration for writing the response.
	WriteTimeout time.Duration

	// IdleTimeout is the maximum duration for idle connections.
	IdleTimeout time.Duration

	// WebhookSecret is compared against the X-Telegram-Bot-Api-Secret-Token
	// header on webhook calls. Empty disables the check.
	WebhookSecret string
}

// DefaultConfig returns default server configuration.
func DefaultConfig() Config {
	return Config{
		Host:         "0.0.0.0",
		Port:         8080,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// Address returns the server address string.
func (c Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ══════════════════════════════════════════════════════════════════════════════
// DEPENDENCIES
// ══════════════════════════════════════════════════════════════════════════════

// UpdateSink receives decoded webhook updates. *telegram.Bot satisfies this.
type UpdateSink interface {
	HandleUpdate(ctx context.Context, update *telegram.Update) error
}

// Dependencies contains everything the HTTP handlers need.
type Dependencies struct {
	// Logger for structured logging.
	Logger *slog.Logger

	// Sink is the update pipeline fed by the webhook receiver.
	Sink UpdateSink

	// ReadyCheck reports whether the process can serve; nil means always
	// ready.
	ReadyCheck func(ctx context.Context) error

	// Stats returns runtime statistics for the stats endpoint.
	Stats func() map[string]any
}

// ══════════════════════════════════════════════════════════════════════════════
// SERVER
// ══════════════════════════════════════════════════════════════════════════════

// Server is the HTTP server.
type Server struct {
	config     Config
	deps       Dependencies
	httpServer *http.Server
	logger     *slog.Logger

	mu      sync.RWMutex
	running bool
}

// NewServer creates an HTTP server with the given configuration.
func NewServer(config Config, deps Dependencies) *Server {
	s := &Server{
		config: config,
		deps:   deps,
		logger: deps.Logger,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.HandleFunc("GET /stats", s.handleStats)
	mux.HandleFunc("POST /webhook", s.handleWebhook)

	s.httpServer = &http.Server{
		Addr:         config.Address(),
		Handler:      s.withMiddleware(mux),
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}
	return s
}

// Start starts the HTTP server and blocks until shutdown.
func (s *Server) Start() error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("server already running")
	}
	s.running = true
	s.mu.Unlock()

	s.logger.Info("starting HTTP server", "address", s.config.Address())

	err := s.httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// StartAsync starts the server in a goroutine.
func (s *Server) StartAsync() <-chan error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.Start(); err != nil {
			errCh <- err
		}
		close(errCh)
	}()
	return errCh
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	s.mu.Unlock()

	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// ══════════════════════════════════════════════════════════════════════════════
// MIDDLEWARE
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) withMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		start := time.Now()
		rw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic recovered",
					"error", rec,
					"stack", string(debug.Stack()),
					"path", r.URL.Path,
					"request_id", requestID,
				)
				writeJSONError(w, http.StatusInternalServerError, "internal_server_error")
			}
		}()

		next.ServeHTTP(rw, r)

		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.status,
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", requestID,
		)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.deps.ReadyCheck != nil {
		if err := s.deps.ReadyCheck(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"status": "not_ready",
				"reason": err.Error(),
			})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ready"})
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	if s.deps.Stats == nil {
		writeJSON(w, http.StatusOK, map[string]any{})
		return
	}
	writeJSON(w, http.StatusOK, s.deps.Stats())
}

// handleWebhook decodes a Telegram update and feeds it to the update
// pipeline. Telegram retries on non-2xx, so handler errors are logged but
// still answered with 200.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if s.config.WebhookSecret != "" {
		if r.Header.Get("X-Telegram-Bot-Api-Secret-Token") != s.config.WebhookSecret {
			writeJSONError(w, http.StatusUnauthorized, "invalid webhook secret")
			return
		}
	}
	if s.deps.Sink == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "webhook sink not configured")
		return
	}

	var update telegram.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeJSONError(w, http.StatusBadRequest, "malformed update")
		return
	}

	if err := s.deps.Sink.HandleUpdate(r.Context(), &update); err != nil {
		s.logger.Error("webhook update failed",
			"update_id", update.UpdateID,
			"error", err,
		)
	}
	w.WriteHeader(http.StatusOK)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
