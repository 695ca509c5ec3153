// Package server provides the HTTP API and the preview pages for the resume builder.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/jonathan/resume-builder/internal/app"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/logging"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
)

// DefaultExportTimeout bounds a single export request.
const DefaultExportTimeout = 60 * time.Second

// Server represents the HTTP server
type Server struct {
	httpServer    *http.Server
	ctrl          *app.Controller
	logger        *logging.Logger
	rateLimiter   *ratelimit.Limiter
	sink          export.Sink
	exportTimeout time.Duration

	noticeMu sync.Mutex
	notice   string
}

// Config holds server configuration
type Config struct {
	Addr          string
	ExportTimeout time.Duration
	// Sink receives exports requested with ?save=true. Nil disables saving.
	Sink      export.Sink
	RateLimit *ratelimit.Config
	// Notice is reported once by GET /api/record, e.g. after stored data was reset on load.
	Notice string
}

// New creates a server around a loaded controller.
func New(ctrl *app.Controller, cfg Config, logger *logging.Logger) *Server {
	if logger == nil {
		logger = logging.Nop()
	}
	if cfg.ExportTimeout <= 0 {
		cfg.ExportTimeout = DefaultExportTimeout
	}

	s := &Server{
		ctrl:          ctrl,
		logger:        logger,
		rateLimiter:   ratelimit.New(cfg.RateLimit),
		sink:          cfg.Sink,
		exportTimeout: cfg.ExportTimeout,
		notice:        cfg.Notice,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Record
	mux.HandleFunc("GET /api/record", s.handleGetRecord)
	mux.HandleFunc("DELETE /api/record", s.handleClearRecord)
	mux.HandleFunc("GET /api/record/plaintext", s.handlePlainText)
	mux.HandleFunc("PUT /api/record/personal/{field}", s.handleSetPersonal)
	mux.HandleFunc("PUT /api/record/summary", s.handleSetSummary)
	mux.HandleFunc("PUT /api/record/template", s.handleSetTemplate)

	// Entries and skills
	mux.HandleFunc("POST /api/record/{section}", s.handleAddEntry)
	mux.HandleFunc("PATCH /api/record/{section}/{id}", s.handleUpdateEntry)
	mux.HandleFunc("DELETE /api/record/{section}/{id}", s.handleRemoveEntry)

	// Templates and rendering
	mux.HandleFunc("GET /api/templates", s.handleListTemplates)
	mux.HandleFunc("GET /preview", s.handlePreview)
	mux.HandleFunc("GET /print", s.handlePrint)

	// Export
	mux.HandleFunc("POST /api/export", s.handleExport)
	mux.HandleFunc("POST /api/export/stream", s.handleExportStream)

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.ExportTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the server's root handler with all middleware applied.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until ctx is cancelled, then shuts down gracefully and flushes pending edits.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	if err := s.ctrl.Close(); err != nil {
		s.logger.Error("failed to persist pending edits on shutdown", "error", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// takeNotice returns the load notice once.
func (s *Server) takeNotice() string {
	s.noticeMu.Lock()
	defer s.noticeMu.Unlock()
	n := s.notice
	s.notice = ""
	return n
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit rejects clients over their limit with 429.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := extractClientID(r)
		d := s.rateLimiter.Allow(clientID, r.Method, r.URL.Path)
		setRateLimitHeaders(w, d)

		if !d.Allowed {
			s.logger.Warn("rate limit exceeded", "client", clientID, "method", r.Method, "path", r.URL.Path)
			if d.RetryAfter > 0 {
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(d.RetryAfter.Seconds()))))
			}
			s.jsonResponse(w, http.StatusTooManyRequests, map[string]any{
				"error":   "rate_limit_exceeded",
				"message": "Rate limit exceeded. Please try again later.",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for the access log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Flush keeps streaming responses working through the recorder.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"remote", r.RemoteAddr,
			"duration", time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", "error", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// decodeJSON reads a JSON request body into v.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &RequestError{Message: fmt.Sprintf("invalid request body: %v", err)}
	}
	return nil
}

// extractClientID extracts the client identifier (the IP address) from the request.
func extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func setRateLimitHeaders(w http.ResponseWriter, d ratelimit.Decision) {
	if d.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
	}
}
