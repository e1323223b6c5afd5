package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jonathan/curriculum-curator/internal/db"
	"github.com/jonathan/curriculum-curator/internal/observability"
	"github.com/jonathan/curriculum-curator/internal/pipeline"
	"github.com/jonathan/curriculum-curator/internal/server/ratelimit"
	"github.com/jonathan/curriculum-curator/internal/types"
)

// multipartOverhead is accepted on top of the upload limit for form boundaries and headers.
const multipartOverhead = 1 << 20

// CurriculumGenerator synthesizes a curriculum for a free-text topic.
type CurriculumGenerator interface {
	FromTopic(ctx context.Context, topic string) (*types.Curriculum, error)
}

// DocumentReader reads back processed documents.
type DocumentReader interface {
	GetDocument(ctx context.Context, fileID string) (*types.DocumentResult, error)
	ListDocuments(ctx context.Context, limit int) ([]db.DocumentSummary, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer     *http.Server
	pipeline       *pipeline.Pipeline
	generator      CurriculumGenerator
	documents      DocumentReader
	rateLimiter    *ratelimit.Limiter
	log            *observability.Logger
	maxUploadBytes int
}

// Config holds server configuration
type Config struct {
	Port      int
	Pipeline  *pipeline.Pipeline
	Generator CurriculumGenerator // optional; POST /curriculum answers 503 without it
	Documents DocumentReader      // optional; /documents answers 503 without it
	RateLimit *ratelimit.Config   // nil uses ratelimit.DefaultConfig
	Log       *observability.Logger
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Pipeline == nil {
		return nil, fmt.Errorf("server requires a pipeline")
	}

	s := &Server{
		pipeline:       cfg.Pipeline,
		generator:      cfg.Generator,
		documents:      cfg.Documents,
		rateLimiter:    ratelimit.NewLimiter(cfg.RateLimit),
		log:            observability.OrNop(cfg.Log),
		maxUploadBytes: cfg.Pipeline.MaxUploadBytes,
	}
	if s.maxUploadBytes <= 0 {
		s.maxUploadBytes = pipeline.DefaultMaxUploadBytes
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 300 * time.Second, // section resolution calls several providers per section
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /process-file", s.handleProcessFile)
	mux.HandleFunc("POST /curriculum", s.handleCurriculum)
	mux.HandleFunc("POST /section-resources", s.handleSectionResources)
	mux.HandleFunc("POST /section-resources/stream", s.handleSectionResourcesStream)
	mux.HandleFunc("GET /search", s.handleSearch)
	mux.HandleFunc("GET /documents", s.handleListDocuments)
	mux.HandleFunc("GET /documents/{id}", s.handleGetDocument)

	return s.withRateLimit(s.withLogging(s.withCORS(mux)))
}

// Start listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.rateLimiter.Stop()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s.rateLimiter.Stop()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.log.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for request logs.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Flush keeps SSE streaming working through the logging middleware.
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
		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"remote", r.RemoteAddr,
			"duration", time.Since(start),
		)
	})
}

// withRateLimit rejects clients that exceed the per-route limits
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(clientID(r), r.URL.Path, r.Method)
		if info.Limit > 0 {
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		}
		if !allowed {
			retryAfter := int(info.RetryAfter.Seconds()) + 1
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			s.log.Warn("rate limit exceeded", "path", r.URL.Path, "client", clientID(r))
			s.jsonResponse(w, http.StatusTooManyRequests, map[string]any{
				"error":      "Rate limit exceeded. Please try again later.",
				"retryAfter": retryAfter,
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientID is the request's remote IP.
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
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
		s.log.Error("failed to encode JSON response", "error", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// handleError maps err to a status and client message, logging server-side failures.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", "path", r.URL.Path, "status", status, "error", err)
	} else {
		s.log.Debug("request rejected", "path", r.URL.Path, "status", status, "error", err)
	}
	s.errorResponse(w, status, userMessage(err, s.maxUploadBytes))
}
