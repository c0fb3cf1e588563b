// Package server provides the HTTP API for résumé scoring.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/resume-scorer/internal/config"
	"github.com/jonathan/resume-scorer/internal/engine"
	"github.com/jonathan/resume-scorer/internal/server/middleware"
	"github.com/jonathan/resume-scorer/internal/server/ratelimit"
)

// MaxBatchSize caps the number of requests in one POST /score/batch call.
const MaxBatchSize = 50

// Server represents the HTTP server
type Server struct {
	httpServer   *http.Server
	engine       *engine.Engine
	rateLimiter  *ratelimit.Limiter
	jwtService   *JWTService
	workers      int
	taxonomyPath string
	handler      http.Handler
}

// Config holds server configuration
type Config struct {
	Port         int
	Workers      int               // Batch concurrency; 0 uses GOMAXPROCS
	TaxonomyPath string            // Reloaded by POST /taxonomy/reload; empty means embedded
	JWT          *config.JWTConfig // nil leaves the scoring endpoints open
	RateLimit    *ratelimit.Config // nil uses ratelimit.DefaultConfig
}

// New creates a new server instance
func New(eng *engine.Engine, cfg Config) *Server {
	s := &Server{
		engine:       eng,
		rateLimiter:  ratelimit.NewLimiter(cfg.RateLimit),
		workers:      cfg.Workers,
		taxonomyPath: cfg.TaxonomyPath,
	}
	if cfg.JWT != nil {
		s.jwtService = NewJWTService(cfg.JWT)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /taxonomy", s.handleTaxonomy)
	mux.Handle("POST /score", s.protect(s.handleScore))
	mux.Handle("POST /score/batch", s.protect(s.handleScoreBatch))
	mux.Handle("POST /analyze", s.protect(s.handleAnalyze))
	mux.Handle("POST /taxonomy/reload", s.protect(s.handleTaxonomyReload))

	s.handler = middleware.RequestID(s.withLogging(s.withCORS(s.withRateLimit(mux))))
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the fully wrapped request handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.rateLimiter.Stop()
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.rateLimiter.Stop()
	log.Println("Server stopped")
	return nil
}

// protect applies the JWT gate when one is configured.
func (s *Server) protect(h http.HandlerFunc) http.Handler {
	if s.jwtService == nil {
		return h
	}
	return middleware.AuthMiddleware(s.jwtService.AsTokenValidator())(h)
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+middleware.RequestIDHeader)
		w.Header().Set("Access-Control-Expose-Headers", middleware.RequestIDHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response code for the access log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := middleware.GetRequestID(r)
		log.Printf("[%s] %s %s %s", r.Method, r.URL.Path, r.RemoteAddr, id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("[%s] %s %s %d in %v", r.Method, r.URL.Path, id, rec.status, time.Since(start))
	})
}

// withRateLimit rejects clients over their per-endpoint budget with 429.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// extractClientID uses the remote IP. X-Forwarded-For is ignored since the server does
// not know which proxies to trust.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}
	if info.RetryAfter > 0 {
		secs := int(info.RetryAfter.Round(time.Second).Seconds())
		if secs < 1 {
			secs = 1
		}
		response["retry_after"] = secs
		w.Header().Set("Retry-After", fmt.Sprintf("%d", secs))
	}

	log.Printf("[rate-limit] %s %s %s: limit=%d", s.extractClientID(r), r.Method, r.URL.Path, info.Limit)
	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes err with the status HTTPStatus picks for it.
func (s *Server) errorResponse(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[error] %s %s %s: %v", middleware.GetRequestID(r), r.Method, r.URL.Path, err)
	}
	s.jsonResponse(w, status, newErrorBody(err))
}
