// Package server provides the local HTTP API for a single tailoring session.
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

	"github.com/jonathan/resume-tailor/internal/ingestion"
	"github.com/jonathan/resume-tailor/internal/server/ratelimit"
	"github.com/jonathan/resume-tailor/internal/workflow"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	workflow    *workflow.Workflow
	postings    ingestion.JobPostingOptions
	rateLimiter *ratelimit.Limiter
}

// Config holds server configuration
type Config struct {
	Addr     string
	Workflow *workflow.Workflow
	// JobPostings configures POST /intake/job-posting.
	JobPostings ingestion.JobPostingOptions
	// RateLimit defaults to ratelimit.LoadConfig().
	RateLimit *ratelimit.Config
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Workflow == nil {
		return nil, fmt.Errorf("server requires a workflow")
	}
	rateConfig := cfg.RateLimit
	if rateConfig == nil {
		rateConfig = ratelimit.LoadConfig()
	}

	s := &Server{
		workflow:    cfg.Workflow,
		postings:    cfg.JobPostings,
		rateLimiter: ratelimit.NewLimiter(rateConfig),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Session
	mux.HandleFunc("GET /session", s.handleSession)
	mux.HandleFunc("POST /session/connect", s.handleConnect)
	mux.HandleFunc("POST /session/disconnect", s.handleDisconnect)
	mux.HandleFunc("POST /reset", s.handleReset)

	// Phases
	mux.HandleFunc("POST /intake", s.handleIntake)
	mux.HandleFunc("POST /intake/job-posting", s.handleJobPosting)
	mux.HandleFunc("POST /review/back", s.handleBackToIntake)
	mux.HandleFunc("PUT /review", s.handleSaveEdits)
	mux.HandleFunc("POST /review/confirm", s.handleConfirm)
	mux.HandleFunc("POST /result/back", s.handleBackToReview)

	// Downloads
	mux.HandleFunc("GET /result/resume.pdf", s.handleResumePDF)
	mux.HandleFunc("GET /result/cover-letter.pdf", s.handleCoverLetterPDF)
	mux.HandleFunc("GET /result/ats.xlsx", s.handleATSReport)

	addr := cfg.Addr
	if addr == "" {
		addr = "127.0.0.1:8080"
	}
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 10 * time.Minute, // Long timeout for model calls
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped request handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for requests and blocks until ctx is done or the
// process receives SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[server] session %s listening on %s", s.workflow.ID(), s.httpServer.Addr)
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

	log.Println("[server] shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s.rateLimiter.Stop()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Println("[server] stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("[server] %s %s completed in %v", r.Method, r.URL.Path, time.Since(start).Round(time.Millisecond))
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[server] error encoding JSON response: %v", err)
	}
}

// errorResponse writes the error envelope for err. Route and notice come
// from the workflow so the client can follow a fallback transition.
func (s *Server) errorResponse(w http.ResponseWriter, err error) {
	status, code := HTTPStatus(err)
	s.jsonResponse(w, status, s.envelope(err, code))
}

func (s *Server) envelope(err error, code string) ErrorResponse {
	resp := newErrorResponse(err, code)
	snapshot := s.workflow.Snapshot()
	resp.Route = snapshot.State
	resp.Notice = snapshot.Notice
	return resp
}

// extractClientID extracts the client identifier from the request.
// The server binds to loopback by default, so RemoteAddr is trusted.
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

// rateLimitResponse writes a 429 Too Many Requests response in the error envelope.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	if info.RetryAfter > 0 {
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds()+0.999)))
	}

	log.Printf("[rate-limit] limit=%d remaining=%d reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, ErrorResponse{
		Error: "Rate limit exceeded. Please try again later.",
		Code:  CodeRateLimitExceeded,
		Route: s.workflow.State(),
	})
}
