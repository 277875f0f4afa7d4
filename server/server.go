package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/poiesic/aiosion/config"
	"github.com/poiesic/aiosion/core"
	"golang.org/x/time/rate"
)

// Generator serves generation requests. Generate takes an explicit provider
// name; GeneratePrimary uses the configured primary.
type Generator interface {
	Generate(ctx context.Context, prompt, provider string) (string, error)
	GeneratePrimary(ctx context.Context, prompt string) (string, error)
}

// Analyzer serves NLP requests. Its operations never fail; they fall back to
// empty results.
type Analyzer interface {
	Tokenize(ctx context.Context, text string) []string
	POSTag(ctx context.Context, text string) []core.WordTag
	NamedEntities(ctx context.Context, text string) []core.EntityLabel
	SentimentAnalysis(ctx context.Context, text string) core.SentimentRecord
	Summarize(ctx context.Context, text string, ratio float64) string
}

// History lists journaled generation requests, newest first.
type History interface {
	GetRecentGenerationRecords(ctx context.Context, limit int) ([]*core.GenerationRecord, error)
}

// Server is the HTTP transport.
type Server struct {
	cfg      config.ServerConfig
	gen      Generator
	analyzer Analyzer
	history  History
	limiter  *rate.Limiter
	logger   *slog.Logger
	handler  http.Handler
}

// Option configures a Server.
type Option func(*Server)

// WithHistory enables GET /history.
func WithHistory(h History) Option {
	return func(s *Server) {
		s.history = h
	}
}

// WithLogger sets the access and error logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New builds a server. A positive cfg.RateLimit enables a global token bucket
// holding cfg.Burst tokens.
func New(cfg config.ServerConfig, gen Generator, analyzer Analyzer, opts ...Option) (*Server, error) {
	if gen == nil || analyzer == nil {
		return nil, errors.New("server: generator and analyzer are required")
	}
	s := &Server{
		cfg:      cfg,
		gen:      gen,
		analyzer: analyzer,
		logger:   slog.Default().With("component", "http"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)
	s.handler = s.withRequestID(s.withAccessLog(s.withRecover(s.withRateLimit(s.withTimeout(mux)))))
	return s, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run listens on the configured address and serves until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("shutdown failed", "err", err)
		}
	}()

	s.logger.Info("serving", "addr", ln.Addr().String())
	err := srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		<-done
		return nil
	}
	return err
}
