// Package server exposes the interview operations over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/spigell/hh-interviewer/internal/interview"
)

// Interviewer is the subset of interview.Service the handlers use.
type Interviewer interface {
	StartInterview(ctx context.Context, req interview.StartRequest) (interview.StartResult, error)
	SubmitAnswer(ctx context.Context, sessionID, answer string) (interview.SubmitResult, error)
	Report(sessionID string) (interview.Report, error)
}

// Config controls the listener.
type Config struct {
	Address         string        `mapstructure:"address"`
	AllowedOrigins  []string      `mapstructure:"allowed-origins"`
	ReadTimeout     time.Duration `mapstructure:"read-timeout"`
	WriteTimeout    time.Duration `mapstructure:"write-timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown-timeout"`
}

// DefaultConfig listens on :8000 and allows any origin.
func DefaultConfig() Config {
	return Config{
		Address:         ":8000",
		AllowedOrigins:  []string{"*"},
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    2 * time.Minute,
		ShutdownTimeout: 10 * time.Second,
	}
}

type Server struct {
	cfg     Config
	service Interviewer
	logger  *zap.Logger
}

func New(cfg Config, service Interviewer, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Server{cfg: cfg, service: service, logger: logger}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(chiMiddleware.Recoverer)
	r.Use(CORS(s.cfg.AllowedOrigins))

	r.Get("/", s.handleRoot)
	r.Post("/start", s.handleStart)
	r.Post("/submit", s.handleSubmit)
	r.Get("/sessions/{sessionID}", s.handleReport)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.Handler(),
		ReadTimeout:       s.cfg.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      s.cfg.WriteTimeout,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	s.logger.Info("server stopped")
	return nil
}
