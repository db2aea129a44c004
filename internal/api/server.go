// Package api serves quiz generation and feedback over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/abhisek/quizzy/internal/quizgen"
)

// Generator produces quiz content. *quizgen.Generator implements it.
type Generator interface {
	GenerateQuestions(ctx context.Context, cfg quizgen.QuizConfig) ([]quizgen.Question, error)
	GenerateFeedback(ctx context.Context, in quizgen.FeedbackInput) (string, error)
}

// ProviderStatus is reported by GET /api/quiz/test.
type ProviderStatus struct {
	APIKeyConfigured bool
	Model            string
}

// Options configures a Server.
type Options struct {
	// CORSOrigins lists allowed browser origins. "*" allows any origin
	// but then credentials are not allowed.
	CORSOrigins []string

	// RequestTimeout bounds each request, including quota waits.
	RequestTimeout time.Duration

	Provider ProviderStatus
	Logger   *slog.Logger
}

// Server is the quiz HTTP API.
type Server struct {
	gen    Generator
	opts   Options
	logger *slog.Logger
	router chi.Router
}

// NewServer builds the router and middleware stack.
func NewServer(gen Generator, opts Options) *Server {
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 3 * time.Minute
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{gen: gen, opts: opts, logger: logger}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID, middleware.RealIP)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  slog.NewLogLogger(s.logger.Handler(), slog.LevelInfo),
		NoColor: true,
	}))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.opts.RequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.opts.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: !slices.Contains(s.opts.CORSOrigins, "*"),
		MaxAge:           300,
	}))

	r.Get("/", s.handleRoot)

	r.Route("/api/quiz", func(qr chi.Router) {
		qr.Post("/generate", s.handleGenerate)
		qr.Post("/feedback", s.handleFeedback)
		qr.Get("/test", s.handleProviderTest)
	})
	r.Post("/api/users", s.handleSaveUser)

	r.NotFound(s.handleNotFound)
	r.MethodNotAllowed(s.handleNotFound)

	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen on %s: %w", addr, err)
	case <-ctx.Done():
	}

	s.logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
