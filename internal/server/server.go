// Package server provides the HTTP server for the account API.
// It wires the store, services and handlers together, configures routing and
// middleware, and manages the server lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/teambitewolf/news-hole/internal/auth"
	"github.com/teambitewolf/news-hole/internal/config"
	"github.com/teambitewolf/news-hole/internal/constants"
	"github.com/teambitewolf/news-hole/internal/database"
	"github.com/teambitewolf/news-hole/internal/handlers"
	"github.com/teambitewolf/news-hole/internal/middleware"
	"github.com/teambitewolf/news-hole/internal/repository"
	"github.com/teambitewolf/news-hole/internal/service"
	"github.com/teambitewolf/news-hole/internal/utils/ratelimit"
	"github.com/teambitewolf/news-hole/migrations"
)

// Handlers contains all HTTP handlers for the application.
type Handlers struct {
	// AccountHandler serves the account and password reset endpoints
	AccountHandler *handlers.AccountHandler
}

// Server represents the API server. It encapsulates all server components
// and handles startup and graceful shutdown.
type Server struct {
	// Config contains application configuration
	Config *config.AppConfig

	// Db provides database access
	Db *database.Pool

	// Handlers contains all HTTP request handlers
	Handlers *Handlers

	router     chi.Router
	jwtService *auth.JWTService
	accounts   *service.AccountService
	emails     handlers.EmailServiceInterface
	rateLimits *ratelimit.Store
	proxies    *middleware.TrustedProxies
	httpServer *http.Server
	stopTasks  context.CancelFunc
}

// Option customizes a Server during construction
type Option func(*Server)

// WithEmailSender replaces the email service built from configuration
func WithEmailSender(sender handlers.EmailServiceInterface) Option {
	return func(s *Server) {
		s.emails = sender
	}
}

// NewServer connects to the configured database, runs migrations and
// returns a server ready to start.
func NewServer(cfg *config.AppConfig, opts ...Option) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to set up database: %w", err)
	}

	if err := migrations.NewMigrator(db).RunMigrations(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	s, err := New(cfg, db, opts...)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// New builds a server on an already opened and migrated database.
//
// The initialization order is: auth providers, repositories, services,
// handlers, routes.
func New(cfg *config.AppConfig, db *database.Pool, opts ...Option) (*Server, error) {
	s := &Server{
		Config: cfg,
		Db:     db,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.jwtService = auth.NewJWTService(&cfg.JWT)

	proxies, err := middleware.NewTrustedProxies(cfg.RateLimit.TrustedProxies)
	if err != nil {
		return nil, fmt.Errorf("failed to parse trusted proxies: %w", err)
	}
	s.proxies = proxies

	if err := s.setupServices(); err != nil {
		return nil, fmt.Errorf("failed to set up services: %w", err)
	}

	s.Handlers = &Handlers{
		AccountHandler: handlers.NewAccountHandler(s.accounts, s.emails, s.jwtService, cfg.Reset.BaseURL),
	}

	s.rateLimits = ratelimit.NewStore(ratelimit.Rate{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		Burst:             cfg.RateLimit.Burst,
	}, constants.RateLimitIdleExpiry)

	s.SetupRoutes()

	s.httpServer = &http.Server{
		Addr:         cfg.Server.ServerAddress(),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  constants.DefaultIdleTimeout,
	}

	return s, nil
}

// setupServices creates the repositories and the services on top of them.
func (s *Server) setupServices() error {
	users := repository.NewUserRepository(s.Db)
	resets := repository.NewPasswordResetRepository(s.Db)

	s.accounts = service.NewAccountService(
		users,
		resets,
		auth.NewBcryptHasher(),
		service.WithRounds(s.Config.PasswordHash.Rounds),
	)

	if s.emails == nil {
		emails, err := service.NewEmailService(&s.Config.Email)
		if err != nil {
			return fmt.Errorf("failed to set up email service: %w", err)
		}
		s.emails = emails
	}

	return nil
}

// Start starts the HTTP server and blocks until it fails or a shutdown
// signal is received, then shuts down gracefully.
func (s *Server) Start() error {
	serverErrors := make(chan error, 1)

	go func() {
		log.Info().
			Str("address", s.Config.Server.ServerAddress()).
			Msg("Starting server")

		serverErrors <- s.httpServer.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	s.SetupMaintenanceTasks()

	select {
	case err := <-serverErrors:
		s.stopMaintenanceTasks()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info().
			Str("signal", sig.String()).
			Msg("Shutdown signal received")

		ctx, cancel := context.WithTimeout(context.Background(), s.Config.Server.ShutdownTimeout)
		defer cancel()

		if err := s.Shutdown(ctx); err != nil {
			if closeErr := s.httpServer.Close(); closeErr != nil {
				log.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

// Shutdown waits for in-flight requests, stops background tasks and closes
// the database.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	log.Info().Msg("Server stopped gracefully")

	s.stopMaintenanceTasks()

	s.Db.Close()
	log.Info().Msg("Database connection closed")

	return nil
}

// SetupMaintenanceTasks starts background eviction of idle rate limiters.
// Expired reset entries are not swept; they stay invalid until consumed or
// deleted.
func (s *Server) SetupMaintenanceTasks() {
	ctx, cancel := context.WithCancel(context.Background())
	s.stopTasks = cancel
	go s.rateLimits.Run(ctx, constants.RateLimitCleanupInterval)
}

func (s *Server) stopMaintenanceTasks() {
	if s.stopTasks != nil {
		s.stopTasks()
		s.stopTasks = nil
	}
}
