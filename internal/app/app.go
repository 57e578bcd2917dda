// Package app wires configuration, logging, the dataset store and the HTTP
// transport into a runnable service.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"dtxcli/internal/config"
	"dtxcli/internal/dataset"
	apperrors "dtxcli/internal/errors"
	"dtxcli/internal/infrastructure"
	customMiddleware "dtxcli/internal/middleware"
	"dtxcli/internal/services"
	handlers "dtxcli/internal/transport/http"
)

// Application represents the main application container
type Application struct {
	Config       *config.Config
	Router       *chi.Mux
	Server       *http.Server
	Store        *dataset.Store
	IndexService *services.IndexService
	AdminService *services.AdminService
	Logger       *slog.Logger
}

// NewApplication creates a new application instance with dependency injection
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("application starting",
		slog.String("source_file", cfg.Data.SourceFile),
		slog.String("sheet", cfg.Data.SheetName),
		slog.Int("port", cfg.Server.Port))

	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}

	store := dataset.NewStore(cfg.Data, logger)

	app := &Application{
		Config:       cfg,
		Store:        store,
		IndexService: services.NewIndexService(store, logger),
		AdminService: services.NewAdminService(store, logger),
		Logger:       logger,
	}

	app.setupRouter()
	app.createServer()

	return app, nil
}

// setupRouter configures the middleware chain and mounts all routes.
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(customMiddleware.Recoverer(a.Logger))

	if a.Config.Security.RateLimit.Enabled {
		limiter := customMiddleware.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger,
		)
		r.Use(limiter.Handler)
	}

	errorHandler := apperrors.NewErrorHandler(a.Logger)
	indexHandler := handlers.NewIndexHandler(a.IndexService, a.AdminService, a.Logger, errorHandler)
	healthHandler := handlers.NewHealthHandler(a.Store, a.Logger)

	r.Mount("/api", indexHandler.Routes())
	r.Get("/health", healthHandler.Health)
	r.Handle("/metrics", handlers.MetricsHandler())

	a.Router = r
}

// createServer builds the HTTP server from configuration.
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// warmDataset performs the one-time load so a broken source fails the
// process at startup instead of on the first query.
func (a *Application) warmDataset(ctx context.Context) error {
	snap, err := a.Store.Snapshot(ctx)
	if err != nil {
		return err
	}
	a.Logger.Info("dataset warmed",
		slog.Int("enterprise_rows", len(snap.Enterprises)),
		slog.Int("industry_rows", len(snap.Industries)))
	return nil
}

// Run starts the HTTP server and blocks until shutdown.
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer infrastructure.CloseLogger()

	if err := a.warmDataset(ctx); err != nil {
		return fmt.Errorf("dataset load failed: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("http server listening", slog.String("addr", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	a.Logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	a.Logger.Info("server stopped")
	return nil
}
