// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/sync/errgroup"

	"github.com/starford/hirelens/internal/api"
	"github.com/starford/hirelens/internal/feedback"
	"github.com/starford/hirelens/internal/index"
	"github.com/starford/hirelens/internal/mcpserver"
	"github.com/starford/hirelens/internal/session"
	"github.com/starford/hirelens/internal/sse"
)

func newApplication(opts []Option) (*application, error) {
	app := &application{logOutput: os.Stdout}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	return app, nil
}

// Run starts the HTTP service with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(app.logOutput, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("cms_mode", cfg.CMS.Mode),
		slog.String("seed_dir", cfg.CMS.SeedDir),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	c, err := buildCore(app, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	// SSE broker.
	broker := sse.NewBroker(cfg.SSE.CatalogThrottle)

	sessions := session.NewManager(c.generator,
		session.WithDelays(cfg.Analysis.KindDelays()),
		session.WithTTL(cfg.Analysis.SessionTTL),
		session.WithPublisher(broker),
		session.WithMetrics(c.metrics),
		session.WithLogger(logger),
	)

	// Build API handler and router.
	h := api.NewHandler(c.catalog, sessions, c.inspector, feedback.NewService(logger, c.metrics), cfg.Analysis.MaxFiles)
	apiRouter := api.NewRouter(h, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker)

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.App.HTTP.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", c.metrics.Handler())

	// Mount API routes under /api. Everything else is the page table.
	r.Mount("/api", apiRouter)
	r.NotFound(api.PageRoutes)

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Start seed watcher with SSE callback.
	if c.db != nil && cfg.CMS.Watch {
		g.Go(func() error {
			err := index.Watch(gCtx, c.db, c.store, cfg.CMS.SeedDir, logger, func(kind, collection string) {
				broker.PublishCollectionEvent(kind, collection)
			})
			if err != nil {
				logger.Error("seed watcher stopped", slog.String("error", err.Error()))
			}
			return nil
		})
	}

	// Sweep idle sessions; cancels pending jobs on shutdown.
	g.Go(func() error {
		sessions.Run(gCtx, cfg.Analysis.SweepInterval)
		return nil
	})

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		// Closing the broker ends open event streams so Shutdown can drain.
		broker.Close()
		sessions.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return errShutdown
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errShutdown) {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// errShutdown cancels the group context so background loops stop once the
// server is shutting down.
var errShutdown = errors.New("shutdown")

// RunMCP serves the MCP tool server on stdin/stdout. Logs go to stderr
// since stdout carries the protocol.
func RunMCP(ctx context.Context, opts ...Option) error {
	app, err := newApplication(append([]Option{WithLogOutput(os.Stderr)}, opts...))
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(app.logOutput, &slog.HandlerOptions{
		Level: app.config.App.LogLevel,
	}))
	slog.SetDefault(logger)

	c, err := buildCore(app, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	logger.Info("MCP server starting", slog.String("cms_mode", app.config.CMS.Mode))
	return mcpserver.New(c.catalog, c.generator, c.inspector).ServeStdio()
}
