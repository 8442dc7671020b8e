package app

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

	"stream-api/internal/audit"
	"stream-api/internal/config"
	"stream-api/internal/database"
	"stream-api/internal/handler"
	"stream-api/internal/middleware"
	"stream-api/internal/repository"
	"stream-api/internal/router"
	"stream-api/internal/security"
	"stream-api/internal/service"
)

type App struct {
	cfg       *config.Config
	db        *database.DB
	server    *http.Server
	stopAudit func()
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := database.New(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := db.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensuring schema: %w", err)
	}

	if cfg.SeedTestData {
		if err := db.SeedTestData(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("seeding test data: %w", err)
		}
	}

	// A fresh keypair per process start. Restarting the server invalidates
	// every previously issued token.
	keys, err := security.GenerateSigningKeys()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("generating signing keys: %w", err)
	}

	userRepo := repository.NewUserRepository(db.Pool)
	movieRepo := repository.NewMovieRepository(db.Pool)

	issuer := security.NewTokenIssuer(keys, cfg.TokenIssuer, cfg.TokenTTL)
	verifier := security.NewTokenVerifier(keys)
	policy := security.DefaultPolicy(cfg.BaseURL)

	auditBus := audit.NewBus()
	auditEvents, stopAudit := auditBus.Subscribe()
	go audit.LogSink(auditEvents)

	authService := service.NewAuthService(userRepo, issuer, auditBus)
	movieService := service.NewMovieService(movieRepo)
	userService := service.NewUserService(userRepo, auditBus)

	authMiddleware := middleware.NewAuthMiddleware(authService, verifier, policy)
	metrics := middleware.NewMetrics()

	handlers := router.Handlers{
		Auth:  handler.NewAuthHandler(authService),
		Movie: handler.NewMovieHandler(movieService),
		User:  handler.NewUserHandler(userService),
	}

	mux := router.New(cfg, authMiddleware, handlers, metrics)

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           mux,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{cfg: cfg, db: db, server: server, stopAudit: stopAudit}, nil
}

// Run serves HTTP until the context is canceled or a shutdown signal
// arrives, then drains in-flight requests.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", a.server.Addr, "base_url", a.cfg.BaseURL)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.stopAudit()
		a.db.Close()
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	err := a.server.Shutdown(shutdownCtx)
	a.stopAudit()
	a.db.Close()
	if err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	return nil
}
