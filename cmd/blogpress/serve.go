package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"blogpress/internal/blog"
	"blogpress/internal/cache"
	"blogpress/internal/database"
	"blogpress/internal/handlers"
	"blogpress/internal/middleware"
	"blogpress/internal/router"
	"blogpress/internal/session"
	"blogpress/internal/store"
)

const (
	shutdownTimeout = 30 * time.Second

	// Sign-in attempts allowed per client IP and window.
	loginAttempts = 5
	loginWindow   = time.Minute
)

func (a *app) newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Long: `Connects to PostgreSQL and Valkey, applies pending migrations, seeds
development data when APP_ENV=development and serves until SIGINT or
SIGTERM.`,
		RunE: a.serve,
	}
}

func (a *app) serve(cmd *cobra.Command, _ []string) error {
	cfg := a.cfg
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("configuration loaded", "env", cfg.Env, "addr", cfg.Addr())

	db, err := database.Connect(ctx, cfg.DSN())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		return err
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(ctx, db); err != nil {
			return err
		}
	}

	valkeyClient, err := cache.ConnectValkey(ctx, cfg.ValkeyAddr(), cfg.ValkeyPassword)
	if err != nil {
		return err
	}
	defer valkeyClient.Close()

	// Outside development, cookies are HTTPS-only.
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies, cfg.SessionTTL)

	svc := blog.NewService(
		store.NewPostStore(db),
		store.NewCategoryStore(db),
		store.NewCommentStore(db),
	)

	throttle := middleware.NewThrottle(loginAttempts, loginWindow)
	go throttle.Run(ctx)

	r := router.New(router.Deps{
		Sessions:      sessionStore,
		Auth:          handlers.NewAuth(store.NewUserStore(db), sessionStore),
		Admin:         handlers.NewAdmin(svc),
		Reader:        handlers.NewReader(svc),
		LoginThrottle: throttle,
		SecureCookies: secureCookies,
		TrustProxy:    cfg.TrustProxy,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}
	slog.Info("shutdown signal received")

	// Give active requests up to 30 seconds to complete.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	slog.Info("server stopped gracefully")
	return nil
}
