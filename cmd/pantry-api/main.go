// Command pantry-api serves a seeded, in-memory copy of the storefront API
// for local development and demos.
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"pantry/internal/apistub"
)

const shutdownTimeout = 5 * time.Second

func main() {
	// A missing .env is fine; the environment may already be set
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(logger); err != nil {
		logger.Fatal("pantry-api failed", zap.Error(err))
	}
}

func run(logger *zap.Logger) error {
	secret := os.Getenv("SECRET_KEY")
	if secret == "" {
		secret = "pantry-dev-secret"
		logger.Warn("SECRET_KEY not set, using the development default")
	}

	catalog := apistub.SeedCatalog()
	user := envOr("DEMO_USER", "demo")
	if err := catalog.AddUser(user, envOr("DEMO_PASSWORD", "demo")); err != nil {
		return err
	}

	srv, err := apistub.NewServer(catalog, apistub.Options{
		Secret:     secret,
		AccessTTL:  envDuration(logger, "JWT_ACCESS_EXPIRE"),
		RefreshTTL: envDuration(logger, "JWT_REFRESH_EXPIRE"),
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              net.JoinHostPort(envOr("HOST", "127.0.0.1"), envOr("PORT", "5000")),
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", httpServer.Addr), zap.String("demo_user", user))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envDuration returns 0, meaning the server default, when key is unset or
// unparseable
func envDuration(logger *zap.Logger, key string) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		logger.Warn("ignoring bad duration", zap.String("key", key), zap.String("value", v))
		return 0
	}
	return d
}
