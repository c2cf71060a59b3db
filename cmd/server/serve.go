package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/auth"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/config"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/database"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/server"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

const (
	purgeSchedule   = "@every 10m"
	shutdownTimeout = 10 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

type sessionStore interface {
	auth.Store
	io.Closer
}

// newSessionStore picks Redis when REDIS_ADDR is set, otherwise an in-process
// store with a periodic purge.
func newSessionStore(ctx context.Context, cfg *config.Config) (sessionStore, error) {
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		slog.Info("session store: redis", "addr", cfg.RedisAddr)
		return auth.NewRedisStore(client), nil
	}

	store := auth.NewMemoryStore()
	if err := store.StartPurge(purgeSchedule); err != nil {
		return nil, fmt.Errorf("schedule session purge: %w", err)
	}
	slog.Info("session store: memory")
	return store, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := database.Init(cfg); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := newSessionStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	app := server.New(cfg, auth.NewSessions(store, cfg))

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "port", cfg.HTTPPort, "env", cfg.Env)
		errCh <- app.Listen(":" + cfg.HTTPPort)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	return app.ShutdownWithTimeout(shutdownTimeout)
}
