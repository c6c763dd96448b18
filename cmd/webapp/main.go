package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/zusdev/zus-scraper/internal/config"
	"github.com/zusdev/zus-scraper/internal/webapp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Logging)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := newSessionStore(ctx, cfg, logger)

	client := webapp.NewClient(cfg.Webapp.BackendAPIURL, &http.Client{
		Timeout: cfg.Webapp.RequestTimeout,
	})

	srv := webapp.NewServer(client, store, cfg.Webapp.HistoryLimit)

	server := &http.Server{
		Addr:         net.JoinHostPort(cfg.Webapp.Host, cfg.Webapp.Port),
		Handler:      srv.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		logger.Info("shutting down server...")
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Webapp.ShutdownTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", "error", err)
		}
	}()

	logger.Info("server starting", "addr", server.Addr, "backend", cfg.Webapp.BackendAPIURL)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// newSessionStore connects to Redis when an address is configured and
// falls back to the in-memory store otherwise.
func newSessionStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) webapp.SessionStore {
	if cfg.Redis.Addr == "" {
		logger.Info("no Redis configured, using in-memory sessions")
		return webapp.NewMemoryStore()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis unreachable, using in-memory sessions", "addr", cfg.Redis.Addr, "error", err)
		client.Close()
		return webapp.NewMemoryStore()
	}

	logger.Info("using Redis sessions", "addr", cfg.Redis.Addr, "ttl", cfg.Webapp.SessionTTL)
	return &webapp.RedisStore{Client: client, TTL: cfg.Webapp.SessionTTL}
}

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
