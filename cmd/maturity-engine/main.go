package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/terra-clan/maturity-engine/internal/api"
	"github.com/terra-clan/maturity-engine/internal/assessment"
	"github.com/terra-clan/maturity-engine/internal/catalog"
	"github.com/terra-clan/maturity-engine/internal/cleanup"
	"github.com/terra-clan/maturity-engine/internal/config"
	"github.com/terra-clan/maturity-engine/internal/leads"
	"github.com/terra-clan/maturity-engine/internal/ratelimit"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.Info("starting maturity-engine",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	// A broken catalog must never be served
	cat, err := catalog.Load(cfg.Catalog.Dir)
	if err != nil {
		slog.Error("failed to load catalog", "dir", cfg.Catalog.Dir, "error", err)
		os.Exit(1)
	}
	engine := assessment.NewEngine(cat)

	// Create context for initialization
	initCtx, initCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer initCancel()

	// Lead repository (optional)
	var repo leads.Repository
	if cfg.Database.Enabled {
		pg, err := leads.NewPostgresRepository(initCtx, leads.PostgresConfig{
			DSN:          cfg.Database.DSN,
			MaxOpenConns: int32(cfg.Database.MaxOpenConns),
			MaxIdleConns: int32(cfg.Database.MaxIdleConns),
		})
		if err != nil {
			slog.Error("failed to create database repository", "error", err)
			os.Exit(1)
		}

		slog.Info("running database migrations", "dir", cfg.Database.MigrationsDir)
		if err := pg.Migrate(initCtx, cfg.Database.MigrationsDir); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}

		slog.Info("database connected successfully")
		repo = pg
	} else {
		slog.Warn("database disabled, contact and newsletter forms are unavailable")
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Rate-limit store: Redis when enabled, otherwise in-memory with a sweeper
	var store ratelimit.Store
	var redisStore *ratelimit.RedisStore
	if cfg.Redis.Enabled {
		redisStore, err = ratelimit.NewRedisStore(initCtx, cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			slog.Error("failed to create redis store", "error", err)
			os.Exit(1)
		}
		store = redisStore
	} else {
		memory := ratelimit.NewMemoryStore()
		cleanup.NewCleaner(memory, cfg.Cleanup.Interval).Start(ctx)
		store = memory
	}

	// Setup HTTP server
	server := api.NewServer(cfg.Server, cfg.CORS, api.Dependencies{
		Engine:  engine,
		Leads:   leads.NewService(repo),
		Limiter: ratelimit.NewLimiter(store, cfg.RateLimit.Requests, cfg.RateLimit.Window),
		Store:   store,
	})
	httpServer := &http.Server{
		Addr:        fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:     server.Router(),
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("HTTP server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down gracefully...")

	// Cancel context to stop background workers
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	if repo != nil {
		if err := repo.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}
	if redisStore != nil {
		if err := redisStore.Close(); err != nil {
			slog.Error("redis close error", "error", err)
		}
	}

	slog.Info("maturity-engine stopped")
}
