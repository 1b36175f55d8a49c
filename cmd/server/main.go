// Package main is the entry point for the KORMI community site API.
//
// The main package stays small. Its job is to:
// 1. Read configuration (environment, optionally a .env file)
// 2. Create dependencies (logger, store)
// 3. Start the server and block until a stop signal arrives
//
// All actual logic lives in the internal/ packages.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/ghiffarsabda/kormimvp/internal/config"
	"github.com/ghiffarsabda/kormimvp/internal/repository"
	"github.com/ghiffarsabda/kormimvp/internal/repository/memory"
	"github.com/ghiffarsabda/kormimvp/internal/repository/sqlstore"
	"github.com/ghiffarsabda/kormimvp/internal/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// === 1. CONFIGURATION ===
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// === 2. LOGGING ===
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	// === 3. SIGNALS ===
	// ctx is cancelled on Ctrl+C or SIGTERM; Start then shuts down gracefully.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// === 4. STORE ===
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	logger.Info("store ready", slog.String("driver", cfg.StoreDriver))

	if cfg.SeedOnStart {
		counts, err := repository.Seed(ctx, store)
		if err != nil {
			return fmt.Errorf("seeding store: %w", err)
		}
		logger.Info("seeded demo data",
			slog.Int("sportCategories", counts.SportCategories),
			slog.Int("organizations", counts.Organizations),
			slog.Int("events", counts.Events),
			slog.Int("news", counts.News),
			slog.Int("gallery", counts.Gallery),
		)
	}

	// === 5. SERVER ===
	srv, err := server.New(ctx, server.Config{
		Port:               cfg.Port,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		JWTSecret:          cfg.JWTSecret,
		AdminUsername:      cfg.AdminUsername,
		AdminPassword:      cfg.AdminPassword,
	}, logger, store)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	// Start blocks until ctx is cancelled.
	return srv.Start(ctx)
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

// openStore picks the storage backend. Data in the memory store lives only
// as long as the process.
func openStore(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	switch cfg.StoreDriver {
	case config.StoreSQLite:
		// os.MkdirAll is `mkdir -p`; a fresh checkout has no data/ dir yet.
		dir := filepath.Dir(cfg.DBPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating database directory %s: %w", dir, err)
		}
		db, err := sqlstore.Open(ctx, sqlstore.DriverSQLite, cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		return db, nil
	case config.StorePostgres:
		db, err := sqlstore.Open(ctx, sqlstore.DriverPostgres, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("opening postgres store: %w", err)
		}
		return db, nil
	default:
		return memory.New(), nil
	}
}
