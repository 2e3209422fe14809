package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/TimeAway/blog-design/db"
	"github.com/TimeAway/blog-design/internal/config"
	"github.com/TimeAway/blog-design/internal/database"
	"github.com/TimeAway/blog-design/internal/gallery"
	"github.com/TimeAway/blog-design/internal/registry"
	"github.com/TimeAway/blog-design/internal/server"
	"github.com/TimeAway/blog-design/internal/store"
	"github.com/TimeAway/blog-design/static"
)

func newServeCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the alert preview server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), *configFile)
		},
	}
}

func serve(ctx context.Context, configFile string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := parseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("starting blogdesign", "version", version, "port", cfg.Port)

	if err := os.MkdirAll(cfg.DataDir, 0750); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	sqlDB, err := database.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer sqlDB.Close()

	if ctx == nil {
		ctx = context.Background()
	}
	schemaVersion, err := database.Migrate(ctx, sqlDB, db.MigrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}
	slog.Info("database ready", "path", cfg.DatabasePath, "schema_version", schemaVersion)

	entries := gallery.Default()
	if cfg.FixturesPath != "" {
		if entries, err = gallery.Load(cfg.FixturesPath); err != nil {
			return fmt.Errorf("loading fixtures: %w", err)
		}
	}
	slog.Info("fixtures loaded", "count", len(entries), "path", cfg.FixturesPath)

	reg := registry.New(store.NewSQLStore(sqlDB))
	srv := server.New(cfg, reg, entries, static.FS)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", fmt.Sprintf("http://localhost:%d", cfg.Port))
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		slog.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
