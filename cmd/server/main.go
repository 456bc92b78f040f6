package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"sheetsub/internal/config"
	"sheetsub/internal/core"
	"sheetsub/internal/logging"
	"sheetsub/internal/sheets"
	"sheetsub/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"expiring_window", cfg.Reconcile.ExpiringWindow,
		"retry_attempts", cfg.Sheets.RetryAttempts,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	// Wire the store collaborator and the reconciliation engine
	client := sheets.NewClient(cfg.Sheets)
	service := core.NewService(client, client, cfg.Reconcile.ExpiringWindow)

	server := web.NewServer(service, cfg)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	// Start server (uses addr from config internally)
	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}
