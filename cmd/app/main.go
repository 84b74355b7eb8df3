package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ScottNealon/ArtifactScouter_Go/internal/config"
	"github.com/ScottNealon/ArtifactScouter_Go/internal/gamedata"
	"github.com/ScottNealon/ArtifactScouter_Go/internal/handler"
	"github.com/ScottNealon/ArtifactScouter_Go/internal/potential"
	"github.com/ScottNealon/ArtifactScouter_Go/internal/power"
	"github.com/ScottNealon/ArtifactScouter_Go/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := config.ValidateEnv(cfg.Environment); err != nil {
		log.Fatalf("Environment validation failed: %v", err)
	}

	initLogger(cfg)
	handler.InitValidator()

	tables, err := gamedata.LoadTables(cfg.DataDir, cfg.SchemaDir)
	if err != nil {
		slog.Error("Failed to load game data tables", "error", err, "data_dir", cfg.DataDir)
		os.Exit(1)
	}

	profiles, err := gamedata.LoadProfiles(cfg.ProfilePath)
	if err != nil {
		slog.Error("Failed to load scoring profiles", "error", err, "path", cfg.ProfilePath)
		os.Exit(1)
	}

	baseStats, err := power.NewTableProvider(cfg.BaseStatsPath)
	if err != nil {
		slog.Error("Failed to load base stats", "error", err, "path", cfg.BaseStatsPath)
		os.Exit(1)
	}

	potentialService, err := potential.NewService(tables, baseStats, power.NewProjector())
	if err != nil {
		slog.Error("Failed to create evaluation engine", "error", err)
		os.Exit(1)
	}

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies,
		potentialService, tables, profiles, baseStats)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	case sig := <-stop:
		slog.Info("Shutdown signal received", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		slog.Error("Server forced to shut down", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped")
}
