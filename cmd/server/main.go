package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"github.com/joho/godotenv"

	"github.com/clevelhire/platform/api"
	dbfs "github.com/clevelhire/platform/db"
	"github.com/clevelhire/platform/internal/agent"
	"github.com/clevelhire/platform/internal/autoapply"
	"github.com/clevelhire/platform/internal/config"
	"github.com/clevelhire/platform/internal/db"
	"github.com/clevelhire/platform/internal/profile"
	"github.com/clevelhire/platform/internal/repository/sqlite"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	var configPath = flag.String("config", "", "Path to config YAML file")
	flag.Parse()

	// optional .env for local development
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)
	api.SetLogger(logger)

	logger.Info("starting platform server", slog.String("version", version), slog.String("build_time", buildTime))

	ctx := context.Background()

	// Open database connection and apply migrations
	d, err := db.New(ctx, cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Migrate(ctx, d, dbfs.Migrations); err != nil {
		log.Fatalf("Failed to migrate DB: %v", err)
	}

	// Repositories and services
	repo := sqlite.New(d, logger)
	profiles := profile.NewService(repo, repo, logger)
	gate := autoapply.NewGate(profiles, repo, logger)

	// Background agents: one periodic worker per registered user. Best
	// effort: a failure here degrades to zero workers, the HTTP surface
	// still comes up.
	registry := agent.NewRegistry(cfg.Agent.CheckInterval, agent.NewCareerTick(profiles, gate, logger), logger)
	orchestrator := agent.NewOrchestrator(repo, registry, logger)
	started := orchestrator.StartAllAgents(ctx)
	logger.Info("background agents online", slog.Int("count", started))

	handler, err := api.SetupRoutes(cfg, version, buildTime, repo, profiles, gate)
	if err != nil {
		log.Fatalf("Failed to set up routes: %v", err)
	}

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.APITimeout,
		WriteTimeout: cfg.APITimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server starting", slog.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	// Stop the agent workers first so no tick races the DB teardown
	registry.StopAll()

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	// Close database connection
	if err := d.Close(); err != nil {
		logger.Error("error closing DB", slog.Any("err", err))
	}

	logger.Info("server exited")
}
