package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/social-admin/backend/internal/metrics"
	"github.com/anonto42/social-admin/backend/internal/router"
	"github.com/anonto42/social-admin/backend/pkg/config"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg := config.Load()
	config.SetupLogger(cfg)

	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		logrus.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	if cfg.AutoMigrate {
		if err := config.Migrate(db.Postgres); err != nil {
			logrus.Fatalf("Failed to auto migrate models: %v", err)
		}
	}

	deps, err := router.NewDependencies(cfg, db)
	if err != nil {
		logrus.Fatalf("Failed to wire dependencies: %v", err)
	}

	metricsServer, err := metrics.NewHTTPServer(cfg.MetricsPort)
	if err != nil {
		logrus.Fatalf("Failed to start metrics server: %v", err)
	}

	e := router.New(cfg, deps)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logrus.Infof("Starting API server on :%s (%s)", cfg.Port, cfg.Env)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Errorf("API server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	logrus.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("API server shutdown: %v", err)
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("Metrics server shutdown: %v", err)
	}
}
