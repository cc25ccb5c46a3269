package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Rogerxyz26/kingsturnier/internal/config"
	"github.com/Rogerxyz26/kingsturnier/internal/database"
	"github.com/Rogerxyz26/kingsturnier/internal/engine"
	server "github.com/Rogerxyz26/kingsturnier/internal/http"
	"github.com/Rogerxyz26/kingsturnier/internal/metrics"
	"github.com/Rogerxyz26/kingsturnier/internal/notifier"
	"github.com/Rogerxyz26/kingsturnier/internal/notifier/slack"
	"github.com/Rogerxyz26/kingsturnier/internal/state"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()

	db, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		db.Close()
	}()

	stateStore := state.New(db)
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()

	var notify notifier.Notifier = notifier.Noop{}
	if cfg.Slack.Token != "" {
		log.Info("Slack notifications enabled", "channel", cfg.Slack.ChannelID)
		notify = notifier.Multi{slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)}
	}

	eng := engine.New(stateStore, notify, metricsSvc)

	s := server.NewServer(
		eng,
		metricsSvc,
		metricsHandler,
		cfg,
	)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		// Create a context with a timeout for the shutdown.
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Attempt to gracefully shut down the server.
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
