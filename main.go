package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/slackelo/internal/config"
	"github.com/mauv0809/slackelo/internal/database"
	server "github.com/mauv0809/slackelo/internal/http"
	"github.com/mauv0809/slackelo/internal/metrics"
	"github.com/mauv0809/slackelo/internal/processor"
	"github.com/mauv0809/slackelo/internal/pubsub"
	"github.com/mauv0809/slackelo/internal/rating"
	"github.com/mauv0809/slackelo/internal/slack"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	var events pubsub.PubSubClient = pubsub.NewNoop()
	if cfg.ProjectID != "" {
		events, err = pubsub.New(cfg.ProjectID)
		if err != nil {
			log.Fatalf("Failed to initialize pubsub: %s", err)
		}
	} else {
		log.Warn("GCP_PROJECT is not set. Game events will not be published.")
	}
	defer events.Close()

	ratingStore := rating.New(db)
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	slackClient := slack.NewClient(cfg.Slack.Token)
	processor := processor.New(ratingStore, metricsSvc, events)

	s := server.NewServer(
		db,
		processor,
		metricsSvc,
		metricsHandler,
		cfg,
		slackClient,
		events,
	)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := serve(srv); err != nil {
		log.Error("Server stopped with error", "error", err)
	}
	log.Info("Server process shutting down")
}

// serve runs srv until it fails or the process is asked to stop, then drains
// in-flight requests for up to shutdownTimeout.
func serve(srv *http.Server) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server started", "addr", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	log.Info("Server gracefully stopped")
	return nil
}
