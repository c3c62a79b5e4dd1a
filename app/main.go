package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/subosito/gotenv"

	"github.com/BigPhill11/market-brief/app/api"
	"github.com/BigPhill11/market-brief/app/cfg"
	"github.com/BigPhill11/market-brief/app/database"
	"github.com/BigPhill11/market-brief/app/headline"
	"github.com/BigPhill11/market-brief/app/logging"
	"github.com/BigPhill11/market-brief/app/news"
	"github.com/BigPhill11/market-brief/app/tasks"
)

func main() {
	// .env file is optional; OS environment is used as-is
	_ = gotenv.Load()

	appConfig, err := cfg.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appConfig == nil {
		// Help was shown, exit gracefully
		return
	}

	logging.Init(appConfig.Debug)
	slog.Info("Starting Market Brief server", "version", appConfig.Version)

	// Database connection
	db, err := database.NewConnection(appConfig.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database ready", "path", appConfig.DBPath, "migration_version", version, "dirty", dirty)

	snapshotRepo := database.NewSnapshotRepository(db)

	// Keyword vocabularies
	vocab := headline.DefaultVocabulary()
	if appConfig.VocabularyFile != "" {
		vocab, err = headline.LoadVocabulary(appConfig.VocabularyFile)
		if err != nil {
			log.Fatalf("Failed to load vocabulary: %v", err)
		}
		slog.Info("Vocabulary loaded", "file", appConfig.VocabularyFile)
	}

	// News provider: the JSON API when a key is configured, RSS otherwise
	var client news.Client
	if appConfig.NewsAPIKey != "" {
		client = news.NewNewsDataClient(appConfig.NewsBaseURL, appConfig.NewsAPIKey, appConfig.UserAgent)
	} else {
		slog.Warn("No news API key configured, using RSS provider", "feeds", len(appConfig.RSSFeeds))
		client = news.NewRSSClient(appConfig.RSSFeeds, appConfig.UserAgent, news.NewContentExtractor())
	}
	slog.Info("News provider configured", "provider", client.Name())

	pipeline := headline.NewPipeline(client, vocab)

	// Background refresh keeps snapshots warm so requests rarely wait on
	// the provider
	scheduler := tasks.NewScheduler(pipeline, client.Name(), snapshotRepo)
	scheduler.Start()
	defer scheduler.Stop()

	// HTTP server
	apiHandler := api.NewHandler(pipeline, snapshotRepo, scheduler, client.Name())
	server := api.NewServer(apiHandler)

	httpServer := &http.Server{
		Addr:         ":" + appConfig.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appConfig.Port)
		slog.Info("API endpoints available",
			"headlines", fmt.Sprintf("http://localhost:%s/api/market-headlines", appConfig.Port),
			"overview", fmt.Sprintf("http://localhost:%s/api/market-overview", appConfig.Port),
			"health", fmt.Sprintf("http://localhost:%s/health", appConfig.Port))

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	// Scheduler is stopped via defer
	slog.Info("Market Brief server shutdown complete")
}
