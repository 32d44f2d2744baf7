package main

import (
	"log"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"musicchat/src/features/audio"
	"musicchat/src/features/chat"
	"musicchat/src/features/config"
	"musicchat/src/features/favourites"
	"musicchat/src/features/hosting"
	"musicchat/src/features/logging"
	"musicchat/src/features/playlists"
	"musicchat/src/features/ratings"
	"musicchat/src/features/searching"
	"musicchat/src/infra/cache"
	"musicchat/src/infra/database"
	"musicchat/src/infra/deezer"
)

func main() {
	// Load configuration
	cfgManager, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Setup default logger with slog
	logger := logging.SetupLogger(cfgManager)
	slog.SetDefault(logger)

	// Open the database
	store, err := database.NewSqliteStore(cfgManager.Get().Database.Path)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer store.Close()

	// Upstream metadata provider and its bounded query cache
	deezerCfg := cfgManager.Get().Deezer
	provider := deezer.NewClient(
		deezerCfg.BaseURL,
		time.Duration(deezerCfg.TimeoutSeconds)*time.Second,
		deezerCfg.RatePerSecond,
	)
	queryCache, err := cache.NewLRUQueryCache(cfgManager.Get().Cache.MaxEntries)
	if err != nil {
		log.Fatalf("failed to create query cache: %v", err)
	}

	// Feature services
	tracks := store.Tracks()
	services := hosting.Services{
		Audio:      audio.NewService(tracks),
		Playlists:  playlists.NewService(store.Playlists(), tracks),
		Ratings:    ratings.NewService(store.Ratings(), tracks),
		Favourites: favourites.NewService(store.Favourites(), tracks),
		Searching:  searching.NewService(provider, queryCache),
		Chat:       chat.NewService(store.Messages(), cfgManager),
	}

	// Create and start the HTTP server
	server := hosting.NewServer(cfgManager, services)
	go func() {
		if err := server.Start(); err != nil {
			slog.Error("server stopped", "error", err)
		}
	}()
	slog.Info("Server started. Press Ctrl+C to shut down.", "port", cfgManager.Get().Server.Port)

	// Wait for a shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	slog.Info("Shutting down server...")

	if err := server.Shutdown(); err != nil {
		log.Fatalf("failed to shutdown server: %v", err)
	}
	slog.Info("Server gracefully shut down.")
}
