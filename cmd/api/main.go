package main

import (
	"context"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kmswanson/greenwood/internal/config"
	"github.com/kmswanson/greenwood/internal/handlers"
	"github.com/kmswanson/greenwood/internal/logger"
	"github.com/kmswanson/greenwood/internal/middleware"
	"github.com/kmswanson/greenwood/internal/services"
	"github.com/kmswanson/greenwood/internal/session"
	"github.com/kmswanson/greenwood/pkg/world"
)

func main() {
	cfg := config.Load()

	log, err := logger.Setup(cfg)
	if err != nil {
		stdlog.Fatal(err)
	}

	log.Info("Starting Greenwood API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"model_name", cfg.ModelName)

	var w *world.World
	if cfg.WorldFile != "" {
		w, err = world.Load(cfg.WorldFile)
		if err != nil {
			log.Error("Failed to load world file", "path", cfg.WorldFile, "error", err)
			os.Exit(1)
		}
		log.Info("Loaded world file", "path", cfg.WorldFile, "rooms", len(w.Rooms))
	} else {
		w = world.Default()
		if err := w.Validate(); err != nil {
			log.Error("Built-in world failed validation", "error", err)
			os.Exit(1)
		}
	}

	narrator := services.NewOllamaService(cfg.OllamaHost, cfg.ModelName, cfg.MaxTokens, cfg.Temperature, cfg.NarrationTimeout, log)
	if err := narrator.Ping(context.Background()); err != nil {
		log.Warn("Narration service unreachable at startup, combat will use fallback text", "error", err)
	}

	store := session.NewRedisStore(cfg.RedisURL, log)
	storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer storageCancel()

	if err := store.WaitForConnection(storageCtx); err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}
	log.Info("Storage connection established successfully")

	mux := http.NewServeMux()

	healthHandler := handlers.NewHealthHandler(store, narrator, log)
	mux.Handle("/health", healthHandler)

	sessionHandler := handlers.NewSessionHandler(w, store, narrator, log)
	mux.Handle("/v1/sessions", sessionHandler)
	mux.Handle("/v1/sessions/", sessionHandler)

	handler := middleware.Logger(mux)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.NarrationTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	if err := store.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("Server exited")
}
