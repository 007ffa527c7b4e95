package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/sorplus/public-gateway/internal/catalog"
	"github.com/sorplus/public-gateway/internal/config"
	"github.com/sorplus/public-gateway/internal/scheduler"
	"github.com/sorplus/public-gateway/internal/server"
	"github.com/sorplus/public-gateway/internal/upstream"
)

func main() {
	// Load environment variables from .env file if it exists
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	// Initialize configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up logging
	logrus.SetLevel(logrus.InfoLevel)
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.SetFormatter(&logrus.JSONFormatter{})

	logrus.Info("Starting sorplus public gateway")

	// Admin backend client
	backend := upstream.New(cfg.UpstreamBaseURL, time.Duration(cfg.UpstreamTimeout)*time.Second)

	// Category option cache, warmed once at startup
	store := catalog.NewCache(backend)
	{
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := store.Refresh(ctx); err != nil {
			logrus.Warnf("Initial category refresh failed, serving empty options: %v", err)
		}
		cancel()
	}

	// Scheduler keeps the cache tracking admin edits
	schedulerService := scheduler.NewService(cfg, store)
	if err := schedulerService.Start(); err != nil {
		logrus.Fatalf("Failed to start scheduler: %v", err)
	}
	defer schedulerService.Stop()

	// HTTP surface
	gateway := server.NewServer(cfg, backend, store)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      gateway.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server in a goroutine
	go func() {
		logrus.Infof("HTTP server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}
