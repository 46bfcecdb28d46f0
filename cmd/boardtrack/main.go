package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/circuitops/boardtrack/internal/config"
	"github.com/circuitops/boardtrack/internal/consumption"
	"github.com/circuitops/boardtrack/internal/forecast"
	"github.com/circuitops/boardtrack/internal/httpapi"
	"github.com/circuitops/boardtrack/internal/imaging"
	"github.com/circuitops/boardtrack/internal/inventory"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "health" {
		os.Exit(healthCheck())
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	store, err := inventory.NewPostgresStore(cfg.GetConnectionConfig(), logger)
	if err != nil {
		logger.Fatal("Failed to create inventory store", zap.Error(err))
	}
	defer store.Close()

	lister, err := imaging.NewLister(cfg.GetS3Config(), logger)
	if err != nil {
		logger.Fatal("Failed to create image lister", zap.Error(err))
	}

	gateway := forecast.NewGateway(
		cfg.GetString("FORECAST_BASE_URL", "http://localhost:9000"),
		cfg.GetDuration("FORECAST_TIMEOUT", 30*time.Second),
		logger)

	service := consumption.NewService(store, logger)
	api := httpapi.NewServer(service, gateway, lister, logger)

	port := cfg.GetString("PORT", "8080")
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: api.Handler(),
	}

	logger.Info("Boardtrack engine starting", zap.String("port", port))

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("Shutdown did not complete cleanly", zap.Error(err))
	}
	logger.Info("Server stopped")
}

func healthCheck() int {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", zap.Error(err))
		return 1
	}

	store, err := inventory.NewPostgresStore(cfg.GetConnectionConfig(), logger)
	if err != nil {
		logger.Error("Failed to create inventory store", zap.Error(err))
		return 1
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := store.Ping(ctx); err != nil {
		logger.Error("Health check failed", zap.Error(err))
		return 1
	}

	return 0
}
