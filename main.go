package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sh4ner/streamerpulse/app"
	"github.com/sh4ner/streamerpulse/config"
)

func main() {
	configFile := flag.String("config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application, err := app.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}
	logger := application.Observability.Provider.Logger

	runErr := application.Run(ctx)
	if runErr != nil {
		logger.Error("Server stopped unexpectedly", "error", runErr)
	} else {
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := application.Close(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", "error", err)
	}
	logger.Info("Application shut down gracefully")

	if runErr != nil {
		os.Exit(1)
	}
}
