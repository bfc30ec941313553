package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	dapr "github.com/dapr/go-sdk/client"
	"github.com/sirupsen/logrus"

	"intake-api/internal/app"
	"intake-api/internal/config"
	"intake-api/internal/logging"
	"intake-api/internal/repository"
	"intake-api/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(logging.Options{Level: cfg.Log.Level})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	tp, err := telemetry.InitTracing(telemetry.Options{
		ServiceName:    cfg.Service.Name,
		ServiceVersion: cfg.Service.Version,
		Export:         cfg.Telemetry.Enabled,
		PrettyPrint:    cfg.Telemetry.PrettyPrint,
	})
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}
	defer func() {
		if err := telemetry.ShutdownTracing(context.Background(), tp); err != nil {
			log.Printf("Error shutting down tracer provider: %v", err)
		}
	}()

	store := repository.NewInMemoryStore()
	if cfg.Storage.Backend == config.BackendDapr {
		daprClient, err := dapr.NewClient()
		if err != nil {
			log.Fatalf("Failed to connect to dapr sidecar: %v", err)
		}
		defer daprClient.Close()
		store = repository.NewDaprStore(daprClient, cfg.Storage.DaprStore)
	}

	logger.WithFields(logrus.Fields{
		"backend":  cfg.Storage.Backend,
		"list_ttl": cfg.Cache.ListTTL.String(),
		"port":     cfg.Server.Port,
	}).Info("Configuration loaded")

	application := app.Build(app.FromConfig(cfg, logger, tp, store))

	go func() {
		if err := application.Run(); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := application.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}
