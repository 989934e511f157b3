package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"snackledger/internal/amqp"
	"snackledger/internal/config"
	applog "snackledger/internal/log"
	"snackledger/internal/remote"
	"snackledger/internal/remote/google"
	"snackledger/internal/remote/webapp"
	"snackledger/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentWorker)
	applog.SetDefault(logger)

	logger.Info("Starting snackledger-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}

	var pusher remote.Pusher
	switch cfg.RemoteBackend {
	case config.BackendWebApp:
		pusher = webapp.New(cfg.RemoteURL, nil)
	case config.BackendSheets:
		cli, err := google.New(context.Background(), google.Config{
			SpreadsheetID:   cfg.GoogleSpreadsheetID,
			SheetName:       cfg.GoogleSheetName,
			CredentialsJSON: cfg.GoogleCredentialsJSON,
			CredentialsFile: cfg.GoogleCredentialsFile,
		})
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", applog.FieldError, err)
			os.Exit(1)
		}
		pusher = cli
	default:
		logger.Error("Worker needs a real remote backend", applog.FieldBackend, cfg.RemoteBackend)
		os.Exit(1)
	}
	logger.Info("Remote backend initialized", applog.FieldBackend, cfg.RemoteBackend)

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", applog.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pushWorker := worker.NewPushWorker(pusher)

	logger.Info("Consuming sync messages", "queue", cfg.AMQPQueue)
	if err := amqpClient.ConsumeSync(ctx, pushWorker.HandleMessage); err != nil && err != context.Canceled {
		logger.Error("Message consumption failed", applog.FieldError, err)
		os.Exit(1)
	}

	logger.Info("Worker stopped gracefully")
}
