package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"snackledger/internal/amqp"
	"snackledger/internal/config"
	apphttp "snackledger/internal/http"
	applog "snackledger/internal/log"
	"snackledger/internal/remote"
	"snackledger/internal/remote/google"
	"snackledger/internal/remote/memory"
	"snackledger/internal/remote/webapp"
	"snackledger/internal/services"
	"snackledger/internal/storage"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}

	store, err := storage.NewStore(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize snapshot store", applog.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer store.Close()

	var (
		fetcher remote.Fetcher
		pusher  remote.Pusher
	)
	switch cfg.RemoteBackend {
	case config.BackendWebApp:
		cli := webapp.New(cfg.RemoteURL, nil)
		fetcher, pusher = cli, cli
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
		fetcher, pusher = cli, cli
	default:
		cli := memory.New()
		fetcher, pusher = cli, cli
	}
	logger.Info("Remote backend initialized", applog.FieldBackend, cfg.RemoteBackend)

	// With AMQP configured, pushes go through the queue and the worker
	// process performs the remote calls.
	var queue services.Publisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", applog.FieldError, err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		queue = amqpClient
		logger.Info("Push queue enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	}

	service := services.New(services.Options{
		Store:   store,
		Fetcher: fetcher,
		Pusher:  pusher,
		Queue:   queue,
		Logger:  logger.WithComponent(applog.ComponentLedger),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := service.Start(ctx); err != nil {
		logger.Error("Failed to load ledger", applog.FieldError, err)
		os.Exit(1)
	}

	// Initial resync is best-effort: offline startup serves the local cache.
	if dropped, err := service.Resync(ctx); err != nil {
		logger.Warn("Initial resync failed, serving local snapshot", applog.FieldError, err)
	} else if dropped > 0 {
		logger.Warn("Remote rows dropped during resync", applog.FieldDropped, dropped)
	}

	srv := apphttp.NewServer(":"+cfg.Port, service)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting snackledger server", "port", cfg.Port, applog.FieldBackend, cfg.RemoteBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		ticker := time.NewTicker(cfg.SyncInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if _, err := service.Resync(ctx); err != nil {
					logger.Warn("Periodic resync failed", applog.FieldError, err)
				}
			}
		}
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
