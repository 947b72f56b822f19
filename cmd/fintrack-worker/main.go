package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"fintrack/internal/amqp"
	"fintrack/internal/config"
	"fintrack/internal/export"
	gsheet "fintrack/internal/export/google"
	"fintrack/internal/log"
	"fintrack/internal/services"
	"fintrack/internal/storage"
)

func main() {
	// Load .env for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.Config{
		Level:     slog.LevelInfo,
		Component: log.ComponentWorker,
		Handler:   slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
	})
	log.SetDefault(logger)

	logger.Info("Starting fintrack-worker", log.FieldOperation, log.OpStartup)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" && cfg.GoogleSpreadsheetID == "" {
		logger.Error("Nothing to do: set AMQP_URL, GOOGLE_SPREADSHEET_ID or both")
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", log.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	recalc := services.NewRecalculator(repo, logger)
	group, ctx := errgroup.WithContext(ctx)

	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", log.FieldError, err)
			os.Exit(1)
		}
		defer amqpClient.Close()

		group.Go(func() error {
			err := amqpClient.ConsumeBudgetRecalc(ctx, func(msg *amqp.BudgetRecalcMessage) error {
				return recalc.RecalcCategory(ctx, msg.UserID, msg.Category)
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
		logger.Info("Consuming budget recalc messages",
			log.FieldExchange, cfg.AMQPExchange,
			log.FieldQueue, cfg.AMQPQueue)
	}

	if cfg.GoogleSpreadsheetID != "" {
		sheetsClient, err := gsheet.NewFromEnv(ctx)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", log.FieldError, err)
			os.Exit(1)
		}
		exporter := export.NewExporter(repo, sheetsClient, logger)

		group.Go(func() error {
			return runExportLoop(ctx, exporter, cfg.ExportInterval, logger)
		})
		logger.Info("Periodic export enabled",
			"spreadsheet_id", cfg.GoogleSpreadsheetID,
			"interval", cfg.ExportInterval)
	}

	if err := group.Wait(); err != nil {
		logger.Error("Worker stopped with error", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully", log.FieldOperation, log.OpShutdown)
}

// runExportLoop exports once at startup and then on every tick. Export
// failures are logged and retried on the next tick rather than killing the
// worker.
func runExportLoop(ctx context.Context, exporter *export.Exporter, interval time.Duration, logger *log.Logger) error {
	if err := exporter.Run(ctx); err != nil {
		logger.Error("Startup export failed", log.FieldError, err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := exporter.Run(ctx); err != nil {
				logger.Error("Export failed", log.FieldError, err)
			}
		case <-ctx.Done():
			return nil
		}
	}
}
