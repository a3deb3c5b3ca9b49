package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"sensortower-scraper/config"
	"sensortower-scraper/scraper/sensortower"
	"sensortower-scraper/services"
	"sensortower-scraper/storage"
	"sensortower-scraper/utils"
)

// ErrNoApps is returned when no category produced a single app.
var ErrNoApps = errors.New("no apps were scraped")

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.NewLogger("info", false).Error("Invalid configuration: %v", err)
		os.Exit(1)
	}

	logger := utils.NewLogger(cfg.LogLevel, cfg.Production).With("run_id", uuid.NewString())

	if err := run(context.Background(), cfg, logger, os.Stdout); err != nil {
		logger.Error("Run failed: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *utils.Logger, stdout io.Writer) error {
	logger.Info("=== Sensor Tower ranking report starting ===")
	logger.Info("Config: date %s | country %s | device %s | limit %d | categories %d | concurrency %d",
		cfg.SnapshotDate, cfg.Country, cfg.Device, cfg.Limit, cfg.Categories.Len(), cfg.MaxConcurrency)

	client := sensortower.NewClientFromConfig(cfg)
	scraper := sensortower.New(client, cfg.Categories, logger, sensortower.Options{
		MaxConcurrency: cfg.MaxConcurrency,
		MaxAttempts:    cfg.MaxAttempts,
		Progress:       stdout,
	})

	apps, err := scraper.ScrapeAll(ctx)
	if err != nil {
		return err
	}
	if apps.Len() == 0 {
		return ErrNoApps
	}

	logger.Info("Scraped %d distinct apps, writing to CSV...", apps.Len())

	csvWriter, err := storage.NewCSVWriter(cfg.CSVOutputPath)
	if err != nil {
		return err
	}
	if err := csvWriter.Write(apps); err != nil {
		_ = csvWriter.Close()
		return err
	}
	if err := csvWriter.Close(); err != nil {
		return fmt.Errorf("csv: close: %w", err)
	}

	if info, err := os.Stat(csvWriter.Path()); err == nil {
		logger.Info("Report saved to %s (%s)", csvWriter.Path(), humanize.Bytes(uint64(info.Size())))
	}

	if cfg.PrintInsights {
		insightSvc := services.NewInsightService(logger)
		insightSvc.Print(stdout, insightSvc.Generate(apps))
	}
	return nil
}
