package main

import (
	"fmt"
	"os"

	"bms-tracker/catalog"
	"bms-tracker/config"
	"bms-tracker/orchestrator"
	"bms-tracker/scraper/bms"
	"bms-tracker/services"
	"bms-tracker/storage"
	"bms-tracker/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()

	logger.Info("=== BookMyShow Showtime Tracker starting ===")
	logger.Info("Config — date: %s | workers: %d | max errors: %d | max restarts: %d",
		cfg.DateCode, cfg.MaxConcurrency, cfg.MaxErrors, cfg.MaxRestarts)

	venues, err := catalog.Load(cfg.VenuesPath)
	if err != nil {
		logger.Error("Failed to load venue catalog: %v", err)
		os.Exit(1)
	}
	logger.Info("Loaded %d venues from %s", len(venues), cfg.VenuesPath)

	store, err := storage.NewProgressStore(cfg.ProgressDir, cfg.FlushRetries, logger)
	if err != nil {
		logger.Error("Failed to create progress store: %v", err)
		os.Exit(1)
	}

	fetcher := bms.New(cfg, logger)
	orch := orchestrator.New(cfg, logger, fetcher, venues, store)

	state, runErr := orch.Run()
	if runErr != nil {
		logger.Error("Run ended early: %v", runErr)
		logger.Error("Reporting whatever progress was durably saved")
	}

	if len(state.Summary) == 0 {
		logger.Error("No show data was collected. Exiting.")
		os.Exit(1)
	}

	logger.Info("Aggregated %d movie variants across %d fetched venues",
		len(state.Summary), len(state.Fetched))

	reportSvc := services.NewReportService(logger)
	langRows := reportSvc.ByTitleLanguage(state.Summary)
	titleRows := reportSvc.ByTitle(state.Summary)
	reportSvc.Print(langRows, titleRows)

	csvWriter, err := storage.NewCSVWriter(cfg.CSVOutputPath)
	if err != nil {
		logger.Error("Failed to create CSV writer: %v", err)
		os.Exit(1)
	}
	defer csvWriter.Close()

	if err := csvWriter.WriteSummary(state.Summary); err != nil {
		logger.Error("CSV write failed: %v", err)
	} else {
		logger.Info("Movie summary saved to %s", cfg.CSVOutputPath)
	}

	if cfg.PostgresEnabled {
		pgWriter, err := storage.NewPostgresWriter(cfg.DSN())
		if err != nil {
			logger.Error("Failed to connect to PostgreSQL: %v", err)
		} else {
			defer pgWriter.Close()
			if err := pgWriter.WriteSummary(state.Summary); err != nil {
				logger.Error("PostgreSQL write failed: %v", err)
			} else if rows, err := pgWriter.FetchAll(); err == nil {
				logger.Info("PostgreSQL now holds %d movie summary rows", len(rows))
			}
		}
	}

	fmt.Printf("  Done. Summary CSV → %s | Progress → %s\n\n",
		cfg.CSVOutputPath, cfg.ProgressDir)
}
