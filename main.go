package main

import (
	"fmt"
	"os"

	"firmenverzeichnis-scraper/config"
	"firmenverzeichnis-scraper/scraper/firmenverzeichnis"
	"firmenverzeichnis-scraper/services"
	"firmenverzeichnis-scraper/storage"
	"firmenverzeichnis-scraper/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()

	logger.Info("=== Firmenverzeichnis Scraping System starting ===")
	logger.Info("Config — directory: %s | concurrency: %d | rate: %dms",
		cfg.DirectoryURL, cfg.MaxConcurrency, cfg.RateLimitMs)

	rawWriter, err := storage.NewRawCSVWriter(cfg.RawCSVPath)
	if err != nil {
		logger.Error("Failed to create raw CSV writer: %v", err)
		os.Exit(1)
	}
	defer rawWriter.Close()

	pgWriter, err := storage.NewPostgresWriter(cfg.DSN())
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL: %v", err)
		logger.Error("Make sure Docker is running: docker compose up -d")
		os.Exit(1)
	}
	defer pgWriter.Close()

	dirScraper := firmenverzeichnis.New(cfg, logger)
	rawCompanies, err := dirScraper.Scrape()
	if err != nil {
		logger.Error("Directory scrape failed: %v", err)
	}

	if len(rawCompanies) == 0 {
		logger.Error("No companies were scraped. Exiting.")
		os.Exit(1)
	}

	logger.Info("Scraped %d raw records — writing to CSV...", len(rawCompanies))

	if err := rawWriter.WriteRaw(rawCompanies); err != nil {
		logger.Error("Raw CSV write failed: %v", err)
	} else {
		logger.Info("Raw records saved to %s", cfg.RawCSVPath)
	}

	cleaner := services.NewCleaner(cfg, logger)
	companies, fieldErrs := cleaner.Clean(rawCompanies)
	for _, ferr := range fieldErrs {
		logger.Warn("Field error: %v", ferr)
	}

	if len(companies) == 0 {
		logger.Error("All records were dropped during cleaning. Exiting.")
		os.Exit(1)
	}

	logger.Info("Cleaned dataset: %d companies", len(companies))

	cleanWriter, err := storage.NewCleanCSVWriter(cfg.CleanCSVPath)
	if err != nil {
		logger.Error("Failed to create clean CSV writer: %v", err)
	} else {
		if err := cleanWriter.Write(companies); err != nil {
			logger.Error("Clean CSV write failed: %v", err)
		} else {
			logger.Info("Clean dataset saved to %s", cfg.CleanCSVPath)
		}
		cleanWriter.Close()
	}

	if err := pgWriter.Write(companies); err != nil {
		logger.Error("PostgreSQL write failed: %v", err)
	} else {
		logger.Info("Clean companies stored in PostgreSQL (table: companies)")
	}

	dbCompanies, err := pgWriter.FetchAll()
	if err != nil {
		logger.Error("Failed to fetch companies from DB for stats: %v", err)
		dbCompanies = companies
	}

	statsSvc := services.NewStatsService(cfg, logger)
	report := statsSvc.Generate(dbCompanies)
	statsSvc.Print(report)

	statsWriter, err := storage.NewStatsCSVWriter(cfg.StatsCSVPath)
	if err != nil {
		logger.Error("Failed to create stats CSV writer: %v", err)
	} else {
		if err := statsWriter.WriteStats(report); err != nil {
			logger.Error("Stats CSV write failed: %v", err)
		} else {
			logger.Info("Summary statistics saved to %s", cfg.StatsCSVPath)
		}
		statsWriter.Close()
	}

	fmt.Printf("  Done. Raw CSV → %s | Clean data → %s + PostgreSQL (companies table)\n\n",
		cfg.RawCSVPath, cfg.CleanCSVPath)
}
