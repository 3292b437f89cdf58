// One-shot entry point: runs a single sync cycle and exits. Useful for cron
// jobs outside the server process and for manual runs during development.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/baxromumarov/offer-sync/internal/archive"
	"github.com/baxromumarov/offer-sync/internal/config"
	"github.com/baxromumarov/offer-sync/internal/logging"
	"github.com/baxromumarov/offer-sync/internal/run"
	"github.com/baxromumarov/offer-sync/internal/sheets"
	"github.com/baxromumarov/offer-sync/internal/source"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New("info").Fatal("failed to load config", "error", err)
	}

	log := logging.New(cfg.LogLevel)
	defer log.Sync()

	ctx := context.Background()

	gateway, err := sheets.NewClient(ctx, sheets.Config{
		SpreadsheetID:   cfg.SpreadsheetID,
		CredentialsPath: cfg.CredentialsPath,
		CredentialsJSON: []byte(cfg.CredentialsJSON),
	})
	if err != nil {
		log.Fatal("failed to connect to spreadsheet", "error", err)
	}

	var store *archive.Store
	if cfg.DatabaseURL != "" {
		store, err = archive.NewStore(cfg.DatabaseURL)
		if err != nil {
			log.Fatal("failed to connect to archive", "error", err)
		}
		defer store.Close()

		workDir, _ := os.Getwd()
		schemaPath := filepath.Join(workDir, "internal", "archive", "schema.sql")
		if err := store.RunMigrations(schemaPath); err != nil {
			log.Fatal("failed to run migrations", "error", err)
		}
	}

	runner := run.New(run.Params{
		Config: run.Config{
			SourceSheet:  cfg.SourceSheet,
			DestSheet:    cfg.DestSheet,
			LogSheet:     cfg.LogSheet,
			CompanyRange: cfg.CompanyRange,
		},
		Gateway: gateway,
		Client:  source.NewClient(log, nil),
		Filter: source.KeywordFilter{
			Technologies: cfg.Technologies,
			Seniorities:  cfg.Seniorities,
		},
		Archive: store,
		Log:     log,
	})

	result, err := runner.Sync(ctx)
	if err != nil {
		log.Fatal("sync failed", "error", err)
	}

	fmt.Printf("companies: %v\n", result.Companies)
	for _, offer := range result.Offers {
		fmt.Printf("%s | %s | %s | %s\n", offer.JobBoard, offer.Company, offer.JobTitle, offer.Link)
	}
	fmt.Printf("published %d rows in %s\n", len(result.Table.Rows), result.Duration)
}
