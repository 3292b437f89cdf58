package main

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/baxromumarov/offer-sync/internal/api"
	"github.com/baxromumarov/offer-sync/internal/archive"
	"github.com/baxromumarov/offer-sync/internal/cache"
	"github.com/baxromumarov/offer-sync/internal/config"
	"github.com/baxromumarov/offer-sync/internal/logging"
	"github.com/baxromumarov/offer-sync/internal/run"
	"github.com/baxromumarov/offer-sync/internal/sheets"
	"github.com/baxromumarov/offer-sync/internal/source"
)

const payloadTTL = 30 * time.Minute

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

	var payloadCache source.PayloadCache
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedis(ctx, cfg.RedisURL, payloadTTL, log)
		if err != nil {
			log.Fatal("failed to connect to redis", "error", err)
		}
		defer redisCache.Close()
		payloadCache = redisCache
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
		Client:  source.NewClient(log, payloadCache),
		Filter: source.KeywordFilter{
			Technologies: cfg.Technologies,
			Seniorities:  cfg.Seniorities,
		},
		Archive: store,
		Log:     log,
	})

	scheduler := run.NewScheduler(runner, cfg.SyncSpec, log)
	if err := scheduler.Start(ctx); err != nil {
		log.Fatal("failed to start scheduler", "error", err)
	}
	defer scheduler.Stop()

	srv := api.NewServer(store, runner)

	log.Info("starting server", "port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, srv.Router()); err != nil {
		log.Fatal("server failed", "error", err)
	}
}
