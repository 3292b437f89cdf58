package config

import (
	"fmt"
	"os"
	"strings"
)

// Config carries every runtime setting. It is loaded once at startup and
// threaded through explicitly; leaf components never read the environment.
type Config struct {
	LogLevel string

	// Destination spreadsheet and its worksheets.
	SpreadsheetID string
	SourceSheet   string // company list, one name per cell
	DestSheet     string // published offers
	LogSheet      string // timestamped progress rows
	CompanyRange  string // range on SourceSheet holding company names

	// Google service-account credentials, path or inline JSON.
	CredentialsPath string
	CredentialsJSON string

	// Optional keyword filter applied to extracted offers.
	Technologies []string
	Seniorities  []string

	// Optional infrastructure.
	DatabaseURL string // Postgres offer archive
	RedisURL    string // payload cache

	// Server mode.
	Port     string
	SyncSpec string // cron spec, e.g. "@every 6h"
}

// Load populates config from environment variables.
func Load() (Config, error) {
	cfg := Config{
		LogLevel:     "info",
		SourceSheet:  "KONKURENCJA",
		DestSheet:    "OFERTY",
		LogSheet:     "LOGI",
		CompanyRange: "A2:A",
		Port:         "8080",
		SyncSpec:     "@every 6h",
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	cfg.SpreadsheetID = os.Getenv("SPREADSHEET_ID")

	if v := os.Getenv("SOURCE_SHEET"); v != "" {
		cfg.SourceSheet = v
	}
	if v := os.Getenv("DEST_SHEET"); v != "" {
		cfg.DestSheet = v
	}
	if v := os.Getenv("LOG_SHEET"); v != "" {
		cfg.LogSheet = v
	}
	if v := os.Getenv("COMPANY_RANGE"); v != "" {
		cfg.CompanyRange = v
	}

	cfg.CredentialsPath = os.Getenv("SHEETS_CREDENTIALS_FILE")
	cfg.CredentialsJSON = os.Getenv("SHEETS_CREDENTIALS_JSON")

	cfg.Technologies = splitList(os.Getenv("FILTER_TECHNOLOGIES"))
	cfg.Seniorities = splitList(os.Getenv("FILTER_SENIORITIES"))

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.RedisURL = os.Getenv("REDIS_URL")

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("SYNC_SCHEDULE"); v != "" {
		cfg.SyncSpec = v
	}

	var missingVars []string

	if cfg.SpreadsheetID == "" {
		missingVars = append(missingVars, "SPREADSHEET_ID")
	}
	if cfg.CredentialsPath == "" && cfg.CredentialsJSON == "" {
		missingVars = append(missingVars, "SHEETS_CREDENTIALS_FILE or SHEETS_CREDENTIALS_JSON")
	}

	if len(missingVars) > 0 {
		return cfg, fmt.Errorf("missing required environment variables: %s", strings.Join(missingVars, ", "))
	}

	return cfg, nil
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
