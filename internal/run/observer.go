package run

import (
	"context"

	"github.com/baxromumarov/offer-sync/internal/logging"
	"github.com/baxromumarov/offer-sync/internal/observability"
)

// Observer receives one progress line per driver step. The default
// implementation mirrors each step to the log sheet; tests inject their own.
type Observer interface {
	Step(ctx context.Context, message string)
}

type nopObserver struct{}

func (nopObserver) Step(context.Context, string) {}

// NopObserver discards progress lines.
func NopObserver() Observer {
	return nopObserver{}
}

type sheetObserver struct {
	gateway  Gateway
	logSheet string
	log      *logging.Logger
}

// NewSheetObserver logs every step and appends it to the log worksheet. Log
// sheet failures are warned about, never fatal: progress reporting must not
// kill a run.
func NewSheetObserver(gateway Gateway, logSheet string, log *logging.Logger) Observer {
	return &sheetObserver{gateway: gateway, logSheet: logSheet, log: log}
}

func (o *sheetObserver) Step(ctx context.Context, message string) {
	o.log.Info(message)
	if err := o.gateway.AddLog(ctx, o.logSheet, message); err != nil {
		o.log.Warn("log sheet append failed", "error", err)
	}
}

// extractionObserver bridges source extraction events into the stats counters
// so tests and the /stats endpoint can see which fields fell back.
type extractionObserver struct {
	log *logging.Logger
}

func (o *extractionObserver) DefaultApplied(board, field string) {
	observability.IncDefault(board, field)
	o.log.Debug("default applied", "board", board, "field", field)
}

func (o *extractionObserver) RecordSkipped(board, reason string) {
	observability.IncError(observability.ErrorParsing)
	o.log.Warn("record skipped", "board", board, "reason", reason)
}
