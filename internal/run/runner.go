// Package run drives one full sync cycle: company list → per-board fetch and
// extraction → reconciliation against the persisted snapshot → publish.
package run

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/baxromumarov/offer-sync/internal/archive"
	"github.com/baxromumarov/offer-sync/internal/logging"
	"github.com/baxromumarov/offer-sync/internal/model"
	"github.com/baxromumarov/offer-sync/internal/observability"
	"github.com/baxromumarov/offer-sync/internal/reconcile"
	"github.com/baxromumarov/offer-sync/internal/source"
)

// Gateway is the spreadsheet store the runner reads from and publishes to.
type Gateway interface {
	GetData(ctx context.Context, sheetName, rng string) ([][]string, error)
	Update(ctx context.Context, sheetName string, rows [][]string) error
	AddLog(ctx context.Context, sheetName, message string) error
}

type Config struct {
	SourceSheet  string
	DestSheet    string
	LogSheet     string
	CompanyRange string
}

// Params wires a Runner. Gateway, Client and Log are required; Sources
// defaults to the full registry, Observer to a log-sheet observer, Archive
// and Filter are optional.
type Params struct {
	Config   Config
	Gateway  Gateway
	Client   *source.Client
	Sources  []source.Spec
	Filter   source.KeywordFilter
	Archive  *archive.Store
	Observer Observer
	Log      *logging.Logger
}

// Result is everything one cycle produced, kept so entry points can print
// intermediate state and the API can report the last run.
type Result struct {
	RunID     string
	Companies []string
	Offers    []model.JobOffer
	Table     reconcile.Table
	StartedAt time.Time
	Duration  time.Duration
}

type Runner struct {
	cfg      Config
	gateway  Gateway
	client   *source.Client
	sources  []source.Spec
	filter   source.KeywordFilter
	archive  *archive.Store
	observer Observer
	log      *logging.Logger

	mu sync.Mutex // one cycle at a time
}

func New(p Params) *Runner {
	sources := p.Sources
	if sources == nil {
		sources = source.Registry()
	}
	observer := p.Observer
	if observer == nil {
		observer = NewSheetObserver(p.Gateway, p.Config.LogSheet, p.Log)
	}
	return &Runner{
		cfg:      p.Config,
		gateway:  p.Gateway,
		client:   p.Client,
		sources:  sources,
		filter:   p.Filter,
		archive:  p.Archive,
		observer: observer,
		log:      p.Log,
	}
}

// Companies reads the configured range of the source sheet, flattens the grid
// and drops blank cells.
func (r *Runner) Companies(ctx context.Context) ([]string, error) {
	grid, err := r.gateway.GetData(ctx, r.cfg.SourceSheet, r.cfg.CompanyRange)
	if err != nil {
		return nil, fmt.Errorf("read company list: %w", err)
	}

	var companies []string
	for _, row := range grid {
		for _, cell := range row {
			if cell != "" {
				companies = append(companies, cell)
			}
		}
	}
	return companies, nil
}

// Sync executes one full cycle. Dead sources yield zero offers and the cycle
// continues; snapshot read and publish failures are fatal.
func (r *Runner) Sync(ctx context.Context) (*Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	started := time.Now()
	runID := uuid.NewString()
	log := r.log.With("run_id", runID)

	r.observer.Step(ctx, "Fetching list of companies to parse")
	companies, err := r.Companies(ctx)
	if err != nil {
		observability.IncError(observability.ErrorSheet)
		return nil, err
	}
	r.observer.Step(ctx, "List of companies parsed")

	col := model.NewCollection()
	extObs := &extractionObserver{log: log}
	for _, company := range companies {
		for _, spec := range r.sources {
			r.observer.Step(ctx, fmt.Sprintf("Parsing %s on %s", company, spec.Name))
			payload := r.client.Fetch(ctx, spec, company)
			added := spec.Extract(payload, source.NewEnv(company, col, extObs, r.filter))
			observability.AddOffers(spec.Name, added)
			r.observer.Step(ctx, fmt.Sprintf("%s data extracted from %s: %d offers", company, spec.Name, added))
		}
	}

	r.observer.Step(ctx, "Retrieving previous offers data")
	grid, err := r.gateway.GetData(ctx, r.cfg.DestSheet, "")
	if err != nil {
		observability.IncError(observability.ErrorSheet)
		return nil, fmt.Errorf("read persisted snapshot: %w", err)
	}

	r.observer.Step(ctx, "Reconciling offers with previous data")
	table := reconcile.Reconcile(col, reconcile.FromGrid(grid))

	r.observer.Step(ctx, "Updating data in a sheet")
	if err := r.gateway.Update(ctx, r.cfg.DestSheet, table.Grid()); err != nil {
		observability.IncError(observability.ErrorSheet)
		return nil, fmt.Errorf("write reconciled rows: %w", err)
	}
	r.observer.Step(ctx, "Data updated!")
	observability.AddRowsPublished(len(table.Rows))

	finished := time.Now()
	r.saveToArchive(ctx, log, runID, started, finished, companies, col, table)
	observability.ObserveSyncDuration(finished.Sub(started).Seconds())

	return &Result{
		RunID:     runID,
		Companies: companies,
		Offers:    col.Offers(),
		Table:     table,
		StartedAt: started,
		Duration:  finished.Sub(started),
	}, nil
}

// saveToArchive mirrors the run into Postgres when configured. Best effort:
// the sheet write already succeeded, so archive failures only log.
func (r *Runner) saveToArchive(ctx context.Context, log *logging.Logger, runID string,
	started, finished time.Time, companies []string, col *model.Collection, table reconcile.Table) {
	if r.archive == nil {
		return
	}
	if err := r.archive.SaveOffers(ctx, runID, col.Offers()); err != nil {
		observability.IncError(observability.ErrorStore)
		log.Error("archive offers failed", "error", err)
	}
	summary := archive.RunSummary{
		ID:            runID,
		StartedAt:     started,
		FinishedAt:    finished,
		Companies:     len(companies),
		Collected:     col.Len(),
		RowsPublished: len(table.Rows),
	}
	if err := r.archive.SaveRun(ctx, summary); err != nil {
		observability.IncError(observability.ErrorStore)
		log.Error("archive run summary failed", "error", err)
	}
}
