package run

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/baxromumarov/offer-sync/internal/logging"
	"github.com/baxromumarov/offer-sync/internal/observability"
)

// Scheduler fires full sync cycles on a cron spec. Cron runs jobs on a single
// goroutine, so cycles never overlap.
type Scheduler struct {
	cron   *cron.Cron
	runner *Runner
	spec   string
	log    *logging.Logger
}

func NewScheduler(runner *Runner, spec string, log *logging.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		runner: runner,
		spec:   spec,
		log:    log,
	}
}

// Start registers the job and starts the scheduler. One cycle runs
// immediately so the sheet is fresh without waiting for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runSync(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	s.log.Info("scheduler started", "spec", s.spec)

	go s.runSync(ctx)
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.log.Info("scheduler stopped")
}

func (s *Scheduler) runSync(ctx context.Context) {
	result, err := s.runner.Sync(ctx)
	if err != nil {
		observability.IncError(observability.ClassifySyncError(err))
		s.log.Error("sync cycle failed", "error", err)
		return
	}
	s.log.Info("sync cycle complete",
		"run_id", result.RunID,
		"companies", len(result.Companies),
		"offers", len(result.Offers),
		"rows", len(result.Table.Rows),
		"duration", result.Duration.String(),
	)
}
