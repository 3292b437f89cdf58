package run

import (
	"context"
	"testing"

	"github.com/baxromumarov/offer-sync/internal/logging"
	"github.com/baxromumarov/offer-sync/internal/source"
)

func TestSchedulerRejectsInvalidSpec(t *testing.T) {
	runner := New(Params{
		Config:   testConfig(),
		Gateway:  &fakeGateway{},
		Client:   source.NewClient(nil, nil),
		Observer: NopObserver(),
		Log:      logging.New("error"),
	})

	s := NewScheduler(runner, "not a cron spec", logging.New("error"))
	if err := s.Start(context.Background()); err == nil {
		t.Fatal("expected an error for an invalid cron spec")
	}
}
