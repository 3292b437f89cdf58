package source

import (
	"encoding/json"
	"testing"

	"github.com/baxromumarov/offer-sync/internal/model"
)

// recordingObserver collects extraction events so tests can assert on
// sentinel substitutions and skipped records.
type recordingObserver struct {
	defaults []string
	skips    []string
}

func (o *recordingObserver) DefaultApplied(board, field string) {
	o.defaults = append(o.defaults, board+"."+field)
}

func (o *recordingObserver) RecordSkipped(board, reason string) {
	o.skips = append(o.skips, board+": "+reason)
}

func (o *recordingObserver) hasDefault(key string) bool {
	for _, d := range o.defaults {
		if d == key {
			return true
		}
	}
	return false
}

func extract(t *testing.T, fn ExtractFunc, payload string, company string) (*model.Collection, *recordingObserver, int) {
	t.Helper()
	col := model.NewCollection()
	obs := &recordingObserver{}
	added := fn([]byte(payload), NewEnv(company, col, obs, KeywordFilter{}))
	return col, obs, added
}

func TestFlexIDAcceptsStringAndNumber(t *testing.T) {
	var s struct {
		ID flexID `json:"id"`
	}

	if err := json.Unmarshal([]byte(`{"id":"abc42"}`), &s); err != nil {
		t.Fatalf("string id: %v", err)
	}
	if s.ID != "abc42" {
		t.Errorf("string id = %q, want %q", s.ID, "abc42")
	}

	if err := json.Unmarshal([]byte(`{"id":42}`), &s); err != nil {
		t.Fatalf("numeric id: %v", err)
	}
	if s.ID != "42" {
		t.Errorf("numeric id = %q, want %q", s.ID, "42")
	}

	if err := json.Unmarshal([]byte(`{"id":[1]}`), &s); err == nil {
		t.Error("expected error for array id, got nil")
	}
}

func TestRegistryCoversAllBoards(t *testing.T) {
	specs := Registry()
	if len(specs) != 4 {
		t.Fatalf("registry size = %d, want 4", len(specs))
	}

	wantOrder := []string{"JustJoinIT", "JobsForGeek", "NoFluffJobs", "TheProtocol"}
	for i, want := range wantOrder {
		if specs[i].Name != want {
			t.Errorf("specs[%d].Name = %q, want %q", i, specs[i].Name, want)
		}
		if specs[i].Extract == nil {
			t.Errorf("specs[%d] has no extract func", i)
		}
	}
}

func TestEnvAddAppliesFilter(t *testing.T) {
	col := model.NewCollection()
	env := NewEnv("Acme", col, nil, KeywordFilter{Technologies: []string{"go"}})

	if env.add(model.JobOffer{JobTitle: "Accountant"}) {
		t.Error("offer without keyword should be rejected")
	}
	if !env.add(model.JobOffer{JobTitle: "Go Developer"}) {
		t.Error("offer with keyword should be accepted")
	}
	if col.Len() != 1 {
		t.Errorf("collection size = %d, want 1", col.Len())
	}
}
