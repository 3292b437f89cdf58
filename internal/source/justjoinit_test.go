package source

import (
	"testing"

	"github.com/baxromumarov/offer-sync/internal/model"
)

func TestExtractJustJoinIt(t *testing.T) {
	payload := `[
		{
			"id": "42",
			"company_name": "Acme",
			"city": "Warszawa",
			"published_at": "2024-03-01",
			"title": "Go Developer",
			"experience_level": "mid",
			"workplace_type": "remote",
			"skills": [{"name": "Python"}],
			"employment_types": [
				{"type": "permanent", "salary": {"from": 5000, "to": 8000, "currency": "PLN"}}
			]
		}
	]`

	col, _, added := extract(t, extractJustJoinIt, payload, "Acme")
	if added != 1 {
		t.Fatalf("added = %d, want 1", added)
	}

	offer := col.Offers()[0]
	if offer.JobBoard != "justjoin.it" {
		t.Errorf("JobBoard = %q, want %q", offer.JobBoard, "justjoin.it")
	}
	if offer.Link != "https://justjoin.it/offers42" {
		t.Errorf("Link = %q, want %q", offer.Link, "https://justjoin.it/offers42")
	}
	if len(offer.Skills) != 1 || offer.Skills[0].Name != "Python" {
		t.Errorf("Skills = %v, want single Python", offer.Skills)
	}
	if len(offer.EmploymentTypes) != 1 {
		t.Fatalf("EmploymentTypes = %v, want one entry", offer.EmploymentTypes)
	}
	et := offer.EmploymentTypes[0]
	if et.Type != "PERMANENT" || et.SalaryMin != "5000" || et.SalaryMax != "8000" || et.Currency != "PLN" {
		t.Errorf("EmploymentTypes[0] = %+v, want PERMANENT 5000..8000 PLN", et)
	}
}

func TestExtractJustJoinItDefaults(t *testing.T) {
	payload := `[{"id": 7, "company_name": "Acme"}]`

	col, obs, added := extract(t, extractJustJoinIt, payload, "Acme")
	if added != 1 {
		t.Fatalf("added = %d, want 1", added)
	}

	offer := col.Offers()[0]
	if offer.City != model.NoData || offer.PublishedAt != model.NoData || offer.JobTitle != model.NoData {
		t.Errorf("missing fields not defaulted: %+v", offer)
	}
	if offer.Link != "https://justjoin.it/offers7" {
		t.Errorf("Link = %q, want numeric id appended", offer.Link)
	}

	// No declared employment types yields one fully defaulted entry.
	if len(offer.EmploymentTypes) != 1 {
		t.Fatalf("EmploymentTypes = %v, want one synthesized entry", offer.EmploymentTypes)
	}
	et := offer.EmploymentTypes[0]
	if et.Type != model.NoData || et.SalaryMin != model.NoData || et.SalaryMax != model.NoData || et.Currency != model.NoData {
		t.Errorf("EmploymentTypes[0] = %+v, want all %q", et, model.NoData)
	}

	if !obs.hasDefault("justjoin.it.city") {
		t.Errorf("city default not reported, got %v", obs.defaults)
	}
	if !obs.hasDefault("justjoin.it.employment_type.type") {
		t.Errorf("employment type default not reported, got %v", obs.defaults)
	}
}

func TestExtractJustJoinItSkipsMalformedRecords(t *testing.T) {
	payload := `[
		{"id": [1], "company_name": "Broken"},
		{"id": "8", "company_name": "Acme", "title": "Dev"}
	]`

	col, obs, added := extract(t, extractJustJoinIt, payload, "Acme")
	if added != 1 {
		t.Fatalf("added = %d, want 1 (malformed record skipped)", added)
	}
	if col.Offers()[0].Link != "https://justjoin.it/offers8" {
		t.Errorf("surviving offer = %+v", col.Offers()[0])
	}
	if len(obs.skips) != 1 {
		t.Errorf("skips = %v, want one skipped record", obs.skips)
	}
}

func TestExtractJustJoinItRejectsNonListPayload(t *testing.T) {
	col, obs, added := extract(t, extractJustJoinIt, `{}`, "Acme")
	if added != 0 || col.Len() != 0 {
		t.Errorf("added = %d, collected = %d, want zero", added, col.Len())
	}
	if len(obs.skips) != 1 {
		t.Errorf("skips = %v, want one report for the payload", obs.skips)
	}
}
