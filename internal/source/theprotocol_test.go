package source

import (
	"testing"

	"github.com/baxromumarov/offer-sync/internal/model"
)

func TestExtractTheProtocol(t *testing.T) {
	payload := `{
		"offers": [
			{
				"employer": "Acme",
				"workplace": [{"location": "Gdańsk"}],
				"publicationDateUtc": "2024-04-02",
				"title": "SRE",
				"positionLevels": [{"value": "senior"}],
				"workModes": ["remote", "hybrid"],
				"offerUrlName": "sre-acme-gdansk,oferta,1234",
				"technologies": ["Go", "Kubernetes"],
				"salary": {"to": 30000, "currency": "pln"}
			}
		]
	}`

	col, _, added := extract(t, extractTheProtocol, payload, "Acme")
	if added != 1 {
		t.Fatalf("added = %d, want 1", added)
	}

	offer := col.Offers()[0]
	if offer.City != "Gdańsk" {
		t.Errorf("City = %q", offer.City)
	}
	if offer.ExperienceLevel != "senior" {
		t.Errorf("ExperienceLevel = %q", offer.ExperienceLevel)
	}
	if offer.WorkplaceType != "remote,hybrid" {
		t.Errorf("WorkplaceType = %q, want joined work modes", offer.WorkplaceType)
	}
	if offer.Link != "https://theprotocol.it/szczegoly/praca/sre-acme-gdansk,oferta,1234" {
		t.Errorf("Link = %q", offer.Link)
	}
	if len(offer.Skills) != 2 || offer.Skills[0].Name != "Go" {
		t.Errorf("Skills = %v", offer.Skills)
	}

	et := offer.EmploymentTypes[0]
	if et.Type != "B2B" || et.SalaryMin != "0" || et.SalaryMax != "30000" || et.Currency != "pln" {
		t.Errorf("EmploymentTypes[0] = %+v, want B2B 0..30000 pln", et)
	}
}

func TestExtractTheProtocolDefaults(t *testing.T) {
	payload := `{"offers": [{"employer": "Acme", "title": "Dev", "offerUrlName": "dev-acme"}]}`

	col, obs, added := extract(t, extractTheProtocol, payload, "Acme")
	if added != 1 {
		t.Fatalf("added = %d, want 1", added)
	}

	offer := col.Offers()[0]
	if offer.City != model.NoData || offer.ExperienceLevel != model.NoData || offer.WorkplaceType != model.NoData {
		t.Errorf("missing fields not defaulted: %+v", offer)
	}
	if len(offer.Skills) != 1 || offer.Skills[0].Name != model.NoData {
		t.Errorf("Skills = %v, want single %q placeholder", offer.Skills, model.NoData)
	}

	et := offer.EmploymentTypes[0]
	if et.Type != "B2B" || et.SalaryMin != "0" || et.SalaryMax != model.NoData || et.Currency != model.NoData {
		t.Errorf("EmploymentTypes[0] = %+v", et)
	}

	for _, want := range []string{"theprotocol.it.salary", "theprotocol.it.workplace", "theprotocol.it.positionLevels", "theprotocol.it.workModes", "theprotocol.it.technologies"} {
		if !obs.hasDefault(want) {
			t.Errorf("default %q not reported, got %v", want, obs.defaults)
		}
	}
}

func TestExtractTheProtocolRejectsNonObjectPayload(t *testing.T) {
	_, obs, added := extract(t, extractTheProtocol, `[]`, "Acme")
	if added != 0 {
		t.Errorf("added = %d, want 0", added)
	}
	if len(obs.skips) != 1 {
		t.Errorf("skips = %v, want one report", obs.skips)
	}
}
