package source

import (
	"testing"

	"github.com/baxromumarov/offer-sync/internal/model"
)

func TestExtractJobsForGeekFiltersByCompany(t *testing.T) {
	payload := `[
		{
			"id": 101,
			"companyName": "Acme Sp. z o.o.",
			"city": "Kraków",
			"publishedTime": "2024-02-10",
			"jobTitle": "Backend Developer",
			"remoteType": "remote",
			"skills": ["Go", "SQL"],
			"b2bSalaryFrom": 15000,
			"b2bSalaryTo": 20000,
			"employmentSalaryFrom": 12000,
			"employmentSalaryTo": 16000
		},
		{
			"id": 102,
			"companyName": "Other Corp",
			"jobTitle": "Frontend Developer"
		}
	]`

	col, _, added := extract(t, extractJobsForGeek, payload, "Acme")
	if added != 1 {
		t.Fatalf("added = %d, want 1 (only the matching company)", added)
	}

	offer := col.Offers()[0]
	if offer.Company != "Acme Sp. z o.o." {
		t.Errorf("Company = %q", offer.Company)
	}
	if offer.Link != "https://jobsforgeek.com/job-offers/details101" {
		t.Errorf("Link = %q", offer.Link)
	}
	if offer.ExperienceLevel != model.NoData {
		t.Errorf("ExperienceLevel = %q, want %q (board never provides it)", offer.ExperienceLevel, model.NoData)
	}
	if len(offer.Skills) != 2 || offer.Skills[0].Name != "Go" || offer.Skills[1].Name != "SQL" {
		t.Errorf("Skills = %v", offer.Skills)
	}

	if len(offer.EmploymentTypes) != 2 {
		t.Fatalf("EmploymentTypes = %v, want B2B and UOP", offer.EmploymentTypes)
	}
	b2b, uop := offer.EmploymentTypes[0], offer.EmploymentTypes[1]
	if b2b.Type != "B2B" || b2b.SalaryMin != "15000" || b2b.SalaryMax != "20000" || b2b.Currency != "PLN" {
		t.Errorf("b2b entry = %+v", b2b)
	}
	if uop.Type != "UOP" || uop.SalaryMin != "12000" || uop.SalaryMax != "16000" || uop.Currency != "PLN" {
		t.Errorf("uop entry = %+v", uop)
	}
}

func TestExtractJobsForGeekMissingSalaries(t *testing.T) {
	payload := `[{"id": "9", "companyName": "Acme", "jobTitle": "Dev"}]`

	col, obs, added := extract(t, extractJobsForGeek, payload, "Acme")
	if added != 1 {
		t.Fatalf("added = %d, want 1", added)
	}

	for _, et := range col.Offers()[0].EmploymentTypes {
		if et.SalaryMin != model.NoData || et.SalaryMax != model.NoData {
			t.Errorf("entry %+v, want defaulted salary bounds", et)
		}
		if et.Currency != "PLN" {
			t.Errorf("Currency = %q, want fixed PLN", et.Currency)
		}
	}
	if !obs.hasDefault("jobsforgeek.com.b2bSalaryFrom") {
		t.Errorf("b2b salary default not reported, got %v", obs.defaults)
	}
}
