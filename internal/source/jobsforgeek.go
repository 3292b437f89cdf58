package source

import (
	"encoding/json"
	"strings"

	"github.com/baxromumarov/offer-sync/internal/model"
)

const (
	boardJobsForGeek    = "jobsforgeek.com"
	jobsForGeekLinkBase = "https://jobsforgeek.com/job-offers/details"
)

type jobsForGeekOffer struct {
	ID                   flexID   `json:"id"`
	CompanyName          string   `json:"companyName"`
	City                 string   `json:"city"`
	PublishedTime        string   `json:"publishedTime"`
	JobTitle             string   `json:"jobTitle"`
	RemoteType           string   `json:"remoteType"`
	Skills               []string `json:"skills"`
	B2BSalaryFrom        *float64 `json:"b2bSalaryFrom"`
	B2BSalaryTo          *float64 `json:"b2bSalaryTo"`
	EmploymentSalaryFrom *float64 `json:"employmentSalaryFrom"`
	EmploymentSalaryTo   *float64 `json:"employmentSalaryTo"`
}

// extractJobsForGeek maps a jobsforgeek payload (an unfiltered list covering
// every company) into normalized offers. The board has no company search, so
// offers are kept only when the queried company is a substring of the posting
// company name. Every offer carries exactly two employment types, B2B and
// UOP, both priced in PLN.
func extractJobsForGeek(payload []byte, env Env) int {
	var raw []json.RawMessage
	if err := json.Unmarshal(payload, &raw); err != nil {
		env.obs.RecordSkipped(boardJobsForGeek, "payload is not an offer list")
		return 0
	}

	f := env.fields(boardJobsForGeek)
	added := 0
	for _, item := range raw {
		var o jobsForGeekOffer
		if err := json.Unmarshal(item, &o); err != nil {
			f.skipped("undecodable offer: " + err.Error())
			continue
		}
		if !strings.Contains(o.CompanyName, env.Company) {
			continue
		}

		skills := make([]model.Skill, 0, len(o.Skills))
		for _, s := range o.Skills {
			skills = append(skills, model.Skill{Name: f.text(s, "skill")})
		}

		types := []model.EmploymentType{
			{
				Type:      "B2B",
				SalaryMin: f.num(o.B2BSalaryFrom, "b2bSalaryFrom"),
				SalaryMax: f.num(o.B2BSalaryTo, "b2bSalaryTo"),
				Currency:  "PLN",
			},
			{
				Type:      "UOP",
				SalaryMin: f.num(o.EmploymentSalaryFrom, "employmentSalaryFrom"),
				SalaryMax: f.num(o.EmploymentSalaryTo, "employmentSalaryTo"),
				Currency:  "PLN",
			},
		}

		if env.add(model.JobOffer{
			JobBoard:        boardJobsForGeek,
			Company:         f.text(o.CompanyName, "companyName"),
			City:            f.text(o.City, "city"),
			PublishedAt:     f.text(o.PublishedTime, "publishedTime"),
			JobTitle:        f.text(o.JobTitle, "jobTitle"),
			ExperienceLevel: model.NoData,
			WorkplaceType:   f.text(o.RemoteType, "remoteType"),
			Link:            jobsForGeekLinkBase + string(o.ID),
			Skills:          skills,
			EmploymentTypes: types,
		}) {
			added++
		}
	}
	return added
}
