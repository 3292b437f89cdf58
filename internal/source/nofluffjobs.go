package source

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/baxromumarov/offer-sync/internal/model"
)

const (
	boardNoFluffJobs    = "nofluffjobs.com"
	noFluffJobsLinkBase = "https://nofluffjobs.com/pl/job/"
)

type noFluffJobsResponse struct {
	Postings []json.RawMessage `json:"postings"`
}

type noFluffJobsPosting struct {
	Name      string             `json:"name"`
	Posted    *int64             `json:"posted"` // epoch milliseconds
	Title     string             `json:"title"`
	Seniority []string           `json:"seniority"`
	URL       string             `json:"url"`
	Salary    *noFluffJobsSalary `json:"salary"`
}

type noFluffJobsSalary struct {
	Type     string   `json:"type"`
	From     *float64 `json:"from"`
	To       *float64 `json:"to"`
	Currency string   `json:"currency"`
}

// extractNoFluffJobs maps the nofluffjobs search response. Skill breakdown is
// not extracted for this board, so each offer gets a single placeholder
// skill. All its postings are remote searches, so workplace_type is fixed.
func extractNoFluffJobs(payload []byte, env Env) int {
	var resp noFluffJobsResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		env.obs.RecordSkipped(boardNoFluffJobs, "payload has no postings list")
		return 0
	}

	f := env.fields(boardNoFluffJobs)
	added := 0
	for _, item := range resp.Postings {
		var p noFluffJobsPosting
		if err := json.Unmarshal(item, &p); err != nil {
			f.skipped("undecodable posting: " + err.Error())
			continue
		}

		published := model.NoData
		if p.Posted != nil {
			published = time.UnixMilli(*p.Posted).UTC().Format("2006-01-02")
		} else {
			f.obs.DefaultApplied(boardNoFluffJobs, "posted")
		}

		salary := model.EmploymentType{
			Type:      model.NoData,
			SalaryMin: model.NoData,
			SalaryMax: model.NoData,
			Currency:  model.NoData,
		}
		if p.Salary != nil {
			salary = model.EmploymentType{
				Type:      strings.ToUpper(f.text(p.Salary.Type, "salary.type")),
				SalaryMin: f.num(p.Salary.From, "salary.from"),
				SalaryMax: f.num(p.Salary.To, "salary.to"),
				Currency:  f.text(p.Salary.Currency, "salary.currency"),
			}
		} else {
			f.obs.DefaultApplied(boardNoFluffJobs, "salary")
		}

		if env.add(model.JobOffer{
			JobBoard:        boardNoFluffJobs,
			Company:         f.text(p.Name, "name"),
			City:            model.NoData,
			PublishedAt:     published,
			JobTitle:        f.text(p.Title, "title"),
			ExperienceLevel: f.first(p.Seniority, "seniority"),
			WorkplaceType:   "Remote",
			Link:            noFluffJobsLinkBase + p.URL,
			Skills:          []model.Skill{{Name: "no skill"}},
			EmploymentTypes: []model.EmploymentType{salary},
		}) {
			added++
		}
	}
	return added
}
