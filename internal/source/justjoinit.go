package source

import (
	"encoding/json"
	"strings"

	"github.com/baxromumarov/offer-sync/internal/model"
)

const (
	boardJustJoinIt    = "justjoin.it"
	justJoinItLinkBase = "https://justjoin.it/offers"
)

type justJoinItOffer struct {
	ID              flexID                 `json:"id"`
	CompanyName     string                 `json:"company_name"`
	City            string                 `json:"city"`
	PublishedAt     string                 `json:"published_at"`
	Title           string                 `json:"title"`
	ExperienceLevel string                 `json:"experience_level"`
	WorkplaceType   string                 `json:"workplace_type"`
	Skills          []justJoinItSkill      `json:"skills"`
	EmploymentTypes []justJoinItEmployment `json:"employment_types"`
}

type justJoinItSkill struct {
	Name string `json:"name"`
}

type justJoinItEmployment struct {
	Type   string            `json:"type"`
	Salary *justJoinItSalary `json:"salary"`
}

type justJoinItSalary struct {
	From     *float64 `json:"from"`
	To       *float64 `json:"to"`
	Currency string   `json:"currency"`
}

// extractJustJoinIt maps a justjoin.it search payload (a plain list of offer
// objects) into normalized offers: one employment type per declared entry,
// one skill per declared skill object.
func extractJustJoinIt(payload []byte, env Env) int {
	var raw []json.RawMessage
	if err := json.Unmarshal(payload, &raw); err != nil {
		env.obs.RecordSkipped(boardJustJoinIt, "payload is not an offer list")
		return 0
	}

	f := env.fields(boardJustJoinIt)
	added := 0
	for _, item := range raw {
		var o justJoinItOffer
		if err := json.Unmarshal(item, &o); err != nil {
			f.skipped("undecodable offer: " + err.Error())
			continue
		}

		skills := make([]model.Skill, 0, len(o.Skills))
		for _, s := range o.Skills {
			skills = append(skills, model.Skill{Name: f.text(s.Name, "skill.name")})
		}

		declared := o.EmploymentTypes
		if len(declared) == 0 {
			declared = []justJoinItEmployment{{}}
		}
		types := make([]model.EmploymentType, 0, len(declared))
		for _, et := range declared {
			entry := model.EmploymentType{
				Type:      strings.ToUpper(f.text(et.Type, "employment_type.type")),
				SalaryMin: model.NoData,
				SalaryMax: model.NoData,
				Currency:  model.NoData,
			}
			if et.Salary != nil {
				entry.SalaryMin = f.num(et.Salary.From, "salary.from")
				entry.SalaryMax = f.num(et.Salary.To, "salary.to")
				entry.Currency = f.text(et.Salary.Currency, "salary.currency")
			}
			types = append(types, entry)
		}

		if env.add(model.JobOffer{
			JobBoard:        boardJustJoinIt,
			Company:         f.text(o.CompanyName, "company"),
			City:            f.text(o.City, "city"),
			PublishedAt:     f.text(o.PublishedAt, "published_at"),
			JobTitle:        f.text(o.Title, "job_title"),
			ExperienceLevel: f.text(o.ExperienceLevel, "experience_level"),
			WorkplaceType:   f.text(o.WorkplaceType, "workplace_type"),
			Link:            justJoinItLinkBase + string(o.ID),
			Skills:          skills,
			EmploymentTypes: types,
		}) {
			added++
		}
	}
	return added
}
