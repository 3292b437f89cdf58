package source

import (
	"encoding/json"
	"strings"

	"github.com/baxromumarov/offer-sync/internal/model"
)

const (
	boardTheProtocol    = "theprotocol.it"
	theProtocolLinkBase = "https://theprotocol.it/szczegoly/praca/"
)

type theProtocolResponse struct {
	Offers []json.RawMessage `json:"offers"`
}

type theProtocolOffer struct {
	Employer           string                 `json:"employer"`
	Workplace          []theProtocolWorkplace `json:"workplace"`
	PublicationDateUtc string                 `json:"publicationDateUtc"`
	Title              string                 `json:"title"`
	PositionLevels     []theProtocolLevel     `json:"positionLevels"`
	WorkModes          []string               `json:"workModes"`
	OfferURLName       string                 `json:"offerUrlName"`
	Technologies       []string               `json:"technologies"`
	Salary             *theProtocolSalary     `json:"salary"`
}

type theProtocolWorkplace struct {
	Location string `json:"location"`
}

type theProtocolLevel struct {
	Value string `json:"value"`
}

type theProtocolSalary struct {
	To       *float64 `json:"to"`
	Currency string   `json:"currency"`
}

// extractTheProtocol maps the theprotocol.it search response. The board only
// advertises contract rates, so every offer carries a single B2B employment
// type with the lower bound pinned to zero.
func extractTheProtocol(payload []byte, env Env) int {
	var resp theProtocolResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		env.obs.RecordSkipped(boardTheProtocol, "payload has no offers list")
		return 0
	}

	f := env.fields(boardTheProtocol)
	added := 0
	for _, item := range resp.Offers {
		var o theProtocolOffer
		if err := json.Unmarshal(item, &o); err != nil {
			f.skipped("undecodable offer: " + err.Error())
			continue
		}

		salary := model.EmploymentType{
			Type:      "B2B",
			SalaryMin: "0",
			SalaryMax: model.NoData,
			Currency:  model.NoData,
		}
		if o.Salary != nil {
			salary.SalaryMax = f.num(o.Salary.To, "salary.to")
			salary.Currency = f.text(o.Salary.Currency, "salary.currency")
		} else {
			f.obs.DefaultApplied(boardTheProtocol, "salary")
		}

		city := model.NoData
		if len(o.Workplace) > 0 {
			city = f.text(o.Workplace[0].Location, "workplace.location")
		} else {
			f.obs.DefaultApplied(boardTheProtocol, "workplace")
		}

		level := model.NoData
		if len(o.PositionLevels) > 0 {
			level = f.text(o.PositionLevels[0].Value, "positionLevels.value")
		} else {
			f.obs.DefaultApplied(boardTheProtocol, "positionLevels")
		}

		workModes := model.NoData
		if len(o.WorkModes) > 0 {
			workModes = strings.Join(o.WorkModes, ",")
		} else {
			f.obs.DefaultApplied(boardTheProtocol, "workModes")
		}

		skills := make([]model.Skill, 0, len(o.Technologies))
		for _, tech := range o.Technologies {
			skills = append(skills, model.Skill{Name: f.text(tech, "technology")})
		}
		if len(skills) == 0 {
			skills = []model.Skill{{Name: model.NoData}}
			f.obs.DefaultApplied(boardTheProtocol, "technologies")
		}

		if env.add(model.JobOffer{
			JobBoard:        boardTheProtocol,
			Company:         f.text(o.Employer, "employer"),
			City:            city,
			PublishedAt:     f.text(o.PublicationDateUtc, "publicationDateUtc"),
			JobTitle:        f.text(o.Title, "title"),
			ExperienceLevel: level,
			WorkplaceType:   workModes,
			Link:            theProtocolLinkBase + o.OfferURLName,
			Skills:          skills,
			EmploymentTypes: []model.EmploymentType{salary},
		}) {
			added++
		}
	}
	return added
}
