package source

import (
	"strings"

	"github.com/baxromumarov/offer-sync/internal/model"
)

// KeywordFilter drops extracted offers that match neither the configured
// technologies nor seniorities. Empty lists pass everything through.
type KeywordFilter struct {
	Technologies []string
	Seniorities  []string
}

func (f KeywordFilter) Match(offer model.JobOffer) bool {
	if len(f.Technologies) > 0 {
		text := offer.JobTitle
		for _, s := range offer.Skills {
			text += " " + s.Name
		}
		if !matchesKeywords(text, f.Technologies) {
			return false
		}
	}
	if len(f.Seniorities) > 0 {
		if !matchesKeywords(offer.ExperienceLevel+" "+offer.JobTitle, f.Seniorities) {
			return false
		}
	}
	return true
}

func matchesKeywords(text string, keywords []string) bool {
	lowerText := strings.ToLower(text)
	for _, k := range keywords {
		if strings.Contains(lowerText, strings.ToLower(k)) {
			return true
		}
	}
	return false
}
