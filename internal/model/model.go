package model

// NoData marks a value the source payload did not provide. It is distinct
// from the empty string, which only appears in the final published rows.
const NoData = "N/A"

type Skill struct {
	Name string `json:"name"`
}

// EmploymentType is one contract type's salary band. Salary bounds are kept
// as strings because sources mix numbers with missing values.
type EmploymentType struct {
	Type      string `json:"type"`
	SalaryMin string `json:"salary_min"`
	SalaryMax string `json:"salary_max"`
	Currency  string `json:"currency"`
}

type JobOffer struct {
	JobBoard        string           `json:"job_board"`
	Company         string           `json:"company"`
	City            string           `json:"city"`
	PublishedAt     string           `json:"published_at"`
	JobTitle        string           `json:"job_title"`
	ExperienceLevel string           `json:"experience_level"`
	WorkplaceType   string           `json:"workplace_type"`
	Link            string           `json:"link"`
	Skills          []Skill          `json:"skills"`
	EmploymentTypes []EmploymentType `json:"employment_types"`
}

// Collection accumulates offers for a single run. It is append-only while
// sources are being extracted and read-only afterwards.
type Collection struct {
	offers []JobOffer
}

func NewCollection() *Collection {
	return &Collection{}
}

func (c *Collection) Add(offer JobOffer) {
	c.offers = append(c.offers, offer)
}

func (c *Collection) Offers() []JobOffer {
	return c.offers
}

func (c *Collection) Len() int {
	return len(c.offers)
}
