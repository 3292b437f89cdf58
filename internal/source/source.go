package source

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/baxromumarov/offer-sync/internal/model"
)

// companyToken is substituted with the (escaped) company name in source URLs.
const companyToken = "{{company}}"

// ExtractFunc maps one raw payload into zero or more offers appended through
// env. It returns how many offers were added. Malformed records are skipped
// and reported, never fatal.
type ExtractFunc func(payload []byte, env Env) int

// Spec describes how to call one job board and extract its payload.
type Spec struct {
	Name    string     // registry key, e.g. "JustJoinIT"
	Board   string     // job_board value recorded on offers
	Method  string     // http.MethodGet or http.MethodPost
	URL     string     // endpoint, may contain companyToken
	Query   url.Values // fixed query parameters, nil for most sources
	Body    func(company string) any
	Extract ExtractFunc
}

// Registry lists every configured job board in fetch order.
func Registry() []Spec {
	return []Spec{
		{
			Name:    "JustJoinIT",
			Board:   boardJustJoinIt,
			Method:  http.MethodGet,
			URL:     "https://justjoin.it/api/offers/search?company_names[]=" + companyToken,
			Extract: extractJustJoinIt,
		},
		{
			Name:    "JobsForGeek",
			Board:   boardJobsForGeek,
			Method:  http.MethodGet,
			URL:     "https://jobsforgeek.com/api/public/job-offer",
			Extract: extractJobsForGeek,
		},
		{
			Name:   "NoFluffJobs",
			Board:  boardNoFluffJobs,
			Method: http.MethodPost,
			URL:    "https://nofluffjobs.com/api/search/posting",
			Query: url.Values{
				"region":         {"pl"},
				"salaryCurrency": {"PLN"},
				"salaryPeriod":   {"month"},
			},
			Body: func(company string) any {
				return map[string]any{"rawSearch": company, "page": 1}
			},
			Extract: extractNoFluffJobs,
		},
		{
			Name:   "TheProtocol",
			Board:  boardTheProtocol,
			Method: http.MethodPost,
			URL:    "https://theprotocol.it/api/offers/search",
			Body: func(company string) any {
				return map[string]any{"keywords": []string{company}}
			},
			Extract: extractTheProtocol,
		},
	}
}

// Observer receives extraction events. Implementations must be cheap; they
// run once per field fallback or skipped record.
type Observer interface {
	// DefaultApplied reports that a missing source field was replaced with
	// the NoData sentinel.
	DefaultApplied(board, field string)
	// RecordSkipped reports a payload or record that could not be decoded.
	RecordSkipped(board, reason string)
}

type NopObserver struct{}

func (NopObserver) DefaultApplied(string, string) {}
func (NopObserver) RecordSkipped(string, string)  {}

// Env is the per-call extraction environment: the queried company, the shared
// collection, the keyword filter and the event observer.
type Env struct {
	Company string
	Filter  KeywordFilter

	col *model.Collection
	obs Observer
}

func NewEnv(company string, col *model.Collection, obs Observer, filter KeywordFilter) Env {
	if obs == nil {
		obs = NopObserver{}
	}
	return Env{Company: company, Filter: filter, col: col, obs: obs}
}

// add appends the offer unless the keyword filter rejects it.
func (e Env) add(offer model.JobOffer) bool {
	if !e.Filter.Match(offer) {
		return false
	}
	e.col.Add(offer)
	return true
}

func (e Env) fields(board string) fields {
	return fields{board: board, obs: e.obs}
}

// fields resolves individual payload fields, substituting the NoData sentinel
// for anything missing and reporting each substitution.
type fields struct {
	board string
	obs   Observer
}

func (f fields) text(val, name string) string {
	cleaned := CleanText(val)
	if cleaned == "" {
		f.obs.DefaultApplied(f.board, name)
		return model.NoData
	}
	return cleaned
}

func (f fields) num(val *float64, name string) string {
	if val == nil {
		f.obs.DefaultApplied(f.board, name)
		return model.NoData
	}
	return strconv.FormatFloat(*val, 'f', -1, 64)
}

func (f fields) first(vals []string, name string) string {
	if len(vals) == 0 {
		f.obs.DefaultApplied(f.board, name)
		return model.NoData
	}
	return f.text(vals[0], name)
}

func (f fields) skipped(reason string) {
	f.obs.RecordSkipped(f.board, reason)
}

// flexID accepts both string and numeric identifiers; boards use either.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}
