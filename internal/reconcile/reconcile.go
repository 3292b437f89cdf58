// Package reconcile turns a run's collected offers into the flat row set
// published to the destination sheet, merging them against the previously
// persisted snapshot.
package reconcile

import (
	"strings"

	"github.com/baxromumarov/offer-sync/internal/model"
)

var baseColumns = []string{
	"job_board",
	"company",
	"city",
	"published_at",
	"job_title",
	"experience_level",
	"workplace_type",
	"link",
	"skills",
}

// A bucket groups employment-type tags under one set of salary helper
// columns. Matching is substring containment, so both UOP and PERMANENT land
// in the permanent bucket.
type bucket struct {
	prefix string
	tags   string
}

var buckets = []bucket{
	{prefix: "b2b", tags: "B2B"},
	{prefix: "UoP", tags: "UOPPERMANENT"},
}

var dedupKeys = []string{"company", "job_title", "published_at"}

// Table is a header row plus data rows, every value a string.
type Table struct {
	Header []string
	Rows   [][]string
}

// FromGrid interprets a raw sheet grid, first row as header.
func FromGrid(grid [][]string) Table {
	if len(grid) == 0 {
		return Table{}
	}
	return Table{Header: grid[0], Rows: grid[1:]}
}

// Grid returns the header followed by all data rows, the shape the sheet
// gateway writes.
func (t Table) Grid() [][]string {
	out := make([][]string, 0, len(t.Rows)+1)
	out = append(out, t.Header)
	out = append(out, t.Rows...)
	return out
}

func (t Table) Empty() bool {
	return len(t.Header) == 0 && len(t.Rows) == 0
}

// Header lists the published columns: the scalar offer attributes followed by
// three salary helper columns per bucket. employment_types itself is never
// published.
func Header() []string {
	cols := append([]string{}, baseColumns...)
	for _, b := range buckets {
		cols = append(cols,
			b.prefix+"_salary_min",
			b.prefix+"_salary_max",
			b.prefix+"_currency",
		)
	}
	return cols
}

// JoinSkills serializes a skill list into the single display string persisted
// in the sheet. The format concatenates skill names with no separator.
func JoinSkills(skills []model.Skill) string {
	var sb strings.Builder
	for _, s := range skills {
		sb.WriteString(s.Name)
	}
	return sb.String()
}

// SalaryColumns projects employment types onto the six helper values, bucket
// by bucket: the first entry whose tag falls in the bucket supplies the
// values, and a bucket with no match yields the NoData sentinel.
func SalaryColumns(types []model.EmploymentType) []string {
	out := make([]string, 0, 3*len(buckets))
	for _, b := range buckets {
		min, max, currency := bucketValues(types, b.tags)
		out = append(out, min, max, currency)
	}
	return out
}

func bucketValues(types []model.EmploymentType, tags string) (string, string, string) {
	for _, et := range types {
		if et.Type != "" && strings.Contains(tags, et.Type) {
			return et.SalaryMin, et.SalaryMax, et.Currency
		}
	}
	return model.NoData, model.NoData, model.NoData
}

// Flatten converts the collection into tabular form, one row per offer.
func Flatten(col *model.Collection) Table {
	rows := make([][]string, 0, col.Len())
	for _, offer := range col.Offers() {
		row := []string{
			offer.JobBoard,
			offer.Company,
			offer.City,
			offer.PublishedAt,
			offer.JobTitle,
			offer.ExperienceLevel,
			offer.WorkplaceType,
			offer.Link,
			JoinSkills(offer.Skills),
		}
		row = append(row, SalaryColumns(offer.EmploymentTypes)...)
		rows = append(rows, row)
	}
	return Table{Header: Header(), Rows: rows}
}

// Reconcile merges the current run's offers with the persisted snapshot.
// Persisted rows precede current rows in the union, so on duplicate
// (company, job_title, published_at) keys the persisted row wins. A snapshot
// without the dedup key columns is treated as a first run: no union is
// attempted and the current rows are returned verbatim.
func Reconcile(col *model.Collection, prior Table) Table {
	current := Flatten(col)
	if !hasDedupKeys(prior.Header) {
		return current
	}

	header := unionColumns(prior.Header, current.Header)
	rows := make([][]string, 0, len(prior.Rows)+len(current.Rows))
	rows = append(rows, alignRows(prior, header)...)
	rows = append(rows, alignRows(current, header)...)
	rows = dropDuplicates(rows, keyIndexes(header))

	return Table{Header: header, Rows: rows}
}

func hasDedupKeys(header []string) bool {
	for _, key := range dedupKeys {
		if indexOf(header, key) < 0 {
			return false
		}
	}
	return true
}

func indexOf(header []string, name string) int {
	for i, col := range header {
		if col == name {
			return i
		}
	}
	return -1
}

// unionColumns keeps a's order and appends columns only b has.
func unionColumns(a, b []string) []string {
	out := append([]string{}, a...)
	for _, col := range b {
		if indexOf(out, col) < 0 {
			out = append(out, col)
		}
	}
	return out
}

// alignRows remaps t's rows onto the merged header by column name. Columns a
// side doesn't have, and ragged short rows coming back from the sheet, fill
// with the empty string.
func alignRows(t Table, header []string) [][]string {
	srcIdx := make([]int, len(header))
	for i, col := range header {
		srcIdx[i] = indexOf(t.Header, col)
	}

	out := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		aligned := make([]string, len(header))
		for i, src := range srcIdx {
			if src >= 0 && src < len(row) {
				aligned[i] = row[src]
			}
		}
		out = append(out, aligned)
	}
	return out
}

func keyIndexes(header []string) []int {
	idx := make([]int, 0, len(dedupKeys))
	for _, key := range dedupKeys {
		idx = append(idx, indexOf(header, key))
	}
	return idx
}

// dropDuplicates keeps the first row seen for each composite key.
func dropDuplicates(rows [][]string, keys []int) [][]string {
	seen := make(map[string]struct{}, len(rows))
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, row[k])
		}
		key := strings.Join(parts, "\x1f")
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, row)
	}
	return out
}
