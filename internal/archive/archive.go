// Package archive keeps collected offers in Postgres. The sheet is the
// system of record; the archive is a durable mirror that survives the
// clear-before-write window and feeds the diagnostic API.
package archive

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"

	"github.com/baxromumarov/offer-sync/internal/model"
	"github.com/baxromumarov/offer-sync/internal/reconcile"
)

type Store struct {
	db *sql.DB
}

func NewStore(connStr string) (*Store, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) RunMigrations(schemaPath string) error {
	content, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, string(content)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

// Offer is a flattened archived offer, one row per posting link.
type Offer struct {
	ID              int       `json:"id"`
	RunID           string    `json:"run_id"`
	JobBoard        string    `json:"job_board"`
	Company         string    `json:"company"`
	City            string    `json:"city"`
	PublishedAt     string    `json:"published_at"`
	JobTitle        string    `json:"job_title"`
	ExperienceLevel string    `json:"experience_level"`
	WorkplaceType   string    `json:"workplace_type"`
	Link            string    `json:"link"`
	Skills          string    `json:"skills"`
	B2BSalaryMin    string    `json:"b2b_salary_min"`
	B2BSalaryMax    string    `json:"b2b_salary_max"`
	B2BCurrency     string    `json:"b2b_currency"`
	UoPSalaryMin    string    `json:"uop_salary_min"`
	UoPSalaryMax    string    `json:"uop_salary_max"`
	UoPCurrency     string    `json:"uop_currency"`
	CreatedAt       time.Time `json:"created_at"`
}

// RunSummary records one completed sync cycle.
type RunSummary struct {
	ID            string    `json:"id"`
	StartedAt     time.Time `json:"started_at"`
	FinishedAt    time.Time `json:"finished_at"`
	Companies     int       `json:"companies"`
	Collected     int       `json:"offers_collected"`
	RowsPublished int       `json:"rows_published"`
}

// SaveOffers upserts the run's offers by link, refreshing salary data for
// postings seen before.
func (s *Store) SaveOffers(ctx context.Context, runID string, offers []model.JobOffer) error {
	for _, offer := range offers {
		salary := reconcile.SalaryColumns(offer.EmploymentTypes)
		_, err := s.db.ExecContext(ctx, `
INSERT INTO offers (run_id, job_board, company, city, published_at, job_title, experience_level, workplace_type, link, skills,
                    b2b_salary_min, b2b_salary_max, b2b_currency, uop_salary_min, uop_salary_max, uop_currency, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW())
ON CONFLICT (link) DO UPDATE SET
    run_id = EXCLUDED.run_id,
    job_title = EXCLUDED.job_title,
    experience_level = EXCLUDED.experience_level,
    workplace_type = EXCLUDED.workplace_type,
    skills = EXCLUDED.skills,
    b2b_salary_min = EXCLUDED.b2b_salary_min,
    b2b_salary_max = EXCLUDED.b2b_salary_max,
    b2b_currency = EXCLUDED.b2b_currency,
    uop_salary_min = EXCLUDED.uop_salary_min,
    uop_salary_max = EXCLUDED.uop_salary_max,
    uop_currency = EXCLUDED.uop_currency,
    updated_at = NOW()
`, runID, offer.JobBoard, offer.Company, offer.City, offer.PublishedAt, offer.JobTitle,
			offer.ExperienceLevel, offer.WorkplaceType, offer.Link, reconcile.JoinSkills(offer.Skills),
			salary[0], salary[1], salary[2], salary[3], salary[4], salary[5])
		if err != nil {
			return fmt.Errorf("failed to save offer %s: %w", offer.Link, err)
		}
	}
	return nil
}

func (s *Store) SaveRun(ctx context.Context, run RunSummary) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO runs (id, started_at, finished_at, companies, offers_collected, rows_published)
VALUES ($1, $2, $3, $4, $5, $6)
`, run.ID, run.StartedAt, run.FinishedAt, run.Companies, run.Collected, run.RowsPublished)
	return err
}

func clampLimit(limit, defaultLimit, maxLimit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

func (s *Store) ListOffers(ctx context.Context, limit, offset int) ([]Offer, error) {
	limit = clampLimit(limit, 20, 200)
	if offset < 0 {
		offset = 0
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT id, run_id, job_board, company, city, published_at, job_title, experience_level, workplace_type, link, skills,
       b2b_salary_min, b2b_salary_max, b2b_currency, uop_salary_min, uop_salary_max, uop_currency, created_at
FROM offers
ORDER BY created_at DESC, id DESC
LIMIT $1 OFFSET $2
`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var offers []Offer
	for rows.Next() {
		var o Offer
		if err := rows.Scan(
			&o.ID,
			&o.RunID,
			&o.JobBoard,
			&o.Company,
			&o.City,
			&o.PublishedAt,
			&o.JobTitle,
			&o.ExperienceLevel,
			&o.WorkplaceType,
			&o.Link,
			&o.Skills,
			&o.B2BSalaryMin,
			&o.B2BSalaryMax,
			&o.B2BCurrency,
			&o.UoPSalaryMin,
			&o.UoPSalaryMax,
			&o.UoPCurrency,
			&o.CreatedAt,
		); err != nil {
			return nil, err
		}
		offers = append(offers, o)
	}
	return offers, rows.Err()
}

func (s *Store) ListRuns(ctx context.Context, limit, offset int) ([]RunSummary, error) {
	limit = clampLimit(limit, 20, 200)
	if offset < 0 {
		offset = 0
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT id, started_at, finished_at, companies, offers_collected, rows_published
FROM runs
ORDER BY started_at DESC
LIMIT $1 OFFSET $2
`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.FinishedAt, &r.Companies, &r.Collected, &r.RowsPublished); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
