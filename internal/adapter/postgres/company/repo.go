// Package company implements the Company repository using PostgreSQL.
// Companies form a global reference directory shared across users; the
// companies_normalized_name_key UNIQUE constraint is the authoritative
// duplicate-detection guarantee under concurrent writers.
package company

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/jobtrack-backend/internal/adapter/postgres"
	"github.com/heartmarshall/jobtrack-backend/internal/domain"
)

// Repo provides company persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new company repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const companyColumns = `id, name, normalized_name, website, notes, created_at, updated_at`

const createSQL = `
INSERT INTO companies (name, normalized_name, website, notes)
VALUES ($1, $2, $3, $4)
RETURNING ` + companyColumns

const getByIDSQL = `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`

const getByNormalizedNameSQL = `SELECT ` + companyColumns + ` FROM companies WHERE normalized_name = $1`

const updateNameSQL = `
UPDATE companies
SET name = $2, normalized_name = $3, updated_at = now()
WHERE id = $1
RETURNING ` + companyColumns

const listSQL = `SELECT ` + companyColumns + ` FROM companies ORDER BY name`

// Create inserts a new company and returns the persisted row.
// Returns domain.ErrAlreadyExists if another company holds the same
// normalized_name (unique-constraint violation).
func (r *Repo) Create(ctx context.Context, company *domain.Company) (*domain.Company, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, createSQL,
		company.Name, company.NormalizedName, company.Website, company.Notes)

	created, err := scanCompany(row)
	if err != nil {
		return nil, postgres.MapError(err, "company", uuid.Nil)
	}

	return created, nil
}

// GetByID returns a company by primary key.
// Returns domain.ErrNotFound if no such company exists.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	company, err := scanCompany(q.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "company", id)
	}

	return company, nil
}

// GetByNormalizedName returns the company holding the given canonical key.
// Returns domain.ErrNotFound if the key is free.
func (r *Repo) GetByNormalizedName(ctx context.Context, normalized string) (*domain.Company, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	company, err := scanCompany(q.QueryRow(ctx, getByNormalizedNameSQL, normalized))
	if err != nil {
		return nil, postgres.MapError(err, "company", uuid.Nil)
	}

	return company, nil
}

// UpdateName persists a new display name together with its recomputed
// canonical key in one statement, keeping the pair consistent.
// Returns domain.ErrNotFound if the company does not exist and
// domain.ErrAlreadyExists if the new key collides.
func (r *Repo) UpdateName(ctx context.Context, id uuid.UUID, name, normalized string) (*domain.Company, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	company, err := scanCompany(q.QueryRow(ctx, updateNameSQL, id, name, normalized))
	if err != nil {
		return nil, postgres.MapError(err, "company", id)
	}

	return company, nil
}

// Update applies a partial update and returns the updated row.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, params domain.CompanyUpdateParams) (*domain.Company, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	builder := sq.Update("companies").
		PlaceholderFormat(sq.Dollar).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + companyColumns)

	if params.Name != nil {
		builder = builder.Set("name", *params.Name).Set("normalized_name", *params.NormalizedName)
	}
	if params.Website != nil {
		builder = builder.Set("website", nilIfEmpty(params.Website))
	}
	if params.Notes != nil {
		builder = builder.Set("notes", nilIfEmpty(params.Notes))
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update query: %w", err)
	}

	company, err := scanCompany(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "company", id)
	}

	return company, nil
}

// List returns all companies ordered by name.
// Returns an empty slice (not nil) when the directory is empty.
func (r *Repo) List(ctx context.Context) ([]*domain.Company, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listSQL)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	companies := []*domain.Company{}
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("list companies: %w", err)
		}
		companies = append(companies, company)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}

	return companies, nil
}

// scanCompany scans one row (pgx.Row or pgx.Rows) into a domain.Company.
func scanCompany(row pgx.Row) (*domain.Company, error) {
	var c domain.Company
	err := row.Scan(
		&c.ID, &c.Name, &c.NormalizedName, &c.Website, &c.Notes,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// nilIfEmpty maps a pointer to "" onto SQL NULL (clear the column).
func nilIfEmpty(s *string) any {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}
