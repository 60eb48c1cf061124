// Package source implements the Source repository using PostgreSQL.
// Sources (job boards, recruiters, referrals) share the companies'
// normalized-name uniqueness model but live in their own namespace.
package source

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

// Repo provides source persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new source repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const sourceColumns = `id, name, normalized_name, source_type, url, created_at, updated_at`

const createSQL = `
INSERT INTO sources (name, normalized_name, source_type, url)
VALUES ($1, $2, $3, $4)
RETURNING ` + sourceColumns

const getByIDSQL = `SELECT ` + sourceColumns + ` FROM sources WHERE id = $1`

const getByNormalizedNameSQL = `SELECT ` + sourceColumns + ` FROM sources WHERE normalized_name = $1`

const updateNameSQL = `
UPDATE sources
SET name = $2, normalized_name = $3, updated_at = now()
WHERE id = $1
RETURNING ` + sourceColumns

const listSQL = `SELECT ` + sourceColumns + ` FROM sources ORDER BY name`

// Create inserts a new source and returns the persisted row.
// Returns domain.ErrAlreadyExists on a normalized_name collision.
func (r *Repo) Create(ctx context.Context, source *domain.Source) (*domain.Source, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, createSQL,
		source.Name, source.NormalizedName, source.Type.String(), source.URL)

	created, err := scanSource(row)
	if err != nil {
		return nil, postgres.MapError(err, "source", uuid.Nil)
	}

	return created, nil
}

// GetByID returns a source by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Source, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	source, err := scanSource(q.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "source", id)
	}

	return source, nil
}

// GetByNormalizedName returns the source holding the given canonical key.
// Returns domain.ErrNotFound if the key is free.
func (r *Repo) GetByNormalizedName(ctx context.Context, normalized string) (*domain.Source, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	source, err := scanSource(q.QueryRow(ctx, getByNormalizedNameSQL, normalized))
	if err != nil {
		return nil, postgres.MapError(err, "source", uuid.Nil)
	}

	return source, nil
}

// UpdateName persists a new display name together with its recomputed
// canonical key in one statement.
func (r *Repo) UpdateName(ctx context.Context, id uuid.UUID, name, normalized string) (*domain.Source, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	source, err := scanSource(q.QueryRow(ctx, updateNameSQL, id, name, normalized))
	if err != nil {
		return nil, postgres.MapError(err, "source", id)
	}

	return source, nil
}

// Update applies a partial update and returns the updated row.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, params domain.SourceUpdateParams) (*domain.Source, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	builder := sq.Update("sources").
		PlaceholderFormat(sq.Dollar).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + sourceColumns)

	if params.Name != nil {
		builder = builder.Set("name", *params.Name).Set("normalized_name", *params.NormalizedName)
	}
	if params.Type != nil {
		builder = builder.Set("source_type", params.Type.String())
	}
	if params.URL != nil {
		if *params.URL == "" {
			builder = builder.Set("url", nil)
		} else {
			builder = builder.Set("url", *params.URL)
		}
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update query: %w", err)
	}

	source, err := scanSource(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "source", id)
	}

	return source, nil
}

// List returns all sources ordered by name.
// Returns an empty slice (not nil) when none exist.
func (r *Repo) List(ctx context.Context) ([]*domain.Source, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listSQL)
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	defer rows.Close()

	sources := []*domain.Source{}
	for rows.Next() {
		source, err := scanSource(rows)
		if err != nil {
			return nil, fmt.Errorf("list sources: %w", err)
		}
		sources = append(sources, source)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}

	return sources, nil
}

// scanSource scans one row (pgx.Row or pgx.Rows) into a domain.Source.
func scanSource(row pgx.Row) (*domain.Source, error) {
	var (
		s        domain.Source
		typeName string
	)
	err := row.Scan(
		&s.ID, &s.Name, &s.NormalizedName, &typeName, &s.URL,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.Type = domain.SourceType(typeName)
	return &s, nil
}
