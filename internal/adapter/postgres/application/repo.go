// Package application implements the Application repository using PostgreSQL.
// All reads and writes are scoped by user_id; applications are private,
// unlike the shared company/source directory.
package application

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

// Repo provides application persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new application repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const applicationColumns = `id, user_id, company_id, source_id, role_title, status, notes, applied_at, created_at, updated_at`

const createSQL = `
INSERT INTO applications (user_id, company_id, source_id, role_title, status, notes, applied_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + applicationColumns

const getByIDSQL = `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1 AND user_id = $2`

const updateStatusSQL = `
UPDATE applications
SET status = $3, updated_at = now()
WHERE id = $1 AND user_id = $2
RETURNING ` + applicationColumns

// Create inserts a new application and returns the persisted row.
// Returns domain.ErrNotFound when company_id or source_id references a
// missing row (foreign-key violation).
func (r *Repo) Create(ctx context.Context, app *domain.Application) (*domain.Application, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, createSQL,
		app.UserID, app.CompanyID, app.SourceID, app.RoleTitle,
		app.Status.String(), app.Notes, app.AppliedAt)

	created, err := scanApplication(row)
	if err != nil {
		return nil, postgres.MapError(err, "application", uuid.Nil)
	}

	return created, nil
}

// GetByID returns an application by primary key with user_id filter.
// Returns domain.ErrNotFound if it does not exist or belongs to another user.
func (r *Repo) GetByID(ctx context.Context, userID, appID uuid.UUID) (*domain.Application, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	app, err := scanApplication(q.QueryRow(ctx, getByIDSQL, appID, userID))
	if err != nil {
		return nil, postgres.MapError(err, "application", appID)
	}

	return app, nil
}

// UpdateStatus moves an application to a new stage.
// Returns domain.ErrNotFound if it does not exist or belongs to another user.
func (r *Repo) UpdateStatus(ctx context.Context, userID, appID uuid.UUID, status domain.ApplicationStatus) (*domain.Application, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	app, err := scanApplication(q.QueryRow(ctx, updateStatusSQL, appID, userID, status.String()))
	if err != nil {
		return nil, postgres.MapError(err, "application", appID)
	}

	return app, nil
}

// ListByUser returns the user's applications, newest first. A non-nil status
// restricts the result to one stage; companyID likewise.
// Returns an empty slice (not nil) when nothing matches.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID, status *domain.ApplicationStatus, companyID *uuid.UUID) ([]*domain.Application, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	builder := sq.Select(applicationColumns).
		PlaceholderFormat(sq.Dollar).
		From("applications").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC")

	if status != nil {
		builder = builder.Where(sq.Eq{"status": status.String()})
	}
	if companyID != nil {
		builder = builder.Where(sq.Eq{"company_id": *companyID})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	apps := []*domain.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("list applications: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}

	return apps, nil
}

// scanApplication scans one row (pgx.Row or pgx.Rows) into a domain.Application.
func scanApplication(row pgx.Row) (*domain.Application, error) {
	var (
		a      domain.Application
		status string
	)
	err := row.Scan(
		&a.ID, &a.UserID, &a.CompanyID, &a.SourceID, &a.RoleTitle,
		&status, &a.Notes, &a.AppliedAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.Status = domain.ApplicationStatus(status)
	return &a, nil
}
