// Package audit implements the append-only audit log repository.
package audit

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/jobtrack-backend/internal/adapter/postgres"
	"github.com/heartmarshall/jobtrack-backend/internal/domain"
)

// Repo provides audit log persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new audit repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const auditColumns = `id, user_id, entity_type, entity_id, action, changes, created_at`

const recordSQL = `
INSERT INTO audit_log (user_id, entity_type, entity_id, action, changes)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + auditColumns

const listByEntitySQL = `
SELECT ` + auditColumns + `
FROM audit_log
WHERE entity_type = $1 AND entity_id = $2
ORDER BY created_at DESC
LIMIT $3`

// Record appends one audit entry. Meant to run inside the same transaction
// as the write it describes, via TxManager.
func (r *Repo) Record(ctx context.Context, rec *domain.AuditRecord) (*domain.AuditRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, recordSQL,
		rec.UserID, rec.EntityType.String(), rec.EntityID, rec.Action.String(), rec.Changes)

	created, err := scanRecord(row)
	if err != nil {
		return nil, postgres.MapError(err, "audit_record", uuid.Nil)
	}

	return created, nil
}

// ListByEntity returns the newest audit entries for one entity.
func (r *Repo) ListByEntity(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID, limit int) ([]*domain.AuditRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listByEntitySQL, entityType.String(), entityID, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit records: %w", err)
	}
	defer rows.Close()

	records := []*domain.AuditRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("list audit records: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list audit records: %w", err)
	}

	return records, nil
}

func scanRecord(row pgx.Row) (*domain.AuditRecord, error) {
	var (
		rec        domain.AuditRecord
		entityType string
		action     string
	)
	err := row.Scan(&rec.ID, &rec.UserID, &entityType, &rec.EntityID, &action, &rec.Changes, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	rec.EntityType = domain.EntityType(entityType)
	rec.Action = domain.AuditAction(action)
	return &rec, nil
}
