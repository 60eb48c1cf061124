package company

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/jobtrack-backend/internal/domain"
)

// FindOrCreate resolves a free-text company name to a directory entry,
// creating one when the canonical key is unclaimed. Used by application
// quick-create, where typing "google llc" must land on the existing
// "Google" rather than fail with a duplicate error. If a concurrent insert
// races the create, the winning row is returned.
func (s *Service) FindOrCreate(ctx context.Context, userID uuid.UUID, name string) (*domain.Company, error) {
	if err := (&CreateInput{Name: name}).Validate(); err != nil {
		return nil, err
	}

	existing, err := s.guard.Lookup(ctx, name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("find company by normalized name: %w", err)
	}

	var created *domain.Company
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var createErr error
		created, createErr = s.companies.Create(txCtx, &domain.Company{
			Name:           name,
			NormalizedName: s.guard.Key(name),
		})
		if createErr != nil {
			return createErr
		}

		_, auditErr := s.audit.Record(txCtx, &domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeCompany,
			EntityID:   &created.ID,
			Action:     domain.AuditActionCreate,
			Changes:    map[string]any{"name": created.Name},
		})
		return auditErr
	})
	if txErr != nil {
		// Concurrent create of the same key: the caller wanted this company
		// either way, so hand back the winner.
		if errors.Is(txErr, domain.ErrAlreadyExists) {
			winner, lookupErr := s.guard.Lookup(ctx, name)
			if lookupErr != nil {
				return nil, fmt.Errorf("find company after conflict: %w", lookupErr)
			}
			return winner, nil
		}
		return nil, fmt.Errorf("create company: %w", txErr)
	}

	s.log.InfoContext(ctx, "company created from free text",
		slog.String("company_id", created.ID.String()),
		slog.String("name", created.Name),
	)

	return created, nil
}
