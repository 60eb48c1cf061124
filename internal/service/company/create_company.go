package company

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/jobtrack-backend/internal/domain"
)

// Create adds a company to the shared directory. The name is checked against
// existing canonical keys first; the DB uniqueness constraint is the authority
// of last resort, and a constraint violation is translated to the same
// DuplicateEntityError the pre-check produces.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, input CreateInput) (*domain.Company, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	normalized, err := s.guard.CheckAvailable(ctx, input.Name)
	if err != nil {
		return nil, err
	}

	var created *domain.Company
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var createErr error
		created, createErr = s.companies.Create(txCtx, &domain.Company{
			Name:           input.Name,
			NormalizedName: normalized,
			Website:        input.Website,
			Notes:          input.Notes,
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
		// A concurrent writer may have claimed the key after our pre-check.
		var dup *domain.DuplicateEntityError
		if resolved := s.guard.ResolveWriteError(ctx, txErr, input.Name); errors.As(resolved, &dup) {
			return nil, dup
		}
		return nil, fmt.Errorf("create company: %w", txErr)
	}

	s.log.InfoContext(ctx, "company created",
		slog.String("company_id", created.ID.String()),
		slog.String("name", created.Name),
	)

	return created, nil
}
