package company

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/jobtrack-backend/internal/domain"
)

// Update applies a partial update. A rename recomputes the canonical key and
// runs the same duplicate check as Create, with the company itself excluded
// so case or suffix changes of its own name always succeed.
func (s *Service) Update(ctx context.Context, userID uuid.UUID, input UpdateInput) (*domain.Company, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	params := domain.CompanyUpdateParams{
		Website: input.Website,
		Notes:   input.Notes,
	}
	changes := map[string]any{}

	if input.Name != nil {
		normalized, err := s.guard.CheckRename(ctx, *input.Name, input.CompanyID)
		if err != nil {
			return nil, err
		}
		params.Name = input.Name
		params.NormalizedName = &normalized
		changes["name"] = *input.Name
	}
	if input.Website != nil {
		changes["website"] = *input.Website
	}
	if input.Notes != nil {
		changes["notes"] = *input.Notes
	}

	var updated *domain.Company
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var updateErr error
		updated, updateErr = s.companies.Update(txCtx, input.CompanyID, params)
		if updateErr != nil {
			return updateErr
		}

		_, auditErr := s.audit.Record(txCtx, &domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeCompany,
			EntityID:   &input.CompanyID,
			Action:     domain.AuditActionUpdate,
			Changes:    changes,
		})
		return auditErr
	})
	if txErr != nil {
		if input.Name != nil {
			var dup *domain.DuplicateEntityError
			if resolved := s.guard.ResolveWriteError(ctx, txErr, *input.Name); errors.As(resolved, &dup) {
				return nil, dup
			}
		}
		return nil, fmt.Errorf("update company: %w", txErr)
	}

	s.log.InfoContext(ctx, "company updated",
		slog.String("company_id", updated.ID.String()),
	)

	return updated, nil
}
