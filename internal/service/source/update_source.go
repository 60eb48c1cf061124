package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/jobtrack-backend/internal/domain"
)

// Update applies a partial update. A rename recomputes the canonical key and
// runs the duplicate check with the source itself excluded.
func (s *Service) Update(ctx context.Context, userID uuid.UUID, input UpdateInput) (*domain.Source, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	params := domain.SourceUpdateParams{
		Type: input.Type,
		URL:  input.URL,
	}
	changes := map[string]any{}

	if input.Name != nil {
		normalized, err := s.guard.CheckRename(ctx, *input.Name, input.SourceID)
		if err != nil {
			return nil, err
		}
		params.Name = input.Name
		params.NormalizedName = &normalized
		changes["name"] = *input.Name
	}
	if input.Type != nil {
		changes["type"] = input.Type.String()
	}
	if input.URL != nil {
		changes["url"] = *input.URL
	}

	var updated *domain.Source
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var updateErr error
		updated, updateErr = s.sources.Update(txCtx, input.SourceID, params)
		if updateErr != nil {
			return updateErr
		}

		_, auditErr := s.audit.Record(txCtx, &domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeSource,
			EntityID:   &input.SourceID,
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
		return nil, fmt.Errorf("update source: %w", txErr)
	}

	s.log.InfoContext(ctx, "source updated",
		slog.String("source_id", updated.ID.String()),
	)

	return updated, nil
}
