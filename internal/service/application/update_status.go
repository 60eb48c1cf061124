package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/jobtrack-backend/internal/domain"
)

// UpdateStatus moves an application to a new stage. Any transition is
// allowed; the tracker records reality rather than enforcing a pipeline.
func (s *Service) UpdateStatus(ctx context.Context, userID, appID uuid.UUID, status domain.ApplicationStatus) (*domain.Application, error) {
	if appID == uuid.Nil {
		return nil, domain.NewValidationError("application_id", "required")
	}
	if !status.IsValid() {
		return nil, domain.NewValidationError("status", "invalid value")
	}

	var updated *domain.Application
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var updateErr error
		updated, updateErr = s.applications.UpdateStatus(txCtx, userID, appID, status)
		if updateErr != nil {
			return updateErr
		}

		_, auditErr := s.audit.Record(txCtx, &domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeApplication,
			EntityID:   &appID,
			Action:     domain.AuditActionUpdate,
			Changes:    map[string]any{"status": status.String()},
		})
		return auditErr
	})
	if txErr != nil {
		return nil, fmt.Errorf("update application status: %w", txErr)
	}

	s.log.InfoContext(ctx, "application status updated",
		slog.String("application_id", appID.String()),
		slog.String("status", status.String()),
	)

	return updated, nil
}
