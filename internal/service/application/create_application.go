package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/jobtrack-backend/internal/domain"
)

// Create tracks a new application. Free-text company and source names are
// resolved through the directory first, outside the transaction, so a
// quick-create from "google llc" lands on the existing "Google" entry.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, input CreateInput) (*domain.Application, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	companyID, err := s.resolveCompany(ctx, userID, input)
	if err != nil {
		return nil, err
	}

	sourceID, err := s.resolveSource(ctx, userID, input)
	if err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = domain.ApplicationStatusSaved
	}

	var created *domain.Application
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var createErr error
		created, createErr = s.applications.Create(txCtx, &domain.Application{
			UserID:    userID,
			CompanyID: companyID,
			SourceID:  sourceID,
			RoleTitle: input.RoleTitle,
			Status:    status,
			Notes:     input.Notes,
			AppliedAt: input.AppliedAt,
		})
		if createErr != nil {
			return createErr
		}

		_, auditErr := s.audit.Record(txCtx, &domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeApplication,
			EntityID:   &created.ID,
			Action:     domain.AuditActionCreate,
			Changes: map[string]any{
				"role_title": created.RoleTitle,
				"company_id": companyID.String(),
				"status":     created.Status.String(),
			},
		})
		return auditErr
	})
	if txErr != nil {
		return nil, fmt.Errorf("create application: %w", txErr)
	}

	s.log.InfoContext(ctx, "application created",
		slog.String("application_id", created.ID.String()),
		slog.String("company_id", companyID.String()),
		slog.String("role_title", created.RoleTitle),
	)

	return created, nil
}

func (s *Service) resolveCompany(ctx context.Context, userID uuid.UUID, input CreateInput) (uuid.UUID, error) {
	if input.CompanyID != nil {
		// Fail fast on a dangling reference instead of relying on the FK.
		company, err := s.companies.Get(ctx, *input.CompanyID)
		if err != nil {
			return uuid.Nil, fmt.Errorf("get company: %w", err)
		}
		return company.ID, nil
	}

	company, err := s.companies.FindOrCreate(ctx, userID, *input.CompanyName)
	if err != nil {
		return uuid.Nil, fmt.Errorf("resolve company name: %w", err)
	}
	return company.ID, nil
}

func (s *Service) resolveSource(ctx context.Context, userID uuid.UUID, input CreateInput) (*uuid.UUID, error) {
	if input.SourceID != nil {
		return input.SourceID, nil
	}
	if input.SourceName == nil {
		return nil, nil
	}

	sourceType := domain.SourceTypeOther
	if input.SourceType != nil {
		sourceType = *input.SourceType
	}

	source, err := s.sources.FindOrCreate(ctx, userID, *input.SourceName, sourceType)
	if err != nil {
		return nil, fmt.Errorf("resolve source name: %w", err)
	}
	return &source.ID, nil
}
