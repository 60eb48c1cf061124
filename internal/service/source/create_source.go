package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/jobtrack-backend/internal/domain"
)

// Create adds a source to the shared directory, rejecting names whose
// canonical key is already claimed. Constraint violations from concurrent
// writers are translated to the same DuplicateEntityError as the pre-check.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, input CreateInput) (*domain.Source, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	normalized, err := s.guard.CheckAvailable(ctx, input.Name)
	if err != nil {
		return nil, err
	}

	var created *domain.Source
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var createErr error
		created, createErr = s.sources.Create(txCtx, &domain.Source{
			Name:           input.Name,
			NormalizedName: normalized,
			Type:           input.Type,
			URL:            input.URL,
		})
		if createErr != nil {
			return createErr
		}

		_, auditErr := s.audit.Record(txCtx, &domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeSource,
			EntityID:   &created.ID,
			Action:     domain.AuditActionCreate,
			Changes:    map[string]any{"name": created.Name, "type": created.Type.String()},
		})
		return auditErr
	})
	if txErr != nil {
		var dup *domain.DuplicateEntityError
		if resolved := s.guard.ResolveWriteError(ctx, txErr, input.Name); errors.As(resolved, &dup) {
			return nil, dup
		}
		return nil, fmt.Errorf("create source: %w", txErr)
	}

	s.log.InfoContext(ctx, "source created",
		slog.String("source_id", created.ID.String()),
		slog.String("name", created.Name),
	)

	return created, nil
}

// FindOrCreate resolves a free-text source name to a directory entry,
// creating one of the given type when the canonical key is unclaimed.
// If a concurrent insert races the create, the winning row is returned.
func (s *Service) FindOrCreate(ctx context.Context, userID uuid.UUID, name string, sourceType domain.SourceType) (*domain.Source, error) {
	if err := (&CreateInput{Name: name, Type: sourceType}).Validate(); err != nil {
		return nil, err
	}

	existing, err := s.guard.Lookup(ctx, name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("find source by normalized name: %w", err)
	}

	var created *domain.Source
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var createErr error
		created, createErr = s.sources.Create(txCtx, &domain.Source{
			Name:           name,
			NormalizedName: s.guard.Key(name),
			Type:           sourceType,
		})
		if createErr != nil {
			return createErr
		}

		_, auditErr := s.audit.Record(txCtx, &domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeSource,
			EntityID:   &created.ID,
			Action:     domain.AuditActionCreate,
			Changes:    map[string]any{"name": created.Name, "type": created.Type.String()},
		})
		return auditErr
	})
	if txErr != nil {
		if errors.Is(txErr, domain.ErrAlreadyExists) {
			winner, lookupErr := s.guard.Lookup(ctx, name)
			if lookupErr != nil {
				return nil, fmt.Errorf("find source after conflict: %w", lookupErr)
			}
			return winner, nil
		}
		return nil, fmt.Errorf("create source: %w", txErr)
	}

	s.log.InfoContext(ctx, "source created from free text",
		slog.String("source_id", created.ID.String()),
		slog.String("name", created.Name),
	)

	return created, nil
}
