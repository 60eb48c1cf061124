package source

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/jobtrack-backend/internal/dedupe"
	"github.com/heartmarshall/jobtrack-backend/internal/domain"
)

type sourceRepo interface {
	Create(ctx context.Context, source *domain.Source) (*domain.Source, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Source, error)
	GetByNormalizedName(ctx context.Context, normalized string) (*domain.Source, error)
	Update(ctx context.Context, id uuid.UUID, params domain.SourceUpdateParams) (*domain.Source, error)
	List(ctx context.Context) ([]*domain.Source, error)
}

type auditRepo interface {
	Record(ctx context.Context, rec *domain.AuditRecord) (*domain.AuditRecord, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements the source directory business logic. Sources share the
// duplicate-detection protocol with companies but use the lighter text
// normalization rule, so "LinkedIn Jobs" and "linkedin jobs" collide while
// suffix stripping never applies.
type Service struct {
	log     *slog.Logger
	sources sourceRepo
	audit   auditRepo
	tx      txManager
	guard   *dedupe.Guard[*domain.Source]
}

// NewService creates a new Source service.
func NewService(
	logger *slog.Logger,
	sources sourceRepo,
	audit auditRepo,
	tx txManager,
) *Service {
	return &Service{
		log:     logger.With("service", "source"),
		sources: sources,
		audit:   audit,
		tx:      tx,
		guard:   dedupe.New(domain.EntityKindSource, sources.GetByNormalizedName),
	}
}

// Get returns a source by ID.
func (s *Service) Get(ctx context.Context, sourceID uuid.UUID) (*domain.Source, error) {
	return s.sources.GetByID(ctx, sourceID)
}

// List returns all sources ordered by name.
func (s *Service) List(ctx context.Context) ([]*domain.Source, error) {
	return s.sources.List(ctx)
}
