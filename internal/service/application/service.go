package application

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/jobtrack-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type applicationRepo interface {
	Create(ctx context.Context, app *domain.Application) (*domain.Application, error)
	GetByID(ctx context.Context, userID, appID uuid.UUID) (*domain.Application, error)
	UpdateStatus(ctx context.Context, userID, appID uuid.UUID, status domain.ApplicationStatus) (*domain.Application, error)
	ListByUser(ctx context.Context, userID uuid.UUID, status *domain.ApplicationStatus, companyID *uuid.UUID) ([]*domain.Application, error)
}

// companyDirectory resolves free-text company names to directory entries.
type companyDirectory interface {
	FindOrCreate(ctx context.Context, userID uuid.UUID, name string) (*domain.Company, error)
	Get(ctx context.Context, companyID uuid.UUID) (*domain.Company, error)
}

// sourceDirectory resolves free-text source names to directory entries.
type sourceDirectory interface {
	FindOrCreate(ctx context.Context, userID uuid.UUID, name string, sourceType domain.SourceType) (*domain.Source, error)
}

type auditRepo interface {
	Record(ctx context.Context, rec *domain.AuditRecord) (*domain.AuditRecord, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the application tracking business logic. Applications
// are private to their user; the companies and sources they reference live
// in the shared directory and are resolved by name on quick-create.
type Service struct {
	log          *slog.Logger
	applications applicationRepo
	companies    companyDirectory
	sources      sourceDirectory
	audit        auditRepo
	tx           txManager
}

// NewService creates a new Application service.
func NewService(
	logger *slog.Logger,
	applications applicationRepo,
	companies companyDirectory,
	sources sourceDirectory,
	audit auditRepo,
	tx txManager,
) *Service {
	return &Service{
		log:          logger.With("service", "application"),
		applications: applications,
		companies:    companies,
		sources:      sources,
		audit:        audit,
		tx:           tx,
	}
}

// Get returns one of the user's applications.
func (s *Service) Get(ctx context.Context, userID, appID uuid.UUID) (*domain.Application, error) {
	return s.applications.GetByID(ctx, userID, appID)
}

// List returns the user's applications, optionally filtered by status and
// company.
func (s *Service) List(ctx context.Context, userID uuid.UUID, status *domain.ApplicationStatus, companyID *uuid.UUID) ([]*domain.Application, error) {
	if status != nil && !status.IsValid() {
		return nil, domain.NewValidationError("status", "invalid value")
	}
	return s.applications.ListByUser(ctx, userID, status, companyID)
}
