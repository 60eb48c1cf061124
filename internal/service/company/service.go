package company

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/jobtrack-backend/internal/config"
	"github.com/heartmarshall/jobtrack-backend/internal/dedupe"
	"github.com/heartmarshall/jobtrack-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type companyRepo interface {
	Create(ctx context.Context, company *domain.Company) (*domain.Company, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error)
	GetByNormalizedName(ctx context.Context, normalized string) (*domain.Company, error)
	UpdateName(ctx context.Context, id uuid.UUID, name, normalized string) (*domain.Company, error)
	Update(ctx context.Context, id uuid.UUID, params domain.CompanyUpdateParams) (*domain.Company, error)
	List(ctx context.Context) ([]*domain.Company, error)
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

// Service implements the company directory business logic. Companies are a
// global reference directory: any user may add one, and duplicate names are
// rejected by canonical-key comparison.
type Service struct {
	log       *slog.Logger
	companies companyRepo
	audit     auditRepo
	tx        txManager
	guard     *dedupe.Guard[*domain.Company]
	cfg       config.DirectoryConfig
}

// NewService creates a new Company service.
func NewService(
	logger *slog.Logger,
	companies companyRepo,
	audit auditRepo,
	tx txManager,
	cfg config.DirectoryConfig,
) *Service {
	return &Service{
		log:       logger.With("service", "company"),
		companies: companies,
		audit:     audit,
		tx:        tx,
		guard:     dedupe.New(domain.EntityKindCompany, companies.GetByNormalizedName),
		cfg:       cfg,
	}
}
