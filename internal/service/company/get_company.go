package company

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/jobtrack-backend/internal/domain"
)

// Get returns a company by ID.
func (s *Service) Get(ctx context.Context, companyID uuid.UUID) (*domain.Company, error) {
	return s.companies.GetByID(ctx, companyID)
}

// List returns the whole directory ordered by name.
func (s *Service) List(ctx context.Context) ([]*domain.Company, error) {
	return s.companies.List(ctx)
}
