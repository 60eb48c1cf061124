package application

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/jobtrack-backend/internal/domain"
)

// CreateInput holds the parameters for tracking a new application.
// Exactly one of CompanyID and CompanyName must be set; the same applies to
// SourceID/SourceName, both of which are optional.
type CreateInput struct {
	CompanyID   *uuid.UUID
	CompanyName *string

	SourceID   *uuid.UUID
	SourceName *string
	SourceType *domain.SourceType

	RoleTitle string
	Status    domain.ApplicationStatus
	Notes     *string
	AppliedAt *time.Time
}

// Validate checks all fields and collects all errors.
func (i *CreateInput) Validate() error {
	var errs []domain.FieldError

	hasCompanyID := i.CompanyID != nil && *i.CompanyID != uuid.Nil
	hasCompanyName := i.CompanyName != nil && strings.TrimSpace(*i.CompanyName) != ""
	switch {
	case !hasCompanyID && !hasCompanyName:
		errs = append(errs, domain.FieldError{Field: "company", Message: "company_id or company_name required"})
	case hasCompanyID && hasCompanyName:
		errs = append(errs, domain.FieldError{Field: "company", Message: "company_id and company_name are mutually exclusive"})
	}

	hasSourceID := i.SourceID != nil && *i.SourceID != uuid.Nil
	hasSourceName := i.SourceName != nil && strings.TrimSpace(*i.SourceName) != ""
	if hasSourceID && hasSourceName {
		errs = append(errs, domain.FieldError{Field: "source", Message: "source_id and source_name are mutually exclusive"})
	}
	if hasSourceName && i.SourceType != nil && !i.SourceType.IsValid() {
		errs = append(errs, domain.FieldError{Field: "source_type", Message: "invalid value"})
	}

	if strings.TrimSpace(i.RoleTitle) == "" {
		errs = append(errs, domain.FieldError{Field: "role_title", Message: "required"})
	} else if len(i.RoleTitle) > 200 {
		errs = append(errs, domain.FieldError{Field: "role_title", Message: "too long (max 200)"})
	}

	if i.Status != "" && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "invalid value"})
	}
	if i.Notes != nil && len(*i.Notes) > 5000 {
		errs = append(errs, domain.FieldError{Field: "notes", Message: "too long (max 5000)"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
