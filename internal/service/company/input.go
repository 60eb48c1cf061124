package company

import (
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/jobtrack-backend/internal/domain"
)

// CreateInput holds the parameters for creating a company.
type CreateInput struct {
	Name    string
	Website *string
	Notes   *string
}

// Validate checks all fields and collects all errors.
func (i *CreateInput) Validate() error {
	var errs []domain.FieldError

	errs = append(errs, validateName(i.Name)...)
	errs = append(errs, validateWebsite(i.Website)...)
	errs = append(errs, validateNotes(i.Notes)...)

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateInput holds the parameters for a partial company update.
// Nil fields are left unchanged.
type UpdateInput struct {
	CompanyID uuid.UUID
	Name      *string
	Website   *string
	Notes     *string
}

// Validate checks all fields and collects all errors.
func (i *UpdateInput) Validate() error {
	var errs []domain.FieldError

	if i.CompanyID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "company_id", Message: "required"})
	}
	if i.Name == nil && i.Website == nil && i.Notes == nil {
		errs = append(errs, domain.FieldError{Field: "update", Message: "at least one field required"})
	}
	if i.Name != nil {
		errs = append(errs, validateName(*i.Name)...)
	}
	errs = append(errs, validateWebsite(i.Website)...)
	errs = append(errs, validateNotes(i.Notes)...)

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func validateName(name string) []domain.FieldError {
	var errs []domain.FieldError

	trimmed := strings.TrimSpace(name)
	switch {
	case trimmed == "":
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	case len(name) > 200:
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long (max 200)"})
	case domain.NormalizeCompanyName(name) == "":
		// Names made of nothing but legal suffixes or punctuation ("LLC",
		// "Inc.") have no canonical key and can never be deduplicated.
		errs = append(errs, domain.FieldError{Field: "name", Message: "no identifying content"})
	}

	return errs
}

func validateWebsite(website *string) []domain.FieldError {
	if website == nil || *website == "" {
		return nil
	}

	var errs []domain.FieldError
	if len(*website) > 500 {
		errs = append(errs, domain.FieldError{Field: "website", Message: "too long (max 500)"})
	}
	if u, err := url.Parse(*website); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, domain.FieldError{Field: "website", Message: "must be an absolute URL"})
	}
	return errs
}

func validateNotes(notes *string) []domain.FieldError {
	if notes != nil && len(*notes) > 5000 {
		return []domain.FieldError{{Field: "notes", Message: "too long (max 5000)"}}
	}
	return nil
}
