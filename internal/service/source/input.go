package source

import (
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/jobtrack-backend/internal/domain"
)

// CreateInput holds the parameters for creating a source.
type CreateInput struct {
	Name string
	Type domain.SourceType
	URL  *string
}

// Validate checks all fields and collects all errors.
func (i *CreateInput) Validate() error {
	var errs []domain.FieldError

	errs = append(errs, validateName(i.Name)...)
	if !i.Type.IsValid() {
		errs = append(errs, domain.FieldError{Field: "type", Message: "invalid value"})
	}
	errs = append(errs, validateURL(i.URL)...)

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateInput holds the parameters for a partial source update.
// Nil fields are left unchanged.
type UpdateInput struct {
	SourceID uuid.UUID
	Name     *string
	Type     *domain.SourceType
	URL      *string
}

// Validate checks all fields and collects all errors.
func (i *UpdateInput) Validate() error {
	var errs []domain.FieldError

	if i.SourceID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "source_id", Message: "required"})
	}
	if i.Name == nil && i.Type == nil && i.URL == nil {
		errs = append(errs, domain.FieldError{Field: "update", Message: "at least one field required"})
	}
	if i.Name != nil {
		errs = append(errs, validateName(*i.Name)...)
	}
	if i.Type != nil && !i.Type.IsValid() {
		errs = append(errs, domain.FieldError{Field: "type", Message: "invalid value"})
	}
	errs = append(errs, validateURL(i.URL)...)

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func validateName(name string) []domain.FieldError {
	var errs []domain.FieldError

	switch {
	case strings.TrimSpace(name) == "":
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	case len(name) > 200:
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long (max 200)"})
	}

	return errs
}

func validateURL(u *string) []domain.FieldError {
	if u == nil || *u == "" {
		return nil
	}

	var errs []domain.FieldError
	if len(*u) > 500 {
		errs = append(errs, domain.FieldError{Field: "url", Message: "too long (max 500)"})
	}
	if parsed, err := url.Parse(*u); err != nil || parsed.Scheme == "" || parsed.Host == "" {
		errs = append(errs, domain.FieldError{Field: "url", Message: "must be an absolute URL"})
	}
	return errs
}
