package domain

import (
	"time"

	"github.com/google/uuid"
)

// Company is a global reference entity shared across users. Name holds the
// user-supplied display string verbatim; NormalizedName is the canonical key
// derived from it via NormalizeCompanyName and is never set independently.
// At most one company may exist per canonical key, enforced by an
// application-level check backed by a DB uniqueness constraint.
type Company struct {
	ID             uuid.UUID
	Name           string
	NormalizedName string
	Website        *string
	Notes          *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (c *Company) EntityID() uuid.UUID { return c.ID }
func (c *Company) DisplayName() string { return c.Name }

// Source is a global reference entity describing where a role was found
// (job board, recruiter, referral). Its canonical key uses the lighter
// NormalizeText rule; see NormalizeName.
type Source struct {
	ID             uuid.UUID
	Name           string
	NormalizedName string
	Type           SourceType
	URL            *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (s *Source) EntityID() uuid.UUID { return s.ID }
func (s *Source) DisplayName() string { return s.Name }

// CompanyUpdateParams holds the optional fields of a company update.
// Nil means "leave unchanged". NormalizedName must be set whenever Name is.
type CompanyUpdateParams struct {
	Name           *string
	NormalizedName *string
	Website        *string
	Notes          *string
}

// SourceUpdateParams holds the optional fields of a source update.
// NormalizedName must be set whenever Name is.
type SourceUpdateParams struct {
	Name           *string
	NormalizedName *string
	Type           *SourceType
	URL            *string
}
