package domain

import (
	"time"

	"github.com/google/uuid"
)

// Application is a user's job application for a role at a company.
// CompanyID always references a company from the shared directory;
// SourceID is optional (the user may not remember where they found it).
type Application struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	CompanyID uuid.UUID
	SourceID  *uuid.UUID
	RoleTitle string
	Status    ApplicationStatus
	Notes     *string
	AppliedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
