package domain

// EntityKind identifies the namespace of a global reference entity.
// Companies and Sources are deduplicated independently: the same canonical
// key may exist once per kind.
type EntityKind string

const (
	EntityKindCompany EntityKind = "COMPANY"
	EntityKindSource  EntityKind = "SOURCE"
)

func (k EntityKind) String() string { return string(k) }

func (k EntityKind) IsValid() bool {
	switch k {
	case EntityKindCompany, EntityKindSource:
		return true
	}
	return false
}

// SourceType classifies where a job opportunity was found.
type SourceType string

const (
	SourceTypeJobBoard  SourceType = "JOB_BOARD"
	SourceTypeRecruiter SourceType = "RECRUITER"
	SourceTypeReferral  SourceType = "REFERRAL"
	SourceTypeOther     SourceType = "OTHER"
)

func (t SourceType) String() string { return string(t) }

func (t SourceType) IsValid() bool {
	switch t {
	case SourceTypeJobBoard, SourceTypeRecruiter, SourceTypeReferral, SourceTypeOther:
		return true
	}
	return false
}

// ApplicationStatus represents the stage of a job application.
type ApplicationStatus string

const (
	ApplicationStatusSaved        ApplicationStatus = "SAVED"
	ApplicationStatusApplied      ApplicationStatus = "APPLIED"
	ApplicationStatusInterviewing ApplicationStatus = "INTERVIEWING"
	ApplicationStatusOffer        ApplicationStatus = "OFFER"
	ApplicationStatusRejected     ApplicationStatus = "REJECTED"
	ApplicationStatusWithdrawn    ApplicationStatus = "WITHDRAWN"
)

func (s ApplicationStatus) String() string { return string(s) }

func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationStatusSaved, ApplicationStatusApplied, ApplicationStatusInterviewing,
		ApplicationStatusOffer, ApplicationStatusRejected, ApplicationStatusWithdrawn:
		return true
	}
	return false
}

// EntityType identifies the kind of domain entity (used in audit logs).
type EntityType string

const (
	EntityTypeCompany     EntityType = "COMPANY"
	EntityTypeSource      EntityType = "SOURCE"
	EntityTypeApplication EntityType = "APPLICATION"
	EntityTypeUser        EntityType = "USER"
)

func (e EntityType) String() string { return string(e) }

func (e EntityType) IsValid() bool {
	switch e {
	case EntityTypeCompany, EntityTypeSource, EntityTypeApplication, EntityTypeUser:
		return true
	}
	return false
}

// AuditAction represents the kind of mutation recorded in the audit log.
type AuditAction string

const (
	AuditActionCreate AuditAction = "CREATE"
	AuditActionUpdate AuditAction = "UPDATE"
	AuditActionDelete AuditAction = "DELETE"
)

func (a AuditAction) String() string { return string(a) }

func (a AuditAction) IsValid() bool {
	switch a {
	case AuditActionCreate, AuditActionUpdate, AuditActionDelete:
		return true
	}
	return false
}

// UserRole represents the authorization level of a user.
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleUser, UserRoleAdmin:
		return true
	}
	return false
}
