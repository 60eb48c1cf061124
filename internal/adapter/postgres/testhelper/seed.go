package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/jobtrack-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a user with a throwaway bcrypt-shaped password hash.
// Returns a filled domain.User.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:           uuid.New(),
		Email:        "testuser-" + suffix + "@example.com",
		Name:         "Test User " + suffix,
		PasswordHash: "$2a$10$testhashtesthashtesthashtesthashtesthashtesthashtestha",
		Role:         domain.UserRoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, email, name, password_hash, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		user.ID, user.Email, user.Name, user.PasswordHash, user.Role.String(), user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user: %v", err)
	}

	return user
}

// SeedCompany creates a company with a unique name and its normalized form.
// Returns a filled domain.Company.
func SeedCompany(t *testing.T, pool *pgxpool.Pool, name string) domain.Company {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	company := domain.Company{
		ID:             uuid.New(),
		Name:           name,
		NormalizedName: domain.NormalizeCompanyName(name),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO companies (id, name, normalized_name, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		company.ID, company.Name, company.NormalizedName, company.CreatedAt, company.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCompany insert company: %v", err)
	}

	return company
}

// SeedSource creates a source of the given type with a unique name.
// Returns a filled domain.Source.
func SeedSource(t *testing.T, pool *pgxpool.Pool, name string, sourceType domain.SourceType) domain.Source {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	source := domain.Source{
		ID:             uuid.New(),
		Name:           name,
		NormalizedName: domain.NormalizeText(name),
		Type:           sourceType,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO sources (id, name, normalized_name, source_type, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		source.ID, source.Name, source.NormalizedName, source.Type.String(), source.CreatedAt, source.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedSource insert source: %v", err)
	}

	return source
}

// SeedApplication creates an application for the given user and company.
// Returns a filled domain.Application with status SAVED.
func SeedApplication(t *testing.T, pool *pgxpool.Pool, userID, companyID uuid.UUID) domain.Application {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	app := domain.Application{
		ID:        uuid.New(),
		UserID:    userID,
		CompanyID: companyID,
		RoleTitle: "Engineer " + suffix,
		Status:    domain.ApplicationStatusSaved,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO applications (id, user_id, company_id, role_title, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		app.ID, app.UserID, app.CompanyID, app.RoleTitle, app.Status.String(), app.CreatedAt, app.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedApplication insert application: %v", err)
	}

	return app
}
