package application_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/jobtrack-backend/internal/adapter/postgres/application"
	"github.com/heartmarshall/jobtrack-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/jobtrack-backend/internal/domain"
)

func uniqueName(prefix string) string {
	return prefix + " " + uuid.New().String()[:8]
}

func TestRepo_Create(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := application.New(pool)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	comp := testhelper.SeedCompany(t, pool, uniqueName("Acme"))
	src := testhelper.SeedSource(t, pool, uniqueName("LinkedIn"), domain.SourceTypeJobBoard)

	created, err := repo.Create(ctx, &domain.Application{
		UserID:    user.ID,
		CompanyID: comp.ID,
		SourceID:  &src.ID,
		RoleTitle: "Backend Engineer",
		Status:    domain.ApplicationStatusSaved,
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, user.ID, created.UserID)
	assert.Equal(t, comp.ID, created.CompanyID)
	require.NotNil(t, created.SourceID)
	assert.Equal(t, src.ID, *created.SourceID)
	assert.Equal(t, domain.ApplicationStatusSaved, created.Status)
}

func TestRepo_Create_MissingCompany(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := application.New(pool)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)

	_, err := repo.Create(ctx, &domain.Application{
		UserID:    user.ID,
		CompanyID: uuid.New(),
		RoleTitle: "Ghost Role",
		Status:    domain.ApplicationStatusSaved,
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepo_GetByID_ScopedToUser(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := application.New(pool)
	ctx := context.Background()

	owner := testhelper.SeedUser(t, pool)
	other := testhelper.SeedUser(t, pool)
	comp := testhelper.SeedCompany(t, pool, uniqueName("Globex"))
	app := testhelper.SeedApplication(t, pool, owner.ID, comp.ID)

	got, err := repo.GetByID(ctx, owner.ID, app.ID)
	require.NoError(t, err)
	assert.Equal(t, app.ID, got.ID)

	// Another user can't see it.
	_, err = repo.GetByID(ctx, other.ID, app.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepo_UpdateStatus(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := application.New(pool)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	comp := testhelper.SeedCompany(t, pool, uniqueName("Initech"))
	app := testhelper.SeedApplication(t, pool, user.ID, comp.ID)

	updated, err := repo.UpdateStatus(ctx, user.ID, app.ID, domain.ApplicationStatusApplied)
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationStatusApplied, updated.Status)

	_, err = repo.UpdateStatus(ctx, user.ID, uuid.New(), domain.ApplicationStatusApplied)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepo_ListByUser(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := application.New(pool)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	compA := testhelper.SeedCompany(t, pool, uniqueName("Hooli"))
	compB := testhelper.SeedCompany(t, pool, uniqueName("Pied Piper"))
	appA := testhelper.SeedApplication(t, pool, user.ID, compA.ID)
	appB := testhelper.SeedApplication(t, pool, user.ID, compB.ID)

	_, err := repo.UpdateStatus(ctx, user.ID, appB.ID, domain.ApplicationStatusInterviewing)
	require.NoError(t, err)

	all, err := repo.ListByUser(ctx, user.ID, nil, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// Status filter.
	status := domain.ApplicationStatusInterviewing
	filtered, err := repo.ListByUser(ctx, user.ID, &status, nil)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, appB.ID, filtered[0].ID)

	// Company filter.
	filtered, err = repo.ListByUser(ctx, user.ID, nil, &compA.ID)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, appA.ID, filtered[0].ID)

	// Another user sees nothing.
	stranger := testhelper.SeedUser(t, pool)
	empty, err := repo.ListByUser(ctx, stranger.ID, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
