package company_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/jobtrack-backend/internal/adapter/postgres/company"
	"github.com/heartmarshall/jobtrack-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/jobtrack-backend/internal/domain"
)

// uniqueName returns a display name that won't collide with other tests
// sharing the database container.
func uniqueName(prefix string) string {
	return prefix + " " + uuid.New().String()[:8]
}

func newCompany(name string) *domain.Company {
	return &domain.Company{
		Name:           name,
		NormalizedName: domain.NormalizeCompanyName(name),
	}
}

func TestRepo_Create(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := company.New(pool)
	ctx := context.Background()

	name := uniqueName("Acme")
	created, err := repo.Create(ctx, newCompany(name+" LLC"))
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, name+" LLC", created.Name)
	assert.Equal(t, domain.NormalizeCompanyName(name), created.NormalizedName)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestRepo_Create_DuplicateNormalizedName(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := company.New(pool)
	ctx := context.Background()

	name := uniqueName("Globex")
	_, err := repo.Create(ctx, newCompany(name))
	require.NoError(t, err)

	// Different display spelling, same canonical key.
	_, err = repo.Create(ctx, newCompany(name+" Inc."))
	require.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestRepo_Create_Concurrent_ExactlyOneWins(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := company.New(pool)
	ctx := context.Background()

	name := uniqueName("Initech")

	const writers = 2
	errs := make([]error, writers)
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.Create(ctx, newCompany(name))
		}(i)
	}
	wg.Wait()

	var failures int
	for _, err := range errs {
		if err != nil {
			require.ErrorIs(t, err, domain.ErrAlreadyExists)
			failures++
		}
	}
	assert.Equal(t, writers-1, failures, "exactly one writer should win")

	// Exactly one row holds the key.
	var count int
	err := pool.QueryRow(ctx,
		`SELECT count(*) FROM companies WHERE normalized_name = $1`,
		domain.NormalizeCompanyName(name),
	).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRepo_GetByID(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := company.New(pool)
	ctx := context.Background()

	seeded := testhelper.SeedCompany(t, pool, uniqueName("Hooli"))

	got, err := repo.GetByID(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, got.ID)
	assert.Equal(t, seeded.Name, got.Name)

	_, err = repo.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepo_GetByNormalizedName(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := company.New(pool)
	ctx := context.Background()

	name := uniqueName("Vandelay")
	seeded := testhelper.SeedCompany(t, pool, name)

	got, err := repo.GetByNormalizedName(ctx, domain.NormalizeCompanyName(name))
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, got.ID)

	_, err = repo.GetByNormalizedName(ctx, domain.NormalizeCompanyName(uniqueName("missing")))
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepo_UpdateName(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := company.New(pool)
	ctx := context.Background()

	seeded := testhelper.SeedCompany(t, pool, uniqueName("Wonka"))

	newName := uniqueName("Wonka Industries")
	updated, err := repo.UpdateName(ctx, seeded.ID, newName, domain.NormalizeCompanyName(newName))
	require.NoError(t, err)
	assert.Equal(t, newName, updated.Name)
	assert.Equal(t, domain.NormalizeCompanyName(newName), updated.NormalizedName)
	assert.True(t, updated.UpdatedAt.After(seeded.UpdatedAt) || updated.UpdatedAt.Equal(seeded.UpdatedAt))
}

func TestRepo_UpdateName_Collision(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := company.New(pool)
	ctx := context.Background()

	existing := testhelper.SeedCompany(t, pool, uniqueName("Stark"))
	victim := testhelper.SeedCompany(t, pool, uniqueName("Wayne"))

	_, err := repo.UpdateName(ctx, victim.ID, existing.Name, existing.NormalizedName)
	require.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestRepo_Update_Partial(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := company.New(pool)
	ctx := context.Background()

	seeded := testhelper.SeedCompany(t, pool, uniqueName("Pied Piper"))

	website := "https://example.com"
	updated, err := repo.Update(ctx, seeded.ID, domain.CompanyUpdateParams{Website: &website})
	require.NoError(t, err)
	require.NotNil(t, updated.Website)
	assert.Equal(t, website, *updated.Website)
	assert.Equal(t, seeded.Name, updated.Name, "name untouched by partial update")

	// Empty string clears the column.
	empty := ""
	updated, err = repo.Update(ctx, seeded.ID, domain.CompanyUpdateParams{Website: &empty})
	require.NoError(t, err)
	assert.Nil(t, updated.Website)
}

func TestRepo_List(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := company.New(pool)
	ctx := context.Background()

	a := testhelper.SeedCompany(t, pool, uniqueName("Aperture"))
	b := testhelper.SeedCompany(t, pool, uniqueName("Umbrella"))

	all, err := repo.List(ctx)
	require.NoError(t, err)

	ids := make(map[uuid.UUID]bool, len(all))
	for _, c := range all {
		ids[c.ID] = true
	}
	assert.True(t, ids[a.ID])
	assert.True(t, ids[b.ID])
}
