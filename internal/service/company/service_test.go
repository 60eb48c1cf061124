package company

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/jobtrack-backend/internal/config"
	"github.com/heartmarshall/jobtrack-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Manual mocks (moq-style with func fields)
// ---------------------------------------------------------------------------

type mockCompanyRepo struct {
	CreateFunc              func(ctx context.Context, company *domain.Company) (*domain.Company, error)
	GetByIDFunc             func(ctx context.Context, id uuid.UUID) (*domain.Company, error)
	GetByNormalizedNameFunc func(ctx context.Context, normalized string) (*domain.Company, error)
	UpdateNameFunc          func(ctx context.Context, id uuid.UUID, name, normalized string) (*domain.Company, error)
	UpdateFunc              func(ctx context.Context, id uuid.UUID, params domain.CompanyUpdateParams) (*domain.Company, error)
	ListFunc                func(ctx context.Context) ([]*domain.Company, error)
}

func (m *mockCompanyRepo) Create(ctx context.Context, company *domain.Company) (*domain.Company, error) {
	return m.CreateFunc(ctx, company)
}

func (m *mockCompanyRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockCompanyRepo) GetByNormalizedName(ctx context.Context, normalized string) (*domain.Company, error) {
	return m.GetByNormalizedNameFunc(ctx, normalized)
}

func (m *mockCompanyRepo) UpdateName(ctx context.Context, id uuid.UUID, name, normalized string) (*domain.Company, error) {
	return m.UpdateNameFunc(ctx, id, name, normalized)
}

func (m *mockCompanyRepo) Update(ctx context.Context, id uuid.UUID, params domain.CompanyUpdateParams) (*domain.Company, error) {
	return m.UpdateFunc(ctx, id, params)
}

func (m *mockCompanyRepo) List(ctx context.Context) ([]*domain.Company, error) {
	return m.ListFunc(ctx)
}

type mockAuditRepo struct {
	RecordFunc func(ctx context.Context, rec *domain.AuditRecord) (*domain.AuditRecord, error)
}

func (m *mockAuditRepo) Record(ctx context.Context, rec *domain.AuditRecord) (*domain.AuditRecord, error) {
	if m.RecordFunc != nil {
		return m.RecordFunc(ctx, rec)
	}
	rec.ID = uuid.New()
	return rec, nil
}

type mockTxManager struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTxFunc != nil {
		return m.RunInTxFunc(ctx, fn)
	}
	// Default: pass-through (no real transaction).
	return fn(ctx)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newTestService(repo *mockCompanyRepo) *Service {
	return NewService(
		slog.Default(),
		repo,
		&mockAuditRepo{},
		&mockTxManager{},
		config.DirectoryConfig{SuggestLimit: 5, SuggestMinScore: 0.7},
	)
}

func notFoundRepo() *mockCompanyRepo {
	return &mockCompanyRepo{
		GetByNormalizedNameFunc: func(_ context.Context, _ string) (*domain.Company, error) {
			return nil, domain.ErrNotFound
		},
	}
}

func makeCompany(name string) *domain.Company {
	return &domain.Company{
		ID:             uuid.New(),
		Name:           name,
		NormalizedName: domain.NormalizeCompanyName(name),
	}
}

// ---------------------------------------------------------------------------
// Create tests
// ---------------------------------------------------------------------------

func TestService_Create_Success(t *testing.T) {
	t.Parallel()

	repo := notFoundRepo()
	repo.CreateFunc = func(_ context.Context, c *domain.Company) (*domain.Company, error) {
		assert.Equal(t, "Acme LLC", c.Name)
		assert.Equal(t, "acme", c.NormalizedName)
		c.ID = uuid.New()
		return c, nil
	}

	var audited *domain.AuditRecord
	svc := newTestService(repo)
	svc.audit = &mockAuditRepo{
		RecordFunc: func(_ context.Context, rec *domain.AuditRecord) (*domain.AuditRecord, error) {
			audited = rec
			return rec, nil
		},
	}

	userID := uuid.New()
	created, err := svc.Create(context.Background(), userID, CreateInput{Name: "Acme LLC"})

	require.NoError(t, err)
	assert.Equal(t, "Acme LLC", created.Name)
	require.NotNil(t, audited)
	assert.Equal(t, userID, audited.UserID)
	assert.Equal(t, domain.AuditActionCreate, audited.Action)
}

func TestService_Create_ValidationError(t *testing.T) {
	t.Parallel()

	svc := newTestService(notFoundRepo())

	for _, name := range []string{"", "   ", "LLC", "Inc."} {
		_, err := svc.Create(context.Background(), uuid.New(), CreateInput{Name: name})
		require.ErrorIs(t, err, domain.ErrValidation, "name %q", name)
	}
}

func TestService_Create_DuplicatePreCheck(t *testing.T) {
	t.Parallel()

	existing := makeCompany("Acme")
	repo := &mockCompanyRepo{
		GetByNormalizedNameFunc: func(_ context.Context, normalized string) (*domain.Company, error) {
			assert.Equal(t, "acme", normalized)
			return existing, nil
		},
		CreateFunc: func(_ context.Context, _ *domain.Company) (*domain.Company, error) {
			t.Fatal("Create should not be called when the pre-check collides")
			return nil, nil
		},
	}

	svc := newTestService(repo)
	_, err := svc.Create(context.Background(), uuid.New(), CreateInput{Name: "ACME, Inc."})

	var dup *domain.DuplicateEntityError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, existing.ID, dup.ExistingID)
	assert.Equal(t, "Acme", dup.ExistingName)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestService_Create_DuplicateConstraintRace(t *testing.T) {
	t.Parallel()

	winner := makeCompany("Acme")

	// Pre-check sees a free key; the insert then hits the constraint, and the
	// conflict re-read returns the winner.
	calls := 0
	repo := &mockCompanyRepo{
		GetByNormalizedNameFunc: func(_ context.Context, _ string) (*domain.Company, error) {
			calls++
			if calls == 1 {
				return nil, domain.ErrNotFound
			}
			return winner, nil
		},
		CreateFunc: func(_ context.Context, _ *domain.Company) (*domain.Company, error) {
			return nil, domain.ErrAlreadyExists
		},
	}

	svc := newTestService(repo)
	_, err := svc.Create(context.Background(), uuid.New(), CreateInput{Name: "Acme"})

	var dup *domain.DuplicateEntityError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, winner.ID, dup.ExistingID)
}

func TestService_Create_RepoError(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection refused")
	repo := notFoundRepo()
	repo.CreateFunc = func(_ context.Context, _ *domain.Company) (*domain.Company, error) {
		return nil, boom
	}

	svc := newTestService(repo)
	_, err := svc.Create(context.Background(), uuid.New(), CreateInput{Name: "Acme"})

	require.ErrorIs(t, err, boom)
}

// ---------------------------------------------------------------------------
// FindOrCreate tests
// ---------------------------------------------------------------------------

func TestService_FindOrCreate_ReturnsExisting(t *testing.T) {
	t.Parallel()

	existing := makeCompany("Google")
	repo := &mockCompanyRepo{
		GetByNormalizedNameFunc: func(_ context.Context, normalized string) (*domain.Company, error) {
			assert.Equal(t, "google", normalized)
			return existing, nil
		},
		CreateFunc: func(_ context.Context, _ *domain.Company) (*domain.Company, error) {
			t.Fatal("Create should not be called when the key is claimed")
			return nil, nil
		},
	}

	svc := newTestService(repo)
	got, err := svc.FindOrCreate(context.Background(), uuid.New(), "google llc")

	require.NoError(t, err)
	assert.Equal(t, existing.ID, got.ID)
}

func TestService_FindOrCreate_CreatesNew(t *testing.T) {
	t.Parallel()

	repo := notFoundRepo()
	repo.CreateFunc = func(_ context.Context, c *domain.Company) (*domain.Company, error) {
		assert.Equal(t, "Tipico", c.Name)
		assert.Equal(t, "tipico", c.NormalizedName)
		c.ID = uuid.New()
		return c, nil
	}

	svc := newTestService(repo)
	got, err := svc.FindOrCreate(context.Background(), uuid.New(), "Tipico")

	require.NoError(t, err)
	assert.Equal(t, "Tipico", got.Name)
}

func TestService_FindOrCreate_ConcurrentInsertReturnsWinner(t *testing.T) {
	t.Parallel()

	winner := makeCompany("Stripe")
	calls := 0
	repo := &mockCompanyRepo{
		GetByNormalizedNameFunc: func(_ context.Context, _ string) (*domain.Company, error) {
			calls++
			if calls == 1 {
				return nil, domain.ErrNotFound
			}
			return winner, nil
		},
		CreateFunc: func(_ context.Context, _ *domain.Company) (*domain.Company, error) {
			return nil, domain.ErrAlreadyExists
		},
	}

	svc := newTestService(repo)
	got, err := svc.FindOrCreate(context.Background(), uuid.New(), "Stripe")

	require.NoError(t, err)
	assert.Equal(t, winner.ID, got.ID)
}

// ---------------------------------------------------------------------------
// Update tests
// ---------------------------------------------------------------------------

func TestService_Update_RenameToOwnVariantSucceeds(t *testing.T) {
	t.Parallel()

	self := makeCompany("Acme Corp")
	repo := &mockCompanyRepo{
		GetByNormalizedNameFunc: func(_ context.Context, _ string) (*domain.Company, error) {
			return self, nil
		},
		UpdateFunc: func(_ context.Context, id uuid.UUID, params domain.CompanyUpdateParams) (*domain.Company, error) {
			assert.Equal(t, self.ID, id)
			require.NotNil(t, params.NormalizedName)
			assert.Equal(t, "acme", *params.NormalizedName)
			self.Name = *params.Name
			self.NormalizedName = *params.NormalizedName
			return self, nil
		},
	}

	svc := newTestService(repo)
	newName := "ACME, Inc."
	got, err := svc.Update(context.Background(), uuid.New(), UpdateInput{CompanyID: self.ID, Name: &newName})

	require.NoError(t, err)
	assert.Equal(t, "ACME, Inc.", got.Name)
}

func TestService_Update_RenameCollides(t *testing.T) {
	t.Parallel()

	other := makeCompany("Globex")
	repo := &mockCompanyRepo{
		GetByNormalizedNameFunc: func(_ context.Context, _ string) (*domain.Company, error) {
			return other, nil
		},
	}

	svc := newTestService(repo)
	newName := "Globex LLC"
	_, err := svc.Update(context.Background(), uuid.New(), UpdateInput{CompanyID: uuid.New(), Name: &newName})

	var dup *domain.DuplicateEntityError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, other.ID, dup.ExistingID)
}

func TestService_Update_NoFields(t *testing.T) {
	t.Parallel()

	svc := newTestService(notFoundRepo())
	_, err := svc.Update(context.Background(), uuid.New(), UpdateInput{CompanyID: uuid.New()})

	require.ErrorIs(t, err, domain.ErrValidation)
}

// ---------------------------------------------------------------------------
// Suggest tests
// ---------------------------------------------------------------------------

func TestService_Suggest(t *testing.T) {
	t.Parallel()

	acme := makeCompany("Acme")
	acne := makeCompany("Acne Ltd")
	unrelated := makeCompany("Completely Different")
	repo := &mockCompanyRepo{
		ListFunc: func(_ context.Context) ([]*domain.Company, error) {
			return []*domain.Company{unrelated, acne, acme}, nil
		},
	}

	svc := newTestService(repo)
	got, err := svc.Suggest(context.Background(), "Acme LLC")

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, acme.ID, got[0].Company.ID, "exact canonical match ranks first")
	assert.Equal(t, 1.0, got[0].Score)
	assert.Equal(t, acne.ID, got[1].Company.ID)
	assert.Less(t, got[1].Score, 1.0)
	assert.GreaterOrEqual(t, got[1].Score, 0.7)
}

func TestService_Suggest_EmptyName(t *testing.T) {
	t.Parallel()

	listCalled := false
	repo := &mockCompanyRepo{
		ListFunc: func(_ context.Context) ([]*domain.Company, error) {
			listCalled = true
			return nil, nil
		},
	}

	svc := newTestService(repo)
	got, err := svc.Suggest(context.Background(), "   ")

	require.NoError(t, err)
	assert.Empty(t, got)
	assert.False(t, listCalled, "List should NOT be called for blank input")
}

func TestService_Suggest_Limit(t *testing.T) {
	t.Parallel()

	companies := []*domain.Company{}
	for i := 0; i < 10; i++ {
		companies = append(companies, makeCompany("Acme"))
	}
	repo := &mockCompanyRepo{
		ListFunc: func(_ context.Context) ([]*domain.Company, error) {
			return companies, nil
		},
	}

	svc := newTestService(repo)
	got, err := svc.Suggest(context.Background(), "Acme")

	require.NoError(t, err)
	assert.Len(t, got, 5)
}
