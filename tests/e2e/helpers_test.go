//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/jobtrack-backend/internal/adapter/postgres"
	applicationrepo "github.com/heartmarshall/jobtrack-backend/internal/adapter/postgres/application"
	auditrepo "github.com/heartmarshall/jobtrack-backend/internal/adapter/postgres/audit"
	companyrepo "github.com/heartmarshall/jobtrack-backend/internal/adapter/postgres/company"
	sourcerepo "github.com/heartmarshall/jobtrack-backend/internal/adapter/postgres/source"
	"github.com/heartmarshall/jobtrack-backend/internal/adapter/postgres/testhelper"
	userrepo "github.com/heartmarshall/jobtrack-backend/internal/adapter/postgres/user"
	authpkg "github.com/heartmarshall/jobtrack-backend/internal/auth"
	"github.com/heartmarshall/jobtrack-backend/internal/config"
	applicationsvc "github.com/heartmarshall/jobtrack-backend/internal/service/application"
	companysvc "github.com/heartmarshall/jobtrack-backend/internal/service/company"
	sourcesvc "github.com/heartmarshall/jobtrack-backend/internal/service/source"
	usersvc "github.com/heartmarshall/jobtrack-backend/internal/service/user"
	"github.com/heartmarshall/jobtrack-backend/internal/transport/middleware"
	"github.com/heartmarshall/jobtrack-backend/internal/transport/rest"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// testServer wraps the full-stack HTTP server for E2E tests.
type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// setupTestServer bootstraps the full application stack backed by
// a real PostgreSQL container (shared via testhelper).
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)

	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	txm := postgres.NewTxManager(pool)

	companies := companyrepo.New(pool)
	sources := sourcerepo.New(pool)
	applications := applicationrepo.New(pool)
	users := userrepo.New(pool)
	audit := auditrepo.New(pool)

	jwtMgr := authpkg.NewJWTManager("test-secret-at-least-32-chars-long!!", "jobtrack-test", 15*time.Minute)

	directoryCfg := config.DirectoryConfig{SuggestLimit: 5, SuggestMinScore: 0.7}
	authCfg := config.AuthConfig{
		JWTSecret:        "test-secret-at-least-32-chars-long!!",
		JWTIssuer:        "jobtrack-test",
		AccessTokenTTL:   15 * time.Minute,
		PasswordHashCost: bcrypt.MinCost,
	}

	companyService := companysvc.NewService(logger, companies, audit, txm, directoryCfg)
	sourceService := sourcesvc.NewService(logger, sources, audit, txm)
	applicationService := applicationsvc.NewService(logger, applications, companyService, sourceService, audit, txm)
	userService := usersvc.NewService(logger, users, jwtMgr, authCfg)

	mux := rest.NewRouter(rest.Handlers{
		Health:      rest.NewHealthHandler(pool, "test-version"),
		Auth:        rest.NewAuthHandler(userService, logger),
		Company:     rest.NewCompanyHandler(companyService, logger),
		Source:      rest.NewSourceHandler(sourceService, logger),
		Application: rest.NewApplicationHandler(applicationService, logger),
	})

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.CORS(config.CORSConfig{
			AllowedOrigins:   "*",
			AllowedMethods:   "GET,POST,PATCH,OPTIONS",
			AllowedHeaders:   "Authorization,Content-Type",
			AllowCredentials: true,
			MaxAge:           86400,
		}),
		middleware.Auth(jwtMgr),
	)(mux)

	srv := httptest.NewServer(handler)
	t.Cleanup(func() { srv.Close() })

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
	}
}

// restRequest sends a JSON request and returns status + decoded body.
// body may be nil; token may be empty for anonymous requests.
func (ts *testServer) restRequest(t *testing.T, method, path string, body any, token string) (int, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var result map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		// Some endpoints return JSON arrays; callers use restRequestList.
		return resp.StatusCode, nil
	}
	return resp.StatusCode, result
}

// restRequestList is restRequest for endpoints returning a JSON array.
func (ts *testServer) restRequestList(t *testing.T, method, path, token string) (int, []map[string]any) {
	t.Helper()

	req, err := http.NewRequest(method, ts.URL+path, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var result []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return resp.StatusCode, result
}

// registerUser registers a fresh user and returns its access token.
func (ts *testServer) registerUser(t *testing.T) string {
	t.Helper()

	email := fmt.Sprintf("e2e-%s@example.com", uuid.New().String()[:8])
	status, result := ts.restRequest(t, http.MethodPost, "/api/v1/auth/register", map[string]any{
		"email":    email,
		"name":     "E2E User",
		"password": "s3cretpassword",
	}, "")
	require.Equal(t, http.StatusCreated, status, "register: %v", result)

	token, ok := result["accessToken"].(string)
	require.True(t, ok, "expected accessToken in register response")
	return token
}

// uniqueName returns a name unlikely to collide across test runs.
func uniqueName(prefix string) string {
	return fmt.Sprintf("%s %s", prefix, uuid.New().String()[:8])
}
