package rest

import (
	"net/http"
)

// Handlers groups the handler set mounted by NewRouter.
type Handlers struct {
	Health      *HealthHandler
	Auth        *AuthHandler
	Company     *CompanyHandler
	Source      *SourceHandler
	Application *ApplicationHandler
}

// NewRouter builds the HTTP route table. Authentication and other
// cross-cutting concerns are applied by middleware outside the router;
// handlers enforce identity themselves via the request context.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	mux.HandleFunc("POST /api/v1/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/v1/auth/login", h.Auth.Login)
	mux.HandleFunc("GET /api/v1/me", h.Auth.Me)

	// The literal suggest segment wins over the {id} pattern, so
	// "suggest" is never parsed as a company id.
	mux.HandleFunc("GET /api/v1/companies/suggest", h.Company.Suggest)
	mux.HandleFunc("POST /api/v1/companies", h.Company.Create)
	mux.HandleFunc("GET /api/v1/companies", h.Company.List)
	mux.HandleFunc("GET /api/v1/companies/{id}", h.Company.Get)
	mux.HandleFunc("PATCH /api/v1/companies/{id}", h.Company.Update)

	mux.HandleFunc("POST /api/v1/sources", h.Source.Create)
	mux.HandleFunc("GET /api/v1/sources", h.Source.List)
	mux.HandleFunc("GET /api/v1/sources/{id}", h.Source.Get)
	mux.HandleFunc("PATCH /api/v1/sources/{id}", h.Source.Update)

	mux.HandleFunc("POST /api/v1/applications", h.Application.Create)
	mux.HandleFunc("GET /api/v1/applications", h.Application.List)
	mux.HandleFunc("GET /api/v1/applications/{id}", h.Application.Get)
	mux.HandleFunc("PATCH /api/v1/applications/{id}/status", h.Application.UpdateStatus)

	return mux
}
