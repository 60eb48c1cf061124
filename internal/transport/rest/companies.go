package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/jobtrack-backend/internal/domain"
	"github.com/heartmarshall/jobtrack-backend/internal/service/company"
)

// companyService defines the minimal interface needed by CompanyHandler.
type companyService interface {
	Create(ctx context.Context, userID uuid.UUID, input company.CreateInput) (*domain.Company, error)
	Get(ctx context.Context, companyID uuid.UUID) (*domain.Company, error)
	List(ctx context.Context) ([]*domain.Company, error)
	Update(ctx context.Context, userID uuid.UUID, input company.UpdateInput) (*domain.Company, error)
	Suggest(ctx context.Context, name string) ([]company.Suggestion, error)
}

// CompanyHandler serves the company directory REST endpoints.
type CompanyHandler struct {
	svc companyService
	log *slog.Logger
}

// NewCompanyHandler creates a CompanyHandler.
func NewCompanyHandler(svc companyService, logger *slog.Logger) *CompanyHandler {
	return &CompanyHandler{svc: svc, log: logger.With("handler", "company")}
}

type createCompanyRequest struct {
	Name    string  `json:"name"`
	Website *string `json:"website,omitempty"`
	Notes   *string `json:"notes,omitempty"`
}

type updateCompanyRequest struct {
	Name    *string `json:"name,omitempty"`
	Website *string `json:"website,omitempty"`
	Notes   *string `json:"notes,omitempty"`
}

type companyResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	NormalizedName string    `json:"normalizedName"`
	Website        *string   `json:"website,omitempty"`
	Notes          *string   `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type suggestionResponse struct {
	Company companyResponse `json:"company"`
	Score   float64         `json:"score"`
}

// Create handles POST /companies.
func (h *CompanyHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req createCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.svc.Create(r.Context(), userID, company.CreateInput{
		Name:    req.Name,
		Website: req.Website,
		Notes:   req.Notes,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCompanyResponse(c))
}

// Get handles GET /companies/{id}.
func (h *CompanyHandler) Get(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toCompanyResponse(c))
}

// List handles GET /companies.
func (h *CompanyHandler) List(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}

	companies, err := h.svc.List(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := make([]companyResponse, 0, len(companies))
	for _, c := range companies {
		resp = append(resp, toCompanyResponse(c))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Update handles PATCH /companies/{id}.
func (h *CompanyHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req updateCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.svc.Update(r.Context(), userID, company.UpdateInput{
		CompanyID: id,
		Name:      req.Name,
		Website:   req.Website,
		Notes:     req.Notes,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toCompanyResponse(c))
}

// Suggest handles GET /companies/suggest?name=...
// Returns near-duplicate directory entries to show before a create.
func (h *CompanyHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}

	name := r.URL.Query().Get("name")
	suggestions, err := h.svc.Suggest(r.Context(), name)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := make([]suggestionResponse, 0, len(suggestions))
	for _, s := range suggestions {
		resp = append(resp, suggestionResponse{
			Company: toCompanyResponse(s.Company),
			Score:   s.Score,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func toCompanyResponse(c *domain.Company) companyResponse {
	return companyResponse{
		ID:             c.ID.String(),
		Name:           c.Name,
		NormalizedName: c.NormalizedName,
		Website:        c.Website,
		Notes:          c.Notes,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
