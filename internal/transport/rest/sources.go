package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/jobtrack-backend/internal/domain"
	"github.com/heartmarshall/jobtrack-backend/internal/service/source"
)

// sourceService defines the minimal interface needed by SourceHandler.
type sourceService interface {
	Create(ctx context.Context, userID uuid.UUID, input source.CreateInput) (*domain.Source, error)
	Get(ctx context.Context, sourceID uuid.UUID) (*domain.Source, error)
	List(ctx context.Context) ([]*domain.Source, error)
	Update(ctx context.Context, userID uuid.UUID, input source.UpdateInput) (*domain.Source, error)
}

// SourceHandler serves the source directory REST endpoints.
type SourceHandler struct {
	svc sourceService
	log *slog.Logger
}

// NewSourceHandler creates a SourceHandler.
func NewSourceHandler(svc sourceService, logger *slog.Logger) *SourceHandler {
	return &SourceHandler{svc: svc, log: logger.With("handler", "source")}
}

type createSourceRequest struct {
	Name string  `json:"name"`
	Type string  `json:"type"`
	URL  *string `json:"url,omitempty"`
}

type updateSourceRequest struct {
	Name *string `json:"name,omitempty"`
	Type *string `json:"type,omitempty"`
	URL  *string `json:"url,omitempty"`
}

type sourceResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	NormalizedName string    `json:"normalizedName"`
	Type           string    `json:"type"`
	URL            *string   `json:"url,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Create handles POST /sources.
func (h *SourceHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req createSourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s, err := h.svc.Create(r.Context(), userID, source.CreateInput{
		Name: req.Name,
		Type: domain.SourceType(req.Type),
		URL:  req.URL,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toSourceResponse(s))
}

// Get handles GET /sources/{id}.
func (h *SourceHandler) Get(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	s, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSourceResponse(s))
}

// List handles GET /sources.
func (h *SourceHandler) List(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}

	sources, err := h.svc.List(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := make([]sourceResponse, 0, len(sources))
	for _, s := range sources {
		resp = append(resp, toSourceResponse(s))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Update handles PATCH /sources/{id}.
func (h *SourceHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req updateSourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := source.UpdateInput{
		SourceID: id,
		Name:     req.Name,
		URL:      req.URL,
	}
	if req.Type != nil {
		st := domain.SourceType(*req.Type)
		input.Type = &st
	}

	s, err := h.svc.Update(r.Context(), userID, input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSourceResponse(s))
}

func toSourceResponse(s *domain.Source) sourceResponse {
	return sourceResponse{
		ID:             s.ID.String(),
		Name:           s.Name,
		NormalizedName: s.NormalizedName,
		Type:           s.Type.String(),
		URL:            s.URL,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}
