package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/jobtrack-backend/internal/domain"
	"github.com/heartmarshall/jobtrack-backend/internal/service/application"
)

// applicationService defines the minimal interface needed by ApplicationHandler.
type applicationService interface {
	Create(ctx context.Context, userID uuid.UUID, input application.CreateInput) (*domain.Application, error)
	Get(ctx context.Context, userID, appID uuid.UUID) (*domain.Application, error)
	List(ctx context.Context, userID uuid.UUID, status *domain.ApplicationStatus, companyID *uuid.UUID) ([]*domain.Application, error)
	UpdateStatus(ctx context.Context, userID, appID uuid.UUID, status domain.ApplicationStatus) (*domain.Application, error)
}

// ApplicationHandler serves the job application REST endpoints.
type ApplicationHandler struct {
	svc applicationService
	log *slog.Logger
}

// NewApplicationHandler creates an ApplicationHandler.
func NewApplicationHandler(svc applicationService, logger *slog.Logger) *ApplicationHandler {
	return &ApplicationHandler{svc: svc, log: logger.With("handler", "application")}
}

type createApplicationRequest struct {
	CompanyID   *string `json:"companyId,omitempty"`
	CompanyName *string `json:"companyName,omitempty"`

	SourceID   *string `json:"sourceId,omitempty"`
	SourceName *string `json:"sourceName,omitempty"`
	SourceType *string `json:"sourceType,omitempty"`

	RoleTitle string     `json:"roleTitle"`
	Status    string     `json:"status,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
	AppliedAt *time.Time `json:"appliedAt,omitempty"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type applicationResponse struct {
	ID        string     `json:"id"`
	CompanyID string     `json:"companyId"`
	SourceID  *string    `json:"sourceId,omitempty"`
	RoleTitle string     `json:"roleTitle"`
	Status    string     `json:"status"`
	Notes     *string    `json:"notes,omitempty"`
	AppliedAt *time.Time `json:"appliedAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Create handles POST /applications. The company and source may be given
// either by id or by free-form name; names are resolved through the
// directory, creating entries as needed.
func (h *ApplicationHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req createApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := application.CreateInput{
		CompanyName: req.CompanyName,
		SourceName:  req.SourceName,
		RoleTitle:   req.RoleTitle,
		Status:      domain.ApplicationStatus(req.Status),
		Notes:       req.Notes,
		AppliedAt:   req.AppliedAt,
	}
	if req.CompanyID != nil {
		id, err := uuid.Parse(*req.CompanyID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid companyId")
			return
		}
		input.CompanyID = &id
	}
	if req.SourceID != nil {
		id, err := uuid.Parse(*req.SourceID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid sourceId")
			return
		}
		input.SourceID = &id
	}
	if req.SourceType != nil {
		st := domain.SourceType(*req.SourceType)
		input.SourceType = &st
	}

	app, err := h.svc.Create(r.Context(), userID, input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toApplicationResponse(app))
}

// Get handles GET /applications/{id}.
func (h *ApplicationHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	app, err := h.svc.Get(r.Context(), userID, id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toApplicationResponse(app))
}

// List handles GET /applications?status=...&companyId=...
func (h *ApplicationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var status *domain.ApplicationStatus
	if v := r.URL.Query().Get("status"); v != "" {
		st := domain.ApplicationStatus(v)
		status = &st
	}

	var companyID *uuid.UUID
	if v := r.URL.Query().Get("companyId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid companyId")
			return
		}
		companyID = &id
	}

	apps, err := h.svc.List(r.Context(), userID, status, companyID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := make([]applicationResponse, 0, len(apps))
	for _, app := range apps {
		resp = append(resp, toApplicationResponse(app))
	}
	writeJSON(w, http.StatusOK, resp)
}

// UpdateStatus handles PATCH /applications/{id}/status.
func (h *ApplicationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	app, err := h.svc.UpdateStatus(r.Context(), userID, id, domain.ApplicationStatus(req.Status))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toApplicationResponse(app))
}

func toApplicationResponse(app *domain.Application) applicationResponse {
	resp := applicationResponse{
		ID:        app.ID.String(),
		CompanyID: app.CompanyID.String(),
		RoleTitle: app.RoleTitle,
		Status:    app.Status.String(),
		Notes:     app.Notes,
		AppliedAt: app.AppliedAt,
		CreatedAt: app.CreatedAt,
		UpdatedAt: app.UpdatedAt,
	}
	if app.SourceID != nil {
		s := app.SourceID.String()
		resp.SourceID = &s
	}
	return resp
}
