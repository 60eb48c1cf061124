package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/heartmarshall/jobtrack-backend/internal/domain"
	"github.com/heartmarshall/jobtrack-backend/pkg/ctxutil"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

type errorResponse struct {
	Error  string       `json:"error"`
	Fields []fieldError `json:"fields,omitempty"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// conflictResponse is returned when a write collides with an existing
// directory entry under the same canonical name. The existing entry's
// id and display name let clients offer "use the existing one instead".
type conflictResponse struct {
	Error        string `json:"error"`
	Kind         string `json:"kind"`
	ExistingID   string `json:"existingId"`
	ExistingName string `json:"existingName"`
}

// handleError maps service errors to HTTP responses. Duplicate directory
// entries and validation failures carry structured detail; everything else
// collapses to a status code.
func handleError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var dup *domain.DuplicateEntityError
	if errors.As(err, &dup) {
		writeJSON(w, http.StatusConflict, conflictResponse{
			Error:        "already exists",
			Kind:         dup.Kind.String(),
			ExistingID:   dup.ExistingID.String(),
			ExistingName: dup.ExistingName,
		})
		return
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		resp := errorResponse{Error: "validation failed"}
		for _, fe := range ve.Errors {
			resp.Fields = append(resp.Fields, fieldError{Field: fe.Field, Message: fe.Message})
		}
		writeJSON(w, http.StatusBadRequest, resp)
		return
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "already exists")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	default:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// requireUser extracts the authenticated user from the request context.
// Writes 401 and returns false if the request is anonymous.
func requireUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return uuid.Nil, false
	}
	return userID, true
}

// pathUUID parses a UUID path segment. Writes 400 and returns false on
// malformed input.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
