// Package rest contains the HTTP handlers for the JSON API.
package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/credtrack/cpd-backend/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// handleError maps domain errors to HTTP statuses. Anything unmapped is a
// 500 and gets logged; mapped errors are the caller's problem and are not.
func handleError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "already exists")
	case errors.Is(err, domain.ErrAuthorizationRequired):
		// The client is expected to start the calendar consent flow.
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":               "calendar authorization required",
			"needs_authorization": true,
		})
	default:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// pathID parses the {id} path segment. A second return of false means the
// response has already been written.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

// parseDate parses a required YYYY-MM-DD field.
func parseDate(w http.ResponseWriter, field, value string) (time.Time, bool) {
	if value == "" {
		writeError(w, http.StatusBadRequest, field+" is required")
		return time.Time{}, false
	}
	t, err := domain.ParseDate(value)
	if err != nil {
		writeError(w, http.StatusBadRequest, field+" must be YYYY-MM-DD")
		return time.Time{}, false
	}
	return t, true
}

// parseDatePtr parses an optional YYYY-MM-DD field.
func parseDatePtr(w http.ResponseWriter, field string, value *string) (*time.Time, bool) {
	if value == nil || *value == "" {
		return nil, true
	}
	t, err := domain.ParseDate(*value)
	if err != nil {
		writeError(w, http.StatusBadRequest, field+" must be YYYY-MM-DD")
		return nil, false
	}
	return &t, true
}

func categoryPtr(s *string) *domain.TrainingCategory {
	if s == nil || *s == "" {
		return nil
	}
	c := domain.TrainingCategory(*s)
	return &c
}

func categoryString(c *domain.TrainingCategory) *string {
	if c == nil {
		return nil
	}
	s := c.String()
	return &s
}

func formatDate(t time.Time) string { return t.Format(time.DateOnly) }

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatDate(*t)
	return &s
}
