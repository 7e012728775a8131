package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/credtrack/cpd-backend/internal/service/calendarsync"
)

// calendarService defines the minimal interface needed by CalendarHandler.
type calendarService interface {
	AuthorizationURL(ctx context.Context, planID uuid.UUID) (string, error)
	HandleCallback(ctx context.Context, code, state string) (*calendarsync.CallbackResult, error)
	Sync(ctx context.Context, planID uuid.UUID) (int, error)
	Disconnect(ctx context.Context) error
}

// CalendarHandler serves the external-calendar endpoints.
type CalendarHandler struct {
	svc calendarService
	log *slog.Logger
}

// NewCalendarHandler creates a CalendarHandler.
func NewCalendarHandler(svc calendarService, logger *slog.Logger) *CalendarHandler {
	return &CalendarHandler{svc: svc, log: logger.With("handler", "calendar")}
}

// AuthURL handles GET /calendar/auth-url?plan_id=...
func (h *CalendarHandler) AuthURL(w http.ResponseWriter, r *http.Request) {
	planID, err := uuid.Parse(r.URL.Query().Get("plan_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid plan_id")
		return
	}

	url, err := h.svc.AuthorizationURL(r.Context(), planID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

// Callback handles GET /calendar/callback?code=...&state=...
//
// The provider redirects the browser here after consent; the endpoint is
// unauthenticated and identifies the user from the state blob minted by
// AuthURL instead of a bearer token. The code itself is the secret: the
// state only becomes a stored credential when paired with a code the
// provider accepts.
func (h *CalendarHandler) Callback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	result, err := h.svc.HandleCallback(r.Context(), q.Get("code"), q.Get("state"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"planId":        result.PlanID.String(),
		"eventsCreated": result.EventsCreated,
	})
}

type syncRequest struct {
	PlanID string `json:"planId"`
}

// Sync handles POST /calendar/sync.
func (h *CalendarHandler) Sync(w http.ResponseWriter, r *http.Request) {
	var req syncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	planID, err := uuid.Parse(req.PlanID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid planId")
		return
	}

	created, err := h.svc.Sync(r.Context(), planID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"eventsCreated": created})
}

// Disconnect handles DELETE /calendar/connection.
func (h *CalendarHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Disconnect(r.Context()); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
