package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/credtrack/cpd-backend/internal/domain"
	"github.com/credtrack/cpd-backend/internal/service/plan"
)

// planService defines the minimal interface needed by PlanHandler.
type planService interface {
	Create(ctx context.Context, input plan.Input) (*domain.PlannedTraining, error)
	List(ctx context.Context) ([]*domain.PlannedTraining, error)
	ListPastDue(ctx context.Context) ([]*domain.PlannedTraining, error)
	Update(ctx context.Context, id uuid.UUID, input plan.Input) (*domain.PlannedTraining, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Promote(ctx context.Context, id uuid.UUID) (*domain.AttendedTraining, error)
}

// PlanHandler serves the planned-training endpoints.
type PlanHandler struct {
	svc planService
	log *slog.Logger
}

// NewPlanHandler creates a PlanHandler.
func NewPlanHandler(svc planService, logger *slog.Logger) *PlanHandler {
	return &PlanHandler{svc: svc, log: logger.With("handler", "plan")}
}

type planRequest struct {
	Name     string  `json:"name"`
	Category *string `json:"category"`
	Points   *int    `json:"points"`

	ApplicationDeadline *string `json:"applicationDeadline"`
	PaymentDeadline     *string `json:"paymentDeadline"`
	TrainingDate        string  `json:"trainingDate"`

	Fee      *int    `json:"fee"`
	IsOnline bool    `json:"isOnline"`
	Memo     *string `json:"memo"`

	RemindApplication *bool `json:"remindApplication"`
	RemindPayment     *bool `json:"remindPayment"`
	RemindTraining    *bool `json:"remindTraining"`
}

type planResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category *string `json:"category"`
	Points   *int    `json:"points"`

	ApplicationDeadline *string `json:"applicationDeadline"`
	PaymentDeadline     *string `json:"paymentDeadline"`
	TrainingDate        string  `json:"trainingDate"`

	Fee      *int    `json:"fee"`
	IsOnline bool    `json:"isOnline"`
	Memo     *string `json:"memo"`

	RemindApplication bool `json:"remindApplication"`
	RemindPayment     bool `json:"remindPayment"`
	RemindTraining    bool `json:"remindTraining"`

	ReminderSentApplication bool `json:"reminderSentApplication"`
	ReminderSentPayment     bool `json:"reminderSentPayment"`
	ReminderSentTraining    bool `json:"reminderSentTraining"`

	CalendarSynced      bool `json:"calendarSynced"`
	HasPastTrainingDate bool `json:"hasPastTrainingDate"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toPlanResponse(p *domain.PlannedTraining) planResponse {
	return planResponse{
		ID:       p.ID.String(),
		Name:     p.Name,
		Category: categoryString(p.Category),
		Points:   p.Points,

		ApplicationDeadline: formatDatePtr(p.ApplicationDeadline),
		PaymentDeadline:     formatDatePtr(p.PaymentDeadline),
		TrainingDate:        formatDate(p.TrainingDate),

		Fee:      p.Fee,
		IsOnline: p.IsOnline,
		Memo:     p.Memo,

		RemindApplication: p.RemindApplication,
		RemindPayment:     p.RemindPayment,
		RemindTraining:    p.RemindTraining,

		ReminderSentApplication: p.ReminderSentApplication,
		ReminderSentPayment:     p.ReminderSentPayment,
		ReminderSentTraining:    p.ReminderSentTraining,

		CalendarSynced:      p.CalendarSynced,
		HasPastTrainingDate: p.HasPastTrainingDate,

		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (h *PlanHandler) decodeInput(w http.ResponseWriter, r *http.Request) (plan.Input, bool) {
	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return plan.Input{}, false
	}

	trainingDate, ok := parseDate(w, "trainingDate", req.TrainingDate)
	if !ok {
		return plan.Input{}, false
	}
	appDeadline, ok := parseDatePtr(w, "applicationDeadline", req.ApplicationDeadline)
	if !ok {
		return plan.Input{}, false
	}
	payDeadline, ok := parseDatePtr(w, "paymentDeadline", req.PaymentDeadline)
	if !ok {
		return plan.Input{}, false
	}

	return plan.Input{
		Name:     req.Name,
		Category: categoryPtr(req.Category),
		Points:   req.Points,

		ApplicationDeadline: appDeadline,
		PaymentDeadline:     payDeadline,
		TrainingDate:        trainingDate,

		Fee:      req.Fee,
		IsOnline: req.IsOnline,
		Memo:     req.Memo,

		RemindApplication: req.RemindApplication,
		RemindPayment:     req.RemindPayment,
		RemindTraining:    req.RemindTraining,
	}, true
}

// List handles GET /plans.
func (h *PlanHandler) List(w http.ResponseWriter, r *http.Request) {
	plans, err := h.svc.List(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := make([]planResponse, 0, len(plans))
	for _, p := range plans {
		resp = append(resp, toPlanResponse(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListPastDue handles GET /plans/past-due.
func (h *PlanHandler) ListPastDue(w http.ResponseWriter, r *http.Request) {
	plans, err := h.svc.ListPastDue(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := make([]planResponse, 0, len(plans))
	for _, p := range plans {
		resp = append(resp, toPlanResponse(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Create handles POST /plans.
func (h *PlanHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decodeInput(w, r)
	if !ok {
		return
	}

	created, err := h.svc.Create(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toPlanResponse(created))
}

// Update handles PUT /plans/{id}.
func (h *PlanHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	input, ok := h.decodeInput(w, r)
	if !ok {
		return
	}

	updated, err := h.svc.Update(r.Context(), id, input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toPlanResponse(updated))
}

// Delete handles DELETE /plans/{id}.
func (h *PlanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Promote handles POST /plans/{id}/promote.
func (h *PlanHandler) Promote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	created, err := h.svc.Promote(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTrainingResponse(created))
}
