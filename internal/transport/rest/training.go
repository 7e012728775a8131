package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/credtrack/cpd-backend/internal/domain"
	"github.com/credtrack/cpd-backend/internal/service/training"
)

// trainingService defines the minimal interface needed by TrainingHandler.
type trainingService interface {
	Record(ctx context.Context, input training.RecordInput) (*domain.AttendedTraining, error)
	List(ctx context.Context) ([]*domain.AttendedTraining, error)
	Update(ctx context.Context, id uuid.UUID, input training.RecordInput) (*domain.AttendedTraining, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TrainingHandler serves the attended-training endpoints.
type TrainingHandler struct {
	svc trainingService
	log *slog.Logger
}

// NewTrainingHandler creates a TrainingHandler.
func NewTrainingHandler(svc trainingService, logger *slog.Logger) *TrainingHandler {
	return &TrainingHandler{svc: svc, log: logger.With("handler", "training")}
}

type trainingRequest struct {
	Name        string  `json:"name"`
	Category    *string `json:"category"`
	Points      *int    `json:"points"`
	Date        string  `json:"date"`
	IsOnline    bool    `json:"isOnline"`
	Fee         *int    `json:"fee"`
	TravelCost  *int    `json:"travelCost"`
	ExpenseNote *string `json:"expenseNote"`
}

type trainingResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    *string   `json:"category"`
	Points      *int      `json:"points"`
	Date        string    `json:"date"`
	IsOnline    bool      `json:"isOnline"`
	Fee         *int      `json:"fee"`
	TravelCost  *int      `json:"travelCost"`
	ExpenseNote *string   `json:"expenseNote"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toTrainingResponse(t *domain.AttendedTraining) trainingResponse {
	return trainingResponse{
		ID:          t.ID.String(),
		Name:        t.Name,
		Category:    categoryString(t.Category),
		Points:      t.Points,
		Date:        formatDate(t.Date),
		IsOnline:    t.IsOnline,
		Fee:         t.Fee,
		TravelCost:  t.TravelCost,
		ExpenseNote: t.ExpenseNote,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (h *TrainingHandler) decodeInput(w http.ResponseWriter, r *http.Request) (training.RecordInput, bool) {
	var req trainingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return training.RecordInput{}, false
	}

	date, ok := parseDate(w, "date", req.Date)
	if !ok {
		return training.RecordInput{}, false
	}

	return training.RecordInput{
		Name:        req.Name,
		Category:    categoryPtr(req.Category),
		Points:      req.Points,
		Date:        date,
		IsOnline:    req.IsOnline,
		Fee:         req.Fee,
		TravelCost:  req.TravelCost,
		ExpenseNote: req.ExpenseNote,
	}, true
}

// List handles GET /trainings.
func (h *TrainingHandler) List(w http.ResponseWriter, r *http.Request) {
	trainings, err := h.svc.List(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := make([]trainingResponse, 0, len(trainings))
	for _, t := range trainings {
		resp = append(resp, toTrainingResponse(t))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Create handles POST /trainings.
func (h *TrainingHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decodeInput(w, r)
	if !ok {
		return
	}

	created, err := h.svc.Record(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTrainingResponse(created))
}

// Update handles PUT /trainings/{id}.
func (h *TrainingHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	writeJSON(w, http.StatusOK, toTrainingResponse(updated))
}

// Delete handles DELETE /trainings/{id}.
func (h *TrainingHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
