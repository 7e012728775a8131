package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/credtrack/cpd-backend/internal/domain"
	"github.com/credtrack/cpd-backend/internal/service/compliance"
)

// complianceService defines the minimal interface needed by ComplianceHandler.
type complianceService interface {
	GetSummary(ctx context.Context) (*compliance.Evaluation, error)
}

// ComplianceHandler serves the compliance-summary endpoint.
type ComplianceHandler struct {
	svc complianceService
	log *slog.Logger
}

// NewComplianceHandler creates a ComplianceHandler.
func NewComplianceHandler(svc complianceService, logger *slog.Logger) *ComplianceHandler {
	return &ComplianceHandler{svc: svc, log: logger.With("handler", "compliance")}
}

type complianceResponse struct {
	TotalPoints    int            `json:"totalPoints"`
	PerCategory    map[string]int `json:"perCategory"`
	OnlinePoints   int            `json:"onlinePoints"`
	InPersonPoints int            `json:"inPersonPoints"`

	TargetPoints int `json:"targetPoints"`
	OnlineCap    int `json:"onlineCap"`
	InPersonMin  int `json:"inPersonMin"`

	OnlineExceeded    bool `json:"onlineExceeded"`
	InPersonSatisfied bool `json:"inPersonSatisfied"`
	OverallSatisfied  bool `json:"overallSatisfied"`
	PercentToGoal     int  `json:"percentToGoal"`
}

// GetSummary handles GET /compliance/summary.
func (h *ComplianceHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ev, err := h.svc.GetSummary(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	// Every category appears in the response, zero when nothing contributed.
	perCategory := make(map[string]int, len(domain.AllCategories()))
	for _, c := range domain.AllCategories() {
		perCategory[c.String()] = ev.Summary.PerCategory[c]
	}

	writeJSON(w, http.StatusOK, complianceResponse{
		TotalPoints:    ev.Summary.Total,
		PerCategory:    perCategory,
		OnlinePoints:   ev.Summary.Online,
		InPersonPoints: ev.Summary.InPerson,

		TargetPoints: ev.TargetPoints,
		OnlineCap:    ev.OnlineCap,
		InPersonMin:  ev.InPersonMin,

		OnlineExceeded:    ev.OnlineExceeded,
		InPersonSatisfied: ev.InPersonSatisfied,
		OverallSatisfied:  ev.OverallSatisfied,
		PercentToGoal:     ev.PercentToGoal,
	})
}
