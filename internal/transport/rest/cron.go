package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/credtrack/cpd-backend/internal/service/reminder"
)

// reminderRunner defines the minimal interface for the reminder dispatcher.
type reminderRunner interface {
	Run(ctx context.Context, now time.Time) (*reminder.Report, error)
}

// pastDueSweeper defines the minimal interface for the past-due sweeper.
type pastDueSweeper interface {
	Sweep(ctx context.Context, now time.Time) (int, error)
}

// CronHandler serves the scheduler-triggered endpoints. Routes using it sit
// behind middleware.CronAuth, not the user token middleware.
type CronHandler struct {
	reminders reminderRunner
	sweeper   pastDueSweeper
	log       *slog.Logger
}

// NewCronHandler creates a CronHandler.
func NewCronHandler(reminders reminderRunner, sweeper pastDueSweeper, logger *slog.Logger) *CronHandler {
	return &CronHandler{
		reminders: reminders,
		sweeper:   sweeper,
		log:       logger.With("handler", "cron"),
	}
}

type remindResponse struct {
	WindowStart string `json:"windowStart"`
	WindowEnd   string `json:"windowEnd"`
	Plans       int    `json:"plans"`
	Attempted   int    `json:"attempted"`
	Sent        int    `json:"sent"`
	Failed      int    `json:"failed"`
	Skipped     int    `json:"skipped"`
}

// Remind handles POST /cron/remind: one reminder-dispatcher tick.
func (h *CronHandler) Remind(w http.ResponseWriter, r *http.Request) {
	report, err := h.reminders.Run(r.Context(), time.Now())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, remindResponse{
		WindowStart: formatDate(report.WindowStart),
		WindowEnd:   formatDate(report.WindowEnd),
		Plans:       report.Plans,
		Attempted:   report.Attempted,
		Sent:        report.Sent,
		Failed:      report.Failed,
		Skipped:     report.Skipped,
	})
}

// Sweep handles POST /cron/sweep: one past-due sweeper pass.
func (h *CronHandler) Sweep(w http.ResponseWriter, r *http.Request) {
	flagged, err := h.sweeper.Sweep(r.Context(), time.Now())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"flagged": flagged})
}
