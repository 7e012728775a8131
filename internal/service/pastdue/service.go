// Package pastdue flags planned trainings whose training date has elapsed.
package pastdue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/credtrack/cpd-backend/internal/domain"
)

type planRepo interface {
	MarkPastDue(ctx context.Context, today time.Time) (int, error)
}

// Service implements the past-due sweeper.
type Service struct {
	log   *slog.Logger
	plans planRepo
}

// NewService creates a new PastDue service.
func NewService(logger *slog.Logger, plans planRepo) *Service {
	return &Service{
		log:   logger.With("service", "pastdue"),
		plans: plans,
	}
}

// Sweep flags every plan with a training date before today's UTC date that is
// not already flagged, and returns how many were flagged. One bulk update,
// no external calls; re-running it is a no-op, so at-least-once triggering
// is safe.
func (s *Service) Sweep(ctx context.Context, now time.Time) (int, error) {
	today := domain.DateUTC(now)

	flagged, err := s.plans.MarkPastDue(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("mark past due: %w", err)
	}

	s.log.InfoContext(ctx, "past-due sweep finished",
		"today", today.Format("2006-01-02"),
		"flagged", flagged,
	)
	return flagged, nil
}
