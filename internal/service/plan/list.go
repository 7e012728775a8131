package plan

import (
	"context"
	"fmt"

	"github.com/credtrack/cpd-backend/internal/domain"
	"github.com/credtrack/cpd-backend/pkg/ctxutil"
)

// List returns all of the caller's planned trainings, soonest training date
// first.
func (s *Service) List(ctx context.Context) ([]*domain.PlannedTraining, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	plans, err := s.plans.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list planned trainings: %w", err)
	}

	return plans, nil
}

// ListPastDue returns the caller's plans whose training date has elapsed,
// so the UI can prompt promotion or deletion.
func (s *Service) ListPastDue(ctx context.Context) ([]*domain.PlannedTraining, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	plans, err := s.plans.ListPastDue(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list past-due plans: %w", err)
	}

	return plans, nil
}
