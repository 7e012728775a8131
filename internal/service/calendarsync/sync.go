package calendarsync

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/credtrack/cpd-backend/internal/domain"
	"github.com/credtrack/cpd-backend/pkg/ctxutil"
)

// Sync creates one calendar event per present deadline of the given plan.
// Returns the number of events created. A missing or provider-rejected
// credential surfaces as domain.ErrAuthorizationRequired so the caller can
// start the consent flow instead of showing a generic failure.
func (s *Service) Sync(ctx context.Context, planID uuid.UUID) (int, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return 0, domain.ErrUnauthorized
	}
	return s.syncForUser(ctx, userID, planID)
}

func (s *Service) syncForUser(ctx context.Context, userID, planID uuid.UUID) (int, error) {
	plan, err := s.plans.GetByID(ctx, userID, planID)
	if err != nil {
		return 0, fmt.Errorf("get planned training: %w", err)
	}

	cred, err := s.creds.GetByUser(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return 0, domain.ErrAuthorizationRequired
	}
	if err != nil {
		return 0, fmt.Errorf("get credential: %w", err)
	}

	description := ""
	if plan.Memo != nil {
		description = *plan.Memo
	}

	var (
		created    int
		lastErr    error
		authFailed bool
	)
	for _, kind := range domain.AllReminderKinds() {
		deadline := plan.Deadline(kind)
		if deadline == nil {
			continue
		}

		err := s.calendar.CreateEvent(ctx, cred, eventTitle(kind, plan.Name), description, *deadline)
		if errors.Is(err, domain.ErrAuthorizationRequired) {
			// The remaining calls would fail the same way.
			authFailed = true
			break
		}
		if err != nil {
			lastErr = err
			s.log.ErrorContext(ctx, "calendar event creation failed",
				"plan_id", planID,
				"kind", kind.String(),
				"error", err.Error(),
			)
			continue
		}
		created++
	}

	if created > 0 {
		if err := s.plans.SetCalendarSynced(ctx, planID); err != nil {
			s.log.ErrorContext(ctx, "calendar synced flag write failed",
				"plan_id", planID,
				"error", err.Error(),
			)
		}
	}

	if authFailed {
		return created, domain.ErrAuthorizationRequired
	}
	if created == 0 && lastErr != nil {
		return 0, fmt.Errorf("create events: %w", lastErr)
	}

	s.log.InfoContext(ctx, "calendar sync finished",
		"plan_id", planID,
		"events_created", created,
	)
	return created, nil
}
