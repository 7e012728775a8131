package plan

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/credtrack/cpd-backend/internal/domain"
	"github.com/credtrack/cpd-backend/pkg/ctxutil"
)

// Update overwrites a planned training with the supplied fields.
//
// Sent markers, the calendar-synced flag and the past-due flag are left
// untouched: editing a deadline does not re-arm its reminder, so a typo fix
// never re-notifies. Moving a deadline that was already reminded therefore
// silently misses its new window; that trade-off is accepted.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input Input) (*domain.PlannedTraining, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.plans.GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("get planned training: %w", err)
	}

	existing.Name = input.Name
	existing.Category = input.Category
	existing.Points = input.Points
	existing.ApplicationDeadline = dateOrNil(input.ApplicationDeadline)
	existing.PaymentDeadline = dateOrNil(input.PaymentDeadline)
	existing.TrainingDate = domain.DateUTC(input.TrainingDate)
	existing.Fee = input.Fee
	existing.IsOnline = input.IsOnline
	existing.Memo = input.Memo
	existing.RemindApplication = remindFlag(input.RemindApplication)
	existing.RemindPayment = remindFlag(input.RemindPayment)
	existing.RemindTraining = remindFlag(input.RemindTraining)

	updated, err := s.plans.Update(ctx, existing)
	if err != nil {
		return nil, fmt.Errorf("update planned training: %w", err)
	}

	return updated, nil
}
