package plan

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/credtrack/cpd-backend/internal/domain"
	"github.com/credtrack/cpd-backend/pkg/ctxutil"
)

// Create stores a new planned training for the caller. Sent markers, the
// calendar-synced flag and the past-due flag all start false.
func (s *Service) Create(ctx context.Context, input Input) (*domain.PlannedTraining, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	created, err := s.plans.Create(ctx, &domain.PlannedTraining{
		ID:       uuid.New(),
		UserID:   userID,
		Name:     input.Name,
		Category: input.Category,
		Points:   input.Points,

		ApplicationDeadline: dateOrNil(input.ApplicationDeadline),
		PaymentDeadline:     dateOrNil(input.PaymentDeadline),
		TrainingDate:        domain.DateUTC(input.TrainingDate),

		Fee:      input.Fee,
		IsOnline: input.IsOnline,
		Memo:     input.Memo,

		RemindApplication: remindFlag(input.RemindApplication),
		RemindPayment:     remindFlag(input.RemindPayment),
		RemindTraining:    remindFlag(input.RemindTraining),
	})
	if err != nil {
		return nil, fmt.Errorf("create planned training: %w", err)
	}

	s.log.InfoContext(ctx, "planned training created",
		"plan_id", created.ID,
		"user_id", userID,
	)
	return created, nil
}
