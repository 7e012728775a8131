package plan

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/credtrack/cpd-backend/internal/domain"
	"github.com/credtrack/cpd-backend/pkg/ctxutil"
)

// Promote converts a planned training into an attended one. The plan must
// have a category and points; an unscored record would silently distort the
// compliance summary, so completion is required first.
//
// The attended record is the source of truth the moment it is created. Both
// writes run on one transaction, but a failure deleting the plan is logged
// and swallowed rather than rolled back: the user keeps the attended record
// and the lingering plan stays visible in the past-due list for cleanup.
func (s *Service) Promote(ctx context.Context, id uuid.UUID) (*domain.AttendedTraining, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	plan, err := s.plans.GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("get planned training: %w", err)
	}

	var errs []domain.FieldError
	if plan.Category == nil {
		errs = append(errs, domain.FieldError{Field: "category", Message: "required for promotion"})
	}
	if plan.Points == nil {
		errs = append(errs, domain.FieldError{Field: "points", Message: "required for promotion"})
	}
	if len(errs) > 0 {
		return nil, domain.NewValidationErrors(errs)
	}

	var created *domain.AttendedTraining
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var createErr error
		created, createErr = s.trainings.Create(txCtx, &domain.AttendedTraining{
			ID:       uuid.New(),
			UserID:   userID,
			Name:     plan.Name,
			Category: plan.Category,
			Points:   plan.Points,
			Date:     plan.TrainingDate,
			IsOnline: plan.IsOnline,
			Fee:      plan.Fee,
		})
		if createErr != nil {
			return fmt.Errorf("create attended training: %w", createErr)
		}

		if delErr := s.plans.Delete(txCtx, userID, id); delErr != nil {
			s.log.ErrorContext(ctx, "plan cleanup after promotion failed",
				"plan_id", id,
				"error", delErr.Error(),
			)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.log.InfoContext(ctx, "planned training promoted",
		"plan_id", id,
		"training_id", created.ID,
		"user_id", userID,
	)
	return created, nil
}
