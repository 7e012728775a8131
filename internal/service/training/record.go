package training

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/credtrack/cpd-backend/internal/domain"
	"github.com/credtrack/cpd-backend/pkg/ctxutil"
)

// Record stores a completed training for the caller.
func (s *Service) Record(ctx context.Context, input RecordInput) (*domain.AttendedTraining, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	created, err := s.trainings.Create(ctx, &domain.AttendedTraining{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        input.Name,
		Category:    input.Category,
		Points:      input.Points,
		Date:        domain.DateUTC(input.Date),
		IsOnline:    input.IsOnline,
		Fee:         input.Fee,
		TravelCost:  input.TravelCost,
		ExpenseNote: input.ExpenseNote,
	})
	if err != nil {
		return nil, fmt.Errorf("create attended training: %w", err)
	}

	s.log.InfoContext(ctx, "attended training recorded",
		"training_id", created.ID,
		"user_id", userID,
	)
	return created, nil
}
