package training

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/credtrack/cpd-backend/internal/domain"
	"github.com/credtrack/cpd-backend/pkg/ctxutil"
)

// Update overwrites an attended training with the supplied fields.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input RecordInput) (*domain.AttendedTraining, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	// Ownership check; also keeps created_at intact.
	existing, err := s.trainings.GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("get attended training: %w", err)
	}

	existing.Name = input.Name
	existing.Category = input.Category
	existing.Points = input.Points
	existing.Date = domain.DateUTC(input.Date)
	existing.IsOnline = input.IsOnline
	existing.Fee = input.Fee
	existing.TravelCost = input.TravelCost
	existing.ExpenseNote = input.ExpenseNote

	updated, err := s.trainings.Update(ctx, existing)
	if err != nil {
		return nil, fmt.Errorf("update attended training: %w", err)
	}

	return updated, nil
}
