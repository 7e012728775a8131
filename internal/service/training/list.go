package training

import (
	"context"
	"fmt"

	"github.com/credtrack/cpd-backend/internal/domain"
	"github.com/credtrack/cpd-backend/pkg/ctxutil"
)

// List returns all of the caller's attended trainings, newest first.
func (s *Service) List(ctx context.Context) ([]*domain.AttendedTraining, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	trainings, err := s.trainings.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list attended trainings: %w", err)
	}

	return trainings, nil
}
