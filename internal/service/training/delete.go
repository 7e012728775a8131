package training

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/credtrack/cpd-backend/internal/domain"
	"github.com/credtrack/cpd-backend/pkg/ctxutil"
)

// Delete removes an attended training.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := s.trainings.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("delete attended training: %w", err)
	}

	s.log.InfoContext(ctx, "attended training deleted",
		"training_id", id,
		"user_id", userID,
	)
	return nil
}
