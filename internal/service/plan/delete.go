package plan

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/credtrack/cpd-backend/internal/domain"
	"github.com/credtrack/cpd-backend/pkg/ctxutil"
)

// Delete removes a planned training without creating an attended record.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := s.plans.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("delete planned training: %w", err)
	}

	s.log.InfoContext(ctx, "planned training deleted",
		"plan_id", id,
		"user_id", userID,
	)
	return nil
}
