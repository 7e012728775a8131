package calendarsync

import (
	"context"
	"fmt"

	"github.com/credtrack/cpd-backend/internal/domain"
	"github.com/credtrack/cpd-backend/pkg/ctxutil"
)

// Disconnect removes the caller's stored calendar credential. Events already
// created stay in the calendar, and plans keep their synced flag; the next
// sync attempt surfaces domain.ErrAuthorizationRequired until the user
// authorizes again. Deleting an absent credential is not an error.
func (s *Service) Disconnect(ctx context.Context) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := s.creds.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete credential: %w", err)
	}

	s.log.InfoContext(ctx, "calendar credential removed", "user_id", userID)
	return nil
}
