package compliance

import (
	"context"
	"fmt"

	"github.com/credtrack/cpd-backend/internal/domain"
	"github.com/credtrack/cpd-backend/pkg/ctxutil"
)

// GetSummary computes the caller's compliance evaluation from all of their
// attended trainings.
func (s *Service) GetSummary(ctx context.Context) (*Evaluation, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	trainings, err := s.trainings.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list trainings: %w", err)
	}

	ev := Evaluate(Summarize(trainings), s.cfg)
	return &ev, nil
}
