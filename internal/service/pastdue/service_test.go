package pastdue

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockPlanRepo struct {
	MarkPastDueFunc func(ctx context.Context, today time.Time) (int, error)
}

func (m *mockPlanRepo) MarkPastDue(ctx context.Context, today time.Time) (int, error) {
	if m.MarkPastDueFunc != nil {
		return m.MarkPastDueFunc(ctx, today)
	}
	return 0, nil
}

func TestService_Sweep_TruncatesToUTCDate(t *testing.T) {
	var got time.Time
	repo := &mockPlanRepo{
		MarkPastDueFunc: func(ctx context.Context, today time.Time) (int, error) {
			got = today
			return 2, nil
		},
	}
	svc := NewService(slog.Default(), repo)

	flagged, err := svc.Sweep(context.Background(), time.Date(2026, 8, 28, 17, 3, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, 2, flagged)
	assert.Equal(t, time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC), got)
}

func TestService_Sweep_PropagatesError(t *testing.T) {
	repo := &mockPlanRepo{
		MarkPastDueFunc: func(ctx context.Context, today time.Time) (int, error) {
			return 0, errors.New("connection refused")
		},
	}
	svc := NewService(slog.Default(), repo)

	_, err := svc.Sweep(context.Background(), time.Now())
	require.Error(t, err)
}
