package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/credtrack/cpd-backend/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func basePlan(trainingDate time.Time) *domain.PlannedTraining {
	return &domain.PlannedTraining{
		Name:           "事例検討会",
		TrainingDate:   trainingDate,
		RemindTraining: true,
	}
}

func kinds(cands []Candidate) []domain.ReminderKind {
	out := make([]domain.ReminderKind, 0, len(cands))
	for _, c := range cands {
		out = append(out, c.Kind)
	}
	return out
}

func TestClassify_BoundaryExactness(t *testing.T) {
	deadline := date(2026, 9, 10)
	plan := basePlan(deadline)

	tests := []struct {
		name  string
		now   time.Time
		match bool
	}{
		{"exactly lookahead days before", date(2026, 9, 7), true},
		{"one day too early", date(2026, 9, 6), false},
		{"one day too late", date(2026, 9, 8), false},
		{"time of day does not matter", time.Date(2026, 9, 7, 23, 45, 0, 0, time.UTC), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cands := Classify(plan, tt.now, 3)
			if tt.match {
				require.Len(t, cands, 1)
				assert.Equal(t, domain.ReminderTraining, cands[0].Kind)
				assert.Equal(t, deadline, cands[0].Deadline)
			} else {
				assert.Empty(t, cands)
			}
		})
	}
}

func TestClassify_GateConditions(t *testing.T) {
	now := date(2026, 9, 7)
	deadline := date(2026, 9, 10)

	t.Run("intent off", func(t *testing.T) {
		plan := basePlan(deadline)
		plan.RemindTraining = false
		assert.Empty(t, Classify(plan, now, 3))
	})

	t.Run("already sent", func(t *testing.T) {
		plan := basePlan(deadline)
		plan.ReminderSentTraining = true
		assert.Empty(t, Classify(plan, now, 3))
	})

	t.Run("nil optional deadlines are never emitted", func(t *testing.T) {
		plan := basePlan(deadline)
		plan.RemindApplication = true
		plan.RemindPayment = true
		assert.Equal(t, []domain.ReminderKind{domain.ReminderTraining}, kinds(Classify(plan, now, 3)))
	})
}

func TestClassify_IndependentKinds(t *testing.T) {
	now := date(2026, 9, 7)
	inWindow := date(2026, 9, 10)
	later := date(2026, 9, 20)

	plan := basePlan(later)
	plan.ApplicationDeadline = &inWindow
	plan.PaymentDeadline = &inWindow
	plan.RemindApplication = true
	plan.RemindPayment = true
	plan.ReminderSentPayment = true

	// Payment already sent, training outside the window: only application.
	assert.Equal(t, []domain.ReminderKind{domain.ReminderApplication}, kinds(Classify(plan, now, 3)))
}

func TestWindow_HalfOpen(t *testing.T) {
	start, end := Window(time.Date(2026, 9, 7, 8, 0, 0, 0, time.UTC), 3)

	assert.Equal(t, date(2026, 9, 10), start)
	assert.Equal(t, date(2026, 9, 11), end)
}
