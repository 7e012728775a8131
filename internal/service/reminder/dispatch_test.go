package reminder

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/credtrack/cpd-backend/internal/config"
	"github.com/credtrack/cpd-backend/internal/domain"
)

// ===========================================================================
// Manual mocks (moq-style with func fields)
// ===========================================================================

type mockPlanRepo struct {
	mu    sync.Mutex
	plans []*domain.PlannedTraining

	ListReminderCandidatesFunc func(ctx context.Context, from, to time.Time) ([]*domain.PlannedTraining, error)
	MarkReminderSentFunc       func(ctx context.Context, id uuid.UUID, kind domain.ReminderKind) (bool, error)
}

func (m *mockPlanRepo) ListReminderCandidates(ctx context.Context, from, to time.Time) ([]*domain.PlannedTraining, error) {
	if m.ListReminderCandidatesFunc != nil {
		return m.ListReminderCandidatesFunc(ctx, from, to)
	}
	return m.plans, nil
}

// MarkReminderSent mimics the conditional marker write: it flips the marker
// on the stored plan and reports whether it was still false.
func (m *mockPlanRepo) MarkReminderSent(ctx context.Context, id uuid.UUID, kind domain.ReminderKind) (bool, error) {
	if m.MarkReminderSentFunc != nil {
		return m.MarkReminderSentFunc(ctx, id, kind)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.plans {
		if p.ID != id {
			continue
		}
		if p.ReminderSent(kind) {
			return false, nil
		}
		switch kind {
		case domain.ReminderApplication:
			p.ReminderSentApplication = true
		case domain.ReminderPayment:
			p.ReminderSentPayment = true
		case domain.ReminderTraining:
			p.ReminderSentTraining = true
		}
		return true, nil
	}
	return false, domain.ErrNotFound
}

type mockUserRepo struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	email := "user@example.com"
	return &domain.User{ID: id, Name: "山田", Email: &email}, nil
}

type sentMail struct {
	to      string
	subject string
}

type mockNotifier struct {
	mu   sync.Mutex
	sent []sentMail

	SendFunc func(ctx context.Context, to, subject, html, text string) error
}

func (m *mockNotifier) Send(ctx context.Context, to, subject, html, text string) error {
	if m.SendFunc != nil {
		if err := m.SendFunc(ctx, to, subject, html, text); err != nil {
			return err
		}
	}
	m.mu.Lock()
	m.sent = append(m.sent, sentMail{to: to, subject: subject})
	m.mu.Unlock()
	return nil
}

type mockNotificationRepo struct {
	mu      sync.Mutex
	created []*domain.Notification

	CreateFunc func(ctx context.Context, n *domain.Notification) error
}

func (m *mockNotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, n)
	}
	m.mu.Lock()
	m.created = append(m.created, n)
	m.mu.Unlock()
	return nil
}

type testDeps struct {
	plans         *mockPlanRepo
	users         *mockUserRepo
	notifier      *mockNotifier
	notifications *mockNotificationRepo
}

func newTestService(plans []*domain.PlannedTraining) (*Service, *testDeps) {
	deps := &testDeps{
		plans:         &mockPlanRepo{plans: plans},
		users:         &mockUserRepo{},
		notifier:      &mockNotifier{},
		notifications: &mockNotificationRepo{},
	}
	cfg := config.ReminderConfig{
		LookaheadDays: 3,
		SendTimeout:   time.Second,
		Workers:       2,
	}
	svc := NewService(slog.Default(), deps.plans, deps.users, deps.notifier, deps.notifications, cfg, "テストアプリ")
	return svc, deps
}

func eligiblePlan(trainingDate time.Time) *domain.PlannedTraining {
	return &domain.PlannedTraining{
		ID:             uuid.New(),
		UserID:         uuid.New(),
		Name:           "倫理研修",
		TrainingDate:   trainingDate,
		RemindTraining: true,
	}
}

// ===========================================================================
// Tests
// ===========================================================================

func TestService_Run_SendsAndMarks(t *testing.T) {
	now := date(2026, 9, 7)
	plan := eligiblePlan(date(2026, 9, 10))
	svc, deps := newTestService([]*domain.PlannedTraining{plan})

	report, err := svc.Run(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Attempted)
	assert.Equal(t, 1, report.Sent)
	assert.Equal(t, 0, report.Failed)
	require.Len(t, deps.notifier.sent, 1)
	assert.Equal(t, "user@example.com", deps.notifier.sent[0].to)
	assert.Contains(t, deps.notifier.sent[0].subject, plan.Name)
	assert.True(t, plan.ReminderSentTraining)
	assert.Len(t, deps.notifications.created, 1)
}

func TestService_Run_SecondRunSendsNothing(t *testing.T) {
	now := date(2026, 9, 7)
	plan := eligiblePlan(date(2026, 9, 10))
	svc, deps := newTestService([]*domain.PlannedTraining{plan})

	first, err := svc.Run(context.Background(), now)
	require.NoError(t, err)
	require.Equal(t, 1, first.Sent)

	// The marker is now true; even though the mock returns the same plan
	// list, the classifier gate drops it.
	second, err := svc.Run(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Attempted)
	assert.Len(t, deps.notifier.sent, 1)
}

func TestService_Run_FailureIsolation(t *testing.T) {
	now := date(2026, 9, 7)
	bad := eligiblePlan(date(2026, 9, 10))
	bad.Name = "拒否される研修"
	good := eligiblePlan(date(2026, 9, 10))
	svc, deps := newTestService([]*domain.PlannedTraining{bad, good})

	deps.notifier.SendFunc = func(ctx context.Context, to, subject, html, text string) error {
		if subject == kindEmoji(domain.ReminderTraining)+" 【リマインド】拒否される研修の研修日が近づいています" {
			return errors.New("mailbox unavailable")
		}
		return nil
	}

	report, err := svc.Run(context.Background(), now)
	require.NoError(t, err, "per-attempt failures must not abort the run")

	assert.Equal(t, 2, report.Attempted)
	assert.Equal(t, 1, report.Sent)
	assert.Equal(t, 1, report.Failed)
	assert.False(t, bad.ReminderSentTraining, "failed delivery must not mark sent")
	assert.True(t, good.ReminderSentTraining)
}

func TestService_Run_SkipsUserWithoutEmail(t *testing.T) {
	now := date(2026, 9, 7)
	plan := eligiblePlan(date(2026, 9, 10))
	svc, deps := newTestService([]*domain.PlannedTraining{plan})

	deps.users.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
		return &domain.User{ID: id, Name: "山田"}, nil
	}

	report, err := svc.Run(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, 0, report.Attempted)
	assert.Equal(t, 1, report.Skipped)
	assert.Empty(t, deps.notifier.sent)
	assert.False(t, plan.ReminderSentTraining)
}

func TestService_Run_ListFailureAbortsRun(t *testing.T) {
	svc, deps := newTestService(nil)
	deps.plans.ListReminderCandidatesFunc = func(ctx context.Context, from, to time.Time) ([]*domain.PlannedTraining, error) {
		return nil, errors.New("connection refused")
	}

	_, err := svc.Run(context.Background(), date(2026, 9, 7))
	require.Error(t, err)
}

func TestService_Run_MarkerWriteFailureCountsFailed(t *testing.T) {
	now := date(2026, 9, 7)
	plan := eligiblePlan(date(2026, 9, 10))
	svc, deps := newTestService([]*domain.PlannedTraining{plan})

	deps.plans.MarkReminderSentFunc = func(ctx context.Context, id uuid.UUID, kind domain.ReminderKind) (bool, error) {
		return false, errors.New("write timeout")
	}

	report, err := svc.Run(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 0, report.Sent)
}
