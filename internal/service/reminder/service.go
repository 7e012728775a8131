// Package reminder classifies upcoming planned-training deadlines and
// dispatches at-most-once notifications for them.
package reminder

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/credtrack/cpd-backend/internal/config"
	"github.com/credtrack/cpd-backend/internal/domain"
)

type planRepo interface {
	ListReminderCandidates(ctx context.Context, from, to time.Time) ([]*domain.PlannedTraining, error)
	MarkReminderSent(ctx context.Context, id uuid.UUID, kind domain.ReminderKind) (bool, error)
}

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type notifier interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

type notificationRepo interface {
	Create(ctx context.Context, n *domain.Notification) error
}

// Service implements the reminder dispatcher.
type Service struct {
	log           *slog.Logger
	plans         planRepo
	users         userRepo
	notifier      notifier
	notifications notificationRepo
	cfg           config.ReminderConfig
	appName       string
}

// NewService creates a new Reminder service.
func NewService(
	logger *slog.Logger,
	plans planRepo,
	users userRepo,
	notifier notifier,
	notifications notificationRepo,
	cfg config.ReminderConfig,
	appName string,
) *Service {
	return &Service{
		log:           logger.With("service", "reminder"),
		plans:         plans,
		users:         users,
		notifier:      notifier,
		notifications: notifications,
		cfg:           cfg,
		appName:       appName,
	}
}
