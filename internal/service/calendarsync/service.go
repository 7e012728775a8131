// Package calendarsync turns a planned training's deadlines into events in
// the user's external calendar, and manages the per-user credential the
// provider calls need.
package calendarsync

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/credtrack/cpd-backend/internal/domain"
)

type planRepo interface {
	GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.PlannedTraining, error)
	SetCalendarSynced(ctx context.Context, id uuid.UUID) error
}

type credentialRepo interface {
	GetByUser(ctx context.Context, userID uuid.UUID) (*domain.CalendarCredential, error)
	Upsert(ctx context.Context, c *domain.CalendarCredential) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

type calendarProvider interface {
	AuthorizationURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*domain.CalendarCredential, error)
	CreateEvent(ctx context.Context, cred *domain.CalendarCredential, title, description string, date time.Time) error
}

// Service implements the calendar sync coordinator.
type Service struct {
	log      *slog.Logger
	plans    planRepo
	creds    credentialRepo
	calendar calendarProvider
}

// NewService creates a new CalendarSync service.
func NewService(logger *slog.Logger, plans planRepo, creds credentialRepo, calendar calendarProvider) *Service {
	return &Service{
		log:      logger.With("service", "calendarsync"),
		plans:    plans,
		creds:    creds,
		calendar: calendar,
	}
}

func eventTitle(kind domain.ReminderKind, name string) string {
	switch kind {
	case domain.ReminderApplication:
		return "【申込期日】" + name
	case domain.ReminderPayment:
		return "【支払期日】" + name
	case domain.ReminderTraining:
		return "【研修】" + name
	}
	return name
}
