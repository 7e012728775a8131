// Package plan manages planned trainings: the not-yet-attended events whose
// deadlines drive reminders and whose completion promotes them into the
// attended-training history.
package plan

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/credtrack/cpd-backend/internal/domain"
)

type planRepo interface {
	Create(ctx context.Context, p *domain.PlannedTraining) (*domain.PlannedTraining, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.PlannedTraining, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.PlannedTraining, error)
	ListPastDue(ctx context.Context, userID uuid.UUID) ([]*domain.PlannedTraining, error)
	Update(ctx context.Context, p *domain.PlannedTraining) (*domain.PlannedTraining, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type trainingRepo interface {
	Create(ctx context.Context, t *domain.AttendedTraining) (*domain.AttendedTraining, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements the planned-training business logic.
type Service struct {
	log       *slog.Logger
	plans     planRepo
	trainings trainingRepo
	tx        txManager
}

// NewService creates a new Plan service.
func NewService(logger *slog.Logger, plans planRepo, trainings trainingRepo, tx txManager) *Service {
	return &Service{
		log:       logger.With("service", "plan"),
		plans:     plans,
		trainings: trainings,
		tx:        tx,
	}
}
