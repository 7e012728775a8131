// Package training manages attended-training records, the point-bearing
// history behind the compliance summary.
package training

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/credtrack/cpd-backend/internal/domain"
)

type trainingRepo interface {
	Create(ctx context.Context, t *domain.AttendedTraining) (*domain.AttendedTraining, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.AttendedTraining, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.AttendedTraining, error)
	Update(ctx context.Context, t *domain.AttendedTraining) (*domain.AttendedTraining, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// Service implements the attended-training business logic.
type Service struct {
	log       *slog.Logger
	trainings trainingRepo
}

// NewService creates a new Training service.
func NewService(logger *slog.Logger, trainings trainingRepo) *Service {
	return &Service{
		log:       logger.With("service", "training"),
		trainings: trainings,
	}
}
