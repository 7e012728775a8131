// Package compliance turns attended-training records into a renewal-readiness
// verdict.
package compliance

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/credtrack/cpd-backend/internal/config"
	"github.com/credtrack/cpd-backend/internal/domain"
)

type trainingRepo interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.AttendedTraining, error)
}

// Service implements the compliance business logic.
type Service struct {
	log       *slog.Logger
	trainings trainingRepo
	cfg       config.ComplianceConfig
}

// NewService creates a new Compliance service.
func NewService(logger *slog.Logger, trainings trainingRepo, cfg config.ComplianceConfig) *Service {
	return &Service{
		log:       logger.With("service", "compliance"),
		trainings: trainings,
		cfg:       cfg,
	}
}
