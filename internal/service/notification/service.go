// Package notification exposes the in-app notification feed.
package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/credtrack/cpd-backend/internal/domain"
	"github.com/credtrack/cpd-backend/pkg/ctxutil"
)

const feedLimit = 20

type notificationRepo interface {
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int, error)
}

// Service implements the notification-feed business logic.
type Service struct {
	log           *slog.Logger
	notifications notificationRepo
}

// NewService creates a new Notification service.
func NewService(logger *slog.Logger, notifications notificationRepo) *Service {
	return &Service{
		log:           logger.With("service", "notification"),
		notifications: notifications,
	}
}

// List returns the caller's newest notifications.
func (s *Service) List(ctx context.Context) ([]*domain.Notification, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	items, err := s.notifications.ListByUser(ctx, userID, feedLimit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return items, nil
}

// MarkRead marks the given notifications as read. IDs not owned by the
// caller are ignored. Returns the number actually updated.
func (s *Service) MarkRead(ctx context.Context, ids []uuid.UUID) (int, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return 0, domain.ErrUnauthorized
	}
	if len(ids) == 0 {
		return 0, domain.NewValidationError("ids", "required")
	}

	updated, err := s.notifications.MarkRead(ctx, userID, ids)
	if err != nil {
		return 0, fmt.Errorf("mark notifications read: %w", err)
	}
	return updated, nil
}
