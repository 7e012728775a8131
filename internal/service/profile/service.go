// Package profile exposes the user's own account record. The identity
// provider authenticates users; name and the reminder email live here.
package profile

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/credtrack/cpd-backend/internal/domain"
	"github.com/credtrack/cpd-backend/pkg/ctxutil"
)

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) (*domain.User, error)
}

// Service implements the profile business logic.
type Service struct {
	log   *slog.Logger
	users userRepo
}

// NewService creates a new Profile service.
func NewService(logger *slog.Logger, users userRepo) *Service {
	return &Service{
		log:   logger.With("service", "profile"),
		users: users,
	}
}

// Input carries the user-editable profile fields. A nil or empty email
// clears the stored one, which disables email reminders.
type Input struct {
	Name  string
	Email *string
}

// Validate checks the input fields.
func (in Input) Validate() error {
	var errs []domain.FieldError

	if in.Name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if in.Email != nil && *in.Email != "" && !strings.Contains(*in.Email, "@") {
		errs = append(errs, domain.FieldError{Field: "email", Message: "invalid address"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// Get returns the caller's profile.
func (s *Service) Get(ctx context.Context) (*domain.User, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// Update overwrites the caller's profile.
func (s *Service) Update(ctx context.Context, input Input) (*domain.User, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	email := input.Email
	if email != nil && *email == "" {
		email = nil
	}

	updated, err := s.users.Update(ctx, &domain.User{
		ID:    userID,
		Name:  input.Name,
		Email: email,
	})
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.log.InfoContext(ctx, "profile updated", "user_id", userID)
	return updated, nil
}
