package profile

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	"github.com/credtrack/cpd-backend/internal/domain"
	"github.com/credtrack/cpd-backend/pkg/ctxutil"
)

type mockUserRepo struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateFunc  func(ctx context.Context, u *domain.User) (*domain.User, error)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockUserRepo) Update(ctx context.Context, u *domain.User) (*domain.User, error) {
	return m.UpdateFunc(ctx, u)
}

func newTestService(users *mockUserRepo) *Service {
	return NewService(slog.New(slog.DiscardHandler), users)
}

func authedCtx(userID uuid.UUID) context.Context {
	return ctxutil.WithUserID(context.Background(), userID)
}

func strPtr(s string) *string { return &s }

func TestService_Get(t *testing.T) {
	userID := uuid.New()
	users := &mockUserRepo{
		GetByIDFunc: func(_ context.Context, id uuid.UUID) (*domain.User, error) {
			if id != userID {
				t.Errorf("id: got %v, want %v", id, userID)
			}
			return &domain.User{ID: id, Name: "山田"}, nil
		},
	}

	got, err := newTestService(users).Get(authedCtx(userID))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "山田" {
		t.Errorf("name: got %q", got.Name)
	}
}

func TestService_Get_Unauthenticated(t *testing.T) {
	svc := newTestService(&mockUserRepo{})

	_, err := svc.Get(context.Background())
	if err != domain.ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestService_Update(t *testing.T) {
	userID := uuid.New()
	var saved *domain.User
	users := &mockUserRepo{
		UpdateFunc: func(_ context.Context, u *domain.User) (*domain.User, error) {
			saved = u
			return u, nil
		},
	}

	_, err := newTestService(users).Update(authedCtx(userID), Input{
		Name:  "山田",
		Email: strPtr("yamada@example.com"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.ID != userID {
		t.Errorf("id: got %v, want %v", saved.ID, userID)
	}
	if saved.Email == nil || *saved.Email != "yamada@example.com" {
		t.Errorf("email: got %v", saved.Email)
	}
}

func TestService_Update_EmptyEmailClears(t *testing.T) {
	var saved *domain.User
	users := &mockUserRepo{
		UpdateFunc: func(_ context.Context, u *domain.User) (*domain.User, error) {
			saved = u
			return u, nil
		},
	}

	_, err := newTestService(users).Update(authedCtx(uuid.New()), Input{
		Name:  "山田",
		Email: strPtr(""),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.Email != nil {
		t.Errorf("expected nil email, got %q", *saved.Email)
	}
}

func TestService_Update_Validation(t *testing.T) {
	svc := newTestService(&mockUserRepo{})

	cases := []struct {
		name  string
		input Input
	}{
		{"empty name", Input{Name: "", Email: strPtr("a@b.example")}},
		{"bad email", Input{Name: "山田", Email: strPtr("not-an-address")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Update(authedCtx(uuid.New()), tc.input)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}
