// Package credential implements the CalendarCredential repository using
// PostgreSQL. user_id is the primary key: at most one credential per user,
// later authorizations overwrite earlier ones.
package credential

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/credtrack/cpd-backend/internal/adapter/postgres"
	"github.com/credtrack/cpd-backend/internal/domain"
)

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const table = "calendar_credentials"

// Repo provides calendar-credential persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new credential repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// GetByUser returns the user's calendar credential.
// Returns domain.ErrNotFound when the user has never authorized.
func (r *Repo) GetByUser(ctx context.Context, userID uuid.UUID) (*domain.CalendarCredential, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := builder.
		Select("user_id", "access_token", "refresh_token", "expires_at", "created_at", "updated_at").
		From(table).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var c domain.CalendarCredential
	err = q.QueryRow(ctx, sql, args...).Scan(
		&c.UserID, &c.AccessToken, &c.RefreshToken, &c.ExpiresAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "calendar_credential", userID)
	}

	return &c, nil
}

// Upsert stores a credential, replacing any previous one for the same user.
func (r *Repo) Upsert(ctx context.Context, c *domain.CalendarCredential) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := builder.
		Insert(table).
		Columns("user_id", "access_token", "refresh_token", "expires_at").
		Values(c.UserID, c.AccessToken, c.RefreshToken, c.ExpiresAt).
		Suffix(`ON CONFLICT (user_id) DO UPDATE SET
			access_token = EXCLUDED.access_token,
			refresh_token = EXCLUDED.refresh_token,
			expires_at = EXCLUDED.expires_at,
			updated_at = now()`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "calendar_credential", c.UserID)
	}

	return nil
}

// Delete removes the user's credential. Not an error if none exists.
func (r *Repo) Delete(ctx context.Context, userID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := builder.
		Delete(table).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "calendar_credential", userID)
	}

	return nil
}
