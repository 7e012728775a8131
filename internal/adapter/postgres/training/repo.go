// Package training implements the AttendedTraining repository using PostgreSQL.
package training

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/credtrack/cpd-backend/internal/adapter/postgres"
	"github.com/credtrack/cpd-backend/internal/domain"
)

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const table = "attended_trainings"

var columns = []string{
	"id", "user_id", "name", "category", "points", "date", "is_online",
	"fee", "travel_cost", "expense_note", "created_at", "updated_at",
}

// Repo provides attended-training persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new attended-training repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a new attended training and returns the persisted record.
func (r *Repo) Create(ctx context.Context, t *domain.AttendedTraining) (*domain.AttendedTraining, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := builder.
		Insert(table).
		Columns("id", "user_id", "name", "category", "points", "date", "is_online",
			"fee", "travel_cost", "expense_note").
		Values(t.ID, t.UserID, t.Name, categoryToDB(t.Category), t.Points, t.Date, t.IsOnline,
			t.Fee, t.TravelCost, t.ExpenseNote).
		Suffix("RETURNING " + columnList()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}

	row := q.QueryRow(ctx, sql, args...)
	created, err := scanTraining(row)
	if err != nil {
		return nil, postgres.MapError(err, "attended_training", t.ID)
	}

	return created, nil
}

// GetByID returns an attended training by primary key.
// Returns domain.ErrNotFound if the record does not exist or belongs to another user.
func (r *Repo) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.AttendedTraining, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := builder.
		Select(columns...).
		From(table).
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	t, err := scanTraining(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "attended_training", id)
	}

	return t, nil
}

// ListByUser returns all attended trainings for a user, newest training
// first. Returns an empty slice when the user has none.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.AttendedTraining, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := builder.
		Select(columns...).
		From(table).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("date DESC", "created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list attended_trainings: %w", err)
	}
	defer rows.Close()

	var result []*domain.AttendedTraining
	for rows.Next() {
		t, err := scanTraining(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attended_training: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list attended_trainings: %w", err)
	}

	if result == nil {
		result = []*domain.AttendedTraining{}
	}
	return result, nil
}

// Update overwrites the mutable fields of an attended training.
// Returns domain.ErrNotFound if the record does not exist or belongs to
// another user.
func (r *Repo) Update(ctx context.Context, t *domain.AttendedTraining) (*domain.AttendedTraining, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := builder.
		Update(table).
		Set("name", t.Name).
		Set("category", categoryToDB(t.Category)).
		Set("points", t.Points).
		Set("date", t.Date).
		Set("is_online", t.IsOnline).
		Set("fee", t.Fee).
		Set("travel_cost", t.TravelCost).
		Set("expense_note", t.ExpenseNote).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": t.ID, "user_id": t.UserID}).
		Suffix("RETURNING " + columnList()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update: %w", err)
	}

	updated, err := scanTraining(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "attended_training", t.ID)
	}

	return updated, nil
}

// Delete removes an attended training. Returns domain.ErrNotFound if the
// record does not exist or belongs to another user.
func (r *Repo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := builder.
		Delete(table).
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "attended_training", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("attended_training %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func columnList() string {
	s := columns[0]
	for _, c := range columns[1:] {
		s += ", " + c
	}
	return s
}

func categoryToDB(c *domain.TrainingCategory) *string {
	if c == nil {
		return nil
	}
	s := string(*c)
	return &s
}

func categoryFromDB(s *string) *domain.TrainingCategory {
	if s == nil {
		return nil
	}
	c := domain.TrainingCategory(*s)
	return &c
}

func scanTraining(row pgx.Row) (*domain.AttendedTraining, error) {
	var (
		t        domain.AttendedTraining
		category *string
		date     time.Time
	)

	err := row.Scan(
		&t.ID, &t.UserID, &t.Name, &category, &t.Points, &date, &t.IsOnline,
		&t.Fee, &t.TravelCost, &t.ExpenseNote, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.Category = categoryFromDB(category)
	t.Date = date.UTC()
	return &t, nil
}
