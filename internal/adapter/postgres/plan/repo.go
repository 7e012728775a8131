// Package plan implements the PlannedTraining repository using PostgreSQL.
//
// Besides plain CRUD it carries the scheduler-facing queries: the reminder
// candidate scan, the conditional sent-marker write, and the past-due bulk
// flag. The sent-marker write is conditional (false→true only) so that two
// overlapping dispatcher runs cannot both claim the same reminder.
package plan

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

const table = "planned_trainings"

var columns = []string{
	"id", "user_id", "name", "category", "points",
	"application_deadline", "payment_deadline", "training_date",
	"fee", "is_online", "memo",
	"remind_application", "remind_payment", "remind_training",
	"reminder_sent_application", "reminder_sent_payment", "reminder_sent_training",
	"calendar_synced", "has_past_training_date",
	"created_at", "updated_at",
}

// sentColumn maps a reminder kind to its sent-marker column.
func sentColumn(kind domain.ReminderKind) (string, error) {
	switch kind {
	case domain.ReminderApplication:
		return "reminder_sent_application", nil
	case domain.ReminderPayment:
		return "reminder_sent_payment", nil
	case domain.ReminderTraining:
		return "reminder_sent_training", nil
	}
	return "", fmt.Errorf("unknown reminder kind %q", kind)
}

// Repo provides planned-training persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new planned-training repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// CRUD
// ---------------------------------------------------------------------------

// Create inserts a new planned training and returns the persisted record.
func (r *Repo) Create(ctx context.Context, p *domain.PlannedTraining) (*domain.PlannedTraining, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := builder.
		Insert(table).
		Columns("id", "user_id", "name", "category", "points",
			"application_deadline", "payment_deadline", "training_date",
			"fee", "is_online", "memo",
			"remind_application", "remind_payment", "remind_training").
		Values(p.ID, p.UserID, p.Name, categoryToDB(p.Category), p.Points,
			p.ApplicationDeadline, p.PaymentDeadline, p.TrainingDate,
			p.Fee, p.IsOnline, p.Memo,
			p.RemindApplication, p.RemindPayment, p.RemindTraining).
		Suffix("RETURNING " + columnList()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}

	created, err := scanPlan(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "planned_training", p.ID)
	}

	return created, nil
}

// GetByID returns a planned training by primary key.
// Returns domain.ErrNotFound if the plan does not exist or belongs to another user.
func (r *Repo) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.PlannedTraining, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := builder.
		Select(columns...).
		From(table).
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	p, err := scanPlan(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "planned_training", id)
	}

	return p, nil
}

// ListByUser returns all planned trainings for a user, earliest training
// date first.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.PlannedTraining, error) {
	return r.list(ctx, sq.Eq{"user_id": userID}, "training_date ASC")
}

// ListPastDue returns the user's plans whose training date has elapsed
// (flagged by the sweeper), newest first, so the UI can prompt conversion
// to an attended record or deletion.
func (r *Repo) ListPastDue(ctx context.Context, userID uuid.UUID) ([]*domain.PlannedTraining, error) {
	return r.list(ctx, sq.Eq{"user_id": userID, "has_past_training_date": true}, "training_date DESC")
}

// Update overwrites the user-editable fields of a plan. Sent markers,
// calendar_synced and has_past_training_date are deliberately not touched:
// editing a deadline does not re-arm its reminder.
func (r *Repo) Update(ctx context.Context, p *domain.PlannedTraining) (*domain.PlannedTraining, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := builder.
		Update(table).
		Set("name", p.Name).
		Set("category", categoryToDB(p.Category)).
		Set("points", p.Points).
		Set("application_deadline", p.ApplicationDeadline).
		Set("payment_deadline", p.PaymentDeadline).
		Set("training_date", p.TrainingDate).
		Set("fee", p.Fee).
		Set("is_online", p.IsOnline).
		Set("memo", p.Memo).
		Set("remind_application", p.RemindApplication).
		Set("remind_payment", p.RemindPayment).
		Set("remind_training", p.RemindTraining).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": p.ID, "user_id": p.UserID}).
		Suffix("RETURNING " + columnList()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update: %w", err)
	}

	updated, err := scanPlan(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "planned_training", p.ID)
	}

	return updated, nil
}

// Delete removes a plan. Returns domain.ErrNotFound if the plan does not
// exist or belongs to another user.
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
		return postgres.MapError(err, "planned_training", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("planned_training %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Scheduler queries
// ---------------------------------------------------------------------------

// ListReminderCandidates returns all plans (across users) that have at least
// one deadline inside [from, to) with the matching remind flag set and the
// matching sent marker clear. The per-kind filtering is repeated in the
// classifier; the query only narrows the scan.
func (r *Repo) ListReminderCandidates(ctx context.Context, from, to time.Time) ([]*domain.PlannedTraining, error) {
	inWindow := func(col string) sq.Sqlizer {
		return sq.And{
			sq.GtOrEq{col: from},
			sq.Lt{col: to},
		}
	}

	filter := sq.Or{
		sq.And{inWindow("application_deadline"), sq.Eq{"remind_application": true, "reminder_sent_application": false}},
		sq.And{inWindow("payment_deadline"), sq.Eq{"remind_payment": true, "reminder_sent_payment": false}},
		sq.And{inWindow("training_date"), sq.Eq{"remind_training": true, "reminder_sent_training": false}},
	}

	return r.list(ctx, filter, "training_date ASC")
}

// MarkReminderSent sets the sent marker for one deadline kind, only if it is
// still false. Returns true when this call performed the transition, false
// when the marker was already set (e.g. by a concurrent run).
func (r *Repo) MarkReminderSent(ctx context.Context, id uuid.UUID, kind domain.ReminderKind) (bool, error) {
	col, err := sentColumn(kind)
	if err != nil {
		return false, err
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := builder.
		Update(table).
		Set(col, true).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id, col: false}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build update: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return false, postgres.MapError(err, "planned_training", id)
	}

	return tag.RowsAffected() == 1, nil
}

// MarkPastDue flags every plan whose training date precedes today and is not
// yet flagged. Returns the number of plans flagged. Safe to run repeatedly.
func (r *Repo) MarkPastDue(ctx context.Context, today time.Time) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := builder.
		Update(table).
		Set("has_past_training_date", true).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Lt{"training_date": today}).
		Where(sq.Eq{"has_past_training_date": false}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build update: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.MapError(err, "planned_training", uuid.Nil)
	}

	return int(tag.RowsAffected()), nil
}

// SetCalendarSynced marks a plan as having at least one external calendar
// event. Idempotent.
func (r *Repo) SetCalendarSynced(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := builder.
		Update(table).
		Set("calendar_synced", true).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "planned_training", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("planned_training %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (r *Repo) list(ctx context.Context, where sq.Sqlizer, orderBy string) ([]*domain.PlannedTraining, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := builder.
		Select(columns...).
		From(table).
		Where(where).
		OrderBy(orderBy).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list planned_trainings: %w", err)
	}
	defer rows.Close()

	var result []*domain.PlannedTraining
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan planned_training: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list planned_trainings: %w", err)
	}

	if result == nil {
		result = []*domain.PlannedTraining{}
	}
	return result, nil
}

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

func scanPlan(row pgx.Row) (*domain.PlannedTraining, error) {
	var (
		p        domain.PlannedTraining
		category *string
	)

	err := row.Scan(
		&p.ID, &p.UserID, &p.Name, &category, &p.Points,
		&p.ApplicationDeadline, &p.PaymentDeadline, &p.TrainingDate,
		&p.Fee, &p.IsOnline, &p.Memo,
		&p.RemindApplication, &p.RemindPayment, &p.RemindTraining,
		&p.ReminderSentApplication, &p.ReminderSentPayment, &p.ReminderSentTraining,
		&p.CalendarSynced, &p.HasPastTrainingDate,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Category = categoryFromDB(category)
	p.TrainingDate = p.TrainingDate.UTC()
	if p.ApplicationDeadline != nil {
		d := p.ApplicationDeadline.UTC()
		p.ApplicationDeadline = &d
	}
	if p.PaymentDeadline != nil {
		d := p.PaymentDeadline.UTC()
		p.PaymentDeadline = &d
	}
	return &p, nil
}
