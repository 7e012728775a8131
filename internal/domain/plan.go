package domain

import (
	"time"

	"github.com/google/uuid"
)

// PlannedTraining is a continuing-education event the user intends to attend
// but has not yet attended.
//
// TrainingDate is always present. ApplicationDeadline and PaymentDeadline are
// optional and, when present, normally precede TrainingDate — the system does
// not reject records that violate that, so no code may assume it.
//
// The three reminder-sent markers transition false→true exactly once, and
// only together with a confirmed notification attempt. Edits never reset
// them: correcting a typo in a deadline must not re-notify. The same holds
// for CalendarSynced.
type PlannedTraining struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	Name     string
	Category *TrainingCategory
	Points   *int

	ApplicationDeadline *time.Time // calendar date, UTC midnight
	PaymentDeadline     *time.Time // calendar date, UTC midnight
	TrainingDate        time.Time  // calendar date, UTC midnight

	Fee      *int
	IsOnline bool
	Memo     *string

	RemindApplication bool
	RemindPayment     bool
	RemindTraining    bool

	ReminderSentApplication bool
	ReminderSentPayment     bool
	ReminderSentTraining    bool

	CalendarSynced      bool
	HasPastTrainingDate bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Deadline returns the deadline instant for the given kind, or nil when the
// plan has none. The training date is always present.
func (p *PlannedTraining) Deadline(kind ReminderKind) *time.Time {
	switch kind {
	case ReminderApplication:
		return p.ApplicationDeadline
	case ReminderPayment:
		return p.PaymentDeadline
	case ReminderTraining:
		d := p.TrainingDate
		return &d
	}
	return nil
}

// RemindEnabled reports whether the user wants a reminder for the given kind.
func (p *PlannedTraining) RemindEnabled(kind ReminderKind) bool {
	switch kind {
	case ReminderApplication:
		return p.RemindApplication
	case ReminderPayment:
		return p.RemindPayment
	case ReminderTraining:
		return p.RemindTraining
	}
	return false
}

// ReminderSent reports whether a reminder for the given kind was already
// delivered.
func (p *PlannedTraining) ReminderSent(kind ReminderKind) bool {
	switch kind {
	case ReminderApplication:
		return p.ReminderSentApplication
	case ReminderPayment:
		return p.ReminderSentPayment
	case ReminderTraining:
		return p.ReminderSentTraining
	}
	return false
}

// IsPast reports whether the training date has elapsed relative to today
// (a UTC-midnight date).
func (p *PlannedTraining) IsPast(today time.Time) bool {
	return p.TrainingDate.Before(today)
}
