package domain

import (
	"time"

	"github.com/google/uuid"
)

// AttendedTraining is a completed continuing-education event contributing
// points toward certification renewal.
//
// Category and Points are nullable: a record promoted from an old plan may
// predate scoring. The compliance ledger treats nil points as zero and
// excludes nil categories from per-category buckets.
type AttendedTraining struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	Name     string
	Category *TrainingCategory
	Points   *int
	Date     time.Time // calendar date, UTC midnight
	IsOnline bool

	// Expense sub-fields, persisted for the expense report view.
	// Amounts are in minor currency units.
	Fee         *int
	TravelCost  *int
	ExpenseNote *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PointValue returns the record's points, treating nil as 0.
func (t *AttendedTraining) PointValue() int {
	if t.Points == nil {
		return 0
	}
	return *t.Points
}
