package training

import (
	"time"

	"github.com/credtrack/cpd-backend/internal/domain"
)

// RecordInput carries the fields for recording or editing an attended
// training. Category and points are required here; only legacy promoted
// records may lack them.
type RecordInput struct {
	Name     string
	Category *domain.TrainingCategory
	Points   *int
	Date     time.Time
	IsOnline bool

	Fee         *int
	TravelCost  *int
	ExpenseNote *string
}

// Validate checks the input fields.
func (in RecordInput) Validate() error {
	var errs []domain.FieldError

	if in.Name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if in.Date.IsZero() {
		errs = append(errs, domain.FieldError{Field: "date", Message: "required"})
	}
	switch {
	case in.Category == nil:
		errs = append(errs, domain.FieldError{Field: "category", Message: "required"})
	case !in.Category.IsValid():
		errs = append(errs, domain.FieldError{Field: "category", Message: "unknown category"})
	}
	switch {
	case in.Points == nil:
		errs = append(errs, domain.FieldError{Field: "points", Message: "required"})
	case *in.Points < 0:
		errs = append(errs, domain.FieldError{Field: "points", Message: "must be >= 0"})
	}
	if in.Fee != nil && *in.Fee < 0 {
		errs = append(errs, domain.FieldError{Field: "fee", Message: "must be >= 0"})
	}
	if in.TravelCost != nil && *in.TravelCost < 0 {
		errs = append(errs, domain.FieldError{Field: "travel_cost", Message: "must be >= 0"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
