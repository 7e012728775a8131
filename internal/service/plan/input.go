package plan

import (
	"time"

	"github.com/credtrack/cpd-backend/internal/domain"
)

// Input carries the user-editable fields of a planned training. The reminder
// intents default to true when left nil, matching the create form.
type Input struct {
	Name     string
	Category *domain.TrainingCategory
	Points   *int

	ApplicationDeadline *time.Time
	PaymentDeadline     *time.Time
	TrainingDate        time.Time

	Fee      *int
	IsOnline bool
	Memo     *string

	RemindApplication *bool
	RemindPayment     *bool
	RemindTraining    *bool
}

// Validate checks the input fields.
func (in Input) Validate() error {
	var errs []domain.FieldError

	if in.Name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if in.TrainingDate.IsZero() {
		errs = append(errs, domain.FieldError{Field: "training_date", Message: "required"})
	}
	if in.Category != nil && !in.Category.IsValid() {
		errs = append(errs, domain.FieldError{Field: "category", Message: "unknown category"})
	}
	if in.Points != nil && *in.Points < 0 {
		errs = append(errs, domain.FieldError{Field: "points", Message: "must be >= 0"})
	}
	if in.Fee != nil && *in.Fee < 0 {
		errs = append(errs, domain.FieldError{Field: "fee", Message: "must be >= 0"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func remindFlag(v *bool) bool {
	if v == nil {
		return true
	}
	return *v
}

func dateOrNil(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := domain.DateUTC(*t)
	return &d
}
