package domain

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPlanDeadline(t *testing.T) {
	app := date(2025, 4, 1)
	pay := date(2025, 4, 10)

	p := &PlannedTraining{
		ApplicationDeadline: &app,
		PaymentDeadline:     &pay,
		TrainingDate:        date(2025, 4, 20),
	}

	if got := p.Deadline(ReminderApplication); got == nil || !got.Equal(app) {
		t.Errorf("application deadline: got %v, want %v", got, app)
	}
	if got := p.Deadline(ReminderPayment); got == nil || !got.Equal(pay) {
		t.Errorf("payment deadline: got %v, want %v", got, pay)
	}
	if got := p.Deadline(ReminderTraining); got == nil || !got.Equal(p.TrainingDate) {
		t.Errorf("training deadline: got %v, want %v", got, p.TrainingDate)
	}
}

func TestPlanDeadlineAbsent(t *testing.T) {
	p := &PlannedTraining{TrainingDate: date(2025, 4, 20)}

	if got := p.Deadline(ReminderApplication); got != nil {
		t.Errorf("application deadline should be nil, got %v", got)
	}
	if got := p.Deadline(ReminderPayment); got != nil {
		t.Errorf("payment deadline should be nil, got %v", got)
	}
	// Training date is mandatory and always returned.
	if got := p.Deadline(ReminderTraining); got == nil {
		t.Error("training deadline should never be nil")
	}
}

func TestPlanReminderFlags(t *testing.T) {
	p := &PlannedTraining{
		RemindApplication:    true,
		RemindTraining:       true,
		ReminderSentPayment:  true,
		ReminderSentTraining: true,
	}

	if !p.RemindEnabled(ReminderApplication) || p.RemindEnabled(ReminderPayment) || !p.RemindEnabled(ReminderTraining) {
		t.Error("RemindEnabled does not match the per-kind flags")
	}
	if p.ReminderSent(ReminderApplication) || !p.ReminderSent(ReminderPayment) || !p.ReminderSent(ReminderTraining) {
		t.Error("ReminderSent does not match the per-kind markers")
	}
}

func TestPlanIsPast(t *testing.T) {
	today := date(2025, 4, 20)

	cases := []struct {
		name         string
		trainingDate time.Time
		want         bool
	}{
		{"yesterday", date(2025, 4, 19), true},
		{"today", date(2025, 4, 20), false},
		{"tomorrow", date(2025, 4, 21), false},
	}

	for _, tc := range cases {
		p := &PlannedTraining{TrainingDate: tc.trainingDate}
		if got := p.IsPast(today); got != tc.want {
			t.Errorf("%s: IsPast = %v, want %v", tc.name, got, tc.want)
		}
	}
}
