package reminder

import (
	"time"

	"github.com/credtrack/cpd-backend/internal/domain"
)

// Candidate is one deadline of one plan that is due for a reminder.
type Candidate struct {
	Kind     domain.ReminderKind
	Deadline time.Time
}

// Window returns the half-open deadline interval [start, end) matched by a
// run at the given instant: exactly the single calendar day lookaheadDays
// ahead of now's UTC date. The narrow window means a deadline is matched by
// exactly one daily run regardless of time-of-day jitter, so the sent marker
// is a second safety net rather than the only one.
func Window(now time.Time, lookaheadDays int) (start, end time.Time) {
	start = domain.DateUTC(now).AddDate(0, 0, lookaheadDays)
	return start, start.AddDate(0, 0, 1)
}

// Classify returns the plan's deadlines eligible for a reminder at now.
// A kind is emitted only when its deadline exists, its remind intent is on,
// its sent marker is still false, and the deadline falls inside the window.
// Pure function, no I/O.
func Classify(p *domain.PlannedTraining, now time.Time, lookaheadDays int) []Candidate {
	start, end := Window(now, lookaheadDays)

	var out []Candidate
	for _, kind := range domain.AllReminderKinds() {
		deadline := p.Deadline(kind)
		if deadline == nil {
			continue
		}
		if !p.RemindEnabled(kind) || p.ReminderSent(kind) {
			continue
		}
		if deadline.Before(start) || !deadline.Before(end) {
			continue
		}
		out = append(out, Candidate{Kind: kind, Deadline: *deadline})
	}
	return out
}
