package reminder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/credtrack/cpd-backend/internal/domain"
)

// Report aggregates the outcome of one dispatcher run.
type Report struct {
	WindowStart time.Time
	WindowEnd   time.Time
	Plans       int
	Attempted   int
	Sent        int
	Failed      int
	Skipped     int
}

// Run executes one dispatcher tick at the given instant.
//
// A failure to list the candidate plans aborts the run; the run is
// idempotent, so the next trigger retries it wholesale. Every failure past
// that point is per-attempt: it is counted and logged, never propagated, so
// one bad recipient or one slow provider call cannot block the rest.
func (s *Service) Run(ctx context.Context, now time.Time) (*Report, error) {
	start, end := Window(now, s.cfg.LookaheadDays)

	plans, err := s.plans.ListReminderCandidates(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("list reminder candidates: %w", err)
	}

	report := &Report{WindowStart: start, WindowEnd: end, Plans: len(plans)}
	var mu sync.Mutex

	g := new(errgroup.Group)
	g.SetLimit(s.cfg.Workers)
	for _, p := range plans {
		g.Go(func() error {
			s.processPlan(ctx, p, now, report, &mu)
			return nil
		})
	}
	_ = g.Wait()

	s.log.InfoContext(ctx, "reminder run finished",
		"window_start", start.Format("2006-01-02"),
		"plans", report.Plans,
		"attempted", report.Attempted,
		"sent", report.Sent,
		"failed", report.Failed,
		"skipped", report.Skipped,
	)
	return report, nil
}

func (s *Service) processPlan(ctx context.Context, p *domain.PlannedTraining, now time.Time, report *Report, mu *sync.Mutex) {
	candidates := Classify(p, now, s.cfg.LookaheadDays)
	if len(candidates) == 0 {
		return
	}

	count := func(f func(*Report)) {
		mu.Lock()
		f(report)
		mu.Unlock()
	}

	user, err := s.users.GetByID(ctx, p.UserID)
	if err != nil {
		s.log.ErrorContext(ctx, "reminder recipient lookup failed",
			"plan_id", p.ID,
			"user_id", p.UserID,
			"error", err.Error(),
		)
		count(func(r *Report) { r.Failed += len(candidates) })
		return
	}
	if user.Email == nil || *user.Email == "" {
		s.log.WarnContext(ctx, "reminder skipped, user has no email",
			"plan_id", p.ID,
			"user_id", p.UserID,
		)
		count(func(r *Report) { r.Skipped += len(candidates) })
		return
	}

	for _, c := range candidates {
		count(func(r *Report) { r.Attempted++ })

		if s.sendOne(ctx, p, c, user) {
			count(func(r *Report) { r.Sent++ })
		} else {
			count(func(r *Report) { r.Failed++ })
		}
	}
}

// sendOne delivers one reminder and records its sent marker. The marker
// check in the candidate query is re-done here as a conditional write, so an
// overlapping run loses the race cleanly instead of double-marking; the
// notification itself may then have gone out twice, an accepted trade-off
// for runs that truly overlap.
func (s *Service) sendOne(ctx context.Context, p *domain.PlannedTraining, c Candidate, user *domain.User) bool {
	msg := buildMessage(user.Name, p, c, s.cfg.LookaheadDays, s.appName)

	sendCtx, cancel := context.WithTimeout(ctx, s.cfg.SendTimeout)
	defer cancel()

	if err := s.notifier.Send(sendCtx, *user.Email, msg.subject, msg.html, msg.text); err != nil {
		s.log.ErrorContext(ctx, "reminder delivery failed",
			"plan_id", p.ID,
			"kind", c.Kind.String(),
			"error", err.Error(),
		)
		return false
	}

	marked, err := s.plans.MarkReminderSent(ctx, p.ID, c.Kind)
	if err != nil {
		// The email went out but the marker write failed; the next run inside
		// the window will re-send. Loud log so it can be chased manually.
		s.log.ErrorContext(ctx, "sent marker write failed after delivery",
			"plan_id", p.ID,
			"kind", c.Kind.String(),
			"error", err.Error(),
		)
		return false
	}
	if !marked {
		s.log.WarnContext(ctx, "sent marker already set, concurrent run suspected",
			"plan_id", p.ID,
			"kind", c.Kind.String(),
		)
	}

	s.recordNotification(ctx, p, c, user)

	s.log.InfoContext(ctx, "reminder sent",
		"plan_id", p.ID,
		"kind", c.Kind.String(),
		"deadline", c.Deadline.Format("2006-01-02"),
	)
	return true
}

// recordNotification mirrors the email into the in-app feed, best effort.
func (s *Service) recordNotification(ctx context.Context, p *domain.PlannedTraining, c Candidate, user *domain.User) {
	err := s.notifications.Create(ctx, &domain.Notification{
		ID:     uuid.New(),
		UserID: user.ID,
		Title:  fmt.Sprintf("【リマインド】%sの%s", p.Name, kindLabel(c.Kind)),
		Body:   fmt.Sprintf("%s: %s", kindLabel(c.Kind), formatDate(c.Deadline)),
	})
	if err != nil {
		s.log.WarnContext(ctx, "in-app notification write failed",
			"plan_id", p.ID,
			"error", err.Error(),
		)
	}
}
