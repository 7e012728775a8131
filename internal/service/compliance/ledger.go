package compliance

import (
	"github.com/credtrack/cpd-backend/internal/config"
	"github.com/credtrack/cpd-backend/internal/domain"
)

// Summary is the point accounting derived from a user's attended trainings.
// It is computed on demand and never persisted.
type Summary struct {
	Total       int
	PerCategory map[domain.TrainingCategory]int
	Online      int
	InPerson    int
}

// Evaluation compares a Summary against the renewal policy thresholds.
// Exceeding the online cap is a warning, not a rejection: the points still
// count toward the total.
type Evaluation struct {
	Summary Summary

	TargetPoints int
	OnlineCap    int
	InPersonMin  int

	OnlineExceeded    bool
	InPersonSatisfied bool
	OverallSatisfied  bool
	PercentToGoal     int
}

// Summarize folds a list of attended trainings into a Summary. Nil points
// count as 0; trainings without a category contribute to the total but to no
// category bucket.
func Summarize(trainings []*domain.AttendedTraining) Summary {
	s := Summary{PerCategory: make(map[domain.TrainingCategory]int)}

	for _, t := range trainings {
		points := t.PointValue()

		s.Total += points
		if t.Category != nil {
			s.PerCategory[*t.Category] += points
		}
		if t.IsOnline {
			s.Online += points
		} else {
			s.InPerson += points
		}
	}

	return s
}

// Evaluate applies the policy thresholds to a Summary.
func Evaluate(s Summary, policy config.ComplianceConfig) Evaluation {
	ev := Evaluation{
		Summary:      s,
		TargetPoints: policy.TargetPoints,
		OnlineCap:    policy.OnlineCap,
		InPersonMin:  policy.InPersonMin,

		OnlineExceeded:    s.Online > policy.OnlineCap,
		InPersonSatisfied: s.InPerson >= policy.InPersonMin,
		OverallSatisfied:  s.Total >= policy.TargetPoints,
	}

	if policy.TargetPoints > 0 {
		ev.PercentToGoal = s.Total * 100 / policy.TargetPoints
		if ev.PercentToGoal > 100 {
			ev.PercentToGoal = 100
		}
	} else {
		ev.PercentToGoal = 100
	}

	return ev
}
