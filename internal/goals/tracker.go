// Package goals derives progress for manually funded savings targets.
package goals

import (
	"github.com/shyamvijaybalaji/WealthFlow/internal/core"
)

// Progress is the derived state of one goal.
type Progress struct {
	Goal       core.SavingsGoal `json:"goal"`
	Percentage float64          `json:"progress_percentage"`
	Remaining  core.Money       `json:"remaining"`
	Achieved   bool             `json:"achieved"`
}

// Track computes progress toward a goal. Remaining goes negative when the
// goal is overfunded; Percentage is not capped at 100.
func Track(g core.SavingsGoal) Progress {
	return Progress{
		Goal:       g,
		Percentage: g.CurrentAmount.PercentOf(g.TargetAmount),
		Remaining:  g.TargetAmount.Sub(g.CurrentAmount),
		Achieved:   !g.CurrentAmount.LessThan(g.TargetAmount),
	}
}

// TrackAll derives progress for a set of goals in order.
func TrackAll(gs []core.SavingsGoal) []Progress {
	out := make([]Progress, 0, len(gs))
	for _, g := range gs {
		out = append(out, Track(g))
	}
	return out
}
