package core

import (
	"math"
	"testing"
)

func TestDeriveGoalStatus(t *testing.T) {
	cases := []struct {
		name      string
		current   int64
		target    int64
		requested GoalStatus
		want      GoalStatus
	}{
		{"reached target overrides in progress", 1000, 1000, GoalInProgress, GoalAchieved},
		{"above target", 1500, 1000, GoalAchieved, GoalAchieved},
		{"requested achieved below target is corrected", 200, 500, GoalAchieved, GoalInProgress},
		{"in progress below target", 200, 500, GoalInProgress, GoalInProgress},
		{"unknown status defaults to in progress", 200, 500, "done", GoalInProgress},
		{"zero target never achieves", 100, 0, GoalAchieved, GoalInProgress},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DeriveGoalStatus(Money{Cents: tc.current}, Money{Cents: tc.target}, tc.requested)
			if got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestBudgetPercentUsed(t *testing.T) {
	cases := []struct {
		spent  int64
		amount int64
		want   float64
	}{
		{5000, 20000, 25},
		{20000, 20000, 100},
		{30000, 20000, 150}, // overspend, not clamped
		{0, 20000, 0},
		{5000, 0, 0}, // zero allocation yields 0, not Inf
	}
	for i, tc := range cases {
		got := BudgetPercentUsed(Money{Cents: tc.spent}, Money{Cents: tc.amount})
		if math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("case %d: got %v want %v", i, got, tc.want)
		}
	}
}

func TestBudgetDerive(t *testing.T) {
	b := Budget{Amount: Money{Cents: 20000}, Spent: Money{Cents: 5000}}
	b.Derive()
	if math.Abs(b.PercentUsed-25) > 1e-9 {
		t.Fatalf("got %v want 25", b.PercentUsed)
	}
}

func TestGoalDerive(t *testing.T) {
	g := Goal{Target: Money{Cents: 1000}, Current: Money{Cents: 1000}, Status: GoalInProgress}
	g.Derive()
	if g.Status != GoalAchieved {
		t.Fatalf("got %q want %q", g.Status, GoalAchieved)
	}

	g = Goal{Target: Money{Cents: 500}, Current: Money{Cents: 200}, Status: GoalAchieved}
	g.Derive()
	if g.Status != GoalInProgress {
		t.Fatalf("got %q want %q", g.Status, GoalInProgress)
	}
}
