package core

// DeriveGoalStatus returns the authoritative status for a goal. A goal is
// achieved exactly when the target is positive and the current amount has
// reached it. A requested status that contradicts the amounts, or any value
// outside the two allowed ones, is corrected to "in progress". Create and
// update paths must both go through this function.
func DeriveGoalStatus(current, target Money, requested GoalStatus) GoalStatus {
	if target.Cents > 0 && current.Cents >= target.Cents {
		return GoalAchieved
	}
	if requested == GoalInProgress {
		return requested
	}
	// Contradictory "achieved" or an unknown value.
	return GoalInProgress
}

// BudgetPercentUsed computes spent/amount as a percentage. The value is not
// clamped: over 100 signals overspend. A zero allocation yields 0 rather
// than propagating Inf/NaN.
func BudgetPercentUsed(spent, amount Money) float64 {
	if amount.Cents == 0 {
		return 0
	}
	return float64(spent.Cents) / float64(amount.Cents) * 100
}

// Derive recomputes the budget's percentage used from its current amounts.
func (b *Budget) Derive() {
	b.PercentUsed = BudgetPercentUsed(b.Spent, b.Amount)
}

// Derive recomputes the goal's status from its current amounts, treating the
// stored status as the requested one.
func (g *Goal) Derive() {
	g.Status = DeriveGoalStatus(g.Current, g.Target, g.Status)
}
