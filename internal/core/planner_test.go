package core

import (
	"math"
	"testing"
)

func TestBuildPlanBuckets(t *testing.T) {
	plan := BuildPlan(Money{Cents: 100000}, nil) // 1000.00
	if plan.Essentials.Cents != 50000 {
		t.Fatalf("essentials %d", plan.Essentials.Cents)
	}
	if plan.Discretionary.Cents != 30000 {
		t.Fatalf("discretionary %d", plan.Discretionary.Cents)
	}
	if plan.Savings.Cents != 20000 {
		t.Fatalf("savings %d", plan.Savings.Cents)
	}
}

func TestBuildPlanSingleEssentialCategory(t *testing.T) {
	expenses := []Transaction{
		tx(Expense, "groceries", 10000, 2025, 1, 5), // 100.00, the only expense
	}
	plan := BuildPlan(Money{Cents: 100000}, expenses)

	if len(plan.Categories) != 1 {
		t.Fatalf("categories: %+v", plan.Categories)
	}
	pc := plan.Categories[0]
	if !pc.Essential {
		t.Fatalf("groceries should be essential")
	}
	if math.Abs(pc.Percentage-100) > 1e-9 {
		t.Fatalf("percentage %v", pc.Percentage)
	}
	// The whole essentials bucket goes to the single essential category.
	if pc.Recommended.Cents != 50000 {
		t.Fatalf("recommended %d", pc.Recommended.Cents)
	}
}

func TestBuildPlanMixedCategories(t *testing.T) {
	expenses := []Transaction{
		tx(Expense, "rent", 6000, 2025, 1, 1),
		tx(Expense, "games", 2000, 2025, 1, 2),
		tx(Expense, "games", 2000, 2025, 1, 20),
		tx(Income, "salary", 99999, 2025, 1, 3), // ignored by the planner
	}
	plan := BuildPlan(Money{Cents: 100000}, expenses)

	if len(plan.Categories) != 2 {
		t.Fatalf("categories: %+v", plan.Categories)
	}
	games, rent := plan.Categories[0], plan.Categories[1]
	if games.Category != "games" || rent.Category != "rent" {
		t.Fatalf("unexpected order: %+v", plan.Categories)
	}
	if rent.Essential == false || games.Essential == true {
		t.Fatalf("classification: rent=%v games=%v", rent.Essential, games.Essential)
	}
	if math.Abs(rent.Percentage-60) > 1e-9 || math.Abs(games.Percentage-40) > 1e-9 {
		t.Fatalf("percentages: rent=%v games=%v", rent.Percentage, games.Percentage)
	}
	// rent: 60% of the 500.00 essentials bucket; games: 40% of the 300.00
	// discretionary bucket.
	if rent.Recommended.Cents != 30000 {
		t.Fatalf("rent recommended %d", rent.Recommended.Cents)
	}
	if games.Recommended.Cents != 12000 {
		t.Fatalf("games recommended %d", games.Recommended.Cents)
	}
}

func TestBuildPlanZeroExpenseTotal(t *testing.T) {
	plan := BuildPlan(Money{Cents: 100000}, []Transaction{
		tx(Income, "salary", 5000, 2025, 1, 1),
	})
	if len(plan.Categories) != 0 {
		t.Fatalf("expected no categories, got %+v", plan.Categories)
	}
}

func TestBuildPlanClassificationIsCaseInsensitive(t *testing.T) {
	expenses := []Transaction{
		tx(Expense, "Groceries", 1000, 2025, 1, 5),
	}
	plan := BuildPlan(Money{Cents: 10000}, expenses)
	if len(plan.Categories) != 1 || !plan.Categories[0].Essential {
		t.Fatalf("expected Groceries classified essential: %+v", plan.Categories)
	}
}
